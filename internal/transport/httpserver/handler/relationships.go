package handler

import (
	"errors"
	"net/http"
	"strings"

	relationshipdomain "clergy-registry-go/internal/domain/relationship"
	"github.com/go-chi/chi/v5"
)

type recordRelationshipRequest struct {
	SpouseID  string `json:"spouse_id"`
	StartedOn string `json:"started_on"`
	Place     string `json:"place"`
}

func (h *Handlers) ListRelationships(w http.ResponseWriter, r *http.Request) {
	pastorID := strings.TrimSpace(chi.URLParam(r, "pastor_id"))
	if pastorID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "pastor_id is required")
		return
	}

	history, err := h.Relationships.History(r.Context(), pastorID)
	if err != nil {
		h.log.InternalError("relationships.list: list failed", err, "pastor_id", pastorID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, history)
}

func (h *Handlers) RecordRelationship(w http.ResponseWriter, r *http.Request) {
	pastorID := strings.TrimSpace(chi.URLParam(r, "pastor_id"))
	if pastorID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "pastor_id is required")
		return
	}

	var req recordRelationshipRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	startedOn, err := parseDateRequired(req.StartedOn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "started_on must be YYYY-MM-DD")
		return
	}

	result, err := h.Relationships.Record(r.Context(), relationshipdomain.RecordInput{
		PastorID:  pastorID,
		SpouseID:  req.SpouseID,
		StartedOn: startedOn,
		Place:     req.Place,
	})
	if err != nil {
		switch {
		case errors.Is(err, relationshipdomain.ErrSpouseRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "spouse_id is required")
		case errors.Is(err, relationshipdomain.ErrStartDateRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "started_on is required")
		default:
			h.log.InternalError("relationships.record: record failed", err, "pastor_id", pastorID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *Handlers) CloseRelationship(w http.ResponseWriter, r *http.Request) {
	pastorID := strings.TrimSpace(chi.URLParam(r, "pastor_id"))
	if pastorID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "pastor_id is required")
		return
	}

	if err := h.Relationships.CloseCurrent(r.Context(), pastorID); err != nil {
		h.log.InternalError("relationships.close: close failed", err, "pastor_id", pastorID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
