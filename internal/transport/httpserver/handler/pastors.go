package handler

import (
	"errors"
	"net/http"
	"strings"

	pastordomain "clergy-registry-go/internal/domain/pastor"
	"github.com/go-chi/chi/v5"
)

type savePastorRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BirthDate  string `json:"birth_date"`
	OrdainedOn string `json:"ordained_on"`
	OrdainedAt string `json:"ordained_at"`
	Biography  string `json:"biography"`
}

func (h *Handlers) ListPastors(w http.ResponseWriter, r *http.Request) {
	pastors, err := h.Pastors.List(r.Context())
	if err != nil {
		h.log.InternalError("pastors.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, pastors)
}

func (h *Handlers) GetPastor(w http.ResponseWriter, r *http.Request) {
	pastorID := strings.TrimSpace(chi.URLParam(r, "pastor_id"))
	if pastorID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "pastor_id is required")
		return
	}

	result, err := h.Pastors.Get(r.Context(), pastorID)
	if err != nil {
		if errors.Is(err, pastordomain.ErrPastorNotFound) {
			h.log.BusinessError("pastors.get: pastor not found", err, "pastor_id", pastorID)
			writeError(w, http.StatusNotFound, "pastor_not_found", "pastor not found")
			return
		}
		h.log.InternalError("pastors.get: get failed", err, "pastor_id", pastorID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) SavePastor(w http.ResponseWriter, r *http.Request) {
	var req savePastorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	birthDate, err := parseDateParam(req.BirthDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "birth_date must be YYYY-MM-DD")
		return
	}
	ordainedOn, err := parseDateParam(req.OrdainedOn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "ordained_on must be YYYY-MM-DD")
		return
	}

	result, err := h.Pastors.Save(r.Context(), pastordomain.Pastor{
		ID:         strings.TrimSpace(req.ID),
		Name:       req.Name,
		BirthDate:  birthDate,
		OrdainedOn: ordainedOn,
		OrdainedAt: strings.TrimSpace(req.OrdainedAt),
		Biography:  req.Biography,
	})
	if err != nil {
		if errors.Is(err, pastordomain.ErrNameRequired) {
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
			return
		}
		h.log.InternalError("pastors.save: save failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
