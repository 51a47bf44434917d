package handler

import (
	"errors"
	"net/http"
	"strings"

	familydomain "clergy-registry-go/internal/domain/family"
	"github.com/go-chi/chi/v5"
)

// SaveMember accepts the member form as application/x-www-form-urlencoded:
// name, relation_code, birth_date, death_date, family_uuid, parent_uuid,
// is_primary, gender. Dates are YYYY-MM-DD. An id field makes the save an
// update of that member.
func (h *Handlers) SaveMember(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid form body")
		return
	}

	birthDate, err := parseDateParam(r.PostFormValue("birth_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "birth_date must be YYYY-MM-DD")
		return
	}
	deathDate, err := parseDateParam(r.PostFormValue("death_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "death_date must be YYYY-MM-DD")
		return
	}

	input := familydomain.MemberInput{
		ID:           strings.TrimSpace(r.PostFormValue("id")),
		FamilyID:     r.PostFormValue("family_uuid"),
		Name:         r.PostFormValue("name"),
		RelationCode: strings.TrimSpace(r.PostFormValue("relation_code")),
		Gender:       optionalString(r.PostFormValue("gender")),
		BirthDate:    birthDate,
		DeathDate:    deathDate,
		ParentID:     optionalString(r.PostFormValue("parent_uuid")),
		IsPrimary:    parseBoolParam(r.PostFormValue("is_primary")),
	}

	member, err := h.Families.SaveMember(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, familydomain.ErrNameRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		case errors.Is(err, familydomain.ErrFamilyRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "family_uuid is required")
		case errors.Is(err, familydomain.ErrFamilyNotFound):
			h.log.BusinessError("members.save: family not found", err, "family_id", input.FamilyID)
			writeError(w, http.StatusNotFound, "family_not_found", "family not found")
		default:
			h.log.InternalError("members.save: save failed", err, "family_id", input.FamilyID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

func (h *Handlers) GetMemberTree(w http.ResponseWriter, r *http.Request) {
	memberID := strings.TrimSpace(chi.URLParam(r, "member_id"))
	if memberID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "member_id is required")
		return
	}

	root, err := h.Families.MemberTree(r.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, familydomain.ErrCycleDetected):
			h.log.InternalError("members.tree: cycle in parent links", err, "member_id", memberID)
			writeError(w, http.StatusUnprocessableEntity, "cycle_detected", "parent links form a cycle")
		case errors.Is(err, familydomain.ErrDepthExceeded):
			h.log.InternalError("members.tree: depth limit exceeded", err, "member_id", memberID)
			writeError(w, http.StatusUnprocessableEntity, "depth_exceeded", "tree depth limit exceeded")
		default:
			h.log.InternalError("members.tree: build failed", err, "member_id", memberID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	if root == nil {
		h.log.BusinessError("members.tree: member not found", familydomain.ErrMemberNotFound, "member_id", memberID)
		writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		return
	}

	writeJSON(w, http.StatusOK, root)
}
