package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	familydomain "clergy-registry-go/internal/domain/family"
	relationshipdomain "clergy-registry-go/internal/domain/relationship"
	"clergy-registry-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createFamilyRequest struct {
	Name string `json:"name"`
}

func (h *Handlers) ListFamilies(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var (
		families []familydomain.Family
		err      error
	)
	if user.Can("families.view_all") {
		families, err = h.Families.ListFamilies(r.Context())
	} else {
		families, err = h.Families.ListFamiliesOwnedBy(r.Context(), user.ID)
	}
	if err != nil {
		h.log.InternalError("families.list: list failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, families)
}

func (h *Handlers) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var req createFamilyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Families.CreateFamily(r.Context(), user.ID, req.Name)
	if err != nil {
		if errors.Is(err, familydomain.ErrNameRequired) {
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
			return
		}
		h.log.InternalError("families.create: create failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *Handlers) GetFamilyDetail(w http.ResponseWriter, r *http.Request) {
	familyID := strings.TrimSpace(chi.URLParam(r, "family_id"))
	if familyID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "family_id is required")
		return
	}

	detail, err := h.Families.FamilyDetail(r.Context(), familyID)
	if err != nil {
		if errors.Is(err, familydomain.ErrFamilyNotFound) {
			h.log.BusinessError("families.detail: family not found", err, "family_id", familyID)
			writeError(w, http.StatusNotFound, "family_not_found", "family not found")
			return
		}
		h.log.InternalError("families.detail: load failed", err, "family_id", familyID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toFamilyDetailResponse(detail))
}

func (h *Handlers) GetFamilyTree(w http.ResponseWriter, r *http.Request) {
	familyID := strings.TrimSpace(chi.URLParam(r, "family_id"))
	if familyID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "family_id is required")
		return
	}

	tree, err := h.Families.FamilyTree(r.Context(), familyID)
	if err != nil {
		switch {
		case errors.Is(err, familydomain.ErrFamilyNotFound):
			h.log.BusinessError("families.tree: family not found", err, "family_id", familyID)
			writeError(w, http.StatusNotFound, "family_not_found", "family not found")
		case errors.Is(err, familydomain.ErrNoPrimaryMember):
			h.log.BusinessError("families.tree: no primary member", err, "family_id", familyID)
			writeError(w, http.StatusNotFound, "no_primary_member", "family has no primary member")
		case errors.Is(err, familydomain.ErrCycleDetected):
			h.log.InternalError("families.tree: cycle in parent links", err, "family_id", familyID)
			writeError(w, http.StatusUnprocessableEntity, "cycle_detected", "parent links form a cycle")
		case errors.Is(err, familydomain.ErrDepthExceeded):
			h.log.InternalError("families.tree: depth limit exceeded", err, "family_id", familyID)
			writeError(w, http.StatusUnprocessableEntity, "depth_exceeded", "tree depth limit exceeded")
		default:
			h.log.InternalError("families.tree: build failed", err, "family_id", familyID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, familyTreeResponse{
		Status:     "success",
		FamilyName: tree.FamilyName,
		RootMember: tree.Root,
	})
}

type familyTreeResponse struct {
	Status     string                 `json:"status"`
	FamilyName string                 `json:"family_name"`
	RootMember *familydomain.TreeNode `json:"root_member"`
}

type familyDetailResponse struct {
	Family        familydomain.Family              `json:"family"`
	Members       []familydomain.Member            `json:"members"`
	Husbands      []familydomain.Member            `json:"husbands"`
	Wives         []familydomain.Member            `json:"wives"`
	Children      []familydomain.Member            `json:"children"`
	HasHusband    bool                             `json:"has_husband"`
	HasWife       bool                             `json:"has_wife"`
	EligibleRoles []string                         `json:"eligible_roles"`
	Relationship  *relationshipdomain.Relationship `json:"relationship"`
	GeneratedAt   time.Time                        `json:"generated_at"`
}

func toFamilyDetailResponse(detail *familydomain.Detail) familyDetailResponse {
	roles := detail.Partition.EligibleRoles()
	roleNames := make([]string, 0, len(roles))
	for _, role := range roles {
		roleNames = append(roleNames, role.String())
	}

	return familyDetailResponse{
		Family:        detail.Family,
		Members:       detail.Members,
		Husbands:      detail.Partition.Husbands,
		Wives:         detail.Partition.Wives,
		Children:      detail.Partition.Children,
		HasHusband:    detail.Partition.HasHusband,
		HasWife:       detail.Partition.HasWife,
		EligibleRoles: roleNames,
		Relationship:  detail.Relationship,
		GeneratedAt:   time.Now().UTC(),
	}
}
