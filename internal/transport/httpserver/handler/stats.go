package handler

import "net/http"

func (h *Handlers) StatsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Stats.Summary(r.Context())
	if err != nil {
		h.log.InternalError("stats.summary: load failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
