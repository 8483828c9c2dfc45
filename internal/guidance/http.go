package guidance

import (
	"encoding/json"
	"net/http"
	"strings"

	"guidepost/internal/server"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func (h *Handler) Register(mux *http.ServeMux, rr *server.RouteRegistry) {
	server.Handle(mux, rr, "GET /api/guidance",
		"Current guidance tiers, streaks and history", "",
		h.getState)

	server.Handle(mux, rr, "POST /api/guidance/complete",
		"Mark a guidance task completed",
		`{"task_id":"review_ai_suggestions","action_key":""}`,
		h.completeTask)

	server.Handle(mux, rr, "POST /api/guidance/tick",
		"Run the lazy reset check now", "",
		h.tick)
}

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.State())
}

func (h *Handler) completeTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskID    string `json:"task_id"`
		ActionKey string `json:"action_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(req.TaskID) == "" {
		writeErr(w, http.StatusBadRequest, "task_id is required")
		return
	}

	// Unknown task ids are a no-op by contract; the UI still gets the
	// current state back.
	if err := h.svc.CompleteTask(req.TaskID, req.ActionKey); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.svc.State())
}

func (h *Handler) tick(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Tick(); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.svc.State())
}
