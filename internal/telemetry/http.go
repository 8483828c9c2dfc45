package telemetry

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"guidepost/internal/server"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) Register(mux *http.ServeMux, rr *server.RouteRegistry) {
	server.Handle(mux, rr, "GET /api/events",
		"Raw telemetry events, filterable by ?days= and ?type=", "",
		h.listEvents)

	server.Handle(mux, rr, "GET /api/stats",
		"Aggregated engine activity over the last ?days= (default 7)", "",
		h.getStats)
}

// sinceFrom parses ?days=N; defaults to the last 7 days.
func sinceFrom(r *http.Request) time.Time {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}
	return time.Now().AddDate(0, 0, -days)
}

func typesFrom(r *http.Request) []EventType {
	raw := strings.TrimSpace(r.URL.Query().Get("type"))
	if raw == "" {
		return nil
	}
	var out []EventType
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, EventType(part))
		}
	}
	return out
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	evts, err := h.repo.GetEvents(sinceFrom(r), typesFrom(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, evts)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	since := sinceFrom(r)
	evts, err := h.repo.GetEvents(since, nil)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	stats, err := CalculateStats(evts, since)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
