package server

import (
	"encoding/json"
	"net/http"
	"time"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

// RegisterMetaRoutes wires the self-describing endpoints.
func RegisterMetaRoutes(mux *http.ServeMux, rr *RouteRegistry, bootAt time.Time) {
	Handle(mux, rr, "GET /api/health", "Liveness probe", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"status":  "ok",
			"boot_at": bootAt.UTC().Format(time.RFC3339),
			"uptime":  time.Since(bootAt).Round(time.Second).String(),
		})
	})

	Handle(mux, rr, "GET /api/routes", "List registered routes", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, rr.List())
	})
}
