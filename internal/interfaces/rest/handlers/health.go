package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/interfaces/rest"
)

func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"UNAVAILABLE","message":"database unreachable"}}`))
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
