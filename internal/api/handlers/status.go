package handlers

import (
	"net/http"

	"github.com/kiran3035/healthai-assistant/internal/api"
)

// StatusHandler reports service metadata and the available endpoints.
type StatusHandler struct {
	version string
}

func NewStatusHandler(version string) *StatusHandler {
	return &StatusHandler{version: version}
}

// Status handles GET /api/status
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, map[string]interface{}{
		"service": "HealthAI Assistant",
		"version": h.version,
		"status":  "running",
		"endpoints": map[string]string{
			"chat":          "POST /api/chat",
			"chat_detailed": "POST /api/chat/detailed",
			"status":        "GET /api/status",
			"health":        "GET /health",
		},
	})
}
