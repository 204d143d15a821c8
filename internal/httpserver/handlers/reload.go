package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/devcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devcat/internal/logger"
)

type reloadResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// Reload triggers a manual inventory reload. The trigger channel holds at
// most one pending request; a second one while it is pending gets 429.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual inventory reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, d.Logger, http.StatusAccepted, reloadResponse{
				Triggered: true,
				Message:   "reload triggered",
			})
		default:
			d.Logger.Warn("inventory reload already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, d.Logger, http.StatusTooManyRequests, reloadResponse{
				Message: "reload already pending, please wait",
			})
		}
	}
}
