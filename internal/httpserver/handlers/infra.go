package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/devcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devcat/internal/scheduler"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	DevicesLoaded *int   `json:"devices_loaded,omitempty"`
	ActiveDevices *int   `json:"active_devices,omitempty"`
	LastReload    string `json:"last_reload,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	ServiceMode string                     `json:"service_mode"`
	Components  map[string]componentStatus `json:"components"`
	LastReload  *scheduler.ReloadSummary   `json:"last_reload,omitempty"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total := d.MemoryIndex.Count()
		active := len(d.MemoryIndex.ActiveDevices(""))
		lastReload := d.MemoryIndex.GetLastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format(time.RFC3339)
		}

		components := map[string]componentStatus{
			"inventory": {
				OK:            active > 0,
				DevicesLoaded: &total,
				ActiveDevices: &active,
				LastReload:    lastReloadStr,
			},
			"redis": checkRedis(r.Context(), d),
			"classifier": {
				OK:   true,
				Mode: "canonical+waterfall",
			},
		}

		resp := infraResponse{
			ServiceMode: determineServiceMode(components),
			Components:  components,
		}
		if d.Reloads != nil {
			if s := d.Reloads.LastSummary(); !s.At.IsZero() {
				resp.LastReload = &s
			}
		}

		writeJSON(w, d.Logger, http.StatusOK, resp)
	}
}

func determineServiceMode(components map[string]componentStatus) string {
	if inv, ok := components["inventory"]; ok && !inv.OK {
		return "critical" // nothing to classify
	}
	if redis, ok := components["redis"]; ok && !redis.OK {
		return "degraded" // no warm start on restart
	}
	return "operational"
}

func checkRedis(parent context.Context, d deps.Deps) componentStatus {
	if d.Redis == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "memory-only",
		}
	}

	ctx, cancel := context.WithTimeout(parent, time.Second)
	defer cancel()

	if err := d.Redis.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "snapshot-mirror-unavailable",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "mirrored",
		Impact: "warm-start-enabled",
	}
}
