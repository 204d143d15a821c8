package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/devcat/internal/domain"
	"github.com/MrSnakeDoc/devcat/internal/httpserver/deps"
)

// Drift compares the exclusive and overlapping views of the active devices
// and the strict and non-strict physical-server rules.
func Drift(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		devices := d.MemoryIndex.ActiveDevices(r.URL.Query().Get("site"))
		writeJSON(w, d.Logger, http.StatusOK, domain.AnalyzeDrift(devices, d.DriftSamples))
	}
}
