package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/devcat/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready   bool `json:"ready"`
	Devices int  `json:"devices"`
}

// Readyz reports ready once the index holds a snapshot, either from an
// inventory load or from the Redis warm start.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := d.MemoryIndex.Count()
		ready := n > 0 || !d.MemoryIndex.GetLastReload().IsZero()

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, d.Logger, status, readyzResponse{Ready: ready, Devices: n})
	}
}
