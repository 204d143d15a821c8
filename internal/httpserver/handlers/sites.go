package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/devcat/internal/httpserver/deps"
)

type sitesResponse struct {
	Sites []string `json:"sites"`
}

// Sites lists the distinct site names of the active devices.
func Sites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d.Logger, http.StatusOK, sitesResponse{Sites: d.MemoryIndex.Sites()})
	}
}
