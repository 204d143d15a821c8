package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/devcat/internal/domain"
	"github.com/MrSnakeDoc/devcat/internal/httpserver/deps"
)

type categoriesResponse struct {
	domain.Counts
	Site        string `json:"site,omitempty"`
	PartitionOK bool   `json:"partition_ok"`
}

// Categories returns the per-category counts of the active devices.
// Query: mode=exclusive|overlapping, site=<name>.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		mode, err := domain.ParseMode(q.Get("mode"))
		if err != nil {
			writeError(w, d.Logger, http.StatusBadRequest, err.Error())
			return
		}

		site := q.Get("site")
		counts := domain.Count(d.MemoryIndex.ActiveDevices(site), mode)

		writeJSON(w, d.Logger, http.StatusOK, categoriesResponse{
			Counts:      counts,
			Site:        site,
			PartitionOK: counts.PartitionOK(),
		})
	}
}
