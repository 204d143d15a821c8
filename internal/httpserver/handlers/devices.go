package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/devcat/internal/domain"
	"github.com/MrSnakeDoc/devcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devcat/internal/logger"
)

type deviceView struct {
	*domain.Device
	Category domain.Category `json:"category"`
}

type devicesResponse struct {
	Mode     domain.Mode     `json:"mode"`
	Category domain.Category `json:"category,omitempty"`
	Site     string          `json:"site,omitempty"`
	Count    int             `json:"count"`
	Devices  []deviceView    `json:"devices"`
}

// Devices lists the active devices of one category tab, or all of them when
// no category is given. Each device carries its exclusive category, even in
// overlapping mode.
func Devices(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		mode, err := domain.ParseMode(q.Get("mode"))
		if err != nil {
			writeError(w, d.Logger, http.StatusBadRequest, err.Error())
			return
		}

		var category domain.Category
		if raw := q.Get("category"); raw != "" {
			c, ok := domain.ParseCategory(raw)
			if !ok {
				writeError(w, d.Logger, http.StatusBadRequest, "unknown category: "+raw)
				return
			}
			category = c
		}

		site := q.Get("site")
		devices := d.MemoryIndex.ActiveDevices(site)
		if category != "" {
			for _, info := range domain.Registry(mode) {
				if info.Key == category {
					devices = domain.Filter(devices, info.Match)
					break
				}
			}
		}

		cats, err := domain.ClassifyAll(r.Context(), devices, d.ClassifyWorkers)
		if err != nil {
			d.Logger.Warn("device listing aborted", logger.Error(err))
			writeError(w, d.Logger, http.StatusServiceUnavailable, "request cancelled")
			return
		}

		views := make([]deviceView, len(devices))
		for i, dev := range devices {
			views[i] = deviceView{Device: dev, Category: cats[i]}
		}

		writeJSON(w, d.Logger, http.StatusOK, devicesResponse{
			Mode:     mode,
			Category: category,
			Site:     site,
			Count:    len(views),
			Devices:  views,
		})
	}
}
