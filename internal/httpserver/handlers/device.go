package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/devcat/internal/domain"
	"github.com/MrSnakeDoc/devcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devcat/internal/logger"
	redisstore "github.com/MrSnakeDoc/devcat/internal/store/redis"
)

type deviceDetail struct {
	*domain.Device
	Category domain.Category `json:"category"`
	Phase    domain.Phase    `json:"phase"`
	Rule     string          `json:"rule,omitempty"`
	Origin   string          `json:"origin"`
}

// Device returns one device by ID with its explained exclusive category.
// Disabled devices are returned too. A device missing from the index is
// looked up in the Redis mirror, which still holds garbage-collected or
// not-yet-synced records until their TTL expires.
func Device(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, d.Logger, http.StatusBadRequest, "missing device id")
			return
		}

		if dev, ok := d.MemoryIndex.GetDevice(id); ok {
			writeJSON(w, d.Logger, http.StatusOK, detailOf(dev, "index"))
			return
		}
		if d.Redis == nil {
			writeError(w, d.Logger, http.StatusNotFound, "device not found: "+id)
			return
		}

		dev, err := d.Redis.GetDevice(r.Context(), id)
		switch {
		case errors.Is(err, redisstore.ErrDeviceNotFound):
			writeError(w, d.Logger, http.StatusNotFound, "device not found: "+id)
		case err != nil:
			d.Logger.Warn("device lookup in redis failed",
				logger.String("device_id", id),
				logger.Error(err))
			writeError(w, d.Logger, http.StatusInternalServerError, "device lookup failed")
		default:
			writeJSON(w, d.Logger, http.StatusOK, detailOf(dev, "redis"))
		}
	}
}

func detailOf(dev *domain.Device, origin string) deviceDetail {
	dec := domain.Explain(dev)
	return deviceDetail{
		Device:   dev,
		Category: dec.Category,
		Phase:    dec.Phase,
		Rule:     dec.Rule,
		Origin:   origin,
	}
}
