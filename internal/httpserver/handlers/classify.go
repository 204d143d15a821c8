package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/devcat/internal/domain"
	"github.com/MrSnakeDoc/devcat/internal/httpserver/deps"
)

const (
	maxClassifyBody    = 1 << 20
	maxClassifyDevices = 5000
)

type classifyResult struct {
	ID          string            `json:"id,omitempty"`
	Category    domain.Category   `json:"category"`
	DisplayName string            `json:"display_name"`
	Phase       domain.Phase      `json:"phase"`
	Rule        string            `json:"rule,omitempty"`
	Detected    domain.Category   `json:"detected"`
	Matches     []domain.Category `json:"matches"`
	CPUClass    domain.CPUClass   `json:"cpu_class"`
}

type classifyBatchRequest struct {
	Devices []*domain.Device `json:"devices"`
}

type classifyBatchResponse struct {
	Results []classifyResult `json:"results"`
	Counts  domain.Counts    `json:"counts"`
}

// Classify categorizes devices that are not in the inventory. The body is
// either one device object or {"devices": [...]}. Nothing is stored.
func Classify(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxClassifyBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, d.Logger, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, d.Logger, http.StatusBadRequest, "failed to read request body")
			return
		}
		if len(bytes.TrimSpace(body)) == 0 {
			writeError(w, d.Logger, http.StatusBadRequest, "empty request body")
			return
		}

		var probe map[string]json.RawMessage
		if err := json.Unmarshal(body, &probe); err != nil {
			writeError(w, d.Logger, http.StatusBadRequest, "body must be a JSON object")
			return
		}

		if _, batch := probe["devices"]; !batch {
			var dev domain.Device
			if err := json.Unmarshal(body, &dev); err != nil {
				writeError(w, d.Logger, http.StatusBadRequest, "invalid device: "+err.Error())
				return
			}
			writeJSON(w, d.Logger, http.StatusOK, explain(&dev))
			return
		}

		var req classifyBatchRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, d.Logger, http.StatusBadRequest, "invalid devices: "+err.Error())
			return
		}
		if len(req.Devices) > maxClassifyDevices {
			writeError(w, d.Logger, http.StatusRequestEntityTooLarge, "too many devices")
			return
		}

		results := make([]classifyResult, len(req.Devices))
		for i, dev := range req.Devices {
			results[i] = explain(dev)
		}
		writeJSON(w, d.Logger, http.StatusOK, classifyBatchResponse{
			Results: results,
			Counts:  domain.Count(req.Devices, domain.ModeExclusive),
		})
	}
}

func explain(dev *domain.Device) classifyResult {
	dec := domain.Explain(dev)
	res := classifyResult{
		Category:    dec.Category,
		DisplayName: dec.Category.DisplayName(),
		Phase:       dec.Phase,
		Rule:        dec.Rule,
		Detected:    domain.DetectCategory(dev),
		Matches:     []domain.Category{},
		CPUClass:    domain.CPUClassUnknown,
	}
	if dev == nil {
		return res
	}

	res.ID = dev.ID
	res.CPUClass = domain.ClassifyCPU(dev.CPU)
	for _, info := range domain.Registry(domain.ModeOverlapping) {
		if info.Match(dev) {
			res.Matches = append(res.Matches, info.Key)
		}
	}
	return res
}
