package api

import (
	"net/http"

	"github.com/rcliao/text-assist/internal/memory"
)

type HealthHandler struct {
	mem     *memory.Store
	version string
}

type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version,omitempty"`
	MemoryEntries int    `json:"memory_entries"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Version: h.version}
	if h.mem != nil {
		resp.MemoryEntries = h.mem.Len()
	}
	writeJSON(w, http.StatusOK, resp)
}
