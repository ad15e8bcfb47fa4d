package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rcliao/text-assist/internal/memory"
	"github.com/rcliao/text-assist/internal/model"
)

type MemoryHandler struct {
	mem *memory.Store
}

type addRequest struct {
	Query    string            `json:"query"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type queryRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"topK,omitempty"`
}

type listResponse struct {
	Entries []model.Entry `json:"entries"`
	Count   int           `json:"count"`
}

type retrieveResponse struct {
	Results []model.Retrieved `json:"results"`
}

type contextResponse struct {
	Context string `json:"context"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

// List handles GET /v1/memory
func (h *MemoryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.mem.Entries()
	writeJSON(w, http.StatusOK, listResponse{Entries: entries, Count: len(entries)})
}

// Add handles POST /v1/memory
func (h *MemoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	e, err := h.mem.AddConversation(r.Context(), req.Query, req.Content, req.Metadata)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// Clear handles DELETE /v1/memory
func (h *MemoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.mem.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /v1/memory/{id}
func (h *MemoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, ok := h.mem.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "memory not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Delete handles DELETE /v1/memory/{id}
func (h *MemoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.mem.Delete(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "memory not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Retrieve handles POST /v1/memory/retrieve
func (h *MemoryHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	writeJSON(w, http.StatusOK, retrieveResponse{Results: h.mem.Retrieve(req.Query, req.TopK)})
}

// Context handles POST /v1/memory/context
func (h *MemoryHandler) Context(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	writeJSON(w, http.StatusOK, contextResponse{Context: h.mem.GetRelevantContextString(req.Query, req.TopK)})
}

// Stats handles GET /v1/memory/stats
func (h *MemoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.mem.Stats())
}

// Export handles GET /v1/memory/export
func (h *MemoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.mem.Export()
	if err != nil {
		writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="memory.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Import handles POST /v1/memory/import
func (h *MemoryHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	n, err := h.mem.Import(data)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Imported: n})
}
