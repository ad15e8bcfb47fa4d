package api

import (
	"net/http"

	"github.com/rcliao/text-assist/internal/assist"
	"github.com/rcliao/text-assist/internal/router"
)

type AssistHandler struct {
	assistant *assist.Assistant
}

type routeResponse struct {
	Routing router.Result  `json:"routing"`
	Request router.Request `json:"request"`
}

// Route handles POST /v1/route
func (h *AssistHandler) Route(w http.ResponseWriter, r *http.Request) {
	var in assist.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, req, err := h.assistant.Route(in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, routeResponse{Routing: res, Request: req})
}

// Assist handles POST /v1/assist
func (h *AssistHandler) Assist(w http.ResponseWriter, r *http.Request) {
	var in assist.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	out, err := h.assistant.Handle(r.Context(), in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
