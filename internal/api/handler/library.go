package handler

import (
	"encoding/json"
	"net/http"

	"github.com/exhibitkit/showroom/internal/api/request"
	"github.com/exhibitkit/showroom/internal/api/response"
	"github.com/exhibitkit/showroom/internal/runloop"
	"github.com/exhibitkit/showroom/internal/services/library"
)

// LibraryHandler handles video library endpoints
type LibraryHandler struct {
	loop    *runloop.Loop
	library *library.Session
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(loop *runloop.Loop, lib *library.Session) *LibraryHandler {
	return &LibraryHandler{
		loop:    loop,
		library: lib,
	}
}

// Get handles GET /api/v1/library
func (h *LibraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	var view response.Library
	if callErr := h.loop.Call(r.Context(), func() {
		view = response.LibraryFromItems(h.library.Ready(), h.library.Items())
	}); callErr != nil {
		WriteError(w, callErr)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// Load handles POST /api/v1/library/load
// The bundle fetch is asynchronous; library_ready arrives on the event
// stream when the catalog is built.
func (h *LibraryHandler) Load(w http.ResponseWriter, r *http.Request) {
	var id string
	if callErr := h.loop.Call(r.Context(), func() {
		id = string(h.library.Load())
	}); callErr != nil {
		WriteError(w, callErr)
		return
	}

	response.JSON(w, http.StatusAccepted, response.LoadResponse{RequestID: id})
}

// Choose handles POST /api/v1/library/choose
func (h *LibraryHandler) Choose(w http.ResponseWriter, r *http.Request) {
	var req request.ChooseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	var err error
	if callErr := h.loop.Call(r.Context(), func() {
		err = h.library.Choose(req.Index)
	}); callErr != nil {
		WriteError(w, callErr)
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
