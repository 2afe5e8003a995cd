package handler

import (
	"net/http"

	"github.com/exhibitkit/showroom/internal/api/response"
	"github.com/exhibitkit/showroom/internal/runloop"
	"github.com/exhibitkit/showroom/internal/services/tour"
)

// TourHandler handles showroom tour endpoints
type TourHandler struct {
	loop         *runloop.Loop
	orchestrator *tour.Orchestrator
}

// NewTourHandler creates a new tour handler
func NewTourHandler(loop *runloop.Loop, orchestrator *tour.Orchestrator) *TourHandler {
	return &TourHandler{
		loop:         loop,
		orchestrator: orchestrator,
	}
}

// Get handles GET /api/v1/tour
func (h *TourHandler) Get(w http.ResponseWriter, r *http.Request) {
	var view response.Tour
	if callErr := h.loop.Call(r.Context(), func() {
		view = h.tourView()
	}); callErr != nil {
		WriteError(w, callErr)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// Build handles POST /api/v1/tour/build
func (h *TourHandler) Build(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.orchestrator.Build)
}

// Next handles POST /api/v1/tour/next
func (h *TourHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.orchestrator.Next)
}

// Back handles POST /api/v1/tour/back
func (h *TourHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.orchestrator.Back)
}

func (h *TourHandler) step(w http.ResponseWriter, r *http.Request, f func() error) {
	var (
		err  error
		view response.Tour
	)
	if callErr := h.loop.Call(r.Context(), func() {
		err = f()
		view = h.tourView()
	}); callErr != nil {
		WriteError(w, callErr)
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// tourView must be called on the loop
func (h *TourHandler) tourView() response.Tour {
	scene := h.orchestrator.Scene()
	view := response.Tour{
		SceneBuilt:    scene != nil,
		SpriteVisible: h.orchestrator.SpriteVisible(),
		NextVisible:   h.orchestrator.NextVisible(),
		BackVisible:   h.orchestrator.BackVisible(),
		Transitioning: h.orchestrator.Transitioning(),
	}
	if scene != nil {
		view.State = string(h.orchestrator.State())
		view.DisplayText = h.orchestrator.DisplayText()
		player := response.Vec3FromModel(scene.Player.Transform.Position)
		view.Player = &player
	}
	return view
}
