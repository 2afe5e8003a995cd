package handler

import (
	"encoding/json"
	"net/http"

	"github.com/exhibitkit/showroom/internal/api/request"
	"github.com/exhibitkit/showroom/internal/api/response"
	"github.com/exhibitkit/showroom/internal/runloop"
	"github.com/exhibitkit/showroom/internal/services/playback"
)

// PlaybackHandler handles playback control endpoints
type PlaybackHandler struct {
	loop    *runloop.Loop
	session *playback.Session
}

// NewPlaybackHandler creates a new playback handler
func NewPlaybackHandler(loop *runloop.Loop, session *playback.Session) *PlaybackHandler {
	return &PlaybackHandler{
		loop:    loop,
		session: session,
	}
}

// Get handles GET /api/v1/playback
func (h *PlaybackHandler) Get(w http.ResponseWriter, r *http.Request) {
	var view response.Playback
	if callErr := h.loop.Call(r.Context(), func() {
		view = response.PlaybackFromSession(h.session)
	}); callErr != nil {
		WriteError(w, callErr)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// TogglePause handles POST /api/v1/playback/pause
func (h *PlaybackHandler) TogglePause(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, h.session.TogglePause)
}

// Seek handles POST /api/v1/playback/seek
func (h *PlaybackHandler) Seek(w http.ResponseWriter, r *http.Request) {
	var req request.SeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	h.control(w, r, func() { h.session.Seek(req.Seconds) })
}

// FastForward handles POST /api/v1/playback/fast-forward
func (h *PlaybackHandler) FastForward(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, h.session.FastForward)
}

// Rewind handles POST /api/v1/playback/rewind
func (h *PlaybackHandler) Rewind(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, h.session.Rewind)
}

// Stop handles POST /api/v1/playback/stop
func (h *PlaybackHandler) Stop(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, h.session.Stop)
}

// Replay handles POST /api/v1/playback/replay
func (h *PlaybackHandler) Replay(w http.ResponseWriter, r *http.Request) {
	var err error
	if callErr := h.loop.Call(r.Context(), func() {
		err = h.session.Replay()
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

// control runs a playback mutation on the loop and returns the fresh
// session view
func (h *PlaybackHandler) control(w http.ResponseWriter, r *http.Request, f func()) {
	var view response.Playback
	if callErr := h.loop.Call(r.Context(), func() {
		f()
		view = response.PlaybackFromSession(h.session)
	}); callErr != nil {
		WriteError(w, callErr)
		return
	}

	response.JSON(w, http.StatusOK, view)
}
