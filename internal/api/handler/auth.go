package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/exhibitkit/showroom/internal/api/apierr"
	"github.com/exhibitkit/showroom/internal/api/request"
	"github.com/exhibitkit/showroom/internal/api/response"
	"github.com/exhibitkit/showroom/internal/bus"
	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/runloop"
	"github.com/exhibitkit/showroom/internal/services/auth"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	loop        *runloop.Loop
	bus         *bus.Bus
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(loop *runloop.Loop, b *bus.Bus, authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		loop:        loop,
		bus:         b,
		authService: authService,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	var err error
	if callErr := h.loop.Call(r.Context(), func() {
		err = h.authService.Verify(req.Username, req.Password)
	}); callErr != nil {
		WriteError(w, callErr)
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponse{Username: req.Username})
}

// SignUp handles POST /api/v1/auth/signup
// Duplicate usernames are rejected here; the credential store itself
// accepts duplicates.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req request.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	var err error
	if callErr := h.loop.Call(r.Context(), func() {
		if h.authService.Exists(req.Username) {
			err = apierr.NewUsernameExistsError()
			return
		}
		err = h.authService.SignUp(r.Context(), req.Username, req.Password)
	}); callErr != nil {
		WriteError(w, callErr)
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponse{Username: req.Username})
}

// Acknowledge handles POST /api/v1/auth/acknowledge
// The continue step after a successful login; moves the UI off the home
// screen.
func (h *AuthHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	var err error
	if callErr := h.loop.Call(r.Context(), func() {
		if h.authService.ActiveUser() == "" {
			err = NewUnauthorizedError()
			return
		}
		h.bus.Publish(model.EventLoginAcknowledged, nil)
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

// Exists handles GET /api/v1/auth/exists/{username}
func (h *AuthHandler) Exists(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	var exists bool
	if callErr := h.loop.Call(r.Context(), func() {
		exists = h.authService.Exists(username)
	}); callErr != nil {
		WriteError(w, callErr)
		return
	}

	response.JSON(w, http.StatusOK, response.ExistsResponse{Exists: exists})
}
