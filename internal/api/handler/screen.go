package handler

import (
	"net/http"

	"github.com/exhibitkit/showroom/internal/api/apierr"
	"github.com/exhibitkit/showroom/internal/api/response"
	"github.com/exhibitkit/showroom/internal/bus"
	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/runloop"
	"github.com/exhibitkit/showroom/internal/services/screen"
)

// ScreenHandler handles navigation endpoints
type ScreenHandler struct {
	loop      *runloop.Loop
	bus       *bus.Bus
	navigator *screen.Navigator
}

// NewScreenHandler creates a new screen handler
func NewScreenHandler(loop *runloop.Loop, b *bus.Bus, navigator *screen.Navigator) *ScreenHandler {
	return &ScreenHandler{
		loop:      loop,
		bus:       b,
		navigator: navigator,
	}
}

// Get handles GET /api/v1/screens
func (h *ScreenHandler) Get(w http.ResponseWriter, r *http.Request) {
	var view response.Screen
	if callErr := h.loop.Call(r.Context(), func() {
		view = response.Screen{
			Current:       string(h.navigator.Current()),
			OverlayActive: h.navigator.OverlayActive(),
		}
	}); callErr != nil {
		WriteError(w, callErr)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// ChooseProject1 handles POST /api/v1/screens/project1
func (h *ScreenHandler) ChooseProject1(w http.ResponseWriter, r *http.Request) {
	h.chooseProject(w, r, model.EventProject1Chosen)
}

// ChooseProject2 handles POST /api/v1/screens/project2
func (h *ScreenHandler) ChooseProject2(w http.ResponseWriter, r *http.Request) {
	h.chooseProject(w, r, model.EventProject2Chosen)
}

// chooseProject publishes the project trigger. The project buttons only
// exist on the selection screen, so any other screen rejects the
// request.
func (h *ScreenHandler) chooseProject(w http.ResponseWriter, r *http.Request, trigger model.EventType) {
	var err error
	if callErr := h.loop.Call(r.Context(), func() {
		if h.navigator.Current() != model.ScreenProjectSelect {
			err = apierr.NewWrongScreenError("project selection is only available on the project select screen")
			return
		}
		h.bus.Publish(trigger, nil)
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
