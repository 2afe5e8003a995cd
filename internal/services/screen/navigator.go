// Package screen drives the top-level screen state machine. Screens are
// mutually exclusive containers: activating one deactivates all others
// first, so at most one is ever visible.
package screen

import (
	"log/slog"

	"github.com/exhibitkit/showroom/internal/bus"
	"github.com/exhibitkit/showroom/internal/model"
)

// transitions is the explicit state/trigger table. Triggers with no
// entry for the current state are ignored; there is deliberately no
// path back from Project1 or Project2.
var transitions = map[model.ScreenState]map[model.EventType]model.ScreenState{
	model.ScreenHome: {
		model.EventLoginAcknowledged: model.ScreenProjectSelect,
	},
	model.ScreenProjectSelect: {
		model.EventProject1Chosen: model.ScreenProject1,
		model.EventProject2Chosen: model.ScreenProject2,
	},
}

// Navigator owns show/hide of the screen containers
type Navigator struct {
	bus    *bus.Bus
	logger *slog.Logger

	current    model.ScreenState
	containers map[model.ScreenState]bool

	// overlayActive tracks the UI camera overlay that belongs to the
	// 2D screens; entering the 3D showroom switches it off.
	overlayActive bool

	subs []*bus.Subscription
}

// New creates the navigator in the Home state and wires its triggers
func New(b *bus.Bus, logger *slog.Logger) *Navigator {
	n := &Navigator{
		bus:           b,
		logger:        logger.With(slog.String("component", "screens")),
		current:       model.ScreenHome,
		containers:    make(map[model.ScreenState]bool),
		overlayActive: true,
	}
	n.containers[model.ScreenHome] = true

	for _, trigger := range []model.EventType{
		model.EventLoginAcknowledged,
		model.EventProject1Chosen,
		model.EventProject2Chosen,
	} {
		trigger := trigger
		n.subs = append(n.subs, b.Subscribe(trigger, func(model.Event) {
			n.handleTrigger(trigger)
		}))
	}
	return n
}

// Close removes the navigator's bus subscriptions
func (n *Navigator) Close() {
	bus.CloseAll(n.subs)
}

// Current returns the active screen
func (n *Navigator) Current() model.ScreenState {
	return n.current
}

// IsActive reports whether a screen container is currently shown
func (n *Navigator) IsActive(screen model.ScreenState) bool {
	return n.containers[screen]
}

// OverlayActive reports whether the UI camera overlay is shown
func (n *Navigator) OverlayActive() bool {
	return n.overlayActive
}

// ActiveCount returns the number of active screen containers
func (n *Navigator) ActiveCount() int {
	count := 0
	for _, active := range n.containers {
		if active {
			count++
		}
	}
	return count
}

func (n *Navigator) handleTrigger(trigger model.EventType) {
	next, ok := transitions[n.current][trigger]
	if !ok {
		n.logger.Debug("trigger ignored",
			slog.String("screen", string(n.current)),
			slog.String("trigger", string(trigger)))
		return
	}
	n.activate(next)
}

// activate deactivates every container, then activates exactly the target
func (n *Navigator) activate(target model.ScreenState) {
	prev := n.current

	for _, screen := range model.AllScreens() {
		n.containers[screen] = false
	}
	n.containers[target] = true

	if target == model.ScreenProject2 {
		// The showroom renders through the player rig's camera.
		n.overlayActive = false
	}

	n.current = target
	n.logger.Info("screen changed",
		slog.String("from", string(prev)),
		slog.String("to", string(target)))
	n.bus.Publish(model.EventScreenChanged, model.ScreenChangedPayload{
		Previous: prev,
		Current:  target,
	})
}
