// Package tour builds the virtual showroom scene and runs the guided
// tour through it: a reveal progression on the world-space panel and a
// teleport that moves the visitor across the room and back.
package tour

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/exhibitkit/showroom/internal/bus"
	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/runloop"
)

// Panel prompts shown on the world-space UI
const (
	PromptInitial  = "Click here"
	PromptTeleport = "Click again to teleport"
)

// CameraChildName is the player rig child the tour UI renders through
const CameraChildName = "camera"

// Fixed placements for the instantiated scene nodes
var (
	roomPlacement = model.DefaultTransform()

	uiPlacement = model.Transform{
		Position: model.Vec3{X: -14.76, Y: 11.5, Z: -1.52},
		Rotation: model.Vec3{Y: 90},
		Scale:    model.Uniform(0.35),
	}

	playerPlacement = model.Transform{
		Position: model.Vec3{Y: 1.6, Z: 8},
		Scale:    model.Uniform(1),
	}

	modelPlacement = model.Transform{
		Position: model.Vec3{Y: 0.5},
		Scale:    model.Uniform(6),
	}
)

type step string

const (
	stepNext step = "next"
	stepBack step = "back"
)

// transitions is the explicit tour progression table. Steps with no
// entry for the current state are no-ops at the bounds.
var transitions = map[model.TourState]map[step]model.TourState{
	model.TourText: {
		stepNext: model.TourTextAndImage,
	},
	model.TourTextAndImage: {
		stepNext: model.TourTeleported,
		stepBack: model.TourText,
	},
	model.TourTeleported: {
		stepBack: model.TourTextAndImage,
	},
}

// Loader provides the scene assets and the panel sprite
type Loader interface {
	LoadAsset(kind model.AssetKind) (*model.Asset, error)
	LoadSprite(name string) ([]byte, bool)
}

// Config holds the tour's tunable placement and timing values
type Config struct {
	// TeleportPause is how long the screen stays faded before the
	// position swap
	TeleportPause time.Duration

	// PlayerTeleportTarget and UITeleportTarget are the destination
	// positions of the forward teleport
	PlayerTeleportTarget model.Vec3
	UITeleportTarget     model.Vec3

	// SpriteName is the panel image revealed on the first step
	SpriteName string
}

// DefaultConfig returns the standard showroom tour configuration
func DefaultConfig() Config {
	return Config{
		TeleportPause:        150 * time.Millisecond,
		PlayerTeleportTarget: model.Vec3{Y: 1.6, Z: -6},
		UITeleportTarget:     model.Vec3{X: -14.76, Y: 11.5, Z: -9.5},
		SpriteName:           "showcase",
	}
}

// Orchestrator builds the showroom scene and drives the tour state
// machine. All methods must be called on the run loop.
type Orchestrator struct {
	loader Loader
	loop   *runloop.Loop
	bus    *bus.Bus
	cfg    Config
	logger *slog.Logger

	scene *model.Scene
	state model.TourState

	displayText   string
	sprite        []byte
	spriteVisible bool
	nextVisible   bool
	backVisible   bool

	// transitioning blocks further steps until the in-flight teleport
	// lands
	transitioning bool

	// remembered positions for the return teleport
	playerLastPosition model.Vec3
	uiLastPosition     model.Vec3
}

// New creates an orchestrator with no scene built yet
func New(loader Loader, loop *runloop.Loop, b *bus.Bus, cfg Config, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		loader: loader,
		loop:   loop,
		bus:    b,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "tour")),
	}
}

// Scene returns the built scene, or nil
func (o *Orchestrator) Scene() *model.Scene {
	return o.scene
}

// State returns the current tour state
func (o *Orchestrator) State() model.TourState {
	return o.state
}

// DisplayText returns the panel prompt
func (o *Orchestrator) DisplayText() string {
	return o.displayText
}

// SpriteVisible reports whether the panel image is shown
func (o *Orchestrator) SpriteVisible() bool {
	return o.spriteVisible
}

// NextVisible reports whether the next button is shown
func (o *Orchestrator) NextVisible() bool {
	return o.nextVisible
}

// BackVisible reports whether the back button is shown
func (o *Orchestrator) BackVisible() bool {
	return o.backVisible
}

// Transitioning reports whether a teleport is in flight
func (o *Orchestrator) Transitioning() bool {
	return o.transitioning
}

// Build loads and places the four scene nodes in order: room, tour UI,
// player rig, showcase model. The first load failure aborts the build
// and leaves no scene behind. Rebuilding resets the tour to its initial
// state.
func (o *Orchestrator) Build() error {
	room, err := o.instantiate(model.AssetRoom, roomPlacement)
	if err != nil {
		return err
	}
	ui, err := o.instantiate(model.AssetTourUI, uiPlacement)
	if err != nil {
		return err
	}
	player, err := o.instantiate(model.AssetPlayer, playerPlacement)
	if err != nil {
		return err
	}
	showcase, err := o.instantiate(model.AssetShowcaseModel, modelPlacement)
	if err != nil {
		return err
	}

	// The panel renders through the rig's camera, and turns to face it.
	player.Children = append(player.Children, &model.SceneNode{
		Name: CameraChildName,
		Kind: model.AssetPlayer,
		Transform: model.Transform{
			Position: model.Vec3{Y: 0.1},
			Scale:    model.Uniform(1),
		},
	})
	ui.Camera = player.Child(CameraChildName)

	o.scene = &model.Scene{
		Room:   room,
		UI:     ui,
		Player: player,
		Model:  showcase,
	}
	o.resetTour()

	o.logger.Info("scene built",
		slog.String("room", room.Name),
		slog.String("model", showcase.Name))
	o.bus.Publish(model.EventSceneBuilt, nil)
	return nil
}

func (o *Orchestrator) instantiate(kind model.AssetKind, placement model.Transform) (*model.SceneNode, error) {
	asset, err := o.loader.LoadAsset(kind)
	if err != nil {
		o.logger.Error("scene build aborted",
			slog.String("kind", string(kind)),
			slog.Any("error", err))
		return nil, fmt.Errorf("build %s: %w", kind, err)
	}
	return &model.SceneNode{
		Name:      asset.Name,
		Kind:      kind,
		Transform: placement,
	}, nil
}

func (o *Orchestrator) resetTour() {
	o.state = model.TourText
	o.displayText = PromptInitial
	o.spriteVisible = false
	o.nextVisible = true
	o.backVisible = false
	o.transitioning = false
}

// Next advances the tour one step. The first step reveals the panel
// image; the second teleports the visitor. At the end it is a no-op.
func (o *Orchestrator) Next() error {
	return o.advance(stepNext)
}

// Back reverses the tour one step, teleporting the visitor home from
// the far side. At the start it is a no-op.
func (o *Orchestrator) Back() error {
	return o.advance(stepBack)
}

func (o *Orchestrator) advance(dir step) error {
	if o.scene == nil {
		return model.ErrSceneNotBuilt
	}
	if o.transitioning {
		return model.ErrTransitionInProgress
	}

	next, ok := transitions[o.state][dir]
	if !ok {
		return nil
	}

	prev := o.state
	o.state = next

	switch {
	case prev == model.TourText && next == model.TourTextAndImage:
		o.revealImage()
	case prev == model.TourTextAndImage && next == model.TourText:
		o.resetPanel()
	case prev == model.TourTextAndImage && next == model.TourTeleported:
		o.nextVisible = false
		o.backVisible = true
		o.teleport(false)
	case prev == model.TourTeleported && next == model.TourTextAndImage:
		o.nextVisible = true
		o.teleport(true)
	}

	o.logger.Info("tour advanced",
		slog.String("from", string(prev)),
		slog.String("to", string(next)))
	o.bus.Publish(model.EventTourStateChanged, model.TourStateChangedPayload{
		Previous: prev,
		Current:  next,
	})
	return nil
}

func (o *Orchestrator) revealImage() {
	o.displayText = PromptTeleport
	if o.sprite == nil {
		if data, ok := o.loader.LoadSprite(o.cfg.SpriteName); ok {
			o.sprite = data
		}
	}
	o.spriteVisible = o.sprite != nil
	o.backVisible = true
}

func (o *Orchestrator) resetPanel() {
	o.displayText = PromptInitial
	o.spriteVisible = false
	o.backVisible = false
}

// teleport fades out, holds for the configured pause, swaps the player
// and panel positions, then fades back in. The forward trip remembers
// where it left from so the return trip can restore it.
func (o *Orchestrator) teleport(reverse bool) {
	o.transitioning = true

	playerTo := o.cfg.PlayerTeleportTarget
	uiTo := o.cfg.UITeleportTarget
	if reverse {
		playerTo = o.playerLastPosition
		uiTo = o.uiLastPosition
	}

	o.bus.Publish(model.EventTeleportStarted, model.TeleportPayload{
		Reverse: reverse,
		Player:  playerTo,
		UI:      uiTo,
	})

	o.loop.After(o.cfg.TeleportPause, func() {
		if !reverse {
			o.playerLastPosition = o.scene.Player.Transform.Position
			o.uiLastPosition = o.scene.UI.Transform.Position
		}
		o.scene.Player.Transform.Position = playerTo
		o.scene.UI.Transform.Position = uiTo
		o.transitioning = false

		o.logger.Info("teleport completed", slog.Bool("reverse", reverse))
		o.bus.Publish(model.EventTeleportCompleted, model.TeleportPayload{
			Reverse: reverse,
			Player:  playerTo,
			UI:      uiTo,
		})
	})
}
