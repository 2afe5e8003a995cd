package tour

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/exhibitkit/showroom/internal/bus"
	"github.com/exhibitkit/showroom/internal/dependencies/clock"
	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/runloop"
	"github.com/exhibitkit/showroom/internal/testutil"
)

type fakeLoader struct {
	loaded    []model.AssetKind
	failKind  model.AssetKind
	sprite    []byte
	spriteOK  bool
}

func (f *fakeLoader) LoadAsset(kind model.AssetKind) (*model.Asset, error) {
	if kind == f.failKind {
		return nil, fmt.Errorf("%w: %s", model.ErrResourceNotFound, kind)
	}
	f.loaded = append(f.loaded, kind)
	return &model.Asset{Name: string(kind) + "_prefab", Kind: kind}, nil
}

func (f *fakeLoader) LoadSprite(string) ([]byte, bool) {
	return f.sprite, f.spriteOK
}

type OrchestratorSuite struct {
	suite.Suite
	loop         *runloop.Loop
	bus          *bus.Bus
	loader       *fakeLoader
	orchestrator *Orchestrator
	events       []model.Event
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}

func (s *OrchestratorSuite) SetupTest() {
	cfg := runloop.DefaultConfig()
	cfg.TickInterval = time.Hour
	s.loop = runloop.New(cfg, testutil.NopLogger())
	go s.loop.Run()

	s.bus = bus.New(clock.New(), testutil.NopLogger())
	s.loader = &fakeLoader{sprite: []byte("png"), spriteOK: true}

	tourCfg := DefaultConfig()
	tourCfg.TeleportPause = time.Millisecond
	s.orchestrator = New(s.loader, s.loop, s.bus, tourCfg, testutil.NopLogger())

	s.events = nil
	record := func(evt model.Event) { s.events = append(s.events, evt) }
	for _, topic := range []model.EventType{
		model.EventSceneBuilt,
		model.EventTourStateChanged,
		model.EventTeleportStarted,
		model.EventTeleportCompleted,
	} {
		s.bus.Subscribe(topic, record)
	}
}

func (s *OrchestratorSuite) TearDownTest() {
	s.loop.Stop()
}

func (s *OrchestratorSuite) on(f func()) {
	s.Require().NoError(s.loop.Call(context.Background(), f))
}

func (s *OrchestratorSuite) build() {
	var err error
	s.on(func() { err = s.orchestrator.Build() })
	s.Require().NoError(err)
}

// settle waits for an in-flight teleport to land
func (s *OrchestratorSuite) settle() {
	s.Require().Eventually(func() bool {
		var transitioning bool
		s.on(func() { transitioning = s.orchestrator.Transitioning() })
		return !transitioning
	}, time.Second, 2*time.Millisecond)
}

func (s *OrchestratorSuite) eventTypes() []model.EventType {
	var types []model.EventType
	for _, e := range s.events {
		types = append(types, e.Type)
	}
	return types
}

func (s *OrchestratorSuite) TestBuildPlacesAllNodes() {
	s.build()

	var scene *model.Scene
	s.on(func() { scene = s.orchestrator.Scene() })
	s.Require().NotNil(scene)

	s.Equal([]model.AssetKind{
		model.AssetRoom,
		model.AssetTourUI,
		model.AssetPlayer,
		model.AssetShowcaseModel,
	}, s.loader.loaded)

	s.Equal(model.Vec3{X: -14.76, Y: 11.5, Z: -1.52}, scene.UI.Transform.Position)
	s.Equal(model.Vec3{Y: 90}, scene.UI.Transform.Rotation)
	s.Equal(model.Uniform(0.35), scene.UI.Transform.Scale)
	s.Equal(model.Vec3{Y: 1.6, Z: 8}, scene.Player.Transform.Position)
	s.Equal(model.Uniform(6), scene.Model.Transform.Scale)
	s.Equal(model.Vec3{Y: 0.5}, scene.Model.Transform.Position)

	s.Require().NotNil(scene.UI.Camera)
	s.Same(scene.Player.Child(CameraChildName), scene.UI.Camera)

	s.Contains(s.eventTypes(), model.EventSceneBuilt)
}

func (s *OrchestratorSuite) TestBuildAbortsOnFirstFailure() {
	s.loader.failKind = model.AssetPlayer

	var err error
	s.on(func() { err = s.orchestrator.Build() })

	s.ErrorIs(err, model.ErrResourceNotFound)
	s.on(func() { s.Nil(s.orchestrator.Scene()) })

	// Room and UI loaded, nothing after the failing rig.
	s.Equal([]model.AssetKind{model.AssetRoom, model.AssetTourUI}, s.loader.loaded)
	s.NotContains(s.eventTypes(), model.EventSceneBuilt)
}

func (s *OrchestratorSuite) TestBuildResetsTour() {
	s.build()

	s.on(func() {
		s.Equal(model.TourText, s.orchestrator.State())
		s.Equal(PromptInitial, s.orchestrator.DisplayText())
		s.False(s.orchestrator.SpriteVisible())
		s.True(s.orchestrator.NextVisible())
		s.False(s.orchestrator.BackVisible())
	})
}

func (s *OrchestratorSuite) TestStepsBeforeBuildFail() {
	var nextErr, backErr error
	s.on(func() {
		nextErr = s.orchestrator.Next()
		backErr = s.orchestrator.Back()
	})
	s.ErrorIs(nextErr, model.ErrSceneNotBuilt)
	s.ErrorIs(backErr, model.ErrSceneNotBuilt)
}

func (s *OrchestratorSuite) TestFirstNextRevealsImage() {
	s.build()

	s.on(func() { s.Require().NoError(s.orchestrator.Next()) })

	s.on(func() {
		s.Equal(model.TourTextAndImage, s.orchestrator.State())
		s.Equal(PromptTeleport, s.orchestrator.DisplayText())
		s.True(s.orchestrator.SpriteVisible())
		s.True(s.orchestrator.BackVisible())
	})
}

func (s *OrchestratorSuite) TestMissingSpriteStaysHidden() {
	s.loader.spriteOK = false
	s.loader.sprite = nil
	s.build()

	s.on(func() { s.Require().NoError(s.orchestrator.Next()) })

	s.on(func() {
		s.Equal(PromptTeleport, s.orchestrator.DisplayText())
		s.False(s.orchestrator.SpriteVisible())
	})
}

func (s *OrchestratorSuite) TestSecondNextTeleports() {
	s.build()
	s.on(func() { s.Require().NoError(s.orchestrator.Next()) })
	s.on(func() { s.Require().NoError(s.orchestrator.Next()) })

	s.on(func() {
		s.Equal(model.TourTeleported, s.orchestrator.State())
		s.True(s.orchestrator.Transitioning())
		s.False(s.orchestrator.NextVisible())
	})
	s.settle()

	cfg := DefaultConfig()
	s.on(func() {
		scene := s.orchestrator.Scene()
		s.Equal(cfg.PlayerTeleportTarget, scene.Player.Transform.Position)
		s.Equal(cfg.UITeleportTarget, scene.UI.Transform.Position)
	})

	started, completed := 0, 0
	for _, e := range s.events {
		switch e.Type {
		case model.EventTeleportStarted:
			started++
			s.False(e.Payload.(model.TeleportPayload).Reverse)
		case model.EventTeleportCompleted:
			completed++
		}
	}
	s.Equal(1, started)
	s.Equal(1, completed)
}

func (s *OrchestratorSuite) TestStepsDuringTransitionAreRejected() {
	s.build()
	s.on(func() { s.Require().NoError(s.orchestrator.Next()) })
	s.on(func() { s.Require().NoError(s.orchestrator.Next()) })

	var err error
	s.on(func() { err = s.orchestrator.Back() })
	s.ErrorIs(err, model.ErrTransitionInProgress)
	s.settle()
}

func (s *OrchestratorSuite) TestBackFromTeleportedRestoresPositions() {
	s.build()
	s.on(func() { s.Require().NoError(s.orchestrator.Next()) })
	s.on(func() { s.Require().NoError(s.orchestrator.Next()) })
	s.settle()

	s.on(func() { s.Require().NoError(s.orchestrator.Back()) })
	s.settle()

	s.on(func() {
		scene := s.orchestrator.Scene()
		s.Equal(model.TourTextAndImage, s.orchestrator.State())
		s.Equal(model.Vec3{Y: 1.6, Z: 8}, scene.Player.Transform.Position)
		s.Equal(model.Vec3{X: -14.76, Y: 11.5, Z: -1.52}, scene.UI.Transform.Position)
		s.True(s.orchestrator.NextVisible())
	})

	var reverse []bool
	for _, e := range s.events {
		if e.Type == model.EventTeleportCompleted {
			reverse = append(reverse, e.Payload.(model.TeleportPayload).Reverse)
		}
	}
	s.Equal([]bool{false, true}, reverse)
}

func (s *OrchestratorSuite) TestBackFromTextAndImageResetsPanel() {
	s.build()
	s.on(func() { s.Require().NoError(s.orchestrator.Next()) })
	s.on(func() { s.Require().NoError(s.orchestrator.Back()) })

	s.on(func() {
		s.Equal(model.TourText, s.orchestrator.State())
		s.Equal(PromptInitial, s.orchestrator.DisplayText())
		s.False(s.orchestrator.SpriteVisible())
		s.False(s.orchestrator.BackVisible())
	})
}

func (s *OrchestratorSuite) TestStepsAtBoundsAreNoOps() {
	s.build()

	// Back at the start.
	s.on(func() { s.Require().NoError(s.orchestrator.Back()) })
	s.on(func() { s.Equal(model.TourText, s.orchestrator.State()) })

	// Next at the end.
	s.on(func() { s.Require().NoError(s.orchestrator.Next()) })
	s.on(func() { s.Require().NoError(s.orchestrator.Next()) })
	s.settle()
	s.on(func() { s.Require().NoError(s.orchestrator.Next()) })
	s.on(func() { s.Equal(model.TourTeleported, s.orchestrator.State()) })

	changes := 0
	for _, e := range s.events {
		if e.Type == model.EventTourStateChanged {
			changes++
		}
	}
	s.Equal(3, changes)
}

func (s *OrchestratorSuite) TestBuildErrorIsWrapped() {
	s.loader.failKind = model.AssetRoom

	var err error
	s.on(func() { err = s.orchestrator.Build() })

	s.Require().Error(err)
	s.True(errors.Is(err, model.ErrResourceNotFound))
	s.Contains(err.Error(), "build room")
}
