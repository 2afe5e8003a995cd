package factory

import (
	"context"
	"sync"
	"time"

	"github.com/exhibitkit/showroom/internal/catalog"
	"github.com/exhibitkit/showroom/internal/dependencies/mocks"
	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/runloop"
	"github.com/exhibitkit/showroom/internal/services/tour"
	"github.com/exhibitkit/showroom/internal/storage/memory"
	"github.com/exhibitkit/showroom/internal/testutil"
)

// StubTransport serves a canned bundle instead of fetching one
type StubTransport struct {
	mu sync.Mutex

	Bundle *model.Bundle
	Err    error

	// Locations records every fetched location
	Locations []string
}

// Fetch implements loader.Transport
func (t *StubTransport) Fetch(_ context.Context, location string) (*model.Bundle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Locations = append(t.Locations, location)
	if t.Err != nil {
		return nil, t.Err
	}
	return t.Bundle, nil
}

// SetBundle swaps the served bundle
func (t *StubTransport) SetBundle(b *model.Bundle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Bundle = b
}

// TestConfig holds knobs for the test factory
type TestConfig struct {
	// AssetRoot is where local assets are read from (optional)
	AssetRoot string
	// Bundle is what the stub transport serves (optional)
	Bundle *model.Bundle
	// TeleportPause overrides the tour's fade pause (optional)
	TeleportPause time.Duration
}

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Transport *StubTransport
}

// NewTestApp creates an App configured for testing with mocked
// dependencies and a running loop
func NewTestApp(cfg TestConfig) (*TestApp, error) {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	transport := &StubTransport{Bundle: cfg.Bundle}

	loopCfg := runloop.DefaultConfig()
	loopCfg.TickInterval = 10 * time.Millisecond

	tourCfg := tour.DefaultConfig()
	if cfg.TeleportPause != 0 {
		tourCfg.TeleportPause = cfg.TeleportPause
	}

	app, err := newWithDependencies(
		store, mockClock, catalog.Default(), transport,
		cfg.AssetRoot, loopCfg, tourCfg, testutil.NopLogger(),
	)
	if err != nil {
		return nil, err
	}
	go app.Loop.Run()

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Transport: transport,
	}, nil
}

// TestBundle builds a video bundle with the given clip names
func TestBundle(names ...string) *model.Bundle {
	b := &model.Bundle{Name: "videos"}
	for _, name := range names {
		b.Assets = append(b.Assets, model.BundleAsset{
			Name:       name,
			Type:       model.BundleAssetVideo,
			FrameCount: 3600,
			FrameRate:  30,
		})
	}
	return b
}
