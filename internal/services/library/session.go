// Package library maintains the video catalog for the browsing screen:
// it requests the video bundle, extracts the playable entries, and
// forwards selections to playback.
package library

import (
	"fmt"
	"log/slog"

	"github.com/exhibitkit/showroom/internal/bus"
	"github.com/exhibitkit/showroom/internal/model"
)

// BundleName is the bundle holding the library's video assets
const BundleName = "videos"

// Loader starts asynchronous bundle fetches
type Loader interface {
	LoadBundle(name string) model.RequestID
}

// Player receives the chosen media item
type Player interface {
	Play(item model.MediaItem)
}

// Session is the video library state. All methods must be called on the
// run loop; bundle events already arrive there.
type Session struct {
	loader Loader
	bus    *bus.Bus
	player Player
	logger *slog.Logger

	// pending is the request whose terminal event this session is
	// waiting for; events for any other request are ignored
	pending model.RequestID
	items   []model.MediaItem
	ready   bool

	subs []*bus.Subscription
}

// New creates an empty library and wires its bundle event handlers
func New(loader Loader, b *bus.Bus, player Player, logger *slog.Logger) *Session {
	s := &Session{
		loader: loader,
		bus:    b,
		player: player,
		logger: logger.With(slog.String("component", "library")),
	}
	s.subs = append(s.subs,
		b.Subscribe(model.EventBundleLoaded, s.handleLoaded),
		b.Subscribe(model.EventBundleLoadFailed, s.handleFailed),
	)
	return s
}

// Close removes the session's bus subscriptions
func (s *Session) Close() {
	bus.CloseAll(s.subs)
}

// Ready reports whether the catalog has been built
func (s *Session) Ready() bool {
	return s.ready
}

// Items returns the catalog entries in bundle order
func (s *Session) Items() []model.MediaItem {
	out := make([]model.MediaItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the number of catalog entries
func (s *Session) Count() int {
	return len(s.items)
}

// Load requests the video bundle. A load already in flight is left
// alone; reloading after the catalog is built rebuilds it from the new
// bundle.
func (s *Session) Load() model.RequestID {
	if s.pending != "" {
		s.logger.Debug("bundle load already in flight",
			slog.String("request_id", string(s.pending)))
		return s.pending
	}
	s.pending = s.loader.LoadBundle(BundleName)
	return s.pending
}

// Choose selects the catalog entry at index (0-based), publishes
// video_chosen, and hands the item to playback
func (s *Session) Choose(index int) error {
	if !s.ready {
		return model.ErrLibraryNotReady
	}
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: index %d of %d", model.ErrIndexOutOfRange, index, len(s.items))
	}

	item := s.items[index]
	s.logger.Info("video chosen",
		slog.Int("index", index),
		slog.String("name", item.Name))
	s.bus.Publish(model.EventVideoChosen, model.VideoChosenPayload{
		Index: index,
		Item:  item,
	})
	s.player.Play(item)
	return nil
}

func (s *Session) handleLoaded(evt model.Event) {
	payload, ok := evt.Payload.(model.BundleLoadedPayload)
	if !ok || payload.RequestID != s.pending {
		return
	}
	s.pending = ""

	videos := payload.Bundle.AssetsOfType(model.BundleAssetVideo)
	if len(videos) == 0 {
		// A bundle with nothing playable leaves the library unusable;
		// there is no retry path from here.
		s.logger.Error("bundle contained no videos",
			slog.String("bundle", payload.Bundle.Name),
			slog.Any("error", model.ErrEmptyExtraction))
		return
	}

	s.items = s.items[:0]
	for i, v := range videos {
		s.items = append(s.items, model.MediaItem{
			Label:      fmt.Sprintf("Video : %d", i+1),
			Name:       v.Name,
			FrameCount: v.FrameCount,
			FrameRate:  v.FrameRate,
		})
	}
	s.ready = true

	s.logger.Info("library ready", slog.Int("count", len(s.items)))
	s.bus.Publish(model.EventLibraryReady, model.LibraryReadyPayload{Count: len(s.items)})
}

func (s *Session) handleFailed(evt model.Event) {
	payload, ok := evt.Payload.(model.BundleLoadFailedPayload)
	if !ok || payload.RequestID != s.pending {
		return
	}
	s.pending = ""
	s.logger.Error("library bundle load failed",
		slog.String("bundle", payload.Name),
		slog.String("reason", payload.Reason))
}
