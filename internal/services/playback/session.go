// Package playback governs a single media item's playback lifecycle,
// independent of how any UI displays it.
package playback

import (
	"log/slog"
	"time"

	"github.com/exhibitkit/showroom/internal/bus"
	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/runloop"
)

// SeekIncrement is the fixed relative jump used by FastForward and Rewind
const SeekIncrement = 5.0 // seconds

// Session is the playback state machine. All methods must be called on
// the run loop.
type Session struct {
	loop   *runloop.Loop
	bus    *bus.Bus
	logger *slog.Logger

	state    model.PlaybackState
	item     *model.MediaItem
	duration float64
	position float64
	paused   bool

	// prepareGen invalidates stale prepare completions when a new
	// Play arrives while a previous prepare is still pending
	prepareGen int

	removeTick func()
}

// New creates an idle session and registers its per-tick position
// broadcast on the loop
func New(loop *runloop.Loop, b *bus.Bus, logger *slog.Logger) *Session {
	s := &Session{
		loop:   loop,
		bus:    b,
		logger: logger.With(slog.String("component", "playback")),
		state:  model.PlaybackIdle,
	}
	s.removeTick = loop.OnTick(s.tick)
	return s
}

// Close removes the session's tick handler
func (s *Session) Close() {
	if s.removeTick != nil {
		s.removeTick()
		s.removeTick = nil
	}
}

// State returns the current playback state
func (s *Session) State() model.PlaybackState {
	return s.state
}

// Item returns the bound media item, or nil
func (s *Session) Item() *model.MediaItem {
	return s.item
}

// Position returns the current playback position in seconds
func (s *Session) Position() float64 {
	return s.position
}

// Duration returns the bound item's length in seconds
func (s *Session) Duration() float64 {
	return s.duration
}

// IsPaused reports whether playback is paused
func (s *Session) IsPaused() bool {
	return s.paused
}

// Play binds a media item and starts preparing it. Any previous binding
// is cleared first. The session always passes through Preparing: the
// prepare completion is delivered on a later loop iteration, never
// inline.
func (s *Session) Play(item model.MediaItem) {
	s.item = nil
	s.position = 0
	s.duration = 0
	s.paused = false

	s.item = &item
	s.state = model.PlaybackPreparing
	s.prepareGen++
	gen := s.prepareGen

	s.logger.Info("preparing media", slog.String("item", item.Name))

	s.loop.Do(func() {
		s.prepareComplete(gen)
	})
}

// Replay restarts the currently bound item from the beginning
func (s *Session) Replay() error {
	if s.item == nil {
		return model.ErrNoMediaBound
	}
	s.Play(*s.item)
	return nil
}

// prepareComplete is the prepare-finished callback
func (s *Session) prepareComplete(gen int) {
	if gen != s.prepareGen || s.state != model.PlaybackPreparing || s.item == nil {
		return
	}

	s.bus.Publish(model.EventPlayerReady, nil)

	s.duration = s.item.Duration()
	s.state = model.PlaybackPlaying

	s.logger.Info("playback started",
		slog.String("item", s.item.Name),
		slog.String("duration", FormatTimestamp(s.duration)))
	s.bus.Publish(model.EventDurationKnown, model.DurationKnownPayload{
		Seconds:   s.duration,
		Formatted: FormatTimestamp(s.duration),
	})
}

// TogglePause flips the pause flag and publishes pause_changed. It is a
// no-op before the player is ready, guarding against acting on an
// unprepared player.
func (s *Session) TogglePause() {
	if s.state != model.PlaybackPlaying && s.state != model.PlaybackPaused {
		return
	}

	s.paused = !s.paused
	if s.paused {
		s.state = model.PlaybackPaused
	} else {
		s.state = model.PlaybackPlaying
	}
	s.bus.Publish(model.EventPauseChanged, model.PauseChangedPayload{IsPaused: s.paused})
}

// Seek moves the position, clamped to [0, duration], and publishes
// position_changed
func (s *Session) Seek(seconds float64) {
	if s.item == nil {
		return
	}
	s.position = clamp(seconds, 0, s.duration)
	s.bus.Publish(model.EventPositionChanged, model.PositionPayload{
		Seconds:   s.position,
		Formatted: FormatTimestamp(s.position),
	})
}

// FastForward jumps forward by the fixed increment, clamped
func (s *Session) FastForward() {
	s.Seek(s.position + SeekIncrement)
}

// Rewind jumps backward by the fixed increment, clamped
func (s *Session) Rewind() {
	s.Seek(s.position - SeekIncrement)
}

// Stop returns the session to Idle from any state, clearing the pause
// flag, and publishes playback_stopped. The item stays bound so Replay
// can restart it.
func (s *Session) Stop() {
	s.state = model.PlaybackIdle
	s.paused = false
	s.position = 0
	s.bus.Publish(model.EventPlaybackStopped, nil)
}

// tick advances playback and broadcasts the current position. The
// position_report is published unconditionally every tick while an item
// is bound, regardless of play/pause state; consumers must treat it as
// an idempotent "current position" report.
func (s *Session) tick(dt time.Duration) {
	if s.item == nil {
		return
	}

	if s.state == model.PlaybackPlaying && !s.paused {
		s.position += dt.Seconds()
		if s.position >= s.duration {
			// Loop point reached on a non-looping single play.
			s.position = s.duration
			s.state = model.PlaybackEnded
			s.logger.Info("playback ended", slog.String("item", s.item.Name))
			s.bus.Publish(model.EventPlaybackEnded, nil)
		}
	}

	s.bus.Publish(model.EventPositionReport, model.PositionPayload{
		Seconds:   s.position,
		Formatted: FormatTimestamp(s.position),
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
