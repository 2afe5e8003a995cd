// Package runloop provides the cooperative single-goroutine scheduler the
// application core runs on. All core state is touched only from the loop
// goroutine: external callers post work with Do or Call, timers fire back
// onto the loop, and tick handlers run once per tick. Asynchronous
// transfers execute off-loop but deliver their results by posting back,
// so ordering between a publish and its handlers stays deterministic.
package runloop

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Config holds configuration for the run loop
type Config struct {
	// TickInterval is the period between tick handler invocations
	TickInterval time.Duration
	// QueueSize is the buffer of pending posted operations
	QueueSize int
}

// DefaultConfig returns sensible defaults for loop configuration
func DefaultConfig() Config {
	return Config{
		TickInterval: 50 * time.Millisecond,
		QueueSize:    256,
	}
}

// TickHandler runs on every loop tick with the elapsed time since the
// previous tick
type TickHandler func(dt time.Duration)

// Loop is the cooperative scheduler
type Loop struct {
	cfg    Config
	logger *slog.Logger

	ops  chan func()
	done chan struct{}

	stopOnce sync.Once

	mu     sync.Mutex
	nextID uint64
	ticks  map[uint64]TickHandler
	order  []uint64
}

// New creates a loop; Run must be called to start processing
func New(cfg Config, logger *slog.Logger) *Loop {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig().QueueSize
	}
	return &Loop{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "runloop")),
		ops:    make(chan func(), cfg.QueueSize),
		done:   make(chan struct{}),
		ticks:  make(map[uint64]TickHandler),
	}
}

// Run processes posted operations and ticks until Stop is called.
// It must be called exactly once, on the goroutine that is to become
// the loop goroutine.
func (l *Loop) Run() {
	l.logger.Info("run loop started", slog.Duration("tick_interval", l.cfg.TickInterval))

	ticker := time.NewTicker(l.cfg.TickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case op := <-l.ops:
			op()

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			l.runTicks(dt)

		case <-l.done:
			// Drain anything already posted so callers blocked in
			// Call are released.
			for {
				select {
				case op := <-l.ops:
					op()
				default:
					l.logger.Info("run loop stopped")
					return
				}
			}
		}
	}
}

// Stop terminates Run; safe to call multiple times
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

// Do posts work to run on the loop. It never blocks the loop itself;
// posting from inside a loop handler schedules the work for a later
// iteration of the loop.
func (l *Loop) Do(f func()) {
	select {
	case l.ops <- f:
	case <-l.done:
		l.logger.Warn("op dropped, loop stopped")
	}
}

// Call posts work to the loop and waits for it to complete. It must not
// be called from the loop goroutine.
func (l *Loop) Call(ctx context.Context, f func()) error {
	doneCh := make(chan struct{})
	select {
	case l.ops <- func() {
		f()
		close(doneCh)
	}:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return context.Canceled
	}

	select {
	case <-doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// After schedules f to run on the loop once d has elapsed. The timer is
// the loop's suspend point for timed transitions: the waiting task yields
// and resumes deterministically when the duration expires.
func (l *Loop) After(d time.Duration, f func()) {
	time.AfterFunc(d, func() {
		l.Do(f)
	})
}

// OnTick registers a handler invoked every tick on the loop goroutine.
// The returned func removes the handler.
func (l *Loop) OnTick(h TickHandler) (remove func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	l.ticks[id] = h
	l.order = append(l.order, id)

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.ticks, id)
		for i, o := range l.order {
			if o == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}

func (l *Loop) runTicks(dt time.Duration) {
	l.mu.Lock()
	order := make([]uint64, len(l.order))
	copy(order, l.order)
	l.mu.Unlock()

	for _, id := range order {
		l.mu.Lock()
		h := l.ticks[id]
		l.mu.Unlock()
		if h != nil {
			h(dt)
		}
	}
}
