package runloop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/exhibitkit/showroom/internal/testutil"
)

type LoopSuite struct {
	suite.Suite
	loop *Loop
}

func TestLoopSuite(t *testing.T) {
	suite.Run(t, new(LoopSuite))
}

func (s *LoopSuite) SetupTest() {
	cfg := DefaultConfig()
	cfg.TickInterval = 5 * time.Millisecond
	s.loop = New(cfg, testutil.NopLogger())
	go s.loop.Run()
}

func (s *LoopSuite) TearDownTest() {
	s.loop.Stop()
}

func (s *LoopSuite) TestCallRunsOnLoopAndWaits() {
	ran := false
	err := s.loop.Call(context.Background(), func() { ran = true })
	s.Require().NoError(err)
	s.True(ran)
}

func (s *LoopSuite) TestCallRespectsContextCancellation() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Block the loop so the posted op cannot complete before the
	// context is observed.
	release := make(chan struct{})
	s.loop.Do(func() { <-release })

	err := s.loop.Call(ctx, func() {})
	close(release)
	s.ErrorIs(err, context.Canceled)
}

func (s *LoopSuite) TestDoPreservesPostingOrder() {
	var order []int
	for i := 1; i <= 5; i++ {
		i := i
		s.loop.Do(func() { order = append(order, i) })
	}
	s.Require().NoError(s.loop.Call(context.Background(), func() {}))
	s.Equal([]int{1, 2, 3, 4, 5}, order)
}

func (s *LoopSuite) TestAfterFiresOnTheLoop() {
	fired := make(chan struct{})
	s.loop.After(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		s.Fail("timer did not fire")
	}
}

func (s *LoopSuite) TestOnTickRunsUntilRemoved() {
	var count atomic.Int64
	remove := s.loop.OnTick(func(dt time.Duration) {
		s.Positive(dt)
		count.Add(1)
	})

	s.Eventually(func() bool { return count.Load() >= 3 }, time.Second, time.Millisecond)

	remove()
	s.Require().NoError(s.loop.Call(context.Background(), func() {}))
	after := count.Load()
	time.Sleep(30 * time.Millisecond)
	s.Equal(after, count.Load())
}

func (s *LoopSuite) TestStopReleasesPendingCalls() {
	release := make(chan struct{})
	s.loop.Do(func() { <-release })

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.loop.Call(context.Background(), func() {})
	}()

	time.Sleep(10 * time.Millisecond)
	close(release)
	s.loop.Stop()

	select {
	case err := <-errCh:
		s.NoError(err)
	case <-time.After(time.Second):
		s.Fail("pending call never released")
	}
}
