package bus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/exhibitkit/showroom/internal/dependencies/mocks"
	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/testutil"
)

type BusSuite struct {
	suite.Suite
	clock *mocks.MockClock
	bus   *Bus
}

func TestBusSuite(t *testing.T) {
	suite.Run(t, new(BusSuite))
}

func (s *BusSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.bus = New(s.clock, testutil.NopLogger())
}

func (s *BusSuite) TestPublishWithNoSubscribersIsNoOp() {
	s.NotPanics(func() {
		s.bus.Publish(model.EventLoginSucceeded, model.LoginSucceededPayload{Username: "alice"})
	})
}

func (s *BusSuite) TestPublishInvokesHandlerWithPayload() {
	var got model.Event
	sub := s.bus.Subscribe(model.EventLoginSucceeded, func(evt model.Event) {
		got = evt
	})
	defer sub.Close()

	s.bus.Publish(model.EventLoginSucceeded, model.LoginSucceededPayload{Username: "alice"})

	s.Equal(model.EventLoginSucceeded, got.Type)
	s.Equal(s.clock.Now(), got.Timestamp)
	payload, ok := got.Payload.(model.LoginSucceededPayload)
	s.Require().True(ok)
	s.Equal("alice", payload.Username)
}

func (s *BusSuite) TestDispatchFollowsSubscriptionOrder() {
	var order []int
	s.bus.Subscribe(model.EventLibraryReady, func(model.Event) { order = append(order, 1) })
	s.bus.Subscribe(model.EventLibraryReady, func(model.Event) { order = append(order, 2) })
	s.bus.Subscribe(model.EventLibraryReady, func(model.Event) { order = append(order, 3) })

	s.bus.Publish(model.EventLibraryReady, nil)

	s.Equal([]int{1, 2, 3}, order)
}

func (s *BusSuite) TestCloseStopsDelivery() {
	calls := 0
	sub := s.bus.Subscribe(model.EventLibraryReady, func(model.Event) { calls++ })

	s.bus.Publish(model.EventLibraryReady, nil)
	sub.Close()
	s.bus.Publish(model.EventLibraryReady, nil)

	s.Equal(1, calls)
	s.Equal(0, s.bus.SubscriberCount(model.EventLibraryReady))
}

func (s *BusSuite) TestCloseIsIdempotent() {
	sub := s.bus.Subscribe(model.EventLibraryReady, func(model.Event) {})
	sub.Close()
	s.NotPanics(sub.Close)
}

func (s *BusSuite) TestHandlerMayUnsubscribeItselfDuringDispatch() {
	calls := 0
	var sub *Subscription
	sub = s.bus.Subscribe(model.EventLibraryReady, func(model.Event) {
		calls++
		sub.Close()
	})
	after := 0
	s.bus.Subscribe(model.EventLibraryReady, func(model.Event) { after++ })

	s.bus.Publish(model.EventLibraryReady, nil)
	s.bus.Publish(model.EventLibraryReady, nil)

	// First handler fired once then removed itself; later handlers on the
	// snapshot still ran both times.
	s.Equal(1, calls)
	s.Equal(2, after)
}

func (s *BusSuite) TestHandlerMayUnsubscribeOthersDuringDispatch() {
	var secondCalls int
	var second *Subscription
	s.bus.Subscribe(model.EventLibraryReady, func(model.Event) {
		second.Close()
	})
	second = s.bus.Subscribe(model.EventLibraryReady, func(model.Event) { secondCalls++ })

	// The snapshot taken at publish time still includes the second
	// handler; it disappears for subsequent publishes only.
	s.bus.Publish(model.EventLibraryReady, nil)
	s.Equal(1, secondCalls)

	s.bus.Publish(model.EventLibraryReady, nil)
	s.Equal(1, secondCalls)
}

func (s *BusSuite) TestSubscribeDuringDispatchDoesNotFireForCurrentEvent() {
	lateCalls := 0
	s.bus.Subscribe(model.EventLibraryReady, func(model.Event) {
		s.bus.Subscribe(model.EventLibraryReady, func(model.Event) { lateCalls++ })
	})

	s.bus.Publish(model.EventLibraryReady, nil)
	s.Equal(0, lateCalls)

	s.bus.Publish(model.EventLibraryReady, nil)
	s.Equal(1, lateCalls)
}
