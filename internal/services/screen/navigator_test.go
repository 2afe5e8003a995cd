package screen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/exhibitkit/showroom/internal/bus"
	"github.com/exhibitkit/showroom/internal/dependencies/mocks"
	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/testutil"
)

type NavigatorSuite struct {
	suite.Suite
	bus       *bus.Bus
	navigator *Navigator
	changes   []model.ScreenChangedPayload
}

func TestNavigatorSuite(t *testing.T) {
	suite.Run(t, new(NavigatorSuite))
}

func (s *NavigatorSuite) SetupTest() {
	s.bus = bus.New(mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)), testutil.NopLogger())
	s.navigator = New(s.bus, testutil.NopLogger())

	s.changes = nil
	s.bus.Subscribe(model.EventScreenChanged, func(evt model.Event) {
		s.changes = append(s.changes, evt.Payload.(model.ScreenChangedPayload))
	})
}

func (s *NavigatorSuite) TearDownTest() {
	s.navigator.Close()
}

func (s *NavigatorSuite) TestStartsAtHome() {
	s.Equal(model.ScreenHome, s.navigator.Current())
	s.True(s.navigator.IsActive(model.ScreenHome))
	s.Equal(1, s.navigator.ActiveCount())
	s.True(s.navigator.OverlayActive())
}

func (s *NavigatorSuite) TestLoginAcknowledgedMovesToProjectSelect() {
	s.bus.Publish(model.EventLoginAcknowledged, nil)

	s.Equal(model.ScreenProjectSelect, s.navigator.Current())
	s.Equal(1, s.navigator.ActiveCount())
	s.Require().Len(s.changes, 1)
	s.Equal(model.ScreenHome, s.changes[0].Previous)
	s.Equal(model.ScreenProjectSelect, s.changes[0].Current)
}

func (s *NavigatorSuite) TestProject1Path() {
	s.bus.Publish(model.EventLoginAcknowledged, nil)
	s.bus.Publish(model.EventProject1Chosen, nil)

	s.Equal(model.ScreenProject1, s.navigator.Current())
	s.Equal(1, s.navigator.ActiveCount())
	s.True(s.navigator.OverlayActive())
}

func (s *NavigatorSuite) TestProject2DisablesOverlay() {
	s.bus.Publish(model.EventLoginAcknowledged, nil)
	s.bus.Publish(model.EventProject2Chosen, nil)

	s.Equal(model.ScreenProject2, s.navigator.Current())
	s.Equal(1, s.navigator.ActiveCount())
	s.False(s.navigator.OverlayActive())
}

func (s *NavigatorSuite) TestTriggersOutsideTableAreIgnored() {
	// Project choice before login does nothing.
	s.bus.Publish(model.EventProject1Chosen, nil)
	s.Equal(model.ScreenHome, s.navigator.Current())

	// Project screens are terminal branches.
	s.bus.Publish(model.EventLoginAcknowledged, nil)
	s.bus.Publish(model.EventProject2Chosen, nil)
	s.bus.Publish(model.EventProject1Chosen, nil)
	s.Equal(model.ScreenProject2, s.navigator.Current())

	s.Len(s.changes, 2)
}

func (s *NavigatorSuite) TestExactlyOneScreenActiveAfterEveryTransition() {
	for _, trigger := range []model.EventType{
		model.EventLoginAcknowledged,
		model.EventProject1Chosen,
	} {
		s.bus.Publish(trigger, nil)
		s.Equal(1, s.navigator.ActiveCount())
		s.True(s.navigator.IsActive(s.navigator.Current()))
	}
}

func (s *NavigatorSuite) TestCloseDetachesTriggers() {
	s.navigator.Close()

	s.bus.Publish(model.EventLoginAcknowledged, nil)
	s.Equal(model.ScreenHome, s.navigator.Current())
	s.Empty(s.changes)
}
