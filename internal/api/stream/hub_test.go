package stream

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/exhibitkit/showroom/internal/bus"
	"github.com/exhibitkit/showroom/internal/dependencies/mocks"
	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	bus *bus.Bus
	hub *Hub
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.bus = bus.New(mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)), testutil.NopLogger())
	s.hub = NewHub(testutil.NopLogger())
	s.hub.Attach(s.bus)
}

func (s *HubSuite) TearDownTest() {
	s.hub.Close()
}

func (s *HubSuite) connect() *Client {
	client := NewClient(s.hub)
	s.hub.Register(client)
	s.Require().Eventually(func() bool {
		return s.hub.ClientCount() == 1
	}, time.Second, 5*time.Millisecond)
	return client
}

func (s *HubSuite) receive(client *Client) string {
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(time.Second):
		s.FailNow("no message received")
		return ""
	}
}

func (s *HubSuite) TestBusEventReachesClient() {
	client := s.connect()

	s.bus.Publish(model.EventScreenChanged, model.ScreenChangedPayload{
		Previous: model.ScreenHome,
		Current:  model.ScreenProjectSelect,
	})

	msg := s.receive(client)
	s.True(strings.HasPrefix(msg, "event: screen_changed\n"))
	s.Contains(msg, "data: ")

	var env envelope
	data := strings.TrimPrefix(strings.Split(msg, "\n")[1], "data: ")
	s.Require().NoError(json.Unmarshal([]byte(data), &env))
	s.Equal(model.EventScreenChanged, env.Type)
	s.Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), env.Timestamp)
}

func (s *HubSuite) TestBundlePayloadIsStrippedToMetadata() {
	client := s.connect()

	s.bus.Publish(model.EventBundleLoaded, model.BundleLoadedPayload{
		RequestID: "req-1",
		Bundle: &model.Bundle{
			Name: "videos",
			Assets: []model.BundleAsset{
				{Name: "clip", Type: model.BundleAssetVideo, Data: []byte("big blob")},
			},
		},
	})

	msg := s.receive(client)
	s.Contains(msg, `"assets":1`)
	s.Contains(msg, `"name":"videos"`)
	s.NotContains(msg, "big blob")
}

func (s *HubSuite) TestUnregisterStopsDelivery() {
	client := s.connect()
	s.hub.Unregister(client)
	s.Require().Eventually(func() bool {
		return s.hub.ClientCount() == 0
	}, time.Second, 5*time.Millisecond)

	// The send channel is closed on unregister.
	_, open := <-client.send
	s.False(open)
}

func (s *HubSuite) TestCloseDetachesFromBus() {
	s.hub.Close()

	s.Zero(s.bus.SubscriberCount(model.EventScreenChanged))
}

func TestFormatSSEMessage(t *testing.T) {
	msg := formatSSEMessage("position_report", "{\"seconds\":1}")
	assert.Equal(t, "event: position_report\ndata: {\"seconds\":1}\n\n", string(msg))

	multi := formatSSEMessage("x", "a\nb")
	require.Equal(t, "event: x\ndata: a\ndata: b\n\n", string(multi))
}
