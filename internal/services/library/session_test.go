package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/exhibitkit/showroom/internal/bus"
	"github.com/exhibitkit/showroom/internal/dependencies/mocks"
	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/testutil"
)

type fakeLoader struct {
	requests []string
	next     model.RequestID
}

func (f *fakeLoader) LoadBundle(name string) model.RequestID {
	f.requests = append(f.requests, name)
	return f.next
}

type fakePlayer struct {
	played []model.MediaItem
}

func (f *fakePlayer) Play(item model.MediaItem) {
	f.played = append(f.played, item)
}

type SessionSuite struct {
	suite.Suite
	bus     *bus.Bus
	loader  *fakeLoader
	player  *fakePlayer
	session *Session
	chosen  []model.VideoChosenPayload
	ready   []model.LibraryReadyPayload
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.bus = bus.New(mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)), testutil.NopLogger())
	s.loader = &fakeLoader{next: "req-1"}
	s.player = &fakePlayer{}
	s.session = New(s.loader, s.bus, s.player, testutil.NopLogger())

	s.chosen = nil
	s.ready = nil
	s.bus.Subscribe(model.EventVideoChosen, func(evt model.Event) {
		s.chosen = append(s.chosen, evt.Payload.(model.VideoChosenPayload))
	})
	s.bus.Subscribe(model.EventLibraryReady, func(evt model.Event) {
		s.ready = append(s.ready, evt.Payload.(model.LibraryReadyPayload))
	})
}

func (s *SessionSuite) TearDownTest() {
	s.session.Close()
}

func videoBundle(names ...string) *model.Bundle {
	b := &model.Bundle{Name: BundleName}
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

func (s *SessionSuite) deliver(id model.RequestID, bundle *model.Bundle) {
	s.bus.Publish(model.EventBundleLoaded, model.BundleLoadedPayload{
		RequestID: id,
		Bundle:    bundle,
	})
}

func (s *SessionSuite) TestLoadRequestsVideoBundle() {
	id := s.session.Load()

	s.Equal(model.RequestID("req-1"), id)
	s.Equal([]string{BundleName}, s.loader.requests)
	s.False(s.session.Ready())
}

func (s *SessionSuite) TestLoadWhileInFlightReturnsSameRequest() {
	first := s.session.Load()
	second := s.session.Load()

	s.Equal(first, second)
	s.Len(s.loader.requests, 1)
}

func (s *SessionSuite) TestBundleLoadedBuildsCatalog() {
	id := s.session.Load()
	s.deliver(id, videoBundle("intro", "walkthrough", "credits"))

	s.True(s.session.Ready())
	s.Equal(3, s.session.Count())

	items := s.session.Items()
	s.Equal("Video : 1", items[0].Label)
	s.Equal("Video : 2", items[1].Label)
	s.Equal("Video : 3", items[2].Label)
	s.Equal("walkthrough", items[1].Name)

	s.Require().Len(s.ready, 1)
	s.Equal(3, s.ready[0].Count)
}

func (s *SessionSuite) TestEventsForOtherRequestsAreIgnored() {
	s.session.Load()
	s.deliver("req-other", videoBundle("intro"))

	s.False(s.session.Ready())
	s.Empty(s.ready)
}

func (s *SessionSuite) TestNonVideoAssetsAreSkipped() {
	id := s.session.Load()
	bundle := videoBundle("intro")
	bundle.Assets = append(bundle.Assets, model.BundleAsset{
		Name: "poster",
		Type: model.BundleAssetSprite,
	})
	s.deliver(id, bundle)

	s.Equal(1, s.session.Count())
	s.Equal("intro", s.session.Items()[0].Name)
}

func (s *SessionSuite) TestEmptyBundleLeavesLibraryNotReady() {
	id := s.session.Load()
	s.deliver(id, &model.Bundle{Name: BundleName})

	s.False(s.session.Ready())
	s.Empty(s.ready)

	// Terminal: the request is consumed, not retried.
	s.Empty(s.session.Items())
	s.ErrorIs(s.session.Choose(0), model.ErrLibraryNotReady)
}

func (s *SessionSuite) TestLoadFailureClearsPendingRequest() {
	id := s.session.Load()
	s.bus.Publish(model.EventBundleLoadFailed, model.BundleLoadFailedPayload{
		RequestID: id,
		Name:      BundleName,
		Reason:    "connection refused",
	})

	s.False(s.session.Ready())

	// A fresh Load issues a new request.
	s.loader.next = "req-2"
	s.Equal(model.RequestID("req-2"), s.session.Load())
}

func (s *SessionSuite) TestChooseForwardsToPlayback() {
	id := s.session.Load()
	s.deliver(id, videoBundle("intro", "walkthrough"))

	s.Require().NoError(s.session.Choose(1))

	s.Require().Len(s.player.played, 1)
	s.Equal("walkthrough", s.player.played[0].Name)

	s.Require().Len(s.chosen, 1)
	s.Equal(1, s.chosen[0].Index)
	s.Equal("Video : 2", s.chosen[0].Item.Label)
}

func (s *SessionSuite) TestChooseOutOfRange() {
	id := s.session.Load()
	s.deliver(id, videoBundle("intro"))

	s.ErrorIs(s.session.Choose(-1), model.ErrIndexOutOfRange)
	s.ErrorIs(s.session.Choose(1), model.ErrIndexOutOfRange)
	s.Empty(s.player.played)
}

func (s *SessionSuite) TestReloadRebuildsCatalog() {
	id := s.session.Load()
	s.deliver(id, videoBundle("intro", "walkthrough"))

	s.loader.next = "req-2"
	second := s.session.Load()
	s.deliver(second, videoBundle("finale"))

	s.Equal(1, s.session.Count())
	s.Equal("Video : 1", s.session.Items()[0].Label)
	s.Equal("finale", s.session.Items()[0].Name)
}
