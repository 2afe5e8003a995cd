package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/exhibitkit/showroom/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	store *Store
	ctx   context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.store = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestLoadMissingDocumentFails() {
	_, err := s.store.LoadUsers(s.ctx)
	s.ErrorIs(err, model.ErrUserDataMissing)
}

func (s *StorageSuite) TestSaveThenLoadRoundTrips() {
	doc := &model.UserFile{Users: []model.UserRecord{
		{Username: "alice", Password: "hash-a"},
		{Username: "bob", Password: "hash-b"},
	}}
	s.Require().NoError(s.store.SaveUsers(s.ctx, doc))

	loaded, err := s.store.LoadUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(doc.Users, loaded.Users)
}

func (s *StorageSuite) TestSaveReplacesWholeDocument() {
	s.Require().NoError(s.store.SaveUsers(s.ctx, &model.UserFile{Users: []model.UserRecord{
		{Username: "alice", Password: "a"},
	}}))
	s.Require().NoError(s.store.SaveUsers(s.ctx, &model.UserFile{Users: []model.UserRecord{
		{Username: "bob", Password: "b"},
		{Username: "carol", Password: "c"},
	}}))

	loaded, err := s.store.LoadUsers(s.ctx)
	s.Require().NoError(err)
	s.Len(loaded.Users, 2)
	s.Equal("bob", loaded.Users[0].Username)
}

func (s *StorageSuite) TestCorruptDocumentFails() {
	s.Require().NoError(s.mini.Set(userDocKey(), "not-json"))

	_, err := s.store.LoadUsers(s.ctx)
	s.Error(err)
	s.NotErrorIs(err, model.ErrUserDataMissing)
}
