package file

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exhibitkit/showroom/internal/model"
)

func TestLoadMissingDocumentFails(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "users.json"))

	_, err := store.LoadUsers(context.Background())
	assert.ErrorIs(t, err, model.ErrUserDataMissing)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "data", "users.json"))
	ctx := context.Background()

	doc := &model.UserFile{Users: []model.UserRecord{
		{Username: "alice", Password: "hash-a"},
		{Username: "bob", Password: "hash-b"},
	}}
	require.NoError(t, store.SaveUsers(ctx, doc))

	loaded, err := store.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc.Users, loaded.Users)
}

func TestSaveReplacesWholeDocument(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "users.json"))
	ctx := context.Background()

	require.NoError(t, store.SaveUsers(ctx, &model.UserFile{Users: []model.UserRecord{
		{Username: "alice", Password: "a"},
	}}))
	require.NoError(t, store.SaveUsers(ctx, &model.UserFile{Users: []model.UserRecord{
		{Username: "bob", Password: "b"},
	}}))

	loaded, err := store.LoadUsers(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Users, 1)
	assert.Equal(t, "bob", loaded.Users[0].Username)
}
