package memory

import (
	"context"
	"sync"

	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/storage"
)

// Store is an in-memory implementation of the storage interface
type Store struct {
	mu  sync.RWMutex
	doc *model.UserFile
}

// New creates a new in-memory store with no document
func New() *Store {
	return &Store{}
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

func (s *Store) LoadUsers(ctx context.Context) (*model.UserFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, model.ErrUserDataMissing
	}
	users := make([]model.UserRecord, len(s.doc.Users))
	copy(users, s.doc.Users)
	return &model.UserFile{Users: users}, nil
}

func (s *Store) SaveUsers(ctx context.Context, doc *model.UserFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]model.UserRecord, len(doc.Users))
	copy(users, doc.Users)
	s.doc = &model.UserFile{Users: users}
	return nil
}
