package storage

import (
	"context"

	"github.com/exhibitkit/showroom/internal/model"
)

// Store defines the interface for credential document persistence.
// The document is always read and written whole: every signup is a full
// read-modify-write, and consumers rebuild their credential map from the
// complete document after each load.
type Store interface {
	// LoadUsers returns the persisted user document.
	// A missing document fails with model.ErrUserDataMissing.
	LoadUsers(ctx context.Context) (*model.UserFile, error)

	// SaveUsers replaces the persisted user document
	SaveUsers(ctx context.Context, doc *model.UserFile) error
}
