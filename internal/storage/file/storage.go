// Package file persists the credential document as a single JSON file,
// matching the application's external user-data format.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/storage"
)

// Store is a JSON-file-backed implementation of the storage interface
type Store struct {
	path string
}

// New creates a file store rooted at the given document path
func New(path string) *Store {
	return &Store{path: path}
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

func (s *Store) LoadUsers(ctx context.Context) (*model.UserFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.ErrUserDataMissing
		}
		return nil, fmt.Errorf("read user document: %w", err)
	}

	var doc model.UserFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse user document: %w", err)
	}
	return &doc, nil
}

func (s *Store) SaveUsers(ctx context.Context, doc *model.UserFile) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode user document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create user data dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write user document: %w", err)
	}
	return nil
}
