package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/storage"
)

// Store is a Redis-backed implementation of the storage interface. The
// credential document is held whole under a single key, preserving the
// full read-modify-write semantics of the file format.
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis store
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

func (s *Store) LoadUsers(ctx context.Context) (*model.UserFile, error) {
	data, err := s.client.Get(ctx, userDocKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserDataMissing
		}
		return nil, fmt.Errorf("load user document: %w", err)
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
	return s.client.Set(ctx, userDocKey(), data, 0).Err()
}
