// Package auth validates and creates user credentials against the
// persisted credential document and publishes login/signup outcomes on
// the event bus.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/exhibitkit/showroom/internal/bus"
	"github.com/exhibitkit/showroom/internal/model"
	"github.com/exhibitkit/showroom/internal/storage"
)

// User-facing failure reasons, shown transiently by the presentation layer
const (
	ReasonUserMissing   = "doesn't exist"
	ReasonWrongPassword = "incorrect password"
)

// Service handles authentication against the credential document.
// It assumes a single concurrent session: the last successful login is
// the active user.
type Service struct {
	store  storage.Store
	bus    *bus.Bus
	logger *slog.Logger

	// users is always a full projection of the last successfully
	// loaded or saved document
	users      map[string]string
	activeUser string
}

// New creates a new auth service. Load must be called before use.
func New(store storage.Store, b *bus.Bus, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		bus:    b,
		logger: logger.With(slog.String("component", "auth")),
		users:  make(map[string]string),
	}
}

// Load reads the credential document and rebuilds the lookup map. A
// missing document triggers creation of a one-record default document,
// then a single retry of the load.
func (s *Service) Load(ctx context.Context) error {
	doc, err := s.store.LoadUsers(ctx)
	if errors.Is(err, model.ErrUserDataMissing) {
		s.logger.Warn("user document not found, creating default user")
		if err := s.createDefaultUser(ctx); err != nil {
			return err
		}
		doc, err = s.store.LoadUsers(ctx)
	}
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	s.users = doc.CredentialMap()
	s.logger.Info("user document loaded", slog.Int("users", len(s.users)))
	return nil
}

// Exists reports whether a username is present in the current credential set
func (s *Service) Exists(username string) bool {
	_, ok := s.users[username]
	return ok
}

// Verify checks a username/password pair. The outcome is always
// published: login_succeeded with the username, or login_failed with a
// user-facing reason. On success the username becomes the active session.
func (s *Service) Verify(username, password string) error {
	hash, ok := s.users[username]
	if !ok {
		s.bus.Publish(model.EventLoginFailed, model.LoginFailedPayload{Reason: ReasonUserMissing})
		return model.ErrCredentialMissing
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		s.bus.Publish(model.EventLoginFailed, model.LoginFailedPayload{Reason: ReasonWrongPassword})
		return model.ErrCredentialMismatch
	}

	s.activeUser = username
	s.logger.Info("user logged in", slog.String("username", username))
	s.bus.Publish(model.EventLoginSucceeded, model.LoginSucceededPayload{Username: username})
	return nil
}

// SignUp appends a record and persists the full document, then rebuilds
// the credential set and publishes user_saved. It performs no uniqueness
// check; that policy belongs to the caller-side validator.
func (s *Service) SignUp(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	doc, err := s.store.LoadUsers(ctx)
	if errors.Is(err, model.ErrUserDataMissing) {
		doc = &model.UserFile{}
	} else if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	record := model.UserRecord{Username: username, Password: string(hash)}
	doc.Users = append(doc.Users, record)

	if err := s.store.SaveUsers(ctx, doc); err != nil {
		return fmt.Errorf("save users: %w", err)
	}

	// Republish the full set after a successful write
	s.users = doc.CredentialMap()
	s.logger.Info("user saved", slog.String("username", username), slog.Int("users", len(s.users)))
	s.bus.Publish(model.EventUserSaved, model.UserSavedPayload{User: record})
	return nil
}

// ActiveUser returns the username of the current session, or empty
func (s *Service) ActiveUser() string {
	return s.activeUser
}

func (s *Service) createDefaultUser(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(model.DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}
	doc := &model.UserFile{Users: []model.UserRecord{
		{Username: model.DefaultUsername, Password: string(hash)},
	}}
	if err := s.store.SaveUsers(ctx, doc); err != nil {
		return fmt.Errorf("save default user: %w", err)
	}
	return nil
}
