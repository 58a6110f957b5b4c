// Package session persists the visitor's auth token and user profile.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/models"
	"github.com/hongminglow/labubu-portal/internal/storage"
)

const (
	TokenKey = "auth_token"
	UserKey  = "user"
)

// ErrNotAuthenticated indicates there is no usable session record.
var ErrNotAuthenticated = errors.New("not authenticated")

// Store keeps one session record per visitor id in durable key-value storage.
type Store struct {
	kv     storage.KV
	logger *zap.Logger
	now    func() time.Time
}

func NewStore(kv storage.KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger, now: time.Now}
}

// SaveSession persists both the token and the user.
func (s *Store) SaveSession(ctx context.Context, sid, token string, user models.User) error {
	if err := s.kv.Set(ctx, sid, TokenKey, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return s.SaveUser(ctx, sid, user)
}

// SaveUser replaces the stored user, e.g. after a profile refresh.
func (s *Store) SaveUser(ctx context.Context, sid string, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.Set(ctx, sid, UserKey, string(raw)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Token returns the stored token, or "" when there is none.
func (s *Store) Token(ctx context.Context, sid string) (string, error) {
	token, err := s.kv.Get(ctx, sid, TokenKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

// User returns the stored user, or nil when it is absent or not valid JSON.
func (s *Store) User(ctx context.Context, sid string) (*models.User, error) {
	raw, err := s.kv.Get(ctx, sid, UserKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("discarding malformed stored user", zap.String("sid", sid), zap.Error(err))
		return nil, nil
	}
	return &user, nil
}

// Load returns the session record when it is authenticated.
// A record is authenticated when both the token and the user are present and the token,
// if it is a JWT, has not expired.
func (s *Store) Load(ctx context.Context, sid string) (models.Session, error) {
	token, err := s.Token(ctx, sid)
	if err != nil {
		return models.Session{}, err
	}
	if token == "" {
		return models.Session{}, ErrNotAuthenticated
	}
	user, err := s.User(ctx, sid)
	if err != nil {
		return models.Session{}, err
	}
	if user == nil {
		return models.Session{}, ErrNotAuthenticated
	}
	if tokenExpired(token, s.now()) {
		return models.Session{}, ErrNotAuthenticated
	}
	return models.Session{Token: token, User: user}, nil
}

// IsAuthenticated reports whether Load would succeed. Storage failures count as unauthenticated.
func (s *Store) IsAuthenticated(ctx context.Context, sid string) bool {
	_, err := s.Load(ctx, sid)
	if err != nil && !errors.Is(err, ErrNotAuthenticated) {
		s.logger.Error("session lookup failed", zap.String("sid", sid), zap.Error(err))
	}
	return err == nil
}

// Logout removes the token and the user. It never calls the upstream services.
func (s *Store) Logout(ctx context.Context, sid string) error {
	if err := s.kv.Delete(ctx, sid, TokenKey, UserKey); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
