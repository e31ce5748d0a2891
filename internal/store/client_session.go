package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type sessionStore struct {
	kv     *kvStore
	logger *logger.Logger
}

// NewSessionStore returns a [SessionStore] kept under "auth.session".
func NewSessionStore(db *DB, logger *logger.Logger) SessionStore {
	return &sessionStore{
		kv:     &kvStore{DB: db},
		logger: logger,
	}
}

func (s *sessionStore) SaveSession(ctx context.Context, session models.Session) error {
	session.User = session.User.Public()

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: session: %w", ErrEncodingValue, err)
	}
	return s.kv.set(ctx, kvPair{key: keyAuthSession, value: string(raw)})
}

func (s *sessionStore) LoadSession(ctx context.Context) (models.Session, error) {
	raw, ok, err := s.kv.get(ctx, keyAuthSession)
	if err != nil {
		return models.Session{}, err
	}
	if !ok {
		return models.Session{}, ErrNoSession
	}

	var session models.Session
	if err = json.Unmarshal([]byte(raw), &session); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "sessionStore.LoadSession").
			Msg("stored session is unreadable")
		return models.Session{}, fmt.Errorf("%w: %w: %w", ErrNoSession, ErrCorruptedValue, err)
	}
	return session, nil
}

func (s *sessionStore) ClearSession(ctx context.Context) error {
	return s.kv.delete(ctx, keyAuthSession)
}

func (s *sessionStore) LoadOwner(ctx context.Context) (int64, error) {
	raw, ok, err := s.kv.get(ctx, keyAuthOwner)
	if err != nil || !ok {
		return 0, err
	}

	owner, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrCorruptedValue, keyAuthOwner, err)
	}
	return owner, nil
}

func (s *sessionStore) SaveOwner(ctx context.Context, userID int64) error {
	return s.kv.set(ctx, kvPair{key: keyAuthOwner, value: strconv.FormatInt(userID, 10)})
}
