package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/adapter"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type clientAuthService struct {
	adapter  adapter.ServerAdapter
	sessions store.SessionStore
	guard    *LocalDataGuard
	now      func() time.Time
	logger   *logger.Logger

	mu      sync.RWMutex
	session models.Session
	active  bool

	listenersMu sync.Mutex
	listeners   map[int]func(models.AuthEvent, models.Session)
	nextID      int
}

// NewClientAuthService builds the auth service. A nil guard leaves the local
// data unchecked when the user changes.
func NewClientAuthService(serverAdapter adapter.ServerAdapter, sessions store.SessionStore, guard *LocalDataGuard,
	logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		adapter:   serverAdapter,
		sessions:  sessions,
		guard:     guard,
		now:       time.Now,
		logger:    logger.WithComponent("auth"),
		listeners: make(map[int]func(models.AuthEvent, models.Session)),
	}
}

// SignUp creates the account, stores its session and sends the welcome mail.
// A failed mail does not fail the sign-up.
func (a *clientAuthService) SignUp(ctx context.Context, user models.User) (models.Session, error) {
	resp, err := a.adapter.SignUp(ctx, user)
	if err != nil {
		return models.Session{}, mapAdapterError(err)
	}

	session, err := a.start(ctx, resp)
	if err != nil {
		return models.Session{}, err
	}

	welcome := models.NotificationRequest{Email: session.User.Email, Name: session.User.Name}
	if err = a.adapter.SendWelcome(ctx, welcome); err != nil {
		a.logger.Warn().Err(err).Msg("welcome mail was not sent")
	}

	a.emit(models.AuthEventSignedIn, session)
	return session, nil
}

func (a *clientAuthService) SignIn(ctx context.Context, user models.User) (models.Session, error) {
	resp, err := a.adapter.SignIn(ctx, user)
	if err != nil {
		return models.Session{}, mapAdapterError(err)
	}

	session, err := a.start(ctx, resp)
	if err != nil {
		return models.Session{}, err
	}
	a.emit(models.AuthEventSignedIn, session)
	return session, nil
}

// SignOut forgets the session. Cached data and queued operations stay on
// the device and are synced after the next sign-in of the same user.
func (a *clientAuthService) SignOut(ctx context.Context) error {
	a.adapter.SetToken("")

	a.mu.Lock()
	a.session = models.Session{}
	a.active = false
	a.mu.Unlock()

	err := a.sessions.ClearSession(ctx)
	a.emit(models.AuthEventSignedOut, models.Session{})
	if err != nil {
		return fmt.Errorf("clear stored session: %w", err)
	}
	return nil
}

func (a *clientAuthService) Session() (models.Session, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session, a.active
}

func (a *clientAuthService) RestoreSession(ctx context.Context) (models.Session, error) {
	session, err := a.sessions.LoadSession(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoSession) {
			return models.Session{}, fmt.Errorf("%w: %w", ErrNoSession, err)
		}
		return models.Session{}, err
	}

	if !session.Valid(a.now()) {
		if clearErr := a.sessions.ClearSession(ctx); clearErr != nil {
			a.logger.Warn().Err(clearErr).Msg("failed to clear expired session")
		}
		return models.Session{}, ErrSessionExpired
	}

	if err = a.claim(ctx, session.User.UserID); err != nil {
		return models.Session{}, err
	}
	a.adapter.SetToken(session.AccessToken)
	a.mu.Lock()
	a.session = session
	a.active = true
	a.mu.Unlock()

	a.emit(models.AuthEventRestored, session)
	return session, nil
}

// User fetches the signed-in user. When the backend cannot be reached the
// user of the stored session is returned.
func (a *clientAuthService) User(ctx context.Context) (models.User, error) {
	session, ok := a.Session()
	if !ok {
		return models.User{}, ErrNoSession
	}

	user, err := a.adapter.GetUser(ctx)
	if err != nil {
		if unreachable(err) {
			return session.User, nil
		}
		return models.User{}, mapAdapterError(err)
	}

	a.setUser(ctx, user)
	return user, nil
}

// UpdateUser applies update on the backend. A password change is followed by
// the password-changed mail, best effort.
func (a *clientAuthService) UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error) {
	if _, ok := a.Session(); !ok {
		return models.User{}, ErrNoSession
	}
	if update.IsEmpty() {
		return models.User{}, fmt.Errorf("%w: empty user update", ErrInvalidDataProvided)
	}

	user, err := a.adapter.UpdateUser(ctx, update)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}

	session := a.setUser(ctx, user)
	if update.Password != nil {
		notice := models.NotificationRequest{Email: user.Email, Name: user.Name}
		if err = a.adapter.SendPasswordChanged(ctx, notice); err != nil {
			a.logger.Warn().Err(err).Msg("password changed mail was not sent")
		}
	}

	a.emit(models.AuthEventUserUpdated, session)
	return user, nil
}

func (a *clientAuthService) OnAuthStateChange(fn func(event models.AuthEvent, session models.Session)) func() {
	a.listenersMu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	a.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.listenersMu.Lock()
			delete(a.listeners, id)
			a.listenersMu.Unlock()
		})
	}
}

// start makes resp the current session and persists it. A failed write only
// means the next start asks for credentials again. The local data is claimed
// first, so no sync runs on another user's queue.
func (a *clientAuthService) start(ctx context.Context, resp models.AuthResponse) (models.Session, error) {
	session := models.Session{AccessToken: resp.AccessToken, ExpiresAt: resp.ExpiresAt, User: resp.User.Public()}

	if err := a.claim(ctx, session.User.UserID); err != nil {
		return models.Session{}, err
	}
	a.adapter.SetToken(session.AccessToken)
	a.mu.Lock()
	a.session = session
	a.active = true
	a.mu.Unlock()

	if err := a.sessions.SaveSession(ctx, session); err != nil {
		a.logger.Warn().Err(err).Msg("failed to persist session")
	}
	return session, nil
}

func (a *clientAuthService) claim(ctx context.Context, userID int64) error {
	if a.guard == nil {
		return nil
	}
	if err := a.guard.Claim(ctx, userID); err != nil {
		a.logger.Err(err).Int64("user_id", userID).Msg("failed to claim local data")
		return fmt.Errorf("%w: %w", ErrLocalDataUnavailable, err)
	}
	return nil
}

func (a *clientAuthService) setUser(ctx context.Context, user models.User) models.Session {
	a.mu.Lock()
	a.session.User = user.Public()
	session := a.session
	a.mu.Unlock()

	if err := a.sessions.SaveSession(ctx, session); err != nil {
		a.logger.Warn().Err(err).Msg("failed to persist session")
	}
	return session
}

func (a *clientAuthService) emit(event models.AuthEvent, session models.Session) {
	a.listenersMu.Lock()
	fns := make([]func(models.AuthEvent, models.Session), 0, len(a.listeners))
	for _, fn := range a.listeners {
		fns = append(fns, fn)
	}
	a.listenersMu.Unlock()

	for _, fn := range fns {
		fn(event, session)
	}
}
