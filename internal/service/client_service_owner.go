package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/models"
)

// LocalDataGuard binds the cache and the pending queue to the user whose
// session produced them. They survive a sign-out, but another user signing
// in on the same device starts from empty ones.
type LocalDataGuard struct {
	sessions store.SessionStore
	queue    store.PendingQueue
	cache    store.LocalCache
	state    *ClientState
	logger   *logger.Logger
}

func NewLocalDataGuard(sessions store.SessionStore, queue store.PendingQueue, cache store.LocalCache,
	state *ClientState, logger *logger.Logger) *LocalDataGuard {
	return &LocalDataGuard{
		sessions: sessions,
		queue:    queue,
		cache:    cache,
		state:    state,
		logger:   logger.WithComponent("local-data"),
	}
}

// Claim records userID as the owner, discarding data left by anyone else.
// Data without a recorded owner is adopted; data whose owner cannot be read
// is discarded.
func (g *LocalDataGuard) Claim(ctx context.Context, userID int64) error {
	owner, err := g.sessions.LoadOwner(ctx)
	if err != nil {
		g.logger.Warn().Err(err).Msg("local data owner unreadable")
	}
	if err == nil && owner == userID {
		return nil
	}

	if err != nil || owner != 0 {
		if err = g.discard(ctx); err != nil {
			return err
		}
		g.logger.Info().Int64("owner", owner).Int64("user_id", userID).Msg("discarded local data of another user")
	}

	if err = g.sessions.SaveOwner(ctx, userID); err != nil {
		return fmt.Errorf("record local data owner: %w", err)
	}
	return nil
}

func (g *LocalDataGuard) discard(ctx context.Context) error {
	ops, err := g.queue.Update(ctx, func([]models.PendingOperation) []models.PendingOperation { return nil })
	if err != nil {
		return fmt.Errorf("discard pending queue: %w", err)
	}
	if err = g.cache.Save(ctx, nil, nil); err != nil {
		return fmt.Errorf("discard cache: %w", err)
	}

	g.state.Reset()
	setQueueCounters(g.state, ops)
	return nil
}
