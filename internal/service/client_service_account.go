package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-trip-keeper/internal/adapter"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type clientAccountService struct {
	adapter adapter.ServerAdapter
	auth    ClientAuthService
	queue   store.PendingQueue
	cache   store.LocalCache
	state   *ClientState
	logger  *logger.Logger
}

func NewClientAccountService(serverAdapter adapter.ServerAdapter, auth ClientAuthService, queue store.PendingQueue,
	cache store.LocalCache, state *ClientState, logger *logger.Logger) ClientAccountService {
	return &clientAccountService{
		adapter: serverAdapter,
		auth:    auth,
		queue:   queue,
		cache:   cache,
		state:   state,
		logger:  logger.WithComponent("account"),
	}
}

func (s *clientAccountService) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := s.adapter.CheckEmailExists(ctx, email)
	if err != nil {
		return false, mapAdapterError(err)
	}
	return exists, nil
}

func (s *clientAccountService) DeleteAccount(ctx context.Context) error {
	if _, ok := s.auth.Session(); !ok {
		return ErrNoSession
	}
	if err := s.adapter.DeleteAccount(ctx); err != nil {
		return mapAdapterError(err)
	}

	s.state.Reset()
	wipeErr := errors.Join(
		s.queue.Replace(ctx, []models.PendingOperation{}),
		s.cache.Save(ctx, []models.Trip{}, []models.Vehicle{}),
		s.auth.SignOut(ctx),
	)
	if wipeErr != nil {
		s.logger.Err(wipeErr).Msg("account deleted, local data partly left")
		return fmt.Errorf("wipe local data: %w", wipeErr)
	}
	return nil
}

func (s *clientAccountService) ExportData(ctx context.Context, format models.ExportFormat) (models.ExportResponse, error) {
	if _, ok := s.auth.Session(); !ok {
		return models.ExportResponse{}, ErrNoSession
	}

	resp, err := s.adapter.ExportData(ctx, format)
	if err != nil {
		return models.ExportResponse{}, mapAdapterError(err)
	}
	return resp, nil
}
