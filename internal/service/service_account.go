package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/validators"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type accountService struct {
	users        store.UserRepository
	trips        store.TripRepository
	vehicles     store.VehicleRepository
	tripVehicles store.TripVehicleRepository
	segments     store.SegmentRepository
	photos       store.PhotoStorage

	mailer    Mailer
	validator validators.Validator
	appName   string
	now       func() time.Time

	logger *logger.Logger
}

// NewAccountService returns the AccountService serving the account
// functions: e-mail lookup, immediate deletion, data export and mails.
func NewAccountService(storages *store.Storages, mailer Mailer, validator validators.Validator, appName string, logger *logger.Logger) AccountService {
	return &accountService{
		users:        storages.UserRepository,
		trips:        storages.TripRepository,
		vehicles:     storages.VehicleRepository,
		tripVehicles: storages.TripVehicleRepository,
		segments:     storages.SegmentRepository,
		photos:       storages.PhotoStorage,
		mailer:       mailer,
		validator:    validator,
		appName:      appName,
		now:          time.Now,
		logger:       logger,
	}
}

func (s *accountService) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	req := models.CheckEmailRequest{Email: normalizeEmail(email)}
	if err := s.validator.Validate(ctx, req); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	_, err := s.users.FindUserByEmail(ctx, req.Email)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("error looking up email: %w", err)
	}
	return true, nil
}

// DeleteAccount removes the user row, which cascades to every owned row,
// and then the vehicle photos. Photos that cannot be removed are logged.
func (s *accountService) DeleteAccount(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	vehicles, err := s.vehicles.ListVehicles(ctx, userID)
	if err != nil {
		return fmt.Errorf("error listing vehicles before account deletion: %w", err)
	}

	if err = s.users.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("account deletion failed")
		return fmt.Errorf("error deleting account: %w", err)
	}

	for _, v := range vehicles {
		if v.PhotoPath == nil {
			continue
		}
		if err = s.photos.Delete(ctx, *v.PhotoPath); err != nil && !errors.Is(err, store.ErrPhotoNotFound) {
			log.Warn().Err(err).Str("key", *v.PhotoPath).Msg("photo of deleted account left behind")
		}
	}

	log.Info().Int64("user_id", userID).Msg("account deleted")
	return nil
}

func (s *accountService) ExportData(ctx context.Context, userID int64, format models.ExportFormat) (models.ExportResponse, error) {
	if format == "" {
		format = models.ExportJSON
	}
	if format != models.ExportJSON && format != models.ExportXLSX {
		return models.ExportResponse{}, fmt.Errorf("%w: %s", ErrUnsupportedExportFormat, format)
	}

	export, err := s.collect(ctx, userID)
	if err != nil {
		return models.ExportResponse{}, err
	}

	resp := models.ExportResponse{FunctionResponse: models.FunctionResponse{OK: true}}
	if format == models.ExportJSON {
		resp.Data = &export
		return resp, nil
	}

	workbook, err := exportWorkbook(export)
	if err != nil {
		return models.ExportResponse{}, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	resp.File = base64.StdEncoding.EncodeToString(workbook)
	resp.FileName = fmt.Sprintf("trip-keeper-export-%s.xlsx", export.ExportedAt.Format("20060102"))
	return resp, nil
}

func (s *accountService) collect(ctx context.Context, userID int64) (models.UserExport, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.UserExport{}, fmt.Errorf("%w: user: %w", ErrExportFailed, err)
	}
	trips, err := s.trips.ListTrips(ctx, userID)
	if err != nil {
		return models.UserExport{}, fmt.Errorf("%w: trips: %w", ErrExportFailed, err)
	}
	vehicles, err := s.vehicles.ListVehicles(ctx, userID)
	if err != nil {
		return models.UserExport{}, fmt.Errorf("%w: vehicles: %w", ErrExportFailed, err)
	}
	links, err := s.tripVehicles.ListByUser(ctx, userID)
	if err != nil {
		return models.UserExport{}, fmt.Errorf("%w: trip vehicles: %w", ErrExportFailed, err)
	}
	segments, err := s.segments.ListByUser(ctx, userID)
	if err != nil {
		return models.UserExport{}, fmt.Errorf("%w: segments: %w", ErrExportFailed, err)
	}

	return models.UserExport{
		User:         user.Public(),
		Trips:        trips,
		Vehicles:     vehicles,
		TripVehicles: links,
		Segments:     segments,
		ExportedAt:   s.now().UTC(),
	}, nil
}

func (s *accountService) SendWelcome(ctx context.Context, req models.NotificationRequest) error {
	if err := s.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return s.mailer.Send(ctx, models.Mail{
		To:      req.Email,
		Subject: fmt.Sprintf("Welcome to %s", s.appName),
		Text: fmt.Sprintf("Hi %s,\n\nyour %s account is ready. Trips you log offline are kept on your device and synced once you are back online.\n",
			greetingName(req), s.appName),
	})
}

func (s *accountService) SendPasswordChanged(ctx context.Context, req models.NotificationRequest) error {
	if err := s.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return s.mailer.Send(ctx, models.Mail{
		To:      req.Email,
		Subject: fmt.Sprintf("Your %s password was changed", s.appName),
		Text: fmt.Sprintf("Hi %s,\n\nthe password of your %s account was changed on %s. If this was not you, reset your password right away.\n",
			greetingName(req), s.appName, s.now().UTC().Format(time.RFC1123)),
	})
}

func greetingName(req models.NotificationRequest) string {
	if req.Name != "" {
		return req.Name
	}
	return req.Email
}
