package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/models"
)

// segmentRepository is the PostgreSQL-backed implementation of
// [SegmentRepository].
type segmentRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

func NewSegmentRepository(db *DB, logger *logger.Logger) SegmentRepository {
	return &segmentRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (r *segmentRepository) ListByTrip(ctx context.Context, userID int64, tripID string) ([]models.OdometerSegment, error) {
	query, args, err := buildSelectOwnedQuery("odometer_segments", segmentColumns, userID, sq.Eq{"trip_id": tripID}, "started_at")
	if err != nil {
		return nil, err
	}

	return queryAll(ctx, r.DB, "segmentRepository.ListByTrip", query, args, scanSegment)
}

func (r *segmentRepository) ListByUser(ctx context.Context, userID int64) ([]models.OdometerSegment, error) {
	query, args, err := buildSelectOwnedQuery("odometer_segments", segmentColumns, userID, nil, "started_at")
	if err != nil {
		return nil, err
	}

	return queryAll(ctx, r.DB, "segmentRepository.ListByUser", query, args, scanSegment)
}

// CreateSegment stores segment. A zero StartedAt is set to now.
func (r *segmentRepository) CreateSegment(ctx context.Context, segment models.OdometerSegment) (models.OdometerSegment, error) {
	log := logger.FromContext(ctx)

	if segment.StartedAt.IsZero() {
		segment.StartedAt = r.now().UTC()
	}

	query, args, err := buildInsertSegmentQuery(segment)
	if err != nil {
		return models.OdometerSegment{}, err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "segmentRepository.CreateSegment").
			Str("trip_id", segment.TripID).
			Str("vehicle_id", segment.VehicleID).
			Msg("failed to insert segment")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.OdometerSegment{}, ErrInvalidReference
		case pgerrcode.CheckViolation:
			return models.OdometerSegment{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		return models.OdometerSegment{}, r.wrapError(ErrExecutingStatement, err)
	}

	return segment, nil
}

// FinishSegment sets the end reading of an open segment. It returns
// [ErrSegmentClosed] for a finished segment and [ErrInvalidValue] when the
// end is below the start.
func (r *segmentRepository) FinishSegment(ctx context.Context, userID int64, segmentID string, finish models.SegmentFinish) (models.OdometerSegment, error) {
	log := logger.FromContext(ctx)

	endedAt := r.now().UTC()
	if finish.EndedAt != nil {
		endedAt = finish.EndedAt.UTC()
	}

	query, args, err := buildFinishSegmentQuery(userID, segmentID, finish.EndKm, endedAt)
	if err != nil {
		return models.OdometerSegment{}, err
	}

	segment, err := scanSegment(r.DB.QueryRowContext(ctx, query, args...))
	if err == nil {
		return segment, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).
			Str("func", "segmentRepository.FinishSegment").
			Str("segment_id", segmentID).
			Msg("failed to finish segment")
		if postgresError(err) == pgerrcode.CheckViolation {
			return models.OdometerSegment{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		return models.OdometerSegment{}, r.wrapError(ErrExecutingStatement, err)
	}

	// nothing updated: missing or already finished
	var closed bool
	stateErr := r.DB.QueryRowContext(ctx, segmentState, segmentID, userID).Scan(&closed)
	switch {
	case errors.Is(stateErr, sql.ErrNoRows):
		return models.OdometerSegment{}, ErrSegmentNotFound
	case stateErr != nil:
		return models.OdometerSegment{}, r.wrapError(ErrExecutingQuery, stateErr)
	case closed:
		return models.OdometerSegment{}, ErrSegmentClosed
	default:
		return models.OdometerSegment{}, ErrSegmentNotFound
	}
}

func (r *segmentRepository) DeleteSegment(ctx context.Context, userID int64, segmentID string) error {
	query, args, err := buildDeleteOwnedQuery("odometer_segments", userID, sq.Eq{"id": segmentID})
	if err != nil {
		return err
	}

	return r.execOwned(ctx, "segmentRepository.DeleteSegment", query, args, ErrSegmentNotFound)
}

func scanSegment(row rowScanner) (models.OdometerSegment, error) {
	var (
		segment models.OdometerSegment
		endKm   sql.NullFloat64
		endedAt sql.NullTime
	)

	err := row.Scan(
		&segment.ID,
		&segment.TripID,
		&segment.VehicleID,
		&segment.UserID,
		&segment.StartKm,
		&endKm,
		&segment.StartedAt,
		&endedAt,
	)
	if err != nil {
		return models.OdometerSegment{}, err
	}

	if endKm.Valid {
		segment.EndKm = &endKm.Float64
	}
	if endedAt.Valid {
		segment.EndedAt = &endedAt.Time
	}
	return segment, nil
}
