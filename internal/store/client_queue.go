package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type pendingQueue struct {
	kv     *kvStore
	logger *logger.Logger

	// mu serializes read-modify-write of the list and the counter.
	mu  sync.Mutex
	now func() time.Time
}

// NewPendingQueue returns a [PendingQueue] persisted under "queue.pending"
// with its sequence counter under "queue.seq".
func NewPendingQueue(db *DB, logger *logger.Logger) PendingQueue {
	return &pendingQueue{
		kv:     &kvStore{DB: db},
		logger: logger,
		now:    time.Now,
	}
}

// Enqueue appends op. Identical operations are not merged: each one is
// replayed. A corrupted stored list is dropped with a warning.
func (q *pendingQueue) Enqueue(ctx context.Context, op models.PendingOperation) (models.PendingOperation, error) {
	log := logger.FromContext(ctx)

	if err := op.Validate(); err != nil {
		return models.PendingOperation{}, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	ops, err := q.readAll(ctx)
	if errors.Is(err, ErrCorruptedValue) {
		log.Warn().Err(err).Str("func", "pendingQueue.Enqueue").Msg("dropping unreadable queue")
	} else if err != nil {
		return models.PendingOperation{}, err
	}

	seq, err := q.lastSeq(ctx)
	if err != nil {
		return models.PendingOperation{}, err
	}
	// a reset counter must not reuse numbers still in the list
	for _, queued := range ops {
		seq = max(seq, queued.Seq)
	}

	op.Seq = seq + 1
	if op.Status == "" {
		op.Status = models.OperationPending
	}
	if op.EnqueuedAt.IsZero() {
		op.EnqueuedAt = q.now().UTC()
	}
	ops = append(ops, op)

	listJSON, err := json.Marshal(ops)
	if err != nil {
		return models.PendingOperation{}, fmt.Errorf("%w: queue: %w", ErrEncodingValue, err)
	}

	if err = q.kv.set(ctx,
		kvPair{key: keyQueuePending, value: string(listJSON)},
		kvPair{key: keyQueueSeq, value: strconv.FormatInt(op.Seq, 10)},
	); err != nil {
		return models.PendingOperation{}, err
	}

	log.Debug().
		Str("func", "pendingQueue.Enqueue").
		Int64("seq", op.Seq).
		Str("kind", string(op.Kind)).
		Str("entity_id", op.EntityID).
		Int("queue_len", len(ops)).
		Msg("operation enqueued")

	return op, nil
}

// ReadAll returns the queued operations in FIFO order. On a corrupted list it
// returns an empty slice and an error wrapping [ErrCorruptedValue].
func (q *pendingQueue) ReadAll(ctx context.Context) ([]models.PendingOperation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.readAll(ctx)
}

// Replace overwrites the whole list. The sequence counter is kept.
func (q *pendingQueue) Replace(ctx context.Context, ops []models.PendingOperation) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.write(ctx, ops)
}

// Update is Replace computed from the current list. A corrupted stored list
// reaches fn as empty.
func (q *pendingQueue) Update(ctx context.Context, fn func(ops []models.PendingOperation) []models.PendingOperation) ([]models.PendingOperation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	ops, err := q.readAll(ctx)
	if errors.Is(err, ErrCorruptedValue) {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "pendingQueue.Update").Msg("dropping unreadable queue")
	} else if err != nil {
		return nil, err
	}

	ops = fn(ops)
	if ops == nil {
		ops = []models.PendingOperation{}
	}
	if err = q.write(ctx, ops); err != nil {
		return nil, err
	}
	return ops, nil
}

func (q *pendingQueue) write(ctx context.Context, ops []models.PendingOperation) error {
	if ops == nil {
		ops = []models.PendingOperation{}
	}

	listJSON, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("%w: queue: %w", ErrEncodingValue, err)
	}
	return q.kv.set(ctx, kvPair{key: keyQueuePending, value: string(listJSON)})
}

func (q *pendingQueue) readAll(ctx context.Context) ([]models.PendingOperation, error) {
	return loadArray[models.PendingOperation](ctx, q.kv, keyQueuePending)
}

func (q *pendingQueue) lastSeq(ctx context.Context) (int64, error) {
	raw, ok, err := q.kv.get(ctx, keyQueueSeq)
	if err != nil || !ok {
		return 0, err
	}

	seq, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		q.logger.Warn().Err(err).Str("func", "pendingQueue.lastSeq").Msg("resetting unreadable sequence counter")
		return 0, nil
	}
	return seq, nil
}
