package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/models"
)

// subscriberBuffer is how many events a slow subscriber may lag behind.
const subscriberBuffer = 32

type subscriber struct {
	sub    models.ChangeSubscription
	events chan models.ChangeEvent
}

type changeBroker struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[int64]map[int64]*subscriber

	now    func() time.Time
	logger *logger.Logger
}

// NewChangeBroker returns an in-process [ChangeBroker]. Events only reach
// clients connected to the same server instance.
func NewChangeBroker(logger *logger.Logger) ChangeBroker {
	return &changeBroker{
		subs:   make(map[int64]map[int64]*subscriber),
		now:    time.Now,
		logger: logger.WithComponent("change-broker"),
	}
}

func (b *changeBroker) Publish(ctx context.Context, event models.ChangeEvent) {
	if event.At.IsZero() {
		event.At = b.now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, s := range b.subs[event.UserID] {
		if !s.sub.Wants(event.Table) {
			continue
		}
		select {
		case s.events <- event:
		default:
			b.logger.Warn().
				Int64("user_id", event.UserID).
				Int64("subscriber", id).
				Str("table", string(event.Table)).
				Msg("subscriber is too slow, event dropped")
		}
	}
}

func (b *changeBroker) Subscribe(userID int64, sub models.ChangeSubscription) (<-chan models.ChangeEvent, func()) {
	s := &subscriber{sub: sub, events: make(chan models.ChangeEvent, subscriberBuffer)}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[int64]*subscriber)
	}
	b.subs[userID][id] = s
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[userID], id)
			if len(b.subs[userID]) == 0 {
				delete(b.subs, userID)
			}
			b.mu.Unlock()
			close(s.events)
		})
	}
	return s.events, cancel
}

// publishChange is a nil-safe Publish used by the entity services.
func publishChange(ctx context.Context, broker ChangeBroker, userID int64, table models.ChangeTable, action models.ChangeAction, recordID string) {
	if broker == nil {
		return
	}
	broker.Publish(ctx, models.ChangeEvent{Table: table, Action: action, RecordID: recordID, UserID: userID})
}
