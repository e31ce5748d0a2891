// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
)

// ConnectivityObserver publishes a single online flag and notifies
// subscribers on every transition. Repeated values are not published and
// flaps are not debounced.
type ConnectivityObserver struct {
	prober   Prober
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger

	mu     sync.RWMutex
	online bool
	subs   map[int]chan bool
	nextID int

	runMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConnectivityObserver probes once to initialize the flag. interval is the
// pause between probes of the loop started by Run, timeout bounds one probe.
func NewConnectivityObserver(ctx context.Context, prober Prober, interval, timeout time.Duration, logger *logger.Logger) *ConnectivityObserver {
	o := &ConnectivityObserver{
		prober:   prober,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
		subs:     make(map[int]chan bool),
	}
	o.online = o.probe(ctx)

	logger.Info().Bool("online", o.online).Msg("connectivity observer initialized")
	return o
}

// Online returns the current value of the flag.
func (o *ConnectivityObserver) Online() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.online
}

// Subscribe returns a channel receiving every later transition and a function
// that ends the subscription. A subscriber that falls behind only sees the
// latest value.
func (o *ConnectivityObserver) Subscribe() (<-chan bool, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextID
	o.nextID++
	ch := make(chan bool, 1)
	o.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.subs, id)
			close(ch)
		})
	}
}

// SetOnline overrides the flag. Subscribers are notified only when the value
// changes.
func (o *ConnectivityObserver) SetOnline(online bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.online == online {
		return
	}
	o.online = online
	o.logger.Info().Bool("online", online).Msg("connectivity changed")

	for _, ch := range o.subs {
		// replace an unread value so the newest one always gets through
		select {
		case <-ch:
		default:
		}
		ch <- online
	}
}

// Run starts the probe loop. Calling Run on a running observer is a no-op.
func (o *ConnectivityObserver) Run() {
	o.runMu.Lock()
	defer o.runMu.Unlock()
	if o.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel
	o.wg.Add(1)

	go func() {
		defer o.wg.Done()
		t := time.NewTicker(o.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				online := o.probe(ctx)
				if ctx.Err() != nil {
					return
				}
				o.SetOnline(online)
			}
		}
	}()
}

// Stop ends the probe loop and waits for it. Subscriptions stay open.
func (o *ConnectivityObserver) Stop() {
	o.runMu.Lock()
	cancel := o.cancel
	o.cancel = nil
	o.runMu.Unlock()

	if cancel != nil {
		cancel()
	}
	o.wg.Wait()
}

func (o *ConnectivityObserver) probe(ctx context.Context) bool {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	if err := o.prober.Probe(ctx); err != nil {
		o.logger.Debug().Err(err).Msg("connectivity probe failed")
		return false
	}
	return true
}
