package workers

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
)

// switchProber answers probes from an atomic flag.
type switchProber struct {
	up    atomic.Bool
	calls atomic.Int32
}

func (p *switchProber) Probe(context.Context) error {
	p.calls.Add(1)
	if p.up.Load() {
		return nil
	}
	return ErrUnreachable
}

func newTestObserver(t *testing.T, up bool) (*ConnectivityObserver, *switchProber) {
	t.Helper()
	prober := &switchProber{}
	prober.up.Store(up)
	o := NewConnectivityObserver(context.Background(), prober, 10*time.Millisecond, time.Second, logger.Nop())
	t.Cleanup(o.Stop)
	return o, prober
}

func receive(t *testing.T, ch <-chan bool) bool {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a transition")
		return false
	}
}

func assertNoValue(t *testing.T, ch <-chan bool) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected transition to %v", v)
	default:
	}
}

func TestConnectivityObserver_InitialProbe(t *testing.T) {
	online, prober := newTestObserver(t, true)
	assert.True(t, online.Online())
	assert.Equal(t, int32(1), prober.calls.Load())

	offline, _ := newTestObserver(t, false)
	assert.False(t, offline.Online())
}

func TestConnectivityObserver_SetOnlinePublishesTransitionsOnly(t *testing.T) {
	o, _ := newTestObserver(t, false)
	ch, unsubscribe := o.Subscribe()
	defer unsubscribe()

	o.SetOnline(false)
	assertNoValue(t, ch)

	o.SetOnline(true)
	assert.True(t, receive(t, ch))
	assert.True(t, o.Online())

	o.SetOnline(true)
	assertNoValue(t, ch)

	o.SetOnline(false)
	assert.False(t, receive(t, ch))
}

func TestConnectivityObserver_SlowSubscriberSeesLatest(t *testing.T) {
	o, _ := newTestObserver(t, false)
	ch, unsubscribe := o.Subscribe()
	defer unsubscribe()

	o.SetOnline(true)
	o.SetOnline(false)
	o.SetOnline(true)

	assert.True(t, receive(t, ch))
	assertNoValue(t, ch)
}

func TestConnectivityObserver_Unsubscribe(t *testing.T) {
	o, _ := newTestObserver(t, false)
	ch, unsubscribe := o.Subscribe()

	unsubscribe()
	unsubscribe()

	o.SetOnline(true)
	_, open := <-ch
	assert.False(t, open)
}

func TestConnectivityObserver_RunFollowsProbe(t *testing.T) {
	o, prober := newTestObserver(t, false)
	ch, unsubscribe := o.Subscribe()
	defer unsubscribe()

	o.Run()
	o.Run()

	prober.up.Store(true)
	assert.True(t, receive(t, ch))

	prober.up.Store(false)
	assert.False(t, receive(t, ch))

	o.Stop()
	calls := prober.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, prober.calls.Load(), "no probes after Stop")
}

func TestTCPProber(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	prober, err := NewTCPProber("http://"+ln.Addr().String(), time.Second)
	require.NoError(t, err)
	assert.NoError(t, prober.Probe(context.Background()))

	require.NoError(t, ln.Close())
	err = prober.Probe(context.Background())
	assert.True(t, errors.Is(err, ErrUnreachable))
}

func TestDialAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://localhost:8080", want: "localhost:8080"},
		{in: "https://trips.example.com/api", want: "trips.example.com:443"},
		{in: "http://trips.example.com", want: "trips.example.com:80"},
		{in: "localhost:9090", want: "localhost:9090"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := dialAddress(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
