package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/models"
)

var errStreamBroken = errors.New("stream broken")

// brokenStream fails the client half of the subscription handshake.
type brokenStream struct {
	grpc.ClientStream
	sendErr  error
	closeErr error
}

func (s brokenStream) SendMsg(any) error { return s.sendErr }
func (s brokenStream) CloseSend() error  { return s.closeErr }

func TestGRPCChangeFeed_SetupFailureCancelsStream(t *testing.T) {
	tests := []struct {
		name   string
		stream brokenStream
		want   string
	}{
		{name: "send fails", stream: brokenStream{sendErr: errStreamBroken}, want: "send subscription"},
		{name: "close send fails", stream: brokenStream{closeErr: errStreamBroken}, want: "close send"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var streamCtx context.Context
			intercept := func(ctx context.Context, _ *grpc.StreamDesc, _ *grpc.ClientConn, _ string,
				_ grpc.Streamer, _ ...grpc.CallOption) (grpc.ClientStream, error) {
				streamCtx = ctx
				return tt.stream, nil
			}

			feed, err := NewGRPCChangeFeed("localhost:1", logger.Nop(), grpc.WithStreamInterceptor(intercept))
			require.NoError(t, err)
			t.Cleanup(func() { feed.Close() })

			events, err := feed.Subscribe(context.Background(), "jwt", models.ChangeSubscription{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTransport)
			assert.ErrorIs(t, err, errStreamBroken)
			assert.Contains(t, err.Error(), tt.want)
			assert.Nil(t, events)

			require.NotNil(t, streamCtx)
			assert.ErrorIs(t, streamCtx.Err(), context.Canceled)
		})
	}
}

func TestNewGRPCChangeFeed_EmptyAddress(t *testing.T) {
	_, err := NewGRPCChangeFeed("", logger.Nop())
	assert.ErrorIs(t, err, ErrEmptyAddress)
}
