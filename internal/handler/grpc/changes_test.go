package grpc

import (
	"context"
	"errors"
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/mock"
	"github.com/MKhiriev/go-trip-keeper/internal/service"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type feedFixture struct {
	auth   *mock.MockAuthService
	broker *mock.MockChangeBroker
	conn   *grpc.ClientConn
}

func newFeedFixture(t *testing.T) *feedFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &feedFixture{
		auth:   mock.NewMockAuthService(ctrl),
		broker: mock.NewMockChangeBroker(ctrl),
	}
	h := NewHandler(&service.Services{AuthService: f.auth, ChangeBroker: f.broker}, logger.Nop())

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.StreamInterceptor(h.StreamInterceptor()))
	srv.RegisterService(h.ServiceDesc(), h)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(utils.JSONCodecName)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	f.conn = conn

	return f
}

func (f *feedFixture) subscribe(t *testing.T, ctx context.Context, sub models.ChangeSubscription) grpc.ClientStream {
	t.Helper()
	stream, err := f.conn.NewStream(ctx, &grpc.StreamDesc{ServerStreams: true}, utils.ChangesSubscribeMethod)
	require.NoError(t, err)
	require.NoError(t, stream.SendMsg(&sub))
	require.NoError(t, stream.CloseSend())
	return stream
}

func withToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

func TestSubscribe_StreamsEvents(t *testing.T) {
	f := newFeedFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := models.ChangeSubscription{Tables: []models.ChangeTable{models.ChangeTrips}}
	events := make(chan models.ChangeEvent, 2)
	var cancelled atomic.Bool

	f.auth.EXPECT().ParseToken(gomock.Any(), "good").Return(models.Token{UserID: 7}, nil)
	f.broker.EXPECT().Subscribe(int64(7), sub).Return((<-chan models.ChangeEvent)(events), func() { cancelled.Store(true) })

	at := time.Date(2026, 5, 3, 9, 30, 0, 0, time.UTC)
	events <- models.ChangeEvent{Table: models.ChangeTrips, Action: models.ChangeInsert, RecordID: "trip-1", UserID: 7, At: at}
	events <- models.ChangeEvent{Table: models.ChangeTrips, Action: models.ChangeDelete, RecordID: "trip-2", UserID: 7, At: at}

	stream := f.subscribe(t, withToken(ctx, "good"), sub)

	var first, second models.ChangeEvent
	require.NoError(t, stream.RecvMsg(&first))
	require.NoError(t, stream.RecvMsg(&second))

	assert.Equal(t, models.ChangeEvent{Table: models.ChangeTrips, Action: models.ChangeInsert, RecordID: "trip-1", At: at}, first)
	assert.Equal(t, "trip-2", second.RecordID)
	assert.Equal(t, models.ChangeDelete, second.Action)
	assert.Zero(t, first.UserID, "owner is never sent over the wire")

	close(events)
	var rest models.ChangeEvent
	assert.ErrorIs(t, stream.RecvMsg(&rest), io.EOF)
	assert.Eventually(t, cancelled.Load, time.Second, 10*time.Millisecond)
}

func TestSubscribe_ClientCancelReleasesSubscription(t *testing.T) {
	f := newFeedFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan models.ChangeEvent)
	subscribed := make(chan struct{})
	released := make(chan struct{})

	f.auth.EXPECT().ParseToken(gomock.Any(), "good").Return(models.Token{UserID: 7}, nil)
	f.broker.EXPECT().Subscribe(int64(7), gomock.Any()).
		Do(func(int64, models.ChangeSubscription) { close(subscribed) }).
		Return((<-chan models.ChangeEvent)(events), func() { close(released) })

	f.subscribe(t, withToken(ctx, "good"), models.ChangeSubscription{})

	select {
	case <-subscribed:
	case <-time.After(5 * time.Second):
		t.Fatal("handler never subscribed")
	}
	cancel()

	select {
	case <-released:
	case <-time.After(5 * time.Second):
		t.Fatal("subscription was not released after the client left")
	}
}

func TestSubscribe_Unauthenticated(t *testing.T) {
	tests := []struct {
		name  string
		ctx   func(context.Context) context.Context
		setup func(f *feedFixture)
	}{
		{
			name:  "no token",
			ctx:   func(ctx context.Context) context.Context { return ctx },
			setup: func(*feedFixture) {},
		},
		{
			name: "not a bearer token",
			ctx: func(ctx context.Context) context.Context {
				return metadata.AppendToOutgoingContext(ctx, "authorization", "Basic abc")
			},
			setup: func(*feedFixture) {},
		},
		{
			name: "expired token",
			ctx:  func(ctx context.Context) context.Context { return withToken(ctx, "old") },
			setup: func(f *feedFixture) {
				f.auth.EXPECT().ParseToken(gomock.Any(), "old").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFeedFixture(t)
			tt.setup(f)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			stream := f.subscribe(t, tt.ctx(ctx), models.ChangeSubscription{})

			var event models.ChangeEvent
			err := stream.RecvMsg(&event)
			require.Error(t, err)
			assert.False(t, errors.Is(err, io.EOF))
			assert.Equal(t, codes.Unauthenticated, status.Code(err))
		})
	}
}

func TestServiceDesc(t *testing.T) {
	h := NewHandler(nil, logger.Nop())
	desc := h.ServiceDesc()

	assert.Equal(t, utils.ChangesServiceName, desc.ServiceName)
	require.Len(t, desc.Streams, 1)
	assert.Equal(t, utils.ChangesSubscribeStream, desc.Streams[0].StreamName)
	assert.True(t, desc.Streams[0].ServerStreams)
	assert.False(t, desc.Streams[0].ClientStreams)
	assert.Implements(t, (*ChangesServer)(nil), h)
}
