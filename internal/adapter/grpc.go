package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

var subscribeStreamDesc = grpc.StreamDesc{
	StreamName:    utils.ChangesSubscribeStream,
	ServerStreams: true,
}

type grpcChangeFeed struct {
	conn   *grpc.ClientConn
	logger *logger.Logger
}

// NewGRPCChangeFeed connects lazily to the change feed at address
// (host:port). Messages are JSON encoded. opts are appended to the defaults.
func NewGRPCChangeFeed(address string, logger *logger.Logger, opts ...grpc.DialOption) (ChangeFeed, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(utils.JSONCodecName)),
	}, opts...)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating change feed client: %w", err)
	}

	return &grpcChangeFeed{conn: conn, logger: logger}, nil
}

func (f *grpcChangeFeed) Subscribe(ctx context.Context, token string, sub models.ChangeSubscription) (<-chan models.ChangeEvent, error) {
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
	// cancel releases the stream; it runs when the reader stops or setup fails
	ctx, cancel := context.WithCancel(ctx)

	stream, err := f.conn.NewStream(ctx, &subscribeStreamDesc, utils.ChangesSubscribeMethod)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: open change feed: %w", ErrTransport, err)
	}
	if err = stream.SendMsg(&sub); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: send subscription: %w", ErrTransport, err)
	}
	if err = stream.CloseSend(); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: close send: %w", ErrTransport, err)
	}

	events := make(chan models.ChangeEvent)
	go func() {
		defer close(events)
		defer cancel()
		for {
			var event models.ChangeEvent
			if err := stream.RecvMsg(&event); err != nil {
				if !errors.Is(err, io.EOF) && ctx.Err() == nil {
					f.logger.Warn().Err(err).Msg("change feed stream ended")
				}
				return
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

func (f *grpcChangeFeed) Close() error {
	return f.conn.Close()
}
