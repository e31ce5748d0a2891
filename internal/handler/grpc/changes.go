package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

// ChangesServer is the server side of tripkeeper.Changes.
type ChangesServer interface {
	// Subscribe streams the caller's row changes until the client goes away.
	Subscribe(sub models.ChangeSubscription, stream grpc.ServerStream) error
}

// ServiceDesc describes tripkeeper.Changes. Its messages are plain models
// structs carried by the JSON codec.
func (h *Handler) ServiceDesc() *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: utils.ChangesServiceName,
		HandlerType: (*ChangesServer)(nil),
		Streams: []grpc.StreamDesc{
			{
				StreamName:    utils.ChangesSubscribeStream,
				Handler:       subscribeHandler,
				ServerStreams: true,
			},
		},
		Metadata: "tripkeeper/changes",
	}
}

func subscribeHandler(srv any, stream grpc.ServerStream) error {
	var sub models.ChangeSubscription
	if err := stream.RecvMsg(&sub); err != nil {
		return status.Errorf(codes.InvalidArgument, "read subscription: %v", err)
	}
	return srv.(ChangesServer).Subscribe(sub, stream)
}

func (h *Handler) Subscribe(sub models.ChangeSubscription, stream grpc.ServerStream) error {
	ctx := stream.Context()
	log := logger.FromContext(ctx)

	userID, err := h.authenticate(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("change feed subscription rejected")
		return err
	}

	events, cancel := h.services.ChangeBroker.Subscribe(userID, sub)
	defer cancel()

	log.Info().Int64("user_id", userID).Any("tables", sub.Tables).Msg("change feed subscribed")

	for {
		select {
		case <-ctx.Done():
			log.Info().Int64("user_id", userID).Msg("change feed closed by client")
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := stream.SendMsg(&event); err != nil {
				log.Err(err).Int64("user_id", userID).Msg("error sending change event")
				return err
			}
		}
	}
}

// authenticate reads the "authorization: Bearer <token>" metadata entry.
func (h *Handler) authenticate(ctx context.Context) (int64, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return 0, status.Error(codes.Unauthenticated, "missing metadata")
	}
	values := md.Get("authorization")
	if len(values) == 0 || values[0] == "" {
		return 0, status.Error(codes.Unauthenticated, "missing authorization")
	}

	tokenString, err := utils.ParseBearerToken(values[0])
	if err != nil {
		return 0, status.Error(codes.Unauthenticated, "invalid authorization")
	}

	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		return 0, status.Error(codes.Unauthenticated, err.Error())
	}
	return token.UserID, nil
}
