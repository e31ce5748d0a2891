package utils

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// JSONCodecName is the content subtype of gRPC calls encoded with [JSONCodec].
const JSONCodecName = "json"

// JSONCodec lets gRPC carry plain Go structs as JSON, so the change feed
// needs no generated protobuf types.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) Name() string {
	return JSONCodecName
}

func init() {
	encoding.RegisterCodec(JSONCodec{})
}

// Change feed service names shared by the gRPC server and client.
const (
	ChangesServiceName     = "tripkeeper.Changes"
	ChangesSubscribeStream = "Subscribe"
	ChangesSubscribeMethod = "/" + ChangesServiceName + "/" + ChangesSubscribeStream
)
