package server

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is the content subtype spoken by the engine service. Messages are
// plain Go structs, so the wire format is JSON rather than protobuf.
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return codecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
