package grpcstream

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is registered with google.golang.org/grpc/encoding so both client
// and server can select it via grpc.CallContentSubtype/grpc.ForceCodec
// without any generated protobuf message types.
const CodecName = "reactor-raw"

// Msg is the wire message type exchanged by the hand-built ServiceDesc in
// this package: the caller has already serialized (and optionally
// compressed) a Frame into these bytes; the codec's only job is to pass them
// through unmodified, exactly as grpc's built-in proto codec would marshal a
// generated message, but without requiring one.
type Msg []byte

// rawCodec implements encoding.Codec over Msg. Registered in init() so any
// grpc.Server/ClientConn in this process can negotiate it by content-subtype.
type rawCodec struct{}

func init() {
	encoding.RegisterCodec(rawCodec{})
}

// Name implements encoding.Codec.
func (rawCodec) Name() string { return CodecName }

// Marshal implements encoding.Codec.
func (rawCodec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case *Msg:
		return []byte(*m), nil
	case Msg:
		return []byte(m), nil
	default:
		return nil, fmt.Errorf("grpcstream: codec cannot marshal %T, want *Msg", v)
	}
}

// Unmarshal implements encoding.Codec.
func (rawCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(*Msg)
	if !ok {
		return fmt.Errorf("grpcstream: codec cannot unmarshal into %T, want *Msg", v)
	}
	*m = append((*m)[:0:0], data...)
	return nil
}
