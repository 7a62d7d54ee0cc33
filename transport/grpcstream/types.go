package grpcstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kestrel-stream/reactor"
)

// Frame is the wire envelope carried over the raw-bytes codec: a sequence
// number for ordering diagnostics, the compressor name applied to Payload,
// and the (possibly compressed) payload bytes themselves.
type Frame struct {
	Seq      uint64
	Encoding string
	Payload  []byte
}

// marshalMsg JSON-encodes f into the Msg the raw codec passes straight
// through to the wire. JSON, not a generated protobuf type, carries the
// envelope: the point of dropping protobuf here is that Frame never needs a
// .proto definition or protoc-generated stub.
func marshalMsg(f Frame) (Msg, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("grpcstream: marshal frame: %w", err)
	}
	return Msg(data), nil
}

func unmarshalMsg(m Msg) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(m, &f); err != nil {
		return Frame{}, fmt.Errorf("grpcstream: unmarshal frame: %w", err)
	}
	return f, nil
}

// Source exposes one reactor stream of opaque payloads the service can drain
// and forward to a connected peer. Subscribe hands back a fresh subscriber
// Pullable plus a cancel func releasing any held broadcast resources (for a
// subject.Observable, its Close).
type Source interface {
	Subscribe(ctx context.Context) (reactor.Pullable[reactor.Event[[]byte]], func(), error)
}

// Ack summarises how many frames a PublishFrames call accepted or rejected.
type Ack struct {
	Accepted uint64
	Rejected uint64
}

// Sink ingests payloads decoded from inbound frames.
type Sink interface {
	Publish(ctx context.Context, payload []byte) error
}

// Bridge aggregates the dependencies the Service needs: an outbound Source to
// stream and an inbound Sink to receive into.
type Bridge interface {
	Source
	Sink
}
