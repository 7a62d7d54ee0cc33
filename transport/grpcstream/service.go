// Package grpcstream exposes a reactor Subject over two gRPC streaming RPCs
// (server-streaming StreamFrames out, client-streaming PublishFrames in)
// without any generated protobuf types: it registers a hand-built
// grpc.ServiceDesc backed by the raw-bytes codec in codec.go. Grounded on the
// teacher's internal/grpc/service.go relay loop (select on ctx.Done/channel
// recv, io.EOF on clean client close) and its Compressor abstraction, with
// gzip replaced by snappy.
package grpcstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kestrel-stream/reactor"
)

// ServiceName is the fully-qualified gRPC service name advertised in the
// hand-built ServiceDesc below.
const ServiceName = "reactor.grpcstream.Stream"

// Service implements the Stream service's two RPCs against a Bridge.
type Service struct {
	bridge     Bridge
	compressor Compressor
}

// Option customises a Service.
type Option func(*Service)

// WithCompressor overrides the default payload compressor.
func WithCompressor(c Compressor) Option {
	return func(s *Service) {
		if c != nil {
			s.compressor = c
		}
	}
}

// NewService wires the gRPC streaming service to bridge.
func NewService(bridge Bridge, opts ...Option) *Service {
	s := &Service{bridge: bridge, compressor: NewSnappyCompressor()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// StreamFrames relays bridge's subscribed stream to the client until the
// stream completes, the client disconnects, or ctx is cancelled.
func (s *Service) StreamFrames(stream grpc.ServerStream) error {
	if s == nil || s.bridge == nil {
		return status.Error(codes.FailedPrecondition, "streaming unavailable")
	}
	ctx := stream.Context()
	upstream, cancel, err := s.bridge.Subscribe(ctx)
	if err != nil {
		return status.Errorf(codes.Internal, "subscribe: %v", err)
	}
	defer cancel()

	wake := make(chan struct{}, 1)
	waker := reactor.WakerFunc(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	var seq uint64

	for {
		res := upstream.Poll(waker)
		if ev, ok := res.Value(); ok {
			compressed, err := s.compressor.Compress(ev.Value())
			if err != nil {
				return status.Errorf(codes.Internal, "compress frame: %v", err)
			}
			seq++
			msg, err := marshalMsg(Frame{Seq: seq, Encoding: s.compressor.Name(), Payload: compressed})
			if err != nil {
				return status.Errorf(codes.Internal, "%v", err)
			}
			if err := stream.SendMsg(&msg); err != nil {
				return err
			}
			continue
		}
		if res.IsDone() {
			return nil
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return status.Error(codes.Canceled, "stream cancelled")
			}
			return status.Error(codes.DeadlineExceeded, "stream deadline exceeded")
		case <-wake:
		}
	}
}

// PublishFrames ingests compressed frames from the client and forwards
// decompressed payloads into bridge, returning a summary Ack on clean close.
func (s *Service) PublishFrames(stream grpc.ServerStream) error {
	if s == nil || s.bridge == nil {
		return status.Error(codes.FailedPrecondition, "streaming unavailable")
	}
	ctx := stream.Context()
	var ack Ack

	for {
		var msg Msg
		err := stream.RecvMsg(&msg)
		if errors.Is(err, io.EOF) {
			ackPayload, marshalErr := json.Marshal(ack)
			if marshalErr != nil {
				return status.Errorf(codes.Internal, "%v", marshalErr)
			}
			out, marshalErr := marshalMsg(Frame{Payload: ackPayload})
			if marshalErr != nil {
				return status.Errorf(codes.Internal, "%v", marshalErr)
			}
			return stream.SendMsg(&out)
		}
		if err != nil {
			return err
		}
		frame, err := unmarshalMsg(msg)
		if err != nil {
			ack.Rejected++
			continue
		}
		payload, err := s.compressor.Decompress(frame.Payload)
		if err != nil {
			ack.Rejected++
			continue
		}
		if err := s.bridge.Publish(ctx, payload); err != nil {
			ack.Rejected++
			continue
		}
		ack.Accepted++
	}
}

// ServiceDesc is the hand-built grpc.ServiceDesc registering Service's two
// streaming RPCs without any .proto-generated registration code.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*any)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamFrames",
			ServerStreams: true,
			Handler: func(srv any, stream grpc.ServerStream) error {
				return srv.(*Service).StreamFrames(stream)
			},
		},
		{
			StreamName:    "PublishFrames",
			ClientStreams: true,
			Handler: func(srv any, stream grpc.ServerStream) error {
				return srv.(*Service).PublishFrames(stream)
			},
		},
	},
	Metadata: "reactor/grpcstream.proto",
}
