// Command reactorctl is an example wiring binary demonstrating how the
// reactor library's core (subject.Subject) fans out over both transports:
// every payload published on the bus is pushed to WebSocket clients via
// transport/ws, exposed over gRPC streaming RPCs via
// transport/grpcstream, and durably recorded via package recorder. None of
// these three consumers know about each other; they are independent
// subscribers of the same Subject, exactly as the teacher's Broker fanned
// world diffs out to WebSocket clients, a gRPC stream service, and a replay
// recorder from one broadcast point.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"google.golang.org/grpc"

	"github.com/kestrel-stream/reactor"
	configpkg "github.com/kestrel-stream/reactor/internal/config"
	"github.com/kestrel-stream/reactor/internal/logging"
	"github.com/kestrel-stream/reactor/recorder"
	"github.com/kestrel-stream/reactor/subject"
	"github.com/kestrel-stream/reactor/transport/grpcstream"
	"github.com/kestrel-stream/reactor/transport/ws"
)

// busBridge adapts a subject.Subject[[]byte] to transport/grpcstream's
// Bridge interface: Subscribe hands back a fresh subscriber Observable (and
// its Close as the cancel func), Publish re-injects decoded frame payloads
// onto the same bus the WebSocket sink and recorder are draining.
type busBridge struct {
	bus *subject.Subject[[]byte]
}

func (b *busBridge) Subscribe(ctx context.Context) (reactor.Pullable[reactor.Event[[]byte]], func(), error) {
	obs := b.bus.Subscribe()
	return obs, obs.Close, nil
}

func (b *busBridge) Publish(ctx context.Context, payload []byte) error {
	b.bus.Next(payload)
	return nil
}

func main() {
	cfg, err := configpkg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize structured logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	logging.ReplaceGlobals(logger)

	bus := subject.NewPublishSubject[[]byte]()
	defer bus.Close()

	//1.- Wire the WebSocket sink as one independent subscriber of the bus.
	sink := ws.NewSink[[]byte](
		func(payload []byte) ([]byte, error) { return payload, nil },
		ws.WithPingInterval[[]byte](cfg.PingInterval),
		ws.WithMaxPayloadBytes[[]byte](cfg.MaxPayloadBytes),
		ws.WithLogger[[]byte](logger.With(logging.String("component", "ws"))),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wsSub := bus.Subscribe()
	go func() {
		if err := sink.Run(ctx, wsSub); err != nil && err != context.Canceled {
			logger.Warn("websocket sink stopped", logging.Error(err))
		}
	}()

	upgrader := websocket.Upgrader{CheckOrigin: ws.OriginChecker(logger, cfg.AllowedOrigins)}
	if len(cfg.AllowedOrigins) > 0 {
		logger.Info("allowing websocket origins", logging.Strings("origins", cfg.AllowedOrigins))
	} else {
		logger.Info("no allowed origins configured; permitting only local development origins")
	}

	//2.- Wire the recorder as a second, independent subscriber of the bus.
	if cfg.RecorderDir != "" {
		rec, manifest, err := recorder.NewWriter(cfg.RecorderDir, "reactorctl-bus", time.Now, cfg.RecorderFlushInterval)
		if err != nil {
			logger.Fatal("failed to initialise recorder", logging.Error(err))
		}
		logger.Info("recorder directory ready",
			logging.String("directory", rec.Directory()),
			logging.Int("window_interval_ms", manifest.WindowIntervalMs))

		recSub := bus.Subscribe()
		go runRecorder(ctx, rec, recSub, logger.With(logging.String("component", "recorder")))

		cleaner := recorder.NewCleaner(cfg.RecorderDir, recorder.RetentionPolicy{MaxBundles: cfg.ReplayCap}, logger.With(logging.String("component", "recorder-cleaner")))
		go cleaner.Run(ctx, time.Hour)
	}

	//3.- Wire the gRPC bidirectional stream bridge as a third consumer/producer.
	bridge := &busBridge{bus: bus}
	grpcServer := grpc.NewServer()
	grpcService := grpcstream.NewService(bridge)
	grpcServer.RegisterService(&grpcstream.ServiceDesc, grpcService)

	go func() {
		listener, err := net.Listen("tcp", ":0")
		if err != nil {
			logger.Fatal("failed to start gRPC listener", logging.Error(err))
		}
		logger.Info("gRPC stream server listening", logging.String("address", listener.Addr().String()))
		if err := grpcServer.Serve(listener); err != nil {
			logger.Error("gRPC server terminated", logging.Error(err))
		}
	}()
	defer grpcServer.GracefulStop()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		id := r.RemoteAddr
		if err := sink.HandleConn(upgrader, w, r, id); err != nil {
			logger.Warn("websocket handshake failed", logging.Error(err))
		}
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "clients=%d\n", sink.ClientCount())
	})

	server := &http.Server{Addr: cfg.Address, Handler: logging.HTTPTraceMiddleware(logger)(mux)}
	logger.Info("reactorctl listening", logging.String("address", cfg.Address))

	if cfg.TLSCertPath != "" {
		if err := server.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath); err != nil {
			logger.Fatal("server terminated", logging.Error(err))
		}
		return
	}
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("server terminated", logging.Error(err))
	}
}

// runRecorder drains sub cooperatively, appending each payload as a batch
// record until upstream completes or ctx is cancelled, then closes rec.
func runRecorder(ctx context.Context, rec *recorder.Writer, sub *subject.Observable[[]byte], log *logging.Logger) {
	defer func() {
		if err := rec.Close(); err != nil {
			log.Warn("recorder close failed", logging.Error(err))
		}
	}()

	wake := make(chan struct{}, 1)
	waker := reactor.WakerFunc(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})

	var seq uint64
	for {
		for {
			res := sub.Poll(waker)
			if ev, ok := res.Value(); ok {
				seq++
				if err := rec.AppendBatch(seq, ev.Value()); err != nil {
					log.Warn("append batch failed", logging.Error(err))
				}
				continue
			}
			if res.IsDone() {
				return
			}
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-wake:
		}
	}
}
