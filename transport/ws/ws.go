// Package ws bridges a reactor stream to N WebSocket connections. It is the
// push side of the library: everything upstream of Sink is poll-based, but
// browsers expect bytes pushed to them, so Sink runs one goroutine that
// drives the upstream Pullable cooperatively and fans each item out to
// per-connection buffered queues, exactly the way the teacher's Broker.broadcast
// fanned world diffs out to *Client.send channels.
package ws

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kestrel-stream/reactor"
	"github.com/kestrel-stream/reactor/internal/logging"
)

const (
	writeWait          = 10 * time.Second
	pongWaitMultiplier = 2
	sendBufferSize     = 256
)

// Encoder converts one stream item into the bytes written to a connection.
type Encoder[T any] func(T) ([]byte, error)

// Option customises a Sink.
type Option[T any] func(*Sink[T])

// WithPingInterval overrides the keepalive ping cadence (default 30s).
func WithPingInterval[T any](d time.Duration) Option[T] {
	return func(s *Sink[T]) {
		if d > 0 {
			s.pingInterval = d
		}
	}
}

// WithMaxPayloadBytes bounds inbound frame size; zero disables the limit.
func WithMaxPayloadBytes[T any](n int64) Option[T] {
	return func(s *Sink[T]) { s.maxPayloadBytes = n }
}

// WithLogger attaches a logger used for connection lifecycle events.
func WithLogger[T any](log *logging.Logger) Option[T] {
	return func(s *Sink[T]) {
		if log != nil {
			s.log = log
		}
	}
}

// conn tracks one accepted WebSocket client.
type conn[T any] struct {
	ws   *websocket.Conn
	send chan []byte
	id   string
	log  *logging.Logger
}

// Sink fans items pulled from a reactor stream out to every registered
// WebSocket connection, dropping (and disconnecting) any client whose send
// buffer is saturated rather than blocking the shared driver loop.
type Sink[T any] struct {
	mu              sync.RWMutex
	clients         map[*conn[T]]struct{}
	encode          Encoder[T]
	pingInterval    time.Duration
	maxPayloadBytes int64
	log             *logging.Logger
}

// NewSink constructs a Sink that encodes items with encode before writing
// them to connections.
func NewSink[T any](encode Encoder[T], opts ...Option[T]) *Sink[T] {
	s := &Sink[T]{
		clients:      make(map[*conn[T]]struct{}),
		encode:       encode,
		pingInterval: 30 * time.Second,
		log:          logging.L(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// OriginChecker builds a gorilla/websocket CheckOrigin func permitting only
// the supplied allowlist (plus localhost, always allowed for dev workflows),
// grounded on the teacher's buildOriginChecker in main.go.
func OriginChecker(log *logging.Logger, allowedOrigins []string) func(*http.Request) bool {
	if log == nil {
		log = logging.L()
	}
	localHosts := map[string]struct{}{"127.0.0.1": {}, "localhost": {}, "::1": {}}
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			log.Warn("ignoring invalid allowed origin", logging.String("origin", origin), logging.Error(err))
			continue
		}
		allowed[strings.ToLower(u.Scheme+"://"+u.Host)] = struct{}{}
	}
	return func(r *http.Request) bool {
		raw := r.Header.Get("Origin")
		if raw == "" {
			return false
		}
		originURL, err := url.Parse(raw)
		if err != nil || originURL.Host == "" {
			log.Warn("rejecting request with invalid origin", logging.String("origin", raw), logging.Error(err))
			return false
		}
		if _, ok := localHosts[originURL.Hostname()]; ok {
			return true
		}
		if _, ok := allowed[strings.ToLower(originURL.Scheme+"://"+originURL.Host)]; ok {
			return true
		}
		log.Warn("rejecting request from disallowed origin", logging.String("origin", raw))
		return false
	}
}

// HandleConn upgrades r into a tracked WebSocket connection and spawns its
// read/write pumps. It blocks until the connection closes.
func (s *Sink[T]) HandleConn(upgrader websocket.Upgrader, w http.ResponseWriter, r *http.Request, id string) error {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &conn[T]{ws: wsConn, send: make(chan []byte, sendBufferSize), id: id, log: s.log.With(logging.String("client_id", id))}
	if s.maxPayloadBytes > 0 {
		c.ws.SetReadLimit(s.maxPayloadBytes)
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	waitDuration := time.Duration(pongWaitMultiplier) * s.pingInterval
	_ = c.ws.SetReadDeadline(time.Now().Add(waitDuration))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(waitDuration))
	})

	done := make(chan struct{})
	go s.readPump(c, done)
	s.writePump(c)
	<-done
	return nil
}

// readPump discards inbound control traffic (pings keep the deadline alive)
// and deregisters the connection once the peer closes it.
func (s *Sink[T]) readPump(c *conn[T], done chan struct{}) {
	defer func() {
		s.deregister(c)
		close(done)
	}()
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump drains c.send and periodically pings, mirroring the teacher's
// writer goroutine in main.go.
func (s *Sink[T]) writePump(c *conn[T]) {
	ticker := time.NewTicker(s.pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
		s.deregister(c)
	}()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.Error("failed to set write deadline", logging.Error(err))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Error("write error", logging.Error(err))
				return
			}
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				c.log.Warn("ping failure", logging.Error(err))
				return
			}
		}
	}
}

func (s *Sink[T]) deregister(c *conn[T]) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
}

// broadcast fans payload out to every connection's send buffer, dropping
// (and disconnecting) any connection whose buffer is already full instead of
// blocking the driver loop — the teacher's Broker.broadcast non-blocking
// select/default pattern.
func (s *Sink[T]) broadcast(payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- payload:
		default:
			delete(s.clients, c)
			close(c.send)
		}
	}
}

// ClientCount reports the number of currently registered connections.
func (s *Sink[T]) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Run drives upstream cooperatively, encoding and broadcasting every item it
// produces, until upstream completes or ctx is cancelled. This is the single
// "driver" goroutine; HandleConn only registers/deregisters connections and
// never polls upstream itself (internal/broadcast's single-driver invariant
// extends to this transport boundary).
func (s *Sink[T]) Run(ctx context.Context, upstream reactor.Pullable[reactor.Event[T]]) error {
	wake := make(chan struct{}, 1)
	waker := reactor.WakerFunc(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})

	for {
		for {
			res := upstream.Poll(waker)
			if ev, ok := res.Value(); ok {
				payload, err := s.encode(ev.Value())
				if err != nil {
					s.log.Error("encode failed, dropping item", logging.Error(err))
					continue
				}
				s.broadcast(payload)
				continue
			}
			if res.IsDone() {
				return nil
			}
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wake:
		}
	}
}
