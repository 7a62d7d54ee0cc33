package ws

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kestrel-stream/reactor/internal/logging"
)

func TestOriginCheckerAllowsLocalhostAlways(t *testing.T) {
	check := OriginChecker(logging.NewTestLogger(), nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	if !check(req) {
		t.Fatalf("expected localhost origin to be allowed")
	}
}

func TestOriginCheckerRejectsMissingOrigin(t *testing.T) {
	check := OriginChecker(logging.NewTestLogger(), []string{"https://example.com"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if check(req) {
		t.Fatalf("expected missing Origin header to be rejected")
	}
}

func TestOriginCheckerAllowsAllowlistedOrigin(t *testing.T) {
	check := OriginChecker(logging.NewTestLogger(), []string{"https://example.com"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	if !check(req) {
		t.Fatalf("expected allowlisted origin to be allowed")
	}
}

func TestOriginCheckerRejectsUnlistedOrigin(t *testing.T) {
	check := OriginChecker(logging.NewTestLogger(), []string{"https://example.com"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	if check(req) {
		t.Fatalf("expected unlisted origin to be rejected")
	}
}

func TestBroadcastDropsSaturatedConnection(t *testing.T) {
	s := NewSink[int](func(v int) ([]byte, error) { return []byte{byte(v)}, nil }, WithLogger[int](logging.NewTestLogger()))
	full := &conn[int]{send: make(chan []byte)} // unbuffered: the first send always saturates it
	healthy := &conn[int]{send: make(chan []byte, 1)}
	s.clients[full] = struct{}{}
	s.clients[healthy] = struct{}{}

	s.broadcast([]byte{1})

	if _, ok := s.clients[full]; ok {
		t.Fatalf("expected saturated connection to be dropped")
	}
	if _, ok := s.clients[healthy]; !ok {
		t.Fatalf("expected healthy connection to remain registered")
	}
	select {
	case v := <-healthy.send:
		if len(v) != 1 || v[0] != 1 {
			t.Fatalf("unexpected payload delivered: %v", v)
		}
	default:
		t.Fatalf("expected payload delivered to healthy connection")
	}
}

func TestClientCountReflectsRegistrations(t *testing.T) {
	s := NewSink[int](func(v int) ([]byte, error) { return nil, nil })
	if s.ClientCount() != 0 {
		t.Fatalf("expected zero clients initially")
	}
	c := &conn[int]{send: make(chan []byte, 1)}
	s.clients[c] = struct{}{}
	if s.ClientCount() != 1 {
		t.Fatalf("expected one client registered")
	}
}
