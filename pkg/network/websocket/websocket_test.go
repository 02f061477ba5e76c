package websocket

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hostcast/signaler/pkg/logger"
)

func newTestServer(t *testing.T, handle func(ws *WS)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := NewServer(w, r, logger.Default())
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		handle(ws)
		ws.Listen()
		<-ws.Done
	}))
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	return conn
}

func TestEchoRoundTrip(t *testing.T) {
	srv := newTestServer(t, func(ws *WS) {
		ws.OnMessage = func(m []byte) { ws.Write(m) }
	})
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	for _, msg := range []string{`{"type":"offer"}`, "two", "three"} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatal(err)
		}
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, got, err := conn.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != msg {
			t.Errorf("echo = %q, want %q", got, msg)
		}
	}
}

func TestCloseCodeReachesPeer(t *testing.T) {
	srv := newTestServer(t, func(ws *WS) {
		ws.OnMessage = func([]byte) { ws.Close(websocket.ClosePolicyViolation, "host replaced") }
	})
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("x")); err != nil {
		t.Fatal(err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) {
		t.Fatalf("expected a close error, got %v", err)
	}
	if closeErr.Code != websocket.ClosePolicyViolation || closeErr.Text != "host replaced" {
		t.Errorf("close = %v %q", closeErr.Code, closeErr.Text)
	}
}

func TestWriteAfterCloseIsDropped(t *testing.T) {
	done := make(chan *WS, 1)
	srv := newTestServer(t, func(ws *WS) {
		done <- ws
	})
	defer srv.Close()

	conn := dial(t, srv)
	ws := <-done
	_ = conn.Close()

	select {
	case <-ws.Done:
	case <-time.After(2 * time.Second):
		t.Fatal("server side never noticed the disconnect")
	}
	// must not panic or block
	ws.Write([]byte("late"))
}
