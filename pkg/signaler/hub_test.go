package signaler

import (
	"context"
	"testing"

	"github.com/gorilla/websocket"
)

func TestHubEventLoop(t *testing.T) {
	h := testHub()
	h.Run()
	defer func() { _ = h.Shutdown(context.Background()) }()

	host, _ := connect(h)
	h.post(joinEvent{peer: host})
	h.post(frameEvent{peer: host, data: []byte(`{"type":"register-host"}`)})

	// a status query is answered on the same loop, so by the time it
	// returns every prior event has been processed
	if st := h.Status(); !st.HostConnected {
		t.Fatalf("host registration not visible: %+v", st)
	}

	client, _ := connect(h)
	h.post(joinEvent{peer: client})
	h.post(frameEvent{peer: client, data: []byte(`{"type":"client-hello"}`)})
	if st := h.Status(); len(st.Clients) != 1 {
		t.Fatalf("client registration not visible: %+v", st)
	}

	h.post(leaveEvent{peer: host})
	if st := h.Status(); st.HostConnected {
		t.Errorf("host still present after leave: %+v", st)
	}
}

func TestHubCloseAll(t *testing.T) {
	h := testHub()
	_, hostConn := registerHost(t, h)
	_, clientConn, _ := connectClient(t, h)

	h.closeAll()

	for name, conn := range map[string]*fakeConn{"host": hostConn, "client": clientConn} {
		if !conn.closed || conn.code != websocket.CloseGoingAway {
			t.Errorf("%s connection not closed for shutdown: %+v", name, conn)
		}
	}
	if h.room.HasHost() || h.room.ClientCount() != 0 {
		t.Error("registry not emptied on shutdown")
	}
}

func TestHubShutdownWaitsForCloseAll(t *testing.T) {
	h := testHub()
	h.Run()

	host, hostConn := connect(h)
	h.post(joinEvent{peer: host})
	h.post(frameEvent{peer: host, data: []byte(`{"type":"register-host"}`)})
	if st := h.Status(); !st.HostConnected {
		t.Fatalf("host registration not visible: %+v", st)
	}

	// by the time Shutdown returns, the loop has run closeAll
	if err := h.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !hostConn.closed || hostConn.code != websocket.CloseGoingAway {
		t.Errorf("host connection not closed before shutdown returned: %+v", hostConn)
	}
}

func TestHubShutdownIdempotent(t *testing.T) {
	h := testHub()
	h.Run()
	if err := h.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := h.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
	// posting after shutdown must not block
	p, _ := connect(h)
	h.post(joinEvent{peer: p})
}
