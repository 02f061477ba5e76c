package signaler

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/hostcast/signaler/pkg/api"
	"github.com/hostcast/signaler/pkg/logger"
)

// Hub owns one room and serializes every mutation of it.
// All registry state is touched exclusively from the run loop,
// fed by join/frame/leave events from the transport and by
// read-only status queries.
type Hub struct {
	room    *Room
	events  chan event
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
	newId   func() string
	log     *logger.Logger
}

type (
	event interface{ isEvent() }

	joinEvent  struct{ peer *Peer }
	frameEvent struct {
		peer *Peer
		data []byte
	}
	leaveEvent  struct{ peer *Peer }
	statusQuery struct{ reply chan api.Status }
)

func (joinEvent) isEvent()   {}
func (frameEvent) isEvent()  {}
func (leaveEvent) isEvent()  {}
func (statusQuery) isEvent() {}

const eventBuffer = 64

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		room:    NewRoom(),
		events:  make(chan event, eventBuffer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		newId:   NewClientId,
		log:     log,
	}
}

func (h *Hub) Run() { go h.run() }

func (h *Hub) run() {
	defer close(h.stopped)
	for {
		select {
		case ev := <-h.events:
			switch e := ev.(type) {
			case joinEvent:
				e.peer.log.Debug().Msg("Connect")
			case frameEvent:
				h.handleFrame(e.peer, e.data)
			case leaveEvent:
				h.handleLeave(e.peer)
			case statusQuery:
				e.reply <- h.status()
			}
		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Shutdown stops the run loop and waits until it has closed every
// connection, so going-away frames are written before the caller exits.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.once.Do(func() { close(h.done) })
	select {
	case <-h.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post hands an event to the run loop. Events arriving after
// shutdown are discarded.
func (h *Hub) post(ev event) {
	select {
	case h.events <- ev:
	case <-h.done:
	}
}

// Status returns a read-only snapshot of the registry. It never
// mutates state; the query is answered on the run loop so no lock
// is needed.
func (h *Hub) Status() api.Status {
	reply := make(chan api.Status, 1)
	h.post(statusQuery{reply: reply})
	select {
	case st := <-reply:
		return st
	case <-h.done:
		return api.Status{Ok: true, Clients: []string{}}
	}
}

func (h *Hub) status() api.Status {
	return api.Status{
		Ok:            true,
		HostConnected: h.room.HasHost(),
		Clients:       h.room.ClientIds(),
	}
}

// handleLeave reacts to a closed or failed channel. A channel that was
// already superseded by a forced replacement no longer matches the
// registry entry and is a strict no-op here.
func (h *Hub) handleLeave(p *Peer) {
	switch p.role {
	case roleHost:
		if h.room.Host() != p {
			return
		}
		h.room.RemoveHost(p)
		metricHostConnected.Set(0)
		p.log.Info().Msg("host disconnected")
		note, err := api.Encode(api.NewHostDisconnected())
		if err != nil {
			return
		}
		// best-effort per client, one failed send doesn't block the rest
		h.room.ForEachClient(func(c *Peer) { c.conn.Write(note) })
	case roleClient:
		if h.room.Client(p.id) != p {
			return
		}
		h.room.RemoveClient(p.id, p)
		metricClients.Set(float64(h.room.ClientCount()))
		p.log.Info().Str("id", p.id).Msg("client disconnected")
		if host := h.room.Host(); host != nil {
			host.send(api.NewClientDisconnected(p.id))
		}
	default:
		p.log.Debug().Msg("unclassified peer left")
	}
}

// kick force-closes a peer whose registration was superseded.
// The error frame is best-effort; the close and the registry
// eviction happen regardless.
func (h *Hub) kick(p *Peer, code string, reason string) {
	p.log.Info().Str("reason", reason).Msg("kick")
	metricKicked.WithLabelValues(code).Inc()
	p.send(api.Err(code))
	p.conn.Close(websocket.ClosePolicyViolation, reason)
	switch p.role {
	case roleHost:
		h.room.RemoveHost(p)
	case roleClient:
		h.room.RemoveClient(p.id, p)
	}
}

func (h *Hub) closeAll() {
	if host := h.room.Host(); host != nil {
		host.conn.Close(websocket.CloseGoingAway, "server shutdown")
		h.room.RemoveHost(host)
	}
	h.room.ForEachClient(func(c *Peer) {
		c.conn.Close(websocket.CloseGoingAway, "server shutdown")
		h.room.RemoveClient(c.id, c)
	})
	metricHostConnected.Set(0)
	metricClients.Set(0)
}
