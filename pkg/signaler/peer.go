package signaler

import (
	"github.com/hostcast/signaler/pkg/api"
	"github.com/hostcast/signaler/pkg/logger"
	"github.com/hostcast/signaler/pkg/network"
)

// Channel is the outbound side of one connected peer.
// Writes are fire-and-forget; Close tears the transport down
// with the given status code and reason.
type Channel interface {
	Write(data []byte)
	Close(code int, reason string)
}

type role uint8

const (
	roleNone role = iota
	roleHost
	roleClient
)

func (r role) String() string {
	switch r {
	case roleHost:
		return "host"
	case roleClient:
		return "client"
	}
	return "unclassified"
}

// Peer ties a live channel to its classification. The role and the
// client identity are assigned exactly once, by the owning hub, on
// the first valid classification frame.
type Peer struct {
	conn Channel
	uid  network.Uid
	role role
	id   string

	log *logger.Logger
}

func NewPeer(conn Channel, log *logger.Logger) *Peer {
	uid := network.NewUid()
	return &Peer{
		conn: conn,
		uid:  uid,
		log:  log.Extend(log.With().Str("cid", uid.Short())),
	}
}

// send marshals and queues one control frame. Failures are logged
// and swallowed, delivery is at-most-once.
func (p *Peer) send(v any) {
	data, err := api.Encode(v)
	if err != nil {
		p.log.Error().Err(err).Msg("couldn't encode an outbound frame")
		return
	}
	p.conn.Write(data)
}
