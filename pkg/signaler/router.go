package signaler

import "github.com/hostcast/signaler/pkg/api"

// handleFrame is the single dispatch point for every inbound frame.
// Frames that aren't JSON objects or carry no string type are dropped
// without a reply; unrecognized types are ignored.
func (h *Hub) handleFrame(p *Peer, data []byte) {
	m, err := api.Decode(data)
	if err != nil {
		metricDropped.Inc()
		p.log.Debug().Err(err).Msg("malformed frame dropped")
		return
	}
	t := m.Type()
	if t == "" {
		metricDropped.Inc()
		return
	}
	switch t {
	case api.RegisterHost:
		h.registerHost(p)
	case api.ClientHello:
		h.registerClient(p)
	case api.Offer, api.Answer, api.IceCandidate:
		h.relay(p, m)
	default:
		p.log.Debug().Str("type", t).Msg("unrecognized frame ignored")
	}
}

// registerHost classifies an unclassified peer as the room host.
// A conflicting live host is kicked before the new binding is
// installed. Re-registration attempts by classified peers are ignored,
// roles never change.
func (h *Hub) registerHost(p *Peer) {
	if p.role != roleNone {
		return
	}
	if prev := h.room.Host(); prev != nil && prev != p {
		h.kick(prev, api.ErrHostReplaced, "host replaced")
	}
	p.role = roleHost
	h.room.SetHost(p)
	metricHostConnected.Set(1)
	p.log.Info().Msg("host registered")
	p.send(api.NewHostRegistered(h.room.ClientIds()))
}

// registerClient classifies an unclassified peer as a client and
// issues it an identity. An identity collision with a live client
// kicks the prior holder before the claim.
func (h *Hub) registerClient(p *Peer) {
	if p.role != roleNone {
		return
	}
	id := h.newId()
	if prev := h.room.Client(id); prev != nil && prev != p {
		h.kick(prev, api.ErrClientReplaced, "client replaced")
	}
	p.role = roleClient
	p.id = id
	h.room.SetClient(id, p)
	metricClients.Set(float64(h.room.ClientCount()))
	p.log.Info().Str("id", id).Msg("client registered")
	p.send(api.NewClientWelcome(id, h.room.HasHost()))
	if host := h.room.Host(); host != nil {
		host.send(api.NewClientConnected(id))
	}
}

// relay forwards one signaling frame to the counterpart side.
// The payload stays opaque; only the clientId and from fields are
// rewritten, after the copy, so sender-supplied values are discarded.
func (h *Hub) relay(p *Peer, m api.In) {
	switch p.role {
	case roleClient:
		host := h.room.Host()
		if host == nil {
			h.reject(p, api.ErrNoHost)
			return
		}
		out, err := api.Forward(m, p.id, api.FromClient)
		if err != nil {
			metricDropped.Inc()
			return
		}
		host.conn.Write(out)
		metricRelayed.WithLabelValues(api.FromClient).Inc()
	case roleHost:
		id := m.ClientId()
		if id == "" {
			h.reject(p, api.ErrMissingClientId)
			return
		}
		target := h.room.Client(id)
		if target == nil {
			h.reject(p, api.ErrUnknownClient)
			return
		}
		out, err := api.Forward(m, id, api.FromHost)
		if err != nil {
			metricDropped.Inc()
			return
		}
		target.conn.Write(out)
		metricRelayed.WithLabelValues(api.FromHost).Inc()
	default:
		h.reject(p, api.ErrNotRegistered)
	}
}

func (h *Hub) reject(p *Peer, code string) {
	metricRejected.WithLabelValues(code).Inc()
	p.log.Debug().Str("code", code).Msg("frame rejected")
	p.send(api.Err(code))
}
