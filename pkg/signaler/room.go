package signaler

import "sort"

// Room is the registry of one relay room: at most one host channel
// plus a mapping of client identities to their channels.
//
// The room is owned by a single hub goroutine and is never locked;
// all reads and writes happen on the hub's event loop.
type Room struct {
	host    *Peer
	clients map[string]*Peer
}

func NewRoom() *Room {
	return &Room{clients: make(map[string]*Peer, 8)}
}

func (r *Room) Host() *Peer   { return r.host }
func (r *Room) HasHost() bool { return r.host != nil }

func (r *Room) SetHost(p *Peer) { r.host = p }

// RemoveHost clears the host slot only when p is the current holder,
// so a stale channel can't evict a newer binding.
func (r *Room) RemoveHost(p *Peer) {
	if r.host == p {
		r.host = nil
	}
}

func (r *Room) Client(id string) *Peer { return r.clients[id] }

func (r *Room) SetClient(id string, p *Peer) { r.clients[id] = p }

// RemoveClient drops the identity binding only when p is the
// current holder.
func (r *Room) RemoveClient(id string, p *Peer) {
	if r.clients[id] == p {
		delete(r.clients, id)
	}
}

func (r *Room) ClientCount() int { return len(r.clients) }

// ClientIds returns a sorted snapshot of the registered identities.
// Never nil, so it serializes as an empty JSON array.
func (r *Room) ClientIds() []string {
	ids := make([]string, 0, len(r.clients))
	for id := range r.clients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ForEachClient visits every registered client.
func (r *Room) ForEachClient(fn func(p *Peer)) {
	for _, p := range r.clients {
		fn(p)
	}
}
