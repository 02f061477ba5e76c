package signaler

import (
	"net/http"

	"github.com/hostcast/signaler/pkg/api"
	"github.com/hostcast/signaler/pkg/network/httpx"
	"github.com/hostcast/signaler/pkg/network/websocket"
)

func (s *Signaler) newHTTPServer() (*httpx.Server, error) {
	conf := s.conf.Signaler.Server
	opts := []httpx.Option{
		httpx.WithLogger(s.log),
		httpx.WithPortRoll(conf.PortRoll),
	}
	if conf.Https {
		opts = append(opts, httpx.WithTLS(conf.HttpsCert, conf.HttpsKey, conf.Domain))
	}
	return httpx.NewServer(conf.Address, func(serv *httpx.Server) httpx.Handler {
		h := serv.Mux()
		h.HandleFunc("/ws", s.handleWebsocket)
		h.HandleFunc("/status", s.handleStatus)
		return h
	}, opts...)
}

// handleWebsocket upgrades a peer connection and feeds its lifecycle
// into the hub: a join event first, then every frame in arrival order,
// and a leave event once the transport is gone.
func (s *Signaler) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.NewServer(w, r, s.log)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	peer := NewPeer(conn, s.log)
	conn.OnMessage = func(message []byte) {
		s.hub.post(frameEvent{peer: peer, data: message})
	}
	s.hub.post(joinEvent{peer: peer})
	conn.Listen()
	<-conn.Done
	s.hub.post(leaveEvent{peer: peer})
}

func (s *Signaler) handleStatus(w http.ResponseWriter, _ *http.Request) {
	data, err := api.Encode(s.hub.Status())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
