// Package signaler implements the session router of the relay: it
// classifies each new connection as the room host or a client, issues
// client identities, forwards signaling frames to the right counterpart
// and propagates disconnect notifications.
package signaler

import (
	"context"

	"github.com/hostcast/signaler/pkg/config"
	"github.com/hostcast/signaler/pkg/logger"
	"github.com/hostcast/signaler/pkg/monitoring"
	"github.com/hostcast/signaler/pkg/service"
)

// Signaler bundles the hub, its public HTTP server and the optional
// monitoring sidecar into one runnable unit.
type Signaler struct {
	conf     config.Config
	hub      *Hub
	services service.Group
	log      *logger.Logger
}

func New(conf config.Config, log *logger.Logger) (*Signaler, error) {
	s := &Signaler{conf: conf, hub: NewHub(log), log: log}
	srv, err := s.newHTTPServer()
	if err != nil {
		return nil, err
	}
	s.services.Add(s.hub, srv)
	s.services.AddIf(conf.Signaler.Monitoring.IsEnabled(),
		monitoring.New(conf.Signaler.Monitoring, "sig", log))
	return s, nil
}

func (s *Signaler) Start() { s.services.Start() }

func (s *Signaler) Shutdown(ctx context.Context) error { return s.services.Shutdown(ctx) }
