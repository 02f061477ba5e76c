// Package api defines the wire format of the signaling protocol.
//
// Every frame is a JSON object with a required string "type" field.
// Classification frames (register-host, client-hello) carry no payload;
// signaling frames (offer, answer, ice-candidate) carry an opaque payload
// that the relay forwards untouched, except for the clientId and from
// routing fields which the relay always owns.
package api

import (
	"errors"
	"strings"

	"github.com/goccy/go-json"
)

// Inbound frame types.
const (
	RegisterHost = "register-host"
	ClientHello  = "client-hello"
	Offer        = "offer"
	Answer       = "answer"
	IceCandidate = "ice-candidate"
)

// Outbound control frame types.
const (
	HostRegistered     = "host-registered"
	ClientWelcome      = "client-welcome"
	ClientConnected    = "client-connected"
	ClientDisconnected = "client-disconnected"
	HostDisconnected   = "host-disconnected"
	Error              = "error"
)

// Error codes carried by Error frames.
const (
	ErrHostReplaced    = "host-replaced"
	ErrClientReplaced  = "client-replaced"
	ErrNotRegistered   = "not-registered"
	ErrNoHost          = "no-host"
	ErrMissingClientId = "missing-clientId"
	ErrUnknownClient   = "unknown-client"
)

// Routing fields owned by the relay in forwarded frames.
const (
	FieldType     = "type"
	FieldClientId = "clientId"
	FieldFrom     = "from"
)

// Values of the from field.
const (
	FromHost   = "host"
	FromClient = "client"
)

var errNotObject = errors.New("frame is not an object")

// In is one inbound frame, decoded just enough to read the routing
// fields while keeping the rest of the payload opaque.
type In map[string]json.RawMessage

// Decode parses a raw frame. Frames that are not JSON objects are rejected.
func Decode(data []byte) (In, error) {
	var m In
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errNotObject
	}
	return m, nil
}

// Type returns the frame type, or "" when the field is missing
// or not a string.
func (m In) Type() string { return m.str(FieldType) }

// ClientId returns the trimmed clientId field of the frame.
func (m In) ClientId() string { return strings.TrimSpace(m.str(FieldClientId)) }

func (m In) str(key string) string {
	raw, ok := m[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Forward builds the relayed copy of an inbound signaling frame.
// The clientId and from fields are overwritten after the payload has
// been copied, so sender-supplied values for either never survive
// into the forwarded frame.
func Forward(m In, clientId string, from string) ([]byte, error) {
	out := make(In, len(m)+2)
	for k, v := range m {
		out[k] = v
	}
	id, err := json.Marshal(clientId)
	if err != nil {
		return nil, err
	}
	src, err := json.Marshal(from)
	if err != nil {
		return nil, err
	}
	out[FieldClientId] = id
	out[FieldFrom] = src
	return json.Marshal(out)
}

// Encode marshals an outbound control frame.
func Encode(v any) ([]byte, error) { return json.Marshal(v) }

type (
	ErrorFrame struct {
		Type string `json:"type"`
		Err  string `json:"error"`
	}
	HostRegisteredFrame struct {
		Type    string   `json:"type"`
		Clients []string `json:"clients"`
	}
	ClientWelcomeFrame struct {
		Type     string `json:"type"`
		ClientId string `json:"clientId"`
		HasHost  bool   `json:"hasHost"`
	}
	ClientPresenceFrame struct {
		Type     string `json:"type"`
		ClientId string `json:"clientId"`
	}
	HostDisconnectedFrame struct {
		Type string `json:"type"`
	}
	// Status is the read-only registry snapshot served over HTTP.
	Status struct {
		Ok            bool     `json:"ok"`
		HostConnected bool     `json:"hostConnected"`
		Clients       []string `json:"clients"`
	}
)

func Err(code string) ErrorFrame { return ErrorFrame{Type: Error, Err: code} }

func NewHostRegistered(clients []string) HostRegisteredFrame {
	return HostRegisteredFrame{Type: HostRegistered, Clients: clients}
}

func NewClientWelcome(id string, hasHost bool) ClientWelcomeFrame {
	return ClientWelcomeFrame{Type: ClientWelcome, ClientId: id, HasHost: hasHost}
}

func NewClientConnected(id string) ClientPresenceFrame {
	return ClientPresenceFrame{Type: ClientConnected, ClientId: id}
}

func NewClientDisconnected(id string) ClientPresenceFrame {
	return ClientPresenceFrame{Type: ClientDisconnected, ClientId: id}
}

func NewHostDisconnected() HostDisconnectedFrame {
	return HostDisconnectedFrame{Type: HostDisconnected}
}
