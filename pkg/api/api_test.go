package api

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestDecodeRejectsNonObjects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "garbage", in: "{not json"},
		{name: "array", in: `[1,2,3]`},
		{name: "number", in: `42`},
		{name: "string", in: `"offer"`},
		{name: "null", in: `null`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Decode([]byte(test.in)); err == nil {
				t.Errorf("expected a decode error for %q", test.in)
			}
		})
	}
}

func TestTypeField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"type":"offer"}`, want: "offer"},
		{name: "missing", in: `{"sdp":"x"}`, want: ""},
		{name: "not a string", in: `{"type":7}`, want: ""},
		{name: "object", in: `{"type":{"a":1}}`, want: ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, err := Decode([]byte(test.in))
			if err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}
			if got := m.Type(); got != test.want {
				t.Errorf("Type() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestClientIdTrimmed(t *testing.T) {
	m, err := Decode([]byte(`{"type":"offer","clientId":"  c1\t"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := m.ClientId(); got != "c1" {
		t.Errorf("ClientId() = %q, want %q", got, "c1")
	}
}

func TestForwardOverwritesRoutingFields(t *testing.T) {
	// the sender tries to spoof both routing fields
	in, err := Decode([]byte(`{"type":"offer","sdp":"X","clientId":"evil","from":"host"}`))
	if err != nil {
		t.Fatal(err)
	}
	data, err := Forward(in, "c1", FromClient)
	if err != nil {
		t.Fatal(err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out["clientId"] != "c1" {
		t.Errorf("clientId = %v, want c1", out["clientId"])
	}
	if out["from"] != FromClient {
		t.Errorf("from = %v, want %v", out["from"], FromClient)
	}
	if out["sdp"] != "X" || out["type"] != "offer" {
		t.Errorf("payload not preserved: %v", out)
	}

	// the original frame must stay untouched
	if in.ClientId() != "evil" {
		t.Error("Forward mutated the inbound frame")
	}
}

func TestEmptyClientListSerialization(t *testing.T) {
	data, err := Encode(NewHostRegistered([]string{}))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"host-registered","clients":[]}` {
		t.Errorf("unexpected serialization: %s", data)
	}
}
