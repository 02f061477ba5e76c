package network

import "github.com/rs/xid"

// Uid is a unique identifier of one peer connection,
// used for log correlation only.
type Uid string

func NewUid() Uid { return Uid(xid.New().String()) }

func (u Uid) String() string { return string(u) }

// Short returns an abbreviated uid for compact log lines.
func (u Uid) Short() string {
	if len(u) < 7 {
		return string(u)
	}
	return string(u)[:3] + "." + string(u)[len(u)-3:]
}
