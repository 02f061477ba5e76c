package signaler

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/rs/xid"
)

const clientIdBytes = 4

// NewClientId returns a short opaque identity for a freshly classified
// client. The id space is deliberately small so identities stay easy to
// pass around; a collision with a live client is resolved by kicking
// the prior holder.
func NewClientId() string {
	b := make([]byte, clientIdBytes)
	if _, err := rand.Read(b); err != nil {
		s := xid.New().String()
		return s[len(s)-clientIdBytes*2:]
	}
	return hex.EncodeToString(b)
}
