package signaler

import "testing"

func TestNewClientId(t *testing.T) {
	id := NewClientId()
	if len(id) != clientIdBytes*2 {
		t.Errorf("unexpected identity length: %q", id)
	}
	for _, c := range id {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			t.Fatalf("identity %q is not lowercase hex", id)
		}
	}
}

func TestNewClientIdSpread(t *testing.T) {
	// collisions are possible in the small id space but a burst of
	// duplicates would point at a broken generator
	seen := map[string]int{}
	for i := 0; i < 1000; i++ {
		seen[NewClientId()]++
	}
	for id, n := range seen {
		if n > 2 {
			t.Errorf("identity %q generated %d times", id, n)
		}
	}
}
