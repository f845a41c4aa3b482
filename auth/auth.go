package auth

import (
	"crypto/subtle"

	uuid "github.com/satori/go.uuid"
)

// The one flag persisted beyond a browsing session. Its presence
// with exactly this value means "authenticated"; anything else
// means not.
const (
	flagKey   = "priceListAuth"
	flagValue = "authenticated"
)

// FlagStore is the durable key-value store holding the gate flag.
type FlagStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Del(key string) error
}

// Gate guards the browser behind one shared secret. The secret is
// compared and stored in clear form: this is a deterrent gate, not
// a security boundary. No rate limiting, no expiry.
type Gate struct {
	store  FlagStore
	secret string
}

func NewGate(store FlagStore, secret string) *Gate {
	return &Gate{store: store, secret: secret}
}

// CheckSession reports whether the gate flag is set. Any store
// error or stray value counts as not authenticated.
func (g *Gate) CheckSession() bool {
	v, ok, err := g.store.Get(flagKey)
	if err != nil || !ok {
		return false
	}
	return v == flagValue
}

/*
	Authenticate compares the submitted secret against the configured
	one. On a match it persists the gate flag and mints an opaque
	token for the UI to hold; the flag alone is authoritative. On a
	mismatch nothing is written. A wrong secret is a normal rejected
	attempt, not an error.
*/
func (g *Gate) Authenticate(submitted string) (string, bool) {
	if subtle.ConstantTimeCompare([]byte(submitted), []byte(g.secret)) != 1 {
		return "", false
	}
	if err := g.store.Set(flagKey, flagValue); err != nil {
		return "", false
	}
	return uuid.NewV4().String(), true
}

// LogOut removes the gate flag, returning the system to the
// unauthenticated state.
func (g *Gate) LogOut() error {
	return g.store.Del(flagKey)
}
