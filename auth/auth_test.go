package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapStore struct {
	m    map[string]string
	fail bool
}

func newMapStore() *mapStore {
	return &mapStore{m: map[string]string{}}
}

func (s *mapStore) Get(key string) (string, bool, error) {
	if s.fail {
		return "", false, errors.New("store down")
	}
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *mapStore) Set(key, value string) error {
	if s.fail {
		return errors.New("store down")
	}
	s.m[key] = value
	return nil
}

func (s *mapStore) Del(key string) error {
	delete(s.m, key)
	return nil
}

func Test_GateLifecycle(t *testing.T) {
	store := newMapStore()
	gate := NewGate(store, "fiyat2024")

	assert.False(t, gate.CheckSession())

	_, ok := gate.Authenticate("wrong-secret")
	assert.False(t, ok)
	assert.False(t, gate.CheckSession())

	token, ok := gate.Authenticate("fiyat2024")
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	// a second gate over the same store simulates a reload
	assert.True(t, NewGate(store, "fiyat2024").CheckSession())

	assert.NoError(t, gate.LogOut())
	assert.False(t, gate.CheckSession())
}

// A rejected attempt must not touch the store at all.
func Test_MismatchWritesNothing(t *testing.T) {
	store := newMapStore()
	gate := NewGate(store, "fiyat2024")

	gate.Authenticate("fiyat2025")
	assert.Empty(t, store.m)
}

// Only the exact sentinel value counts as authenticated.
func Test_StrayFlagValue(t *testing.T) {
	store := newMapStore()
	store.m[flagKey] = "Authenticated"

	assert.False(t, NewGate(store, "s").CheckSession())
}

func Test_StoreErrorsMeanUnauthenticated(t *testing.T) {
	store := newMapStore()
	store.fail = true
	gate := NewGate(store, "fiyat2024")

	assert.False(t, gate.CheckSession())

	_, ok := gate.Authenticate("fiyat2024")
	assert.False(t, ok)
}
