package browse

import (
	"sync"

	"github.com/google/uuid"

	"github.com/bkaya/pricelist-api/models"
)

// Registry hands out browsing sessions keyed by an opaque id. The
// sessions live in memory only; navigation state is not meant to
// survive a restart.
type Registry struct {
	lister models.Lister

	mu       sync.Mutex
	sessions map[string]*Controller
}

func NewRegistry(lister models.Lister) *Registry {
	return &Registry{
		lister:   lister,
		sessions: map[string]*Controller{},
	}
}

// Create starts a fresh session at the root folder.
func (r *Registry) Create() (string, *Controller) {
	id := uuid.NewString()
	c := NewController(r.lister)

	r.mu.Lock()
	r.sessions[id] = c
	r.mu.Unlock()

	return id, c
}

// Get looks a session up by id.
func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.Lock()
	c, ok := r.sessions[id]
	r.mu.Unlock()
	return c, ok
}

// Drop forgets a session.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
