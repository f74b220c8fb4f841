package cart

import "sync"

// Registry owns one cart per customer session, created lazily. Carts are kept
// in process memory only; they are cheap to lose and must never outlive the
// session anyway.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Cart)}
}

func (r *Registry) Get(sessionID string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[sessionID]
	if !ok {
		c = New()
		r.carts[sessionID] = c
	}
	return c
}

// Reset drops all carts. Used to get a deterministic starting point between
// test runs.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts = make(map[string]*Cart)
}
