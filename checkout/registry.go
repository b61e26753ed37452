package checkout

import "sync"

// Registry keeps one Flow per user id.
type Registry struct {
	mu    sync.Mutex
	flows map[string]Flow
}

func NewRegistry() *Registry {
	return &Registry{flows: make(map[string]Flow)}
}

func (r *Registry) Get(userID string) Flow {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.flows[userID]; ok {
		return f
	}
	return NewFlow()
}

// Update runs fn on the user's flow and stores the result only if fn
// succeeds.
func (r *Registry) Update(userID string, fn func(*Flow) error) (Flow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flows[userID]
	if !ok {
		f = NewFlow()
	}
	if err := fn(&f); err != nil {
		return r.getLocked(userID), err
	}
	r.flows[userID] = f
	return f, nil
}

func (r *Registry) getLocked(userID string) Flow {
	if f, ok := r.flows[userID]; ok {
		return f
	}
	return NewFlow()
}

func (r *Registry) Reset(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flows, userID)
}
