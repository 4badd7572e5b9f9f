package markermap

import (
	"sync"

	"github.com/OCAP2/markermap/pkg/mapengine"
)

// ClickEvent is passed to a marker's click callback.
type ClickEvent struct {
	ID any
}

// ClickFunc is called when its marker is the target of a single click.
type ClickFunc func(ClickEvent)

// ClickRegistry maps marker identities to their click callbacks.
// Identities that are not comparable are never stored.
type ClickRegistry struct {
	mu        sync.RWMutex
	callbacks map[any]ClickFunc
}

// NewClickRegistry creates an empty registry
func NewClickRegistry() *ClickRegistry {
	return &ClickRegistry{
		callbacks: make(map[any]ClickFunc),
	}
}

// Get retrieves the callback for a marker identity
func (r *ClickRegistry) Get(id any) (ClickFunc, bool) {
	if !mapengine.IsComparable(id) {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.callbacks[id]
	return fn, ok
}

// Set stores a callback, replacing any previous one for the identity
func (r *ClickRegistry) Set(id any, fn ClickFunc) {
	if !mapengine.IsComparable(id) || fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[id] = fn
}

// Delete removes the callback for an identity, if any
func (r *ClickRegistry) Delete(id any) {
	if !mapengine.IsComparable(id) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.callbacks, id)
}

// Reset clears all callbacks
func (r *ClickRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks = make(map[any]ClickFunc)
}

func (r *ClickRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.callbacks)
}
