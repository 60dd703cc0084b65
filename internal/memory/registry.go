package memory

import (
	"context"
	"sync"

	"chatrelay/internal/eventbus"
	"chatrelay/internal/llm"
	"chatrelay/internal/store"
)

// Registry maps session identifiers to at most one live Manager.
//
// Single-slot policy: only one session is hot per process. Resolving a
// different session identifier discards the current manager (its in-process
// state only; persisted history is untouched) and constructs a fresh one
// that reloads from the store. Two sessions resolved alternately will
// thrash, reloading on every switch; this limitation is intentional and
// assumes one concurrently active session per process.
type Registry struct {
	mu     sync.Mutex
	store  store.Store
	bus    *eventbus.Bus
	active *Manager
}

// NewRegistry creates an empty registry backed by the given store.
func NewRegistry(st store.Store, bus *eventbus.Bus) *Registry {
	return &Registry{store: st, bus: bus}
}

// Resolve returns the live manager for sessionID, constructing one and
// evicting any manager bound to a different session as needed.
func (r *Registry) Resolve(sessionID string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil && r.active.sessionID == sessionID {
		return r.active
	}

	if r.active != nil {
		r.bus.Publish(eventbus.TopicSessionEvicted, r.active.sessionID)
	}

	r.active = newManager(sessionID, r.store, r.bus)
	return r.active
}

// Variables implements llm.MemorySource: the accumulated history of the
// session's buffer, loading the session first if it is not the hot one.
func (r *Registry) Variables(ctx context.Context, sessionID string) ([]llm.Message, error) {
	return r.Resolve(sessionID).GetMemoryVariables(ctx)
}
