// Package memory implements the session-scoped conversation memory:
// an in-process buffer of chat turns synchronized with the durable store,
// a per-session manager owning that buffer, and the single-slot registry
// that maps session identifiers to at most one live manager.
package memory

import (
	"sync"

	"chatrelay/internal/llm"
)

// Buffer is an ordered, append-only sequence of chat turns scoped to one
// session. History is unbounded; no trimming or summarization happens here.
type Buffer struct {
	mu    sync.RWMutex
	turns []llm.Message
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds a turn at the end of the sequence.
func (b *Buffer) Append(turn llm.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.turns = append(b.turns, turn)
}

// Snapshot returns a copy of the current contents in append order.
func (b *Buffer) Snapshot() []llm.Message {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]llm.Message, len(b.turns))
	copy(out, b.turns)
	return out
}

// Clear empties the sequence. It does not touch the durable store.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.turns = nil
}

// Len returns the number of turns held.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.turns)
}

// Variables renders the sequence into the shape the dispatcher consumes:
// the ordered turn list with only role and content, ready to be sent as
// prior context.
func (b *Buffer) Variables() []llm.Message {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]llm.Message, len(b.turns))
	for i, t := range b.turns {
		out[i] = llm.Message{Role: t.Role, Content: t.Content}
	}
	return out
}
