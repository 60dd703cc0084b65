package memory

import (
	"context"
	"log"

	"chatrelay/internal/eventbus"
	"chatrelay/internal/llm"
	"chatrelay/internal/store"
)

// Manager owns one Buffer and keeps it synchronized with the durable
// store for a single session: load-on-construction, write-through on
// append, clear-on-reset.
//
// Construction starts an asynchronous load of the persisted history;
// operations block until the load finishes. A failed load is logged and
// the manager degrades to an empty buffer rather than becoming unusable.
type Manager struct {
	sessionID string
	buffer    *Buffer
	store     store.Store
	bus       *eventbus.Bus
	ready     chan struct{}
}

func newManager(sessionID string, st store.Store, bus *eventbus.Bus) *Manager {
	m := &Manager{
		sessionID: sessionID,
		buffer:    NewBuffer(),
		store:     st,
		bus:       bus,
		ready:     make(chan struct{}),
	}
	go m.load()
	return m
}

// SessionID returns the session this manager is bound to.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// load replays all persisted turns, ascending by creation time, into the
// fresh buffer.
func (m *Manager) load() {
	defer close(m.ready)

	records, err := m.store.ReadAll(context.Background(), m.sessionID)
	if err != nil {
		log.Printf("[memory] failed to load history for session %s: %v", m.sessionID, err)
		m.bus.Publish(eventbus.TopicPersistenceError, err)
		return
	}

	for _, rec := range records {
		m.buffer.Append(llm.Message{Role: rec.Role, Content: rec.Content, Model: rec.Model})
	}
	m.bus.Publish(eventbus.TopicSessionLoaded, m.sessionID)
}

// awaitReady blocks until the initial load has completed.
func (m *Manager) awaitReady(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AddUserMessage appends a user turn to the buffer and write-through
// persists it. The two writes are not transactional: a failed durable
// append leaves the turn in the buffer and is logged, trading durability
// for availability.
func (m *Manager) AddUserMessage(ctx context.Context, content, model string) error {
	return m.addMessage(ctx, llm.RoleUser, content, model)
}

// AddAIMessage appends an assistant turn; persistence semantics match
// AddUserMessage.
func (m *Manager) AddAIMessage(ctx context.Context, content, model string) error {
	return m.addMessage(ctx, llm.RoleAssistant, content, model)
}

func (m *Manager) addMessage(ctx context.Context, role, content, model string) error {
	if err := m.awaitReady(ctx); err != nil {
		return err
	}

	m.buffer.Append(llm.Message{Role: role, Content: content, Model: model})
	m.bus.Publish(eventbus.TopicTurnAppended, m.sessionID)

	if err := m.store.Append(ctx, m.sessionID, role, content, model); err != nil {
		log.Printf("[memory] failed to persist %s turn for session %s: %v", role, m.sessionID, err)
		m.bus.Publish(eventbus.TopicPersistenceError, err)
	}
	return nil
}

// GetMessages re-reads the durable store, ascending by creation time. A
// read failure degrades to an empty history instead of failing the caller.
func (m *Manager) GetMessages(ctx context.Context) []llm.Message {
	records, err := m.store.ReadAll(ctx, m.sessionID)
	if err != nil {
		log.Printf("[memory] failed to read history for session %s: %v", m.sessionID, err)
		m.bus.Publish(eventbus.TopicPersistenceError, err)
		return nil
	}

	messages := make([]llm.Message, 0, len(records))
	for _, rec := range records {
		messages = append(messages, llm.Message{Role: rec.Role, Content: rec.Content, Model: rec.Model})
	}
	return messages
}

// ClearMemory empties the buffer and deletes all durable records. Both are
// attempted even if one fails; there is no rollback. Idempotent.
func (m *Manager) ClearMemory(ctx context.Context) error {
	if err := m.awaitReady(ctx); err != nil {
		return err
	}

	m.buffer.Clear()

	if err := m.store.DeleteAll(ctx, m.sessionID); err != nil {
		log.Printf("[memory] failed to delete history for session %s: %v", m.sessionID, err)
		m.bus.Publish(eventbus.TopicPersistenceError, err)
	}
	return nil
}

// GetMemoryVariables returns the buffer's contents in the shape the
// dispatcher consumes.
func (m *Manager) GetMemoryVariables(ctx context.Context) ([]llm.Message, error) {
	if err := m.awaitReady(ctx); err != nil {
		return nil, err
	}
	return m.buffer.Variables(), nil
}

// Snapshot returns a copy of the in-process buffer in append order.
func (m *Manager) Snapshot(ctx context.Context) ([]llm.Message, error) {
	if err := m.awaitReady(ctx); err != nil {
		return nil, err
	}
	return m.buffer.Snapshot(), nil
}
