package memory

import (
	"context"
	"sync"
	"time"

	"chatrelay/internal/store"
)

// fakeStore is an in-memory store.Store with injectable failures.
type fakeStore struct {
	mu        sync.Mutex
	records   map[string][]store.Record
	appendErr error
	readErr   error
	deleteErr error
	clock     time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[string][]store.Record),
		clock:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) Append(ctx context.Context, sessionID, role, content, model string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.clock = f.clock.Add(time.Millisecond)
	f.records[sessionID] = append(f.records[sessionID], store.Record{
		Role:      role,
		Content:   content,
		Model:     model,
		CreatedAt: f.clock,
	})
	return nil
}

func (f *fakeStore) ReadAll(ctx context.Context, sessionID string) ([]store.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := make([]store.Record, len(f.records[sessionID]))
	copy(out, f.records[sessionID])
	return out, nil
}

func (f *fakeStore) DeleteAll(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.records, sessionID)
	return nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) count(sessionID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records[sessionID])
}

func (f *fakeStore) setReadErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readErr = err
}

func (f *fakeStore) setAppendErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appendErr = err
}
