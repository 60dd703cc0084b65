package store

import (
	"context"
	"time"
)

// Record is one persisted chat turn. CreatedAt is assigned by the store on
// append; reads return records ordered ascending by it.
type Record struct {
	Role      string
	Content   string
	Model     string
	CreatedAt time.Time
}

// Store is the interface for durable conversation storage.
type Store interface {
	Append(ctx context.Context, sessionID, role, content, model string) error
	ReadAll(ctx context.Context, sessionID string) ([]Record, error)
	DeleteAll(ctx context.Context, sessionID string) error
	Close() error
}
