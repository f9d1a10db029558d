package recommend

import (
	"context"
	"sync"
	"time"

	"yieldx/internal/crop"

	"github.com/google/uuid"
)

const maxMemoryEntries = 1000

// InMemoryHistoryRepository keeps the most recent entries only.
type InMemoryHistoryRepository struct {
	mu      sync.RWMutex
	entries []HistoryEntry
}

func NewInMemoryHistoryRepository() *InMemoryHistoryRepository {
	return &InMemoryHistoryRepository{}
}

func (r *InMemoryHistoryRepository) Save(ctx context.Context, entry *HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *entry
	stored.Results = append([]crop.Result(nil), entry.Results...)
	r.entries = append(r.entries, stored)
	if over := len(r.entries) - maxMemoryEntries; over > 0 {
		r.entries = append([]HistoryEntry(nil), r.entries[over:]...)
	}
	return nil
}

// ListByFarmer returns newest first.
func (r *InMemoryHistoryRepository) ListByFarmer(ctx context.Context, farmerID string, limit int) ([]HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []HistoryEntry{}
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].FarmerID == farmerID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}
