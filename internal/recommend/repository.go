package recommend

import "context"

type HistoryRepository interface {
	Save(ctx context.Context, entry *HistoryEntry) error
	ListByFarmer(ctx context.Context, farmerID string, limit int) ([]HistoryEntry, error)
}
