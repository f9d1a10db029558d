package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryFarmerRepository struct {
	mu      sync.RWMutex
	byPhone map[string]*Farmer
	byID    map[string]*Farmer
}

func NewInMemoryFarmerRepository() *InMemoryFarmerRepository {
	return &InMemoryFarmerRepository{
		byPhone: make(map[string]*Farmer),
		byID:    make(map[string]*Farmer),
	}
}

func (r *InMemoryFarmerRepository) Save(ctx context.Context, farmer *Farmer) error {
	// Generate UUID if not already set
	if farmer.ID == "" {
		farmer.ID = uuid.New().String()
	}
	if farmer.CreatedAt.IsZero() {
		farmer.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byPhone[farmer.Phone]; ok && existing.ID != farmer.ID {
		return ErrPhoneTaken
	}

	stored := *farmer
	r.byPhone[farmer.Phone] = &stored
	r.byID[farmer.ID] = &stored
	return nil
}

func (r *InMemoryFarmerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.byPhone[phone]
	return exists, nil
}

func (r *InMemoryFarmerRepository) FindByPhone(ctx context.Context, phone string) (*Farmer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	farmer, ok := r.byPhone[phone]
	if !ok {
		return nil, ErrFarmerNotFound
	}
	out := *farmer
	return &out, nil
}

func (r *InMemoryFarmerRepository) FindByID(ctx context.Context, id string) (*Farmer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	farmer, ok := r.byID[id]
	if !ok {
		return nil, ErrFarmerNotFound
	}
	out := *farmer
	return &out, nil
}
