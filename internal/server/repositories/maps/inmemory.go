package maps

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/paintmap/internal/common"
	"github.com/dmitrijs2005/paintmap/internal/server/models"
)

type InMemoryRepository struct {
	mu   sync.RWMutex
	maps map[string]models.Map
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{maps: make(map[string]models.Map)}
}

func (r *InMemoryRepository) Get(ctx context.Context, accountID string) (*models.Map, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.maps[accountID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := m.Clone()
	return &c, nil
}

// Put stores m under accountID, replacing whatever was there.
func (r *InMemoryRepository) Put(ctx context.Context, accountID string, m models.Map) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.maps[accountID] = m.Clone()
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.maps[accountID]; !ok {
		return common.ErrorNotFound
	}
	delete(r.maps, accountID)
	return nil
}
