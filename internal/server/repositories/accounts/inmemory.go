package accounts

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/paintmap/internal/common"
	"github.com/dmitrijs2005/paintmap/internal/server/models"
)

// InMemoryRepository keeps accounts in a primary id index plus a
// user name index used to enforce uniqueness.
type InMemoryRepository struct {
	mu       sync.RWMutex
	byID     map[string]models.Account
	idByName map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:     make(map[string]models.Account),
		idByName: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.idByName[account.UserName]; ok {
		return fmt.Errorf("user name %q: %w", account.UserName, common.ErrorAlreadyExists)
	}
	if _, ok := r.byID[account.ID]; ok {
		return fmt.Errorf("account id %q: %w", account.ID, common.ErrorAlreadyExists)
	}

	r.byID[account.ID] = *account
	r.idByName[account.UserName] = account.ID
	return nil
}

func (r *InMemoryRepository) GetByUserName(ctx context.Context, userName string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idByName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	a := r.byID[id]
	return &a, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r *InMemoryRepository) UpdatePassword(ctx context.Context, id string, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	a.Password = password
	r.byID[id] = a
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	delete(r.idByName, a.UserName)
	return nil
}

func (r *InMemoryRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
