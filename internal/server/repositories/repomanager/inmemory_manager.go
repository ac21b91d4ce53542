package repomanager

import (
	"github.com/dmitrijs2005/paintmap/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/paintmap/internal/server/repositories/maps"
)

// InMemoryRepositoryManager keeps all state in process memory; it is lost on
// restart.
type InMemoryRepositoryManager struct {
	accounts accounts.Repository
	maps     maps.Repository
}

func (m *InMemoryRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m *InMemoryRepositoryManager) Maps() maps.Repository {
	return m.maps
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		accounts: accounts.NewInMemoryRepository(),
		maps:     maps.NewInMemoryRepository(),
	}
}
