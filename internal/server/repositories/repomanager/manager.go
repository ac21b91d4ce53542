// Package repomanager hands out the repositories backing the services.
package repomanager

import (
	"github.com/dmitrijs2005/paintmap/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/paintmap/internal/server/repositories/maps"
)

type RepositoryManager interface {
	Accounts() accounts.Repository
	Maps() maps.Repository
}
