// Package services contains the server-side business logic: the account
// store (AccountService) and the map store (MapService).
//
// Both services share one lock so that sequences spanning the account and
// map repositories (create with default map, delete with cascade, save
// for a live account) are never interleaved.
package services

import (
	"sync"

	"github.com/dmitrijs2005/paintmap/internal/server/idgen"
	"github.com/dmitrijs2005/paintmap/internal/server/images"
	"github.com/dmitrijs2005/paintmap/internal/server/repositories/repomanager"
)

// Clock issues update stamps in microseconds. Successive calls must return
// strictly increasing values.
type Clock interface {
	Now() int64
}

type Services struct {
	Accounts *AccountService
	Maps     *MapService
}

// New builds both services over the same repositories and lock. A nil
// clock, id generator or image store is replaced with the default.
func New(rm repomanager.RepositoryManager, ids idgen.Generator, clock Clock, img images.Store) *Services {
	if clock == nil {
		clock = idgen.NewMicroClock()
	}
	if ids == nil {
		ids = idgen.NewMicrotime(nil)
	}
	if img == nil {
		img = images.NopStore{}
	}

	mu := &sync.RWMutex{}

	return &Services{
		Accounts: &AccountService{mu: mu, repomanager: rm, ids: ids, clock: clock},
		Maps:     &MapService{mu: mu, repomanager: rm, clock: clock, images: img},
	}
}
