package accounts

import (
	"context"

	"github.com/dmitrijs2005/paintmap/internal/server/models"
)

// Repository stores accounts. Implementations must keep user names unique
// and return copies, never pointers into their own state.
type Repository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByUserName(ctx context.Context, userName string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	UpdatePassword(ctx context.Context, id string, password string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
