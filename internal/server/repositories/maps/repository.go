package maps

import (
	"context"

	"github.com/dmitrijs2005/paintmap/internal/server/models"
)

// Repository stores one map per account id.
type Repository interface {
	Get(ctx context.Context, accountID string) (*models.Map, error)
	Put(ctx context.Context, accountID string, m models.Map) error
	Delete(ctx context.Context, accountID string) error
}
