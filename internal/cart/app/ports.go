package app

import (
	"context"

	"github.com/neeste/storefront/internal/cart/domain"
)

// Store is the durable home of the cart lines. Save must be synchronous:
// when it returns nil the lines are on disk.
type Store interface {
	Load(ctx context.Context) ([]domain.Item, error)
	Save(ctx context.Context, items []domain.Item) error
	Clear(ctx context.Context) error
}
