package adapter

import (
	"context"

	cartapp "github.com/neeste/storefront/internal/cart/app"
	cartdomain "github.com/neeste/storefront/internal/cart/domain"
	checkoutapp "github.com/neeste/storefront/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) Items(ctx context.Context) ([]checkoutapp.CartItem, error) {
	items, err := r.svc.Items(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]checkoutapp.CartItem, 0, len(items))
	for _, it := range items {
		out = append(out, checkoutapp.CartItem{
			ProductID:  it.ProductID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitAmount: it.UnitPrice.Amount,
			Currency:   it.UnitPrice.Currency,
			Physical:   it.Kind == cartdomain.KindPhysical,
		})
	}
	return out, nil
}
