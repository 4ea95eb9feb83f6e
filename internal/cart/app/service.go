package app

import (
	"context"
	"errors"
	"strings"

	"github.com/neeste/storefront/internal/cart/domain"
)

var ErrInvalidInput = errors.New("invalid input")

// Service owns the cart lines. Every mutation loads the current lines,
// applies the change and persists before returning, so a crash between
// mutation and persistence is not possible.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
	}
}

func (s *Service) Items(ctx context.Context) ([]domain.Item, error) {
	return s.store.Load(ctx)
}

func (s *Service) Total(ctx context.Context) (domain.Money, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return domain.Money{}, err
	}
	return domain.Total(items), nil
}

// Add appends a line for the product, or increments the quantity of the
// existing line when the product is already in the cart. Quantities below
// one are clamped to one.
func (s *Service) Add(ctx context.Context, item domain.Item) ([]domain.Item, error) {
	if strings.TrimSpace(item.ProductID) == "" || item.UnitPrice.Amount <= 0 {
		return nil, ErrInvalidInput
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	items, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	if err := s.store.Save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetQuantity sets the quantity of an existing line. A quantity below one
// removes the line; an item never sits in the cart at quantity zero.
func (s *Service) SetQuantity(ctx context.Context, productID string, qty int32) ([]domain.Item, error) {
	if qty < 1 {
		return s.Remove(ctx, productID)
	}

	items, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = qty
			if err := s.store.Save(ctx, items); err != nil {
				return nil, err
			}
			return items, nil
		}
	}
	return nil, ErrInvalidInput
}

// Adjust changes a line's quantity by delta. A delta that would take the
// quantity to zero or below removes the line instead.
func (s *Service) Adjust(ctx context.Context, productID string, delta int32) ([]domain.Item, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ProductID == productID {
			next := items[i].Quantity + delta
			if next < 1 {
				return s.Remove(ctx, productID)
			}
			items[i].Quantity = next
			if err := s.store.Save(ctx, items); err != nil {
				return nil, err
			}
			return items, nil
		}
	}
	return nil, ErrInvalidInput
}

func (s *Service) Remove(ctx context.Context, productID string) ([]domain.Item, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}

	if err := s.store.Save(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *Service) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}
