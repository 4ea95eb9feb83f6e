package app

import (
	"context"
	"testing"

	"github.com/neeste/storefront/internal/cart/domain"
	"github.com/neeste/storefront/internal/cart/infra/memory"
)

func item(id string, price int64, qty int32) domain.Item {
	return domain.Item{
		ProductID: id,
		Name:      id,
		UnitPrice: domain.Money{Currency: "UGX", Amount: price},
		Quantity:  qty,
		Kind:      domain.KindDigital,
	}
}

func TestAddMergesByProductID(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())

	if _, err := svc.Add(ctx, item("egg-12", 8000, 2)); err != nil {
		t.Fatal(err)
	}
	items, err := svc.Add(ctx, item("egg-12", 8000, 3))
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddClampsQuantityToOne(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())

	items, err := svc.Add(ctx, item("egg-12", 8000, 0))
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", items[0].Quantity)
	}
}

func TestAddValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())

	t.Run("empty product id -> invalid", func(t *testing.T) {
		if _, err := svc.Add(ctx, item("  ", 8000, 1)); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("non-positive price -> invalid", func(t *testing.T) {
		if _, err := svc.Add(ctx, item("egg-12", 0, 1)); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestSetQuantityBelowOneRemovesLine(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())

	if _, err := svc.Add(ctx, item("egg-12", 8000, 2)); err != nil {
		t.Fatal(err)
	}
	items, err := svc.SetQuantity(ctx, "egg-12", 0)
	if err != nil {
		t.Fatal(err)
	}

	for _, it := range items {
		if it.ProductID == "egg-12" {
			t.Fatal("line should have been removed")
		}
	}
}

func TestAdjustToZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())

	if _, err := svc.Add(ctx, item("egg-12", 8000, 1)); err != nil {
		t.Fatal(err)
	}
	items, err := svc.Adjust(ctx, "egg-12", -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(items))
	}
}

func TestTotalTracksMutations(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())

	if _, err := svc.Add(ctx, item("egg-12", 8000, 2)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(ctx, item("honey-1", 25000, 1)); err != nil {
		t.Fatal(err)
	}

	total, err := svc.Total(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if total.Amount != 2*8000+25000 {
		t.Fatalf("total: got %d", total.Amount)
	}

	if _, err := svc.SetQuantity(ctx, "egg-12", 1); err != nil {
		t.Fatal(err)
	}
	total, err = svc.Total(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if total.Amount != 8000+25000 {
		t.Fatalf("total after set-quantity: got %d", total.Amount)
	}

	if _, err := svc.Remove(ctx, "honey-1"); err != nil {
		t.Fatal(err)
	}
	total, err = svc.Total(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if total.Amount != 8000 {
		t.Fatalf("total after remove: got %d", total.Amount)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())

	if _, err := svc.Add(ctx, item("egg-12", 8000, 2)); err != nil {
		t.Fatal(err)
	}
	if err := svc.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	items, err := svc.Items(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(items))
	}
}
