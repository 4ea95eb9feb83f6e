package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/neeste/storefront/internal/checkout/domain"
	"github.com/neeste/storefront/internal/phone"
)

var (
	ErrEmptyCart               = errors.New("cart is empty")
	ErrMissingFields           = errors.New("name and phone are required")
	ErrAddressRequired         = errors.New("delivery address is required for physical items")
	ErrInvalidPhone            = errors.New("invalid phone number")
	ErrOrderCreationFailed     = errors.New("order creation failed")
	ErrPaymentInitiationFailed = errors.New("payment initiation failed")
	ErrSubmissionInFlight      = errors.New("a submission is already in flight")
)

type Service struct {
	cart     CartReader
	catalog  CatalogReader
	orders   OrderCreator
	payments PaymentInitiator

	maxConcurrent int

	mu       sync.Mutex
	inFlight bool
}

func NewService(cart CartReader, catalog CatalogReader, orders OrderCreator, payments PaymentInitiator, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		cart:          cart,
		catalog:       catalog,
		orders:        orders,
		payments:      payments,
		maxConcurrent: maxConcurrent,
	}
}

// Submit validates the checkout form against the cart, creates the order
// and initiates the mobile-money charge. The cart is left untouched: it is
// only cleared once the payment is confirmed PAID. At most one submission
// runs at a time; concurrent calls fail with ErrSubmissionInFlight rather
// than risking a second order-create for the same cart.
func (s *Service) Submit(ctx context.Context, form domain.Form) (domain.Submission, error) {
	if !s.begin() {
		return domain.Submission{}, ErrSubmissionInFlight
	}
	defer s.end()

	items, err := s.cart.Items(ctx)
	if err != nil {
		return domain.Submission{}, err
	}
	if len(items) == 0 {
		return domain.Submission{}, ErrEmptyCart
	}

	if strings.TrimSpace(form.FullName) == "" || strings.TrimSpace(form.Phone) == "" {
		return domain.Submission{}, ErrMissingFields
	}
	if hasPhysical(items) && strings.TrimSpace(form.Address) == "" {
		return domain.Submission{}, ErrAddressRequired
	}

	// Fail fast on the phone before any network call.
	msisdn, err := phone.Normalize(form.Phone)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}

	req := CreateOrderRequest{
		FullName: strings.TrimSpace(form.FullName),
		Phone:    strings.TrimSpace(form.Phone),
		Email:    strings.TrimSpace(form.Email),
		Address:  strings.TrimSpace(form.Address),
	}
	for _, it := range items {
		req.Items = append(req.Items, OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	created, err := s.orders.CreateOrder(ctx, req)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}
	if created.ID == "" {
		return domain.Submission{}, ErrOrderCreationFailed
	}

	referenceID, err := s.payments.Initiate(ctx, created.ID, msisdn)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("%w: %v", ErrPaymentInitiationFailed, err)
	}
	if referenceID == "" {
		return domain.Submission{}, ErrPaymentInitiationFailed
	}

	return domain.Submission{
		OrderID:        created.ID,
		OrderReference: created.Reference,
		ReferenceID:    referenceID,
		MSISDN:         msisdn,
	}, nil
}

// Quote re-prices the cart against the catalog, fetching products
// concurrently. The backend owns the final order total; this is the
// client-side figure shown before submission.
func (s *Service) Quote(ctx context.Context, items []CartItem) (domain.Quote, error) {
	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			product, err := s.catalog.Product(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}

			lineTotal := product.Amount * int64(it.Quantity)
			lines[idx] = domain.QuoteLine{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  it.Quantity,
				UnitPrice: domain.Money{
					Currency: product.Currency,
					Amount:   product.Amount,
				},
				LineTotal: domain.Money{
					Currency: product.Currency,
					Amount:   lineTotal,
				},
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	var totalAmount int64
	for _, line := range lines {
		totalAmount += line.LineTotal.Amount
	}

	return domain.Quote{
		Lines: lines,
		Total: domain.Money{
			Currency: lines[0].LineTotal.Currency,
			Amount:   totalAmount,
		},
	}, nil
}

func (s *Service) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *Service) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

func hasPhysical(items []CartItem) bool {
	for _, it := range items {
		if it.Physical {
			return true
		}
	}
	return false
}
