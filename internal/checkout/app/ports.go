package app

import "context"

type CartItem struct {
	ProductID  string
	Name       string
	Quantity   int32
	UnitAmount int64
	Currency   string
	Physical   bool
}

type CartReader interface {
	Items(ctx context.Context) ([]CartItem, error)
}

type Product struct {
	ID       string
	Name     string
	Currency string
	Amount   int64
}

type CatalogReader interface {
	Product(ctx context.Context, productID string) (Product, error)
}

type CreateOrderRequest struct {
	FullName string
	Phone    string
	Email    string
	Address  string
	Items    []OrderItem
}

type OrderItem struct {
	ProductID string
	Quantity  int32
}

type CreatedOrder struct {
	ID        string
	Reference string
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (CreatedOrder, error)
}

// PaymentInitiator starts the out-of-band mobile-money charge and returns
// the gateway reference used for status polling.
type PaymentInitiator interface {
	Initiate(ctx context.Context, orderID, msisdn string) (string, error)
}
