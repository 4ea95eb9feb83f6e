package domain

const DefaultCurrency = "UGX"

type Kind string

const (
	KindPhysical Kind = "PHYSICAL"
	KindDigital  Kind = "DIGITAL"
)

type Money struct {
	Currency string
	Amount   int64
}

type Item struct {
	ProductID string
	Name      string
	UnitPrice Money
	Quantity  int32
	Kind      Kind
	ImageURL  string
}

// Total sums unit price times quantity over all lines. It is recomputed
// from the lines on every call, never cached.
func Total(items []Item) Money {
	total := Money{Currency: DefaultCurrency}
	for _, it := range items {
		if it.UnitPrice.Currency != "" {
			total.Currency = it.UnitPrice.Currency
		}
		total.Amount += it.UnitPrice.Amount * int64(it.Quantity)
	}
	return total
}

func HasPhysical(items []Item) bool {
	for _, it := range items {
		if it.Kind == KindPhysical {
			return true
		}
	}
	return false
}
