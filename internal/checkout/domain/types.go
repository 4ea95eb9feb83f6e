package domain

type Form struct {
	FullName string
	Phone    string
	Email    string
	Address  string
}

// Submission is what a successful checkout hands to the payment
// confirmation engine.
type Submission struct {
	OrderID        string
	OrderReference string
	ReferenceID    string
	MSISDN         string
}

type Money struct {
	Currency string
	Amount   int64
}

type QuoteLine struct {
	ProductID string
	Name      string
	Quantity  int32
	UnitPrice Money
	LineTotal Money
}

type Quote struct {
	Lines []QuoteLine
	Total Money
}
