package billing

import "context"

// CheckoutParams describes the hosted checkout session to create: a
// recurring monthly subscription priced in cents, linked back to the user
// through metadata.
type CheckoutParams struct {
	CustomerEmail string
	UserID        string
	AmountCents   int64
	Currency      string
	ProductName   string
	Description   string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the provider's view of a checkout.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentStatus   string
	PaymentIntentID string
}

// PaymentStatusPaid is the provider status meaning the payment cleared.
const PaymentStatusPaid = "paid"

// CheckoutProvider abstracts the payment provider so tests can substitute a
// fake.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}
