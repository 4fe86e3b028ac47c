package ports

import "context"

// CheckoutLine is one item priced for a payment session. UnitAmountMinor is
// in the currency's minor unit.
type CheckoutLine struct {
	Name            string
	UnitAmountMinor int64
	Quantity        int64
	ImageURL        string
}

// CheckoutSessionInput groups parameters for creating a hosted payment page.
type CheckoutSessionInput struct {
	OrderID    string
	UserID     string
	Email      string
	Lines      []CheckoutLine
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the created hosted payment page.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentGateway creates hosted checkout sessions and verifies async
// payment notifications.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (*CheckoutSession, error)

	// VerifyWebhook checks the event signature and returns the checkout
	// session ID when payload is a completed checkout, or "" for event
	// types the marketplace does not act on.
	VerifyWebhook(payload []byte, signature string) (string, error)
}
