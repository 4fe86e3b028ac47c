// Package stripe implements the payment gateway port using Stripe hosted
// checkout sessions and webhook signature verification.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	stripego "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/plantflix/marketplace/internal/ports"
)

// Config holds Stripe API credentials.
type Config struct {
	SecretKey     string
	WebhookSecret string
	// Currency is the ISO code used for all sessions. The storefront sells
	// in Indian rupees; amounts travel in paise.
	Currency string
}

// Gateway creates checkout sessions via the Stripe API.
type Gateway struct {
	api           *client.API
	webhookSecret string
	currency      string
}

var _ ports.PaymentGateway = (*Gateway)(nil)

// New creates a Gateway from config.
func New(cfg Config) (*Gateway, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	currency := cfg.Currency
	if currency == "" {
		currency = "inr"
	}
	return &Gateway{
		api:           client.New(cfg.SecretKey, nil),
		webhookSecret: cfg.WebhookSecret,
		currency:      currency,
	}, nil
}

// CreateCheckoutSession builds a hosted payment page for the given order.
func (g *Gateway) CreateCheckoutSession(
	ctx context.Context,
	in ports.CheckoutSessionInput,
) (*ports.CheckoutSession, error) {
	if len(in.Lines) == 0 {
		return nil, errors.New("checkout session requires at least one line")
	}

	lineItems := make([]*stripego.CheckoutSessionLineItemParams, 0, len(in.Lines))
	for _, line := range in.Lines {
		priceData := &stripego.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripego.String(g.currency),
			UnitAmount: stripego.Int64(line.UnitAmountMinor),
			ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripego.String(line.Name),
			},
		}
		if line.ImageURL != "" {
			priceData.ProductData.Images = []*string{stripego.String(line.ImageURL)}
		}
		lineItems = append(lineItems, &stripego.CheckoutSessionLineItemParams{
			PriceData: priceData,
			Quantity:  stripego.Int64(line.Quantity),
		})
	}

	params := &stripego.CheckoutSessionParams{
		Mode:       stripego.String(string(stripego.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripego.String(in.SuccessURL),
		CancelURL:  stripego.String(in.CancelURL),
	}
	params.Context = ctx
	if in.Email != "" {
		params.CustomerEmail = stripego.String(in.Email)
	}
	params.AddMetadata("order_id", in.OrderID)
	params.AddMetadata("user_id", in.UserID)

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe checkout session: %w", err)
	}
	return &ports.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// VerifyWebhook validates the event signature and returns the checkout
// session ID for completed checkouts. Other event types return "".
func (g *Gateway) VerifyWebhook(payload []byte, signature string) (string, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return "", fmt.Errorf("verify stripe webhook: %w", err)
	}

	if event.Type != stripego.EventTypeCheckoutSessionCompleted {
		return "", nil
	}

	var sess stripego.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return "", fmt.Errorf("decode checkout session payload: %w", err)
	}
	return sess.ID, nil
}
