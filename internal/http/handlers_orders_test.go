package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/plantflix/marketplace/internal/errors"
)

type fakeWebhookService struct {
	gotPayload   []byte
	gotSignature string
	err          error
}

func (f *fakeWebhookService) HandlePaymentWebhook(_ context.Context, payload []byte, signature string) error {
	f.gotPayload = payload
	f.gotSignature = signature
	return f.err
}

func TestWebhookHandlers_Stripe(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		svc := &fakeWebhookService{}
		h := &WebhookHandlers{Orders: svc}

		req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(`{"type":"checkout.session.completed"}`))
		req.Header.Set("Stripe-Signature", "t=1,v1=abc")
		rec := httptest.NewRecorder()
		h.Stripe(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "t=1,v1=abc", svc.gotSignature)
		assert.JSONEq(t, `{"received":"true"}`, rec.Body.String())
	})

	t.Run("bad signature", func(t *testing.T) {
		svc := &fakeWebhookService{err: apperrors.Unauthorized("webhook verification failed")}
		h := &WebhookHandlers{Orders: svc}

		req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.Stripe(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
