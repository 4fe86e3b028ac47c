package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
)

func newTestOrderService() (*OrderService, *fakeOrderRepo, *fakeNurseryRepo, *fakePaymentGateway) {
	orders := newFakeOrderRepo()
	nurseries := newFakeNurseryRepo()
	gateway := &fakePaymentGateway{sessionID: "cs_test_1", sessionURL: "https://pay.example/cs_test_1"}
	svc := NewOrderService(OrderServiceOptions{
		Orders:    orders,
		Settings:  &fakeSettingsRepo{},
		Nurseries: nurseries,
		Payments:  gateway,
	})
	return svc, orders, nurseries, gateway
}

func TestOrderService_UpdateStatusTransitions(t *testing.T) {
	svc, orders, nurseries, _ := newTestOrderService()
	ctx := context.Background()

	nursery := nurseries.add(&model.Nursery{OwnerID: "owner-1"})
	order := orders.add(&model.Order{NurseryID: nursery.ID, UserID: "buyer-1", Status: model.OrderStatusPending})

	sess := nurseryAdminSession("owner-1")

	// Skipping processing is not a legal transition.
	_, err := svc.UpdateStatus(ctx, sess, order.ID, model.OrderStatusShipped)
	assert.True(t, apperrors.IsConflict(err))

	updated, err := svc.UpdateStatus(ctx, sess, order.ID, model.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, updated.Status)

	updated, err = svc.UpdateStatus(ctx, sess, order.ID, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, updated.Status)

	// Shipped orders cannot be cancelled.
	_, err = svc.UpdateStatus(ctx, sess, order.ID, model.OrderStatusCancelled)
	assert.True(t, apperrors.IsConflict(err))
}

func TestOrderService_UpdateStatusForeignNursery(t *testing.T) {
	svc, orders, nurseries, _ := newTestOrderService()
	ctx := context.Background()

	theirs := nurseries.add(&model.Nursery{OwnerID: "owner-2"})
	nurseries.add(&model.Nursery{OwnerID: "owner-1"})
	order := orders.add(&model.Order{NurseryID: theirs.ID, UserID: "buyer-1", Status: model.OrderStatusPending})

	_, err := svc.UpdateStatus(ctx, nurseryAdminSession("owner-1"), order.ID, model.OrderStatusProcessing)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestOrderService_UpdateStatusShopperForbidden(t *testing.T) {
	svc, orders, nurseries, _ := newTestOrderService()
	ctx := context.Background()

	nursery := nurseries.add(&model.Nursery{OwnerID: "owner-1"})
	order := orders.add(&model.Order{NurseryID: nursery.ID, UserID: "buyer-1", Status: model.OrderStatusPending})

	shopper := domainauth.Session{UserID: "buyer-1", Role: domainauth.RoleUser}
	_, err := svc.UpdateStatus(ctx, shopper, order.ID, model.OrderStatusCancelled)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestOrderService_ListScoping(t *testing.T) {
	svc, orders, nurseries, _ := newTestOrderService()
	ctx := context.Background()

	nursery := nurseries.add(&model.Nursery{OwnerID: "owner-1"})
	orders.add(&model.Order{NurseryID: nursery.ID, UserID: "buyer-1"})
	orders.add(&model.Order{NurseryID: nursery.ID, UserID: "buyer-2"})
	orders.add(&model.Order{NurseryID: "other-nursery", UserID: "buyer-1"})

	shopper := domainauth.Session{UserID: "buyer-1", Role: domainauth.RoleUser}
	mine, err := svc.List(ctx, shopper, model.OrdersListOptions{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	sellers, err := svc.List(ctx, nurseryAdminSession("owner-1"), model.OrdersListOptions{})
	require.NoError(t, err)
	assert.Len(t, sellers, 2)

	all, err := svc.List(ctx, superAdminSession(), model.OrdersListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrderService_GetAuthorization(t *testing.T) {
	svc, orders, nurseries, _ := newTestOrderService()
	ctx := context.Background()

	nursery := nurseries.add(&model.Nursery{OwnerID: "owner-1"})
	order := orders.add(&model.Order{NurseryID: nursery.ID, UserID: "buyer-1"})

	buyer := domainauth.Session{UserID: "buyer-1", Role: domainauth.RoleUser}
	_, _, err := svc.Get(ctx, buyer, order.ID)
	assert.NoError(t, err)

	stranger := domainauth.Session{UserID: "buyer-2", Role: domainauth.RoleUser}
	_, _, err = svc.Get(ctx, stranger, order.ID)
	assert.True(t, apperrors.IsForbidden(err))

	_, _, err = svc.Get(ctx, nurseryAdminSession("owner-1"), order.ID)
	assert.NoError(t, err)
}

func TestOrderService_StatsScoping(t *testing.T) {
	svc, orders, nurseries, _ := newTestOrderService()
	ctx := context.Background()

	nursery := nurseries.add(&model.Nursery{OwnerID: "owner-1"})
	orders.add(&model.Order{
		NurseryID:       nursery.ID,
		PaymentStatus:   model.PaymentStatusPaid,
		TotalMinor:      29900,
		CommissionMinor: 2990,
	})
	orders.add(&model.Order{NurseryID: nursery.ID, Status: model.OrderStatusPending})
	orders.add(&model.Order{
		NurseryID:     "other-nursery",
		PaymentStatus: model.PaymentStatusPaid,
		TotalMinor:    9900,
	})

	mine, err := svc.Stats(ctx, nurseryAdminSession("owner-1"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.TotalOrders)
	assert.Equal(t, int64(1), mine.PaidOrders)
	assert.Equal(t, int64(29900), mine.RevenueMinor)
	assert.Equal(t, int64(2990), mine.CommissionMinor)

	all, err := svc.Stats(ctx, superAdminSession())
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.TotalOrders)
	assert.Equal(t, int64(39800), all.RevenueMinor)

	shopper := domainauth.Session{UserID: "buyer-1", Role: domainauth.RoleUser}
	_, err = svc.Stats(ctx, shopper)
	assert.True(t, apperrors.IsForbidden(err))
}

func checkoutRequest() *model.CreateOrderRequest {
	return &model.CreateOrderRequest{
		CustomerName:    "A Shopper",
		CustomerEmail:   "shopper@example.com",
		ShippingAddress: "12 Garden Lane",
	}
}

func TestOrderService_CheckoutAttachesPaymentSession(t *testing.T) {
	svc, orders, _, _ := newTestOrderService()
	ctx := context.Background()

	order := orders.add(&model.Order{UserID: "buyer-1", PaymentStatus: model.PaymentStatusPending})
	lines := []model.CartLine{{ProductID: "plant-1", Quantity: 1, Name: "Snake Plant", PriceMinor: 29900}}
	svc.placeOrders = func(context.Context, domainauth.Session, *model.CreateOrderRequest, float64) ([]*model.Order, []model.CartLine, error) {
		return []*model.Order{order}, lines, nil
	}

	shopper := domainauth.Session{UserID: "buyer-1", Role: domainauth.RoleUser}
	res, err := svc.Checkout(ctx, shopper, checkoutRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/cs_test_1", res.PaymentURL)
	require.NotNil(t, order.StripeSessionID)
	assert.Equal(t, "cs_test_1", *order.StripeSessionID)
}

func TestOrderService_CheckoutCompensatesPaymentFailure(t *testing.T) {
	svc, _, _, gateway := newTestOrderService()
	ctx := context.Background()

	placed := []*model.Order{{ID: "order-1", UserID: "buyer-1"}}
	lines := []model.CartLine{{ProductID: "plant-1", Quantity: 2}}
	svc.placeOrders = func(context.Context, domainauth.Session, *model.CreateOrderRequest, float64) ([]*model.Order, []model.CartLine, error) {
		return placed, lines, nil
	}

	var undone bool
	svc.undoCheckout = func(_ context.Context, userID string, orders []*model.Order, gotLines []model.CartLine) error {
		undone = true
		assert.Equal(t, "buyer-1", userID)
		assert.Equal(t, placed, orders)
		assert.Equal(t, lines, gotLines)
		return nil
	}
	gateway.createErr = errors.New("payment provider unavailable")

	shopper := domainauth.Session{UserID: "buyer-1", Role: domainauth.RoleUser}
	_, err := svc.Checkout(ctx, shopper, checkoutRequest())
	require.Error(t, err)
	assert.True(t, undone)
}

func TestOrderService_CheckoutCompensatesAttachFailure(t *testing.T) {
	svc, _, _, _ := newTestOrderService()
	ctx := context.Background()

	// The order was never added to the repo, so attaching the session fails.
	placed := []*model.Order{{ID: "missing-order", UserID: "buyer-1"}}
	svc.placeOrders = func(context.Context, domainauth.Session, *model.CreateOrderRequest, float64) ([]*model.Order, []model.CartLine, error) {
		return placed, []model.CartLine{{ProductID: "plant-1", Quantity: 1}}, nil
	}

	var undone bool
	svc.undoCheckout = func(context.Context, string, []*model.Order, []model.CartLine) error {
		undone = true
		return nil
	}

	shopper := domainauth.Session{UserID: "buyer-1", Role: domainauth.RoleUser}
	_, err := svc.Checkout(ctx, shopper, checkoutRequest())
	require.Error(t, err)
	assert.True(t, undone)
}

func TestOrderService_CheckoutCompensationFailureIsInternal(t *testing.T) {
	svc, _, _, gateway := newTestOrderService()
	ctx := context.Background()

	svc.placeOrders = func(context.Context, domainauth.Session, *model.CreateOrderRequest, float64) ([]*model.Order, []model.CartLine, error) {
		return []*model.Order{{ID: "order-1", UserID: "buyer-1"}},
			[]model.CartLine{{ProductID: "plant-1", Quantity: 1}}, nil
	}
	svc.undoCheckout = func(context.Context, string, []*model.Order, []model.CartLine) error {
		return errors.New("database unavailable")
	}
	gateway.createErr = errors.New("payment provider unavailable")

	shopper := domainauth.Session{UserID: "buyer-1", Role: domainauth.RoleUser}
	_, err := svc.Checkout(ctx, shopper, checkoutRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.GetCode(err))
}

func TestOrderService_WebhookMarksPaid(t *testing.T) {
	svc, orders, _, gateway := newTestOrderService()
	ctx := context.Background()

	sessionID := "cs_test_1"
	order := orders.add(&model.Order{
		UserID:          "buyer-1",
		PaymentStatus:   model.PaymentStatusPending,
		StripeSessionID: &sessionID,
	})

	gateway.verified = sessionID
	require.NoError(t, svc.HandlePaymentWebhook(ctx, []byte(`{}`), "sig"))
	assert.Equal(t, model.PaymentStatusPaid, order.PaymentStatus)
}

func TestOrderService_WebhookIgnoresOtherEvents(t *testing.T) {
	svc, orders, _, gateway := newTestOrderService()

	sessionID := "cs_test_1"
	order := orders.add(&model.Order{
		PaymentStatus:   model.PaymentStatusPending,
		StripeSessionID: &sessionID,
	})

	gateway.verified = "" // event type the marketplace does not act on
	require.NoError(t, svc.HandlePaymentWebhook(context.Background(), []byte(`{}`), "sig"))
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
}

func TestOrderService_WebhookBadSignature(t *testing.T) {
	svc, _, _, gateway := newTestOrderService()

	gateway.verifyErr = errors.New("bad signature")
	err := svc.HandlePaymentWebhook(context.Background(), []byte(`{}`), "sig")
	assert.True(t, apperrors.IsUnauthorized(err))
}
