package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"roopshree-backend/common/apperrors"
	"roopshree-backend/kafka"
	"roopshree-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeOrder(t *testing.T, svc *OrderService, userID, productID uuid.UUID, qty int) *models.Order {
	t.Helper()
	order, err := svc.Checkout(context.Background(), userID, &CheckoutRequest{
		ProductID: productID,
		Quantity:  qty,
	})
	require.NoError(t, err)
	return order
}

func TestCheckoutComputesTotal(t *testing.T) {
	db := setupTestDB(t)
	producer := &mockProducer{}
	svc := newOrderService(db, producer)
	user := seedUser(t, db, models.RoleUser, "priya@example.com")
	product := seedProduct(t, db, 250)

	order := placeOrder(t, svc, user.ID, product.ID, 3)

	assert.Equal(t, models.OrderPlaced, order.Status)
	assert.Equal(t, 750, order.TotalAmount)
	require.Len(t, producer.events, 1)
	assert.Equal(t, "order.placed", producer.events[0].Type)
	assert.Equal(t, order.ID.String(), producer.events[0].OrderID)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, nil)
	user := seedUser(t, db, models.RoleUser, "priya@example.com")

	_, err := svc.Checkout(context.Background(), user.ID, &CheckoutRequest{
		ProductID: uuid.New(),
		Quantity:  1,
	})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestCancelByOwnerRestocks(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, nil)
	stockSvc := newStockService(db)
	admin := seedUser(t, db, models.RoleAdmin, "admin@roopshree.in")
	user := seedUser(t, db, models.RoleUser, "priya@example.com")
	product := seedProduct(t, db, 250)

	_, err := stockSvc.Create(context.Background(), product.ID, 5, admin.ID)
	require.NoError(t, err)

	order := placeOrder(t, svc, user.ID, product.ID, 2)

	cancelled, err := svc.Cancel(context.Background(), order.ID, identityOf(user))
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	stock, err := stockSvc.Get(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stock.CurrentStock)

	history, err := stockSvc.History(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 5, history[1].FromQuantity)
	assert.Equal(t, 7, history[1].ToQuantity)
	assert.Nil(t, history[1].UpdatedBy)
}

func TestCancelByStrangerForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, nil)
	stockSvc := newStockService(db)
	admin := seedUser(t, db, models.RoleAdmin, "admin@roopshree.in")
	user := seedUser(t, db, models.RoleUser, "priya@example.com")
	other := seedUser(t, db, models.RoleUser, "arjun@example.com")
	product := seedProduct(t, db, 250)

	_, err := stockSvc.Create(context.Background(), product.ID, 5, admin.ID)
	require.NoError(t, err)
	order := placeOrder(t, svc, user.ID, product.ID, 1)

	_, err = svc.Cancel(context.Background(), order.ID, identityOf(other))
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.Code)

	// Admin can cancel on the user's behalf.
	cancelled, err := svc.Cancel(context.Background(), order.ID, identityOf(admin))
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)
}

func TestCancelTerminalOrderRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, nil)
	stockSvc := newStockService(db)
	admin := seedUser(t, db, models.RoleAdmin, "admin@roopshree.in")
	user := seedUser(t, db, models.RoleUser, "priya@example.com")
	product := seedProduct(t, db, 250)

	_, err := stockSvc.Create(context.Background(), product.ID, 5, admin.ID)
	require.NoError(t, err)
	order := placeOrder(t, svc, user.ID, product.ID, 2)

	_, err = svc.Cancel(context.Background(), order.ID, identityOf(user))
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), order.ID, identityOf(user))
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Contains(t, appErr.Message, "CANCELLED")

	// Second cancel must not restock again.
	stock, err := stockSvc.Get(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stock.CurrentStock)
}

func TestCancelRollsBackWhenRestockFails(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, nil)
	user := seedUser(t, db, models.RoleUser, "priya@example.com")
	// No stock record for this product: the restock inside the cancel
	// transaction fails, so the status flip must roll back with it.
	product := seedProduct(t, db, 250)
	order := placeOrder(t, svc, user.ID, product.ID, 2)

	_, err := svc.Cancel(context.Background(), order.ID, identityOf(user))
	require.Error(t, err)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderPlaced, stored.Status, "cancel must be atomic with restock")
}

func TestSetStatusRequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, nil)
	user := seedUser(t, db, models.RoleUser, "priya@example.com")
	product := seedProduct(t, db, 250)
	order := placeOrder(t, svc, user.ID, product.ID, 1)

	_, err := svc.SetStatus(context.Background(), order.ID, models.OrderOutOfDelivery, identityOf(user), nil)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.Code)
}

func TestSetStatusDispatchNeedsAgent(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, nil)
	admin := seedUser(t, db, models.RoleAdmin, "admin@roopshree.in")
	user := seedUser(t, db, models.RoleUser, "priya@example.com")
	agent := seedUser(t, db, models.RoleDeliveryBoy, "ravi@roopshree.in")
	product := seedProduct(t, db, 250)
	order := placeOrder(t, svc, user.ID, product.ID, 1)

	_, err := svc.SetStatus(context.Background(), order.ID, models.OrderOutOfDelivery, identityOf(admin), nil)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	// A plain user cannot be handed the delivery.
	_, err = svc.SetStatus(context.Background(), order.ID, models.OrderOutOfDelivery, identityOf(admin), &user.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Contains(t, appErr.Message, "delivery agent")

	updated, err := svc.SetStatus(context.Background(), order.ID, models.OrderOutOfDelivery, identityOf(admin), &agent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderOutOfDelivery, updated.Status)
	require.NotNil(t, updated.DeliveryBoyID)
	assert.Equal(t, agent.ID, *updated.DeliveryBoyID)
}

func TestSetStatusRejectsCancelAndPlaced(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, nil)
	admin := seedUser(t, db, models.RoleAdmin, "admin@roopshree.in")
	user := seedUser(t, db, models.RoleUser, "priya@example.com")
	product := seedProduct(t, db, 250)
	order := placeOrder(t, svc, user.ID, product.ID, 1)

	var appErr *apperrors.Error

	_, err := svc.SetStatus(context.Background(), order.ID, models.OrderCancelled, identityOf(admin), nil)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Contains(t, appErr.Message, "cancel endpoint")

	_, err = svc.SetStatus(context.Background(), order.ID, models.OrderPlaced, identityOf(admin), nil)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	_, err = svc.SetStatus(context.Background(), order.ID, models.OrderStatus("SHIPPED"), identityOf(admin), nil)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestSetStatusTerminalRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, nil)
	stockSvc := newStockService(db)
	admin := seedUser(t, db, models.RoleAdmin, "admin@roopshree.in")
	user := seedUser(t, db, models.RoleUser, "priya@example.com")
	agent := seedUser(t, db, models.RoleDeliveryBoy, "ravi@roopshree.in")
	product := seedProduct(t, db, 250)

	_, err := stockSvc.Create(context.Background(), product.ID, 5, admin.ID)
	require.NoError(t, err)
	order := placeOrder(t, svc, user.ID, product.ID, 1)

	_, err = svc.Cancel(context.Background(), order.ID, identityOf(user))
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), order.ID, models.OrderOutOfDelivery, identityOf(admin), &agent.ID)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestAssignDeliveryKeepsStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, nil)
	admin := seedUser(t, db, models.RoleAdmin, "admin@roopshree.in")
	user := seedUser(t, db, models.RoleUser, "priya@example.com")
	agent := seedUser(t, db, models.RoleDeliveryBoy, "ravi@roopshree.in")
	product := seedProduct(t, db, 250)
	order := placeOrder(t, svc, user.ID, product.ID, 1)

	updated, err := svc.AssignDelivery(context.Background(), order.ID, agent.ID, identityOf(admin))
	require.NoError(t, err)
	assert.Equal(t, models.OrderPlaced, updated.Status)
	require.NotNil(t, updated.DeliveryBoyID)
	assert.Equal(t, agent.ID, *updated.DeliveryBoyID)

	// Dispatch without repeating the agent now works.
	dispatched, err := svc.SetStatus(context.Background(), order.ID, models.OrderOutOfDelivery, identityOf(admin), nil)
	require.NoError(t, err)
	assert.Equal(t, models.OrderOutOfDelivery, dispatched.Status)
}

func TestGetOrderVisibility(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, nil)
	admin := seedUser(t, db, models.RoleAdmin, "admin@roopshree.in")
	user := seedUser(t, db, models.RoleUser, "priya@example.com")
	other := seedUser(t, db, models.RoleUser, "arjun@example.com")
	agent := seedUser(t, db, models.RoleDeliveryBoy, "ravi@roopshree.in")
	product := seedProduct(t, db, 250)
	order := placeOrder(t, svc, user.ID, product.ID, 1)

	_, err := svc.AssignDelivery(context.Background(), order.ID, agent.ID, identityOf(admin))
	require.NoError(t, err)

	for _, actor := range []*models.User{user, admin, agent} {
		_, err := svc.GetOrder(context.Background(), order.ID, identityOf(actor))
		assert.NoError(t, err, "visible to %s", actor.Role)
	}

	_, err = svc.GetOrder(context.Background(), order.ID, identityOf(other))
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.Code)
}

func TestListForUserPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, nil)
	user := seedUser(t, db, models.RoleUser, "priya@example.com")
	other := seedUser(t, db, models.RoleUser, "arjun@example.com")
	product := seedProduct(t, db, 100)

	for i := 0; i < 5; i++ {
		placeOrder(t, svc, user.ID, product.ID, 1)
	}
	placeOrder(t, svc, other.ID, product.ID, 1)

	resp, err := svc.ListForUser(context.Background(), user.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 2)
	assert.Equal(t, int64(5), resp.Meta.TotalOrders)
	assert.Equal(t, int64(3), resp.Meta.TotalPages)
	assert.True(t, resp.Meta.HasMore)

	resp, err = svc.ListForUser(context.Background(), user.ID, 3, 2)
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 1)
	assert.False(t, resp.Meta.HasMore)
}

func TestListForDeliveryBoy(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, nil)
	admin := seedUser(t, db, models.RoleAdmin, "admin@roopshree.in")
	user := seedUser(t, db, models.RoleUser, "priya@example.com")
	agent := seedUser(t, db, models.RoleDeliveryBoy, "ravi@roopshree.in")
	product := seedProduct(t, db, 100)

	assigned := placeOrder(t, svc, user.ID, product.ID, 1)
	placeOrder(t, svc, user.ID, product.ID, 1)

	_, err := svc.AssignDelivery(context.Background(), assigned.ID, agent.ID, identityOf(admin))
	require.NoError(t, err)

	resp, err := svc.ListForDeliveryBoy(context.Background(), agent.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, assigned.ID, resp.Orders[0].ID)
}

func TestPublishFailureDoesNotFailCheckout(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, failingProducer{})
	user := seedUser(t, db, models.RoleUser, "priya@example.com")
	product := seedProduct(t, db, 100)

	order := placeOrder(t, svc, user.ID, product.ID, 1)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderPlaced, stored.Status)
}

type failingProducer struct{}

func (failingProducer) PublishOrderEvent(ctx context.Context, evt kafka.OrderEvent) error {
	return errors.New("broker unreachable")
}

func (failingProducer) Close() error { return nil }
