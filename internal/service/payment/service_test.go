package payment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
	"github.com/vladislavdragonenkov/shopease/internal/storage/memory"
)

type fixture struct {
	svc     Service
	orders  domain.OrderRepository
	outbox  *memory.OutboxRepositoryInMemory
	gateway *MockGateway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	orders := memory.NewOrderRepository()
	payments := memory.NewPaymentRepository(orders)
	outbox := memory.NewOutboxRepository()
	gateway := NewMockGateway()

	return &fixture{
		svc:     NewServiceWithoutMetrics(orders, payments, gateway, outbox, nil),
		orders:  orders,
		outbox:  outbox,
		gateway: gateway,
	}
}

func pendingOrder(t *testing.T, f *fixture, userID string, total int64) domain.Order {
	t.Helper()

	id := uuid.NewString()
	order := domain.Order{
		ID:         id,
		UserID:     userID,
		Status:     domain.OrderStatusPending,
		TotalMinor: total,
		Items: []domain.OrderLine{
			{ID: uuid.NewString(), OrderID: id, ProductID: "p1", Quantity: 1, UnitPriceMinor: total},
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.orders.Create(order))
	return order
}

func customer(id string) domain.AuthContext {
	return domain.AuthContext{UserID: id, Role: domain.RoleCustomer}
}

func TestSettleMarksOrderPaid(t *testing.T) {
	f := newFixture(t)
	order := pendingOrder(t, f, "user-1", 2500)

	payment, err := f.svc.Settle(customer("user-1"), order.ID, 2500, "card", "4242")
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusSucceeded, payment.Status)
	assert.Equal(t, "txn-test", payment.TransactionRef)
	assert.Equal(t, int64(2500), payment.AmountMinor)

	got, err := f.orders.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, got.Status)

	pending := f.outbox.AllPending()
	require.Len(t, pending, 1)
	assert.Equal(t, "order.paid", pending[0].EventType)
}

func TestSettleDeclineKeepsOrderPending(t *testing.T) {
	f := newFixture(t)
	order := pendingOrder(t, f, "user-1", 2500)
	f.gateway.ChargeErr = domain.ErrPaymentDeclined

	_, err := f.svc.Settle(customer("user-1"), order.ID, 2500, "card", "4242")
	assert.ErrorIs(t, err, domain.ErrPaymentDeclined)

	got, err := f.orders.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, got.Status)

	// Повторная попытка после отказа должна пройти.
	f.gateway.ChargeErr = nil
	_, err = f.svc.Settle(customer("user-1"), order.ID, 2500, "card", "4242")
	assert.NoError(t, err)
}

func TestSettleRejectsDoublePayment(t *testing.T) {
	f := newFixture(t)
	order := pendingOrder(t, f, "user-1", 2500)

	_, err := f.svc.Settle(customer("user-1"), order.ID, 2500, "card", "4242")
	require.NoError(t, err)

	_, err = f.svc.Settle(customer("user-1"), order.ID, 2500, "card", "4242")
	assert.ErrorIs(t, err, domain.ErrOrderStateConflict)
	assert.Equal(t, 1, f.gateway.ChargeCalls)
}

func TestSettleValidation(t *testing.T) {
	f := newFixture(t)
	order := pendingOrder(t, f, "user-1", 2500)

	_, err := f.svc.Settle(domain.AuthContext{}, order.ID, 2500, "card", "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = f.svc.Settle(customer("user-1"), order.ID, 2500, "", "")
	assert.ErrorIs(t, err, domain.ErrPaymentMethodRequired)

	_, err = f.svc.Settle(customer("user-1"), order.ID, -1, "card", "")
	assert.ErrorIs(t, err, domain.ErrAmountNegative)

	_, err = f.svc.Settle(customer("user-1"), order.ID, 100, "card", "")
	assert.ErrorIs(t, err, domain.ErrAmountMismatch)

	_, err = f.svc.Settle(customer("user-2"), order.ID, 2500, "card", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Settle(customer("user-1"), uuid.NewString(), 2500, "card", "")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	// Все отказы до шлюза: списаний быть не должно.
	assert.Zero(t, f.gateway.ChargeCalls)
}

func TestGetByOrder(t *testing.T) {
	f := newFixture(t)
	order := pendingOrder(t, f, "user-1", 2500)

	_, err := f.svc.Settle(customer("user-1"), order.ID, 2500, "card", "")
	require.NoError(t, err)

	payment, err := f.svc.GetByOrder(customer("user-1"), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, payment.OrderID)

	_, err = f.svc.GetByOrder(customer("user-2"), order.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
