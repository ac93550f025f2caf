package checkout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
	"github.com/vladislavdragonenkov/shopease/internal/storage/memory"
)

type fixture struct {
	svc    Service
	carts  domain.CartRepository
	orders domain.OrderRepository
	outbox *memory.OutboxRepositoryInMemory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	catalog := memory.NewCatalogRepository()
	catalog.PutProduct(domain.Product{ID: "p1", Name: "Sneakers", PriceMinor: 1000})
	catalog.PutProduct(domain.Product{ID: "p2", Name: "T-Shirt", PriceMinor: 500})

	carts := memory.NewCartRepository(catalog)
	orders := memory.NewOrderRepository()
	outbox := memory.NewOutboxRepository()

	return &fixture{
		svc:    NewServiceWithoutMetrics(carts, orders, outbox, nil),
		carts:  carts,
		orders: orders,
		outbox: outbox,
	}
}

func customer(id string) domain.AuthContext {
	return domain.AuthContext{UserID: id, Role: domain.RoleCustomer}
}

func admin() domain.AuthContext {
	return domain.AuthContext{UserID: "admin-1", Role: domain.RoleAdmin}
}

func fillCart(t *testing.T, f *fixture, userID string) domain.Cart {
	t.Helper()

	cart, err := f.carts.GetOrCreate(userID)
	require.NoError(t, err)
	require.NoError(t, f.carts.UpsertLine(cart.ID, "p1", domain.NoVariant(), 2))
	require.NoError(t, f.carts.UpsertLine(cart.ID, "p2", domain.NoVariant(), 1))
	return cart
}

func TestCheckoutCartCreatesPendingSnapshot(t *testing.T) {
	f := newFixture(t)
	cart := fillCart(t, f, "user-1")

	order, err := f.svc.CheckoutCart(customer("user-1"))
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2500), order.TotalMinor)
	assert.Len(t, order.Items, 2)

	// Корзина очищена после оформления.
	lines, err := f.carts.ListLines(cart.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// Событие order.created попало в outbox.
	pending := f.outbox.AllPending()
	require.Len(t, pending, 1)
	assert.Equal(t, "order.created", pending[0].EventType)
	assert.Equal(t, order.ID, pending[0].AggregateID)
}

func TestCheckoutCartSnapshotSurvivesPriceChange(t *testing.T) {
	catalog := memory.NewCatalogRepository()
	catalog.PutProduct(domain.Product{ID: "p1", Name: "Sneakers", PriceMinor: 1000})

	carts := memory.NewCartRepository(catalog)
	orders := memory.NewOrderRepository()
	svc := NewServiceWithoutMetrics(carts, orders, memory.NewOutboxRepository(), nil)

	cart, err := carts.GetOrCreate("user-1")
	require.NoError(t, err)
	require.NoError(t, carts.UpsertLine(cart.ID, "p1", domain.NoVariant(), 1))

	order, err := svc.CheckoutCart(customer("user-1"))
	require.NoError(t, err)

	// Подорожание товара не трогает уже оформленный заказ.
	catalog.PutProduct(domain.Product{ID: "p1", Name: "Sneakers", PriceMinor: 9999})

	got, err := svc.GetOrder(customer("user-1"), order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.TotalMinor)
	assert.Equal(t, int64(1000), got.Items[0].UnitPriceMinor)
}

func TestCheckoutCartEmpty(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CheckoutCart(customer("user-1"))
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestCheckoutCartUnauthenticated(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CheckoutCart(domain.AuthContext{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

type failingOrderRepository struct {
	domain.OrderRepository
}

func (r *failingOrderRepository) Create(domain.Order) error {
	return errors.New("storage down")
}

func TestCheckoutCartKeepsCartWhenCreateFails(t *testing.T) {
	catalog := memory.NewCatalogRepository()
	catalog.PutProduct(domain.Product{ID: "p1", Name: "Sneakers", PriceMinor: 1000})

	carts := memory.NewCartRepository(catalog)
	orders := &failingOrderRepository{OrderRepository: memory.NewOrderRepository()}
	svc := NewServiceWithoutMetrics(carts, orders, memory.NewOutboxRepository(), nil)

	cart, err := carts.GetOrCreate("user-1")
	require.NoError(t, err)
	require.NoError(t, carts.UpsertLine(cart.ID, "p1", domain.NoVariant(), 2))

	_, err = svc.CheckoutCart(customer("user-1"))
	require.Error(t, err)

	// Сбой создания заказа не должен опустошить корзину.
	lines, err := carts.ListLines(cart.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int32(2), lines[0].Quantity)
}

func TestGetOrderOwnership(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, "user-1")
	order, err := f.svc.CheckoutCart(customer("user-1"))
	require.NoError(t, err)

	_, err = f.svc.GetOrder(customer("user-2"), order.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.GetOrder(admin(), order.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetOrder(customer("user-1"), "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestListOrders(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, "user-1")
	first, err := f.svc.CheckoutCart(customer("user-1"))
	require.NoError(t, err)
	fillCart(t, f, "user-1")
	second, err := f.svc.CheckoutCart(customer("user-1"))
	require.NoError(t, err)

	orders, err := f.svc.ListOrders(customer("user-1"), "user-1", 0)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	// От новых к старым.
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	_, err = f.svc.ListOrders(customer("user-2"), "user-1", 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.ListAllOrders(customer("user-1"), 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	all, err := f.svc.ListAllOrders(admin(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCancelOrder(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, "user-1")
	order, err := f.svc.CheckoutCart(customer("user-1"))
	require.NoError(t, err)

	cancelled, err := f.svc.CancelOrder(customer("user-1"), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)

	// Повторная отмена — конфликт терминального статуса.
	_, err = f.svc.CancelOrder(customer("user-1"), order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderStateConflict)

	_, err = f.svc.CancelOrder(customer("user-2"), order.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
