package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

func makeOrder(id, userID string, createdAt time.Time) domain.Order {
	return domain.Order{
		ID:         id,
		UserID:     userID,
		Status:     domain.OrderStatusPending,
		TotalMinor: 1000,
		Items: []domain.OrderLine{
			{ID: id + "-l1", OrderID: id, ProductID: "p1", Quantity: 1, UnitPriceMinor: 1000},
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestOrderRepositoryCreateAndGet(t *testing.T) {
	repo := NewOrderRepository()
	order := makeOrder("o1", "user-1", time.Now().UTC())

	if err := repo.Create(order); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get("o1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.OrderStatusPending || len(got.Items) != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepositoryListByUserNewestFirst(t *testing.T) {
	repo := NewOrderRepository()
	base := time.Now().UTC()

	_ = repo.Create(makeOrder("o1", "user-1", base.Add(-2*time.Hour)))
	_ = repo.Create(makeOrder("o2", "user-1", base))
	_ = repo.Create(makeOrder("o3", "user-2", base.Add(-time.Hour)))

	orders, err := repo.ListByUser("user-1", 10)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != "o2" || orders[1].ID != "o1" {
		t.Fatalf("expected newest-first order, got %s, %s", orders[0].ID, orders[1].ID)
	}

	all, err := repo.ListAll(2)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("limit not applied: got %d orders", len(all))
	}
}

func TestOrderRepositoryUpdateStatusGuard(t *testing.T) {
	repo := NewOrderRepository()
	_ = repo.Create(makeOrder("o1", "user-1", time.Now().UTC()))

	changed, err := repo.UpdateStatus("o1", domain.OrderStatusPending, domain.OrderStatusPaid)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if !changed {
		t.Fatal("expected transition pending -> paid to apply")
	}

	// Повторный перевод должен промахнуться мимо охранного условия.
	changed, err = repo.UpdateStatus("o1", domain.OrderStatusPending, domain.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("repeat update status: %v", err)
	}
	if changed {
		t.Fatal("expected guard to reject transition from non-pending order")
	}

	got, _ := repo.Get("o1")
	if got.Status != domain.OrderStatusPaid {
		t.Fatalf("order status = %s, want %s", got.Status, domain.OrderStatusPaid)
	}

	if _, err := repo.UpdateStatus("missing", domain.OrderStatusPending, domain.OrderStatusPaid); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
