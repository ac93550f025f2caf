package domain_test

import (
	"testing"
	"time"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

// helper для создания базового заказа с одной позицией.
func makeOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:         "order-1",
		UserID:     "user-1",
		Status:     domain.OrderStatusPending,
		TotalMinor: 500,
		Items: []domain.OrderLine{
			{
				ID:             "line-1",
				OrderID:        "order-1",
				ProductID:      "product-1",
				Quantity:       5,
				UnitPriceMinor: 100,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestOrderValidateInvariants_Ok(t *testing.T) {
	order := makeOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
	}{
		{
			name: "no user",
			mut: func(o *domain.Order) {
				o.UserID = ""
			},
		},
		{
			name: "negative total",
			mut: func(o *domain.Order) {
				o.TotalMinor = -1
			},
		},
		{
			name: "no items",
			mut: func(o *domain.Order) {
				o.Items = nil
			},
		},
		{
			name: "qty invalid",
			mut: func(o *domain.Order) {
				o.Items[0].Quantity = 0
			},
		},
		{
			name: "price invalid",
			mut: func(o *domain.Order) {
				o.Items[0].UnitPriceMinor = -5
			},
		},
		{
			name: "total mismatch",
			mut: func(o *domain.Order) {
				o.TotalMinor = 999
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			tc.mut(&order)

			if len(order.ValidateInvariants()) == 0 {
				t.Fatalf("expected validation errors for case %s", tc.name)
			}
		})
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    domain.OrderStatus
		to      domain.OrderStatus
		allowed bool
	}{
		{name: "pending to paid", from: domain.OrderStatusPending, to: domain.OrderStatusPaid, allowed: true},
		{name: "pending to cancelled", from: domain.OrderStatusPending, to: domain.OrderStatusCancelled, allowed: true},
		{name: "paid to cancelled", from: domain.OrderStatusPaid, to: domain.OrderStatusCancelled, allowed: false},
		{name: "paid to paid", from: domain.OrderStatusPaid, to: domain.OrderStatusPaid, allowed: false},
		{name: "cancelled to paid", from: domain.OrderStatusCancelled, to: domain.OrderStatusPaid, allowed: false},
		{name: "pending to pending", from: domain.OrderStatusPending, to: domain.OrderStatusPending, allowed: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransition(tc.to); got != tc.allowed {
				t.Fatalf("CanTransition(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
			}
		})
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	if domain.OrderStatusPending.IsTerminal() {
		t.Fatal("pending must not be terminal")
	}
	if !domain.OrderStatusPaid.IsTerminal() {
		t.Fatal("paid must be terminal")
	}
	if !domain.OrderStatusCancelled.IsTerminal() {
		t.Fatal("cancelled must be terminal")
	}
}
