package domain

import "time"

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан, оплата ещё не подтверждена.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusPaid — оплата подтверждена; терминальный статус.
	OrderStatusPaid OrderStatus = "paid"
	// OrderStatusCancelled — заказ отменён; терминальный статус.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsTerminal сообщает, допускает ли статус дальнейшие переходы.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

// CanTransition проверяет допустимость перехода в новый статус:
// pending → paid и pending → cancelled; из терминальных статусов выхода нет.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s != OrderStatusPending {
		return false
	}
	return next == OrderStatusPaid || next == OrderStatusCancelled
}

// OrderLine — неизменяемый снимок позиции корзины на момент оформления.
// Цена фиксируется при создании заказа и никогда не пересчитывается.
type OrderLine struct {
	ID             string
	OrderID        string
	ProductID      string
	Variant        VariantKey
	Quantity       int32
	UnitPriceMinor int64
}

// LineTotalMinor возвращает стоимость позиции по зафиксированной цене.
func (l OrderLine) LineTotalMinor() int64 {
	return int64(l.Quantity) * l.UnitPriceMinor
}

// Order агрегирует снимок заказа и его позиции. После создания меняются
// только статус и UpdatedAt.
type Order struct {
	ID         string
	UserID     string
	Status     OrderStatus
	TotalMinor int64
	Items      []OrderLine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.UserID == "" {
		errs = append(errs, ErrUserNotFound)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrEmptyOrder)
	}
	if o.TotalMinor < 0 {
		errs = append(errs, ErrAmountNegative)
	}

	// Сверяем сумму заказа с суммой позиций: qty * price.
	var calc int64
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			errs = append(errs, ErrInvalidQuantity)
		}
		if item.UnitPriceMinor < 0 {
			errs = append(errs, ErrAmountNegative)
		}
		calc += int64(item.Quantity) * item.UnitPriceMinor
	}
	if calc != o.TotalMinor {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}
