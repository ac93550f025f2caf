package domain

import "time"

// PaymentStatus описывает исход попытки оплаты.
type PaymentStatus string

const (
	// PaymentStatusSucceeded — шлюз подтвердил списание.
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	// PaymentStatusFailed — шлюз отклонил платёж.
	PaymentStatusFailed PaymentStatus = "failed"
)

// Payment описывает попытку оплаты заказа. Запись создаётся один раз
// на успешную попытку; отклонённые транзакции не обязаны фиксироваться.
type Payment struct {
	ID      string
	OrderID string
	// Method — способ оплаты, выбранный покупателем (card, paypal и т.п.).
	Method string
	Status PaymentStatus
	// TransactionRef — идентификатор транзакции от платёжного шлюза.
	TransactionRef string
	AmountMinor    int64
	CreatedAt      time.Time
}

// Validate проверяет корректность полей платежа и возвращает ошибки, если они есть.
func (p *Payment) Validate() []error {
	var errs []error

	if p.OrderID == "" {
		errs = append(errs, ErrOrderNotFound)
	}
	if p.Method == "" {
		errs = append(errs, ErrPaymentMethodRequired)
	}
	if p.AmountMinor < 0 {
		errs = append(errs, ErrAmountNegative)
	}

	return errs
}
