package payment

import "github.com/vladislavdragonenkov/shopease/internal/domain"

// MockGateway — конфигурируемая заглушка PaymentGateway для тестов.
type MockGateway struct {
	TxnRef    string
	ChargeErr error

	ChargeCalls int
}

// NewMockGateway возвращает mock с успешным сценарием по умолчанию.
func NewMockGateway() *MockGateway {
	return &MockGateway{TxnRef: "txn-test"}
}

// Charge возвращает заранее настроенный результат и считает вызовы.
func (m *MockGateway) Charge(orderID string, amountMinor int64, method, details string) (string, error) {
	m.ChargeCalls++
	if m.ChargeErr != nil {
		return "", m.ChargeErr
	}
	return m.TxnRef, nil
}

var _ domain.PaymentGateway = (*MockGateway)(nil)
