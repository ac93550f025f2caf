package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

// SimulatedGateway имитирует внешний платёжный шлюз: списание всегда
// успешно и возвращает сгенерированный идентификатор транзакции.
type SimulatedGateway struct {
	logger *log.Entry
}

// NewSimulatedGateway возвращает шлюз-симулятор.
func NewSimulatedGateway(logger *log.Entry) *SimulatedGateway {
	if logger == nil {
		logger = log.New().WithField("component", "payment-gateway")
	}
	return &SimulatedGateway{logger: logger}
}

// Charge имитирует успешное списание.
func (g *SimulatedGateway) Charge(orderID string, amountMinor int64, method, details string) (string, error) {
	txnRef := fmt.Sprintf("sim-%d-%s", time.Now().UTC().Unix(), uuid.NewString()[:8])
	g.logger.WithFields(log.Fields{
		"order_id":     orderID,
		"amount_minor": amountMinor,
		"method":       method,
		"txn_ref":      txnRef,
	}).Debug("simulated charge approved")
	return txnRef, nil
}

var _ domain.PaymentGateway = (*SimulatedGateway)(nil)
