package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
	"github.com/vladislavdragonenkov/shopease/internal/metrics"
)

// Service проводит оплату заказов.
type Service interface {
	// Settle списывает средства за pending-заказ и переводит его в paid.
	// Отклонённый платёж оставляет заказ в pending.
	Settle(auth domain.AuthContext, orderID string, amountMinor int64, method, details string) (domain.Payment, error)
	// GetByOrder возвращает платёж по заказу, проверяя владение.
	GetByOrder(auth domain.AuthContext, orderID string) (domain.Payment, error)
}

type service struct {
	orders   domain.OrderRepository
	payments domain.PaymentRepository
	gateway  domain.PaymentGateway
	outbox   domain.OutboxRepository
	logger   *log.Entry
	metrics  *metrics.StorefrontMetrics
}

// NewService создаёт платёжный сервис.
func NewService(
	orders domain.OrderRepository,
	payments domain.PaymentRepository,
	gateway domain.PaymentGateway,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) Service {
	if logger == nil {
		logger = log.New().WithField("component", "payment")
	}
	return &service{
		orders:   orders,
		payments: payments,
		gateway:  gateway,
		outbox:   outbox,
		logger:   logger,
		metrics:  metrics.NewStorefrontMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт платёжный сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	orders domain.OrderRepository,
	payments domain.PaymentRepository,
	gateway domain.PaymentGateway,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) Service {
	if logger == nil {
		logger = log.New().WithField("component", "payment")
	}
	return &service{
		orders:   orders,
		payments: payments,
		gateway:  gateway,
		outbox:   outbox,
		logger:   logger,
	}
}

func (s *service) Settle(auth domain.AuthContext, orderID string, amountMinor int64, method, details string) (domain.Payment, error) {
	if auth.UserID == "" {
		return domain.Payment{}, domain.ErrUnauthenticated
	}
	if method == "" {
		return domain.Payment{}, domain.ErrPaymentMethodRequired
	}
	if amountMinor < 0 {
		return domain.Payment{}, domain.ErrAmountNegative
	}

	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordPaymentDuration(time.Since(start))
		}
	}()

	order, err := s.orders.Get(orderID)
	if err != nil {
		return domain.Payment{}, err
	}
	if !auth.Owns(order.UserID) && !auth.IsAdmin() {
		return domain.Payment{}, domain.ErrForbidden
	}
	if order.Status != domain.OrderStatusPending {
		return domain.Payment{}, domain.ErrOrderStateConflict
	}
	// Сумма клиента сверяется с серверной суммой заказа: расхождение —
	// признак устаревшей или подделанной формы оплаты.
	if amountMinor != order.TotalMinor {
		return domain.Payment{}, domain.ErrAmountMismatch
	}

	txnRef, err := s.gateway.Charge(order.ID, order.TotalMinor, method, details)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordPaymentDeclined()
		}
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("payment declined")
		// Заказ остаётся pending: покупатель может повторить оплату.
		if errors.Is(err, domain.ErrPaymentDeclined) {
			return domain.Payment{}, err
		}
		return domain.Payment{}, fmt.Errorf("%w: %v", domain.ErrPaymentDeclined, err)
	}

	payment := domain.Payment{
		ID:             uuid.NewString(),
		OrderID:        order.ID,
		Method:         method,
		Status:         domain.PaymentStatusSucceeded,
		TransactionRef: txnRef,
		AmountMinor:    order.TotalMinor,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.payments.RecordSettlement(payment, domain.OrderStatusPending, domain.OrderStatusPaid); err != nil {
		return domain.Payment{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordPaymentSucceeded()
		s.metrics.RecordOrderPaid()
	}
	s.emitEvent(order, "order.paid", map[string]interface{}{
		"amount_minor":    payment.AmountMinor,
		"method":          payment.Method,
		"transaction_ref": payment.TransactionRef,
	})
	s.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"amount_minor": payment.AmountMinor,
		"method":       method,
	}).Info("payment settled")

	return payment, nil
}

func (s *service) GetByOrder(auth domain.AuthContext, orderID string) (domain.Payment, error) {
	if auth.UserID == "" {
		return domain.Payment{}, domain.ErrUnauthenticated
	}

	order, err := s.orders.Get(orderID)
	if err != nil {
		return domain.Payment{}, err
	}
	if !auth.Owns(order.UserID) && !auth.IsAdmin() {
		return domain.Payment{}, domain.ErrForbidden
	}

	return s.payments.GetByOrder(orderID)
}

func (s *service) emitEvent(order domain.Order, eventType string, payload map[string]interface{}) {
	if s.outbox == nil {
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	payload["order_id"] = order.ID
	payload["user_id"] = order.UserID
	payload["ts"] = time.Now().UTC().Format(time.RFC3339Nano)

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id": order.ID,
			"event":    eventType,
		}).Error("marshal event failed")
		return
	}

	msg := domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   order.ID,
		EventType:     eventType,
		Payload:       data,
	}
	if _, err := s.outbox.Enqueue(msg); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id": order.ID,
			"event":    eventType,
		}).Error("enqueue event failed")
	} else if s.metrics != nil {
		s.metrics.RecordOutboxEvent()
	}
}

var _ Service = (*service)(nil)
