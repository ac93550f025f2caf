package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

// paymentRepositoryInMemory — in-memory реализация PaymentRepository.
// Платёж и смена статуса заказа выполняются под одним мьютексом,
// имитируя транзакцию postgres-реализации.
type paymentRepositoryInMemory struct {
	mu       sync.RWMutex
	orders   domain.OrderRepository
	payments map[string]domain.Payment // orderID -> payment
}

// NewPaymentRepository возвращает in-memory репозиторий платежей поверх
// репозитория заказов.
func NewPaymentRepository(orders domain.OrderRepository) domain.PaymentRepository {
	return &paymentRepositoryInMemory{
		orders:   orders,
		payments: make(map[string]domain.Payment),
	}
}

// RecordSettlement сохраняет платёж и переводит заказ из from в to как
// единое целое: при конфликте статуса платёж не записывается.
func (r *paymentRepositoryInMemory) RecordSettlement(payment domain.Payment, from, to domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed, err := r.orders.UpdateStatus(payment.OrderID, from, to)
	if err != nil {
		return err
	}
	if !changed {
		return domain.ErrOrderStateConflict
	}

	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	r.payments[payment.OrderID] = payment
	return nil
}

// GetByOrder возвращает платёж по заказу или ErrOrderNotFound.
func (r *paymentRepositoryInMemory) GetByOrder(orderID string) (domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.payments[orderID]
	if !ok {
		return domain.Payment{}, domain.ErrOrderNotFound
	}
	return payment, nil
}

var _ domain.PaymentRepository = (*paymentRepositoryInMemory)(nil)
