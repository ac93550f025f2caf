package checkout

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
	"github.com/vladislavdragonenkov/shopease/internal/metrics"
)

// Service описывает оформление и жизненный цикл заказа.
type Service interface {
	// CheckoutCart превращает текущую корзину пользователя в заказ:
	// замораживает цены, очищает корзину и возвращает созданный заказ.
	CheckoutCart(auth domain.AuthContext) (domain.Order, error)
	// GetOrder возвращает заказ, проверяя владение или права администратора.
	GetOrder(auth domain.AuthContext, orderID string) (domain.Order, error)
	// ListOrders возвращает заказы пользователя от новых к старым.
	ListOrders(auth domain.AuthContext, userID string, limit int) ([]domain.Order, error)
	// ListAllOrders возвращает все заказы магазина (только администратор).
	ListAllOrders(auth domain.AuthContext, limit int) ([]domain.Order, error)
	// CancelOrder переводит pending-заказ в cancelled.
	CancelOrder(auth domain.AuthContext, orderID string) (domain.Order, error)
}

type service struct {
	carts   domain.CartRepository
	orders  domain.OrderRepository
	outbox  domain.OutboxRepository
	logger  *log.Entry
	metrics *metrics.StorefrontMetrics
}

// NewService создаёт сервис оформления заказов.
func NewService(
	carts domain.CartRepository,
	orders domain.OrderRepository,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) Service {
	if logger == nil {
		logger = log.New().WithField("component", "checkout")
	}
	return &service{
		carts:   carts,
		orders:  orders,
		outbox:  outbox,
		logger:  logger,
		metrics: metrics.NewStorefrontMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	carts domain.CartRepository,
	orders domain.OrderRepository,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) Service {
	if logger == nil {
		logger = log.New().WithField("component", "checkout")
	}
	return &service{
		carts:  carts,
		orders: orders,
		outbox: outbox,
		logger: logger,
	}
}

func (s *service) CheckoutCart(auth domain.AuthContext) (domain.Order, error) {
	if auth.UserID == "" {
		return domain.Order{}, domain.ErrUnauthenticated
	}

	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordCheckoutDuration(time.Since(start))
		}
	}()

	cart, err := s.carts.GetOrCreate(auth.UserID)
	if err != nil {
		return domain.Order{}, err
	}
	lines, err := s.carts.ListLines(cart.ID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(lines) == 0 {
		return domain.Order{}, domain.ErrEmptyOrder
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:        uuid.NewString(),
		UserID:    auth.UserID,
		Status:    domain.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Снимок позиций: цена и количество фиксируются на момент оформления,
	// дальнейшие изменения каталога на заказ не влияют.
	var total int64
	for _, line := range lines {
		item := domain.OrderLine{
			ID:             uuid.NewString(),
			OrderID:        order.ID,
			ProductID:      line.ProductID,
			Variant:        line.Variant,
			Quantity:       line.Quantity,
			UnitPriceMinor: line.UnitPriceMinor,
		}
		total += item.LineTotalMinor()
		order.Items = append(order.Items, item)
	}
	order.TotalMinor = total

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, errs[0]
	}

	if err := s.orders.Create(order); err != nil {
		if s.metrics != nil {
			s.metrics.RecordCheckoutFailed()
		}
		return domain.Order{}, err
	}

	// Корзина очищается после фиксации заказа; сбой очистки заказ не откатывает.
	if err := s.carts.Clear(cart.ID); err != nil {
		s.logger.WithError(err).WithField("cart_id", cart.ID).Warn("clear cart after checkout failed")
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}
	s.emitEvent(order, "order.created", map[string]interface{}{
		"total_minor": order.TotalMinor,
		"items_count": len(order.Items),
	})
	s.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"user_id":     order.UserID,
		"total_minor": order.TotalMinor,
	}).Info("order created")

	return order, nil
}

func (s *service) GetOrder(auth domain.AuthContext, orderID string) (domain.Order, error) {
	if auth.UserID == "" {
		return domain.Order{}, domain.ErrUnauthenticated
	}

	order, err := s.orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !auth.Owns(order.UserID) && !auth.IsAdmin() {
		return domain.Order{}, domain.ErrForbidden
	}

	return order, nil
}

func (s *service) ListOrders(auth domain.AuthContext, userID string, limit int) ([]domain.Order, error) {
	if auth.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if !auth.Owns(userID) && !auth.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.orders.ListByUser(userID, limit)
}

func (s *service) ListAllOrders(auth domain.AuthContext, limit int) ([]domain.Order, error) {
	if auth.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if !auth.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.orders.ListAll(limit)
}

func (s *service) CancelOrder(auth domain.AuthContext, orderID string) (domain.Order, error) {
	if auth.UserID == "" {
		return domain.Order{}, domain.ErrUnauthenticated
	}

	order, err := s.orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !auth.Owns(order.UserID) && !auth.IsAdmin() {
		return domain.Order{}, domain.ErrForbidden
	}

	changed, err := s.orders.UpdateStatus(orderID, domain.OrderStatusPending, domain.OrderStatusCancelled)
	if err != nil {
		return domain.Order{}, err
	}
	if !changed {
		// Заказ уже оплачен или отменён: терминальные статусы не меняются.
		return domain.Order{}, domain.ErrOrderStateConflict
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCancelled()
	}
	s.emitEvent(order, "order.cancelled", nil)
	s.logger.WithField("order_id", orderID).Info("order cancelled")

	return s.orders.Get(orderID)
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
