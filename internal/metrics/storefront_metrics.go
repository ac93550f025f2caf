package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics содержит метрики витрины: заказы, платежи и outbox.
type StorefrontMetrics struct {
	// Счётчики жизненного цикла заказа
	ordersCreated   prometheus.Counter
	ordersPaid      prometheus.Counter
	ordersCancelled prometheus.Counter
	checkoutFailed  prometheus.Counter

	// Счётчики платёжного шлюза
	paymentsSucceeded prometheus.Counter
	paymentsDeclined  prometheus.Counter

	// Гистограммы времени выполнения
	checkoutDuration prometheus.Histogram
	paymentDuration  prometheus.Histogram

	// События outbox
	outboxEvents prometheus.Counter

	// Gauge для pending-заказов
	pendingOrders prometheus.Gauge
}

// NewStorefrontMetrics создаёт новый экземпляр метрик витрины.
func NewStorefrontMetrics() *StorefrontMetrics {
	return newStorefrontMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newStorefrontMetricsWithRegisterer(registerer prometheus.Registerer) *StorefrontMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StorefrontMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopease_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersPaid: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopease_orders_paid_total",
			Help: "Total number of orders paid",
		}),
		ordersCancelled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopease_orders_cancelled_total",
			Help: "Total number of orders cancelled",
		}),
		checkoutFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopease_checkout_failed_total",
			Help: "Total number of failed checkout attempts",
		}),
		paymentsSucceeded: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopease_payments_succeeded_total",
			Help: "Total number of successful payments",
		}),
		paymentsDeclined: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopease_payments_declined_total",
			Help: "Total number of declined payments",
		}),
		checkoutDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shopease_checkout_duration_seconds",
			Help:    "Duration of checkout operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		paymentDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shopease_payment_duration_seconds",
			Help:    "Duration of payment settlement in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
		outboxEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopease_outbox_events_total",
			Help: "Total number of outbox events enqueued",
		}),
		pendingOrders: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "shopease_pending_orders",
			Help: "Number of orders currently awaiting payment",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated увеличивает счётчик созданных заказов и число pending.
func (m *StorefrontMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
	m.pendingOrders.Inc()
}

// RecordOrderPaid увеличивает счётчик оплаченных заказов.
func (m *StorefrontMetrics) RecordOrderPaid() {
	m.ordersPaid.Inc()
	m.pendingOrders.Dec()
}

// RecordOrderCancelled увеличивает счётчик отменённых заказов.
func (m *StorefrontMetrics) RecordOrderCancelled() {
	m.ordersCancelled.Inc()
	m.pendingOrders.Dec()
}

// RecordCheckoutFailed увеличивает счётчик неудачных оформлений.
func (m *StorefrontMetrics) RecordCheckoutFailed() {
	m.checkoutFailed.Inc()
}

// RecordPaymentSucceeded увеличивает счётчик успешных платежей.
func (m *StorefrontMetrics) RecordPaymentSucceeded() {
	m.paymentsSucceeded.Inc()
}

// RecordPaymentDeclined увеличивает счётчик отклонённых платежей.
func (m *StorefrontMetrics) RecordPaymentDeclined() {
	m.paymentsDeclined.Inc()
}

// RecordCheckoutDuration записывает время оформления заказа.
func (m *StorefrontMetrics) RecordCheckoutDuration(duration time.Duration) {
	m.checkoutDuration.Observe(duration.Seconds())
}

// RecordPaymentDuration записывает время проведения платежа.
func (m *StorefrontMetrics) RecordPaymentDuration(duration time.Duration) {
	m.paymentDuration.Observe(duration.Seconds())
}

// RecordOutboxEvent увеличивает счётчик событий outbox.
func (m *StorefrontMetrics) RecordOutboxEvent() {
	m.outboxEvents.Inc()
}
