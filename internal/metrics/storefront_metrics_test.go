package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewStorefrontMetrics(t *testing.T) {
	metrics := NewStorefrontMetrics()

	if metrics == nil {
		t.Fatal("NewStorefrontMetrics should not return nil")
	}

	if metrics.ordersCreated == nil {
		t.Error("ordersCreated counter should not be nil")
	}
	if metrics.ordersPaid == nil {
		t.Error("ordersPaid counter should not be nil")
	}
	if metrics.ordersCancelled == nil {
		t.Error("ordersCancelled counter should not be nil")
	}
	if metrics.checkoutFailed == nil {
		t.Error("checkoutFailed counter should not be nil")
	}
	if metrics.paymentsSucceeded == nil {
		t.Error("paymentsSucceeded counter should not be nil")
	}
	if metrics.paymentsDeclined == nil {
		t.Error("paymentsDeclined counter should not be nil")
	}
	if metrics.checkoutDuration == nil {
		t.Error("checkoutDuration histogram should not be nil")
	}
	if metrics.paymentDuration == nil {
		t.Error("paymentDuration histogram should not be nil")
	}
	if metrics.outboxEvents == nil {
		t.Error("outboxEvents counter should not be nil")
	}
	if metrics.pendingOrders == nil {
		t.Error("pendingOrders gauge should not be nil")
	}
}

func TestNewStorefrontMetricsIdempotentRegistration(t *testing.T) {
	// Повторное создание не должно паниковать на уже зарегистрированных
	// коллекторах.
	first := NewStorefrontMetrics()
	second := NewStorefrontMetrics()

	if first == nil || second == nil {
		t.Fatal("expected both instances to be created")
	}
}

func TestRecordOrderLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()

	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_orders_created_total",
		Help: "Test counter",
	})
	ordersPaid := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_orders_paid_total",
		Help: "Test counter",
	})
	pendingOrders := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_pending_orders",
		Help: "Test gauge",
	})

	reg.MustRegister(ordersCreated, ordersPaid, pendingOrders)

	metrics := &StorefrontMetrics{
		ordersCreated: ordersCreated,
		ordersPaid:    ordersPaid,
		pendingOrders: pendingOrders,
	}

	metrics.RecordOrderCreated() // pending: 1
	metrics.RecordOrderCreated() // pending: 2
	metrics.RecordOrderPaid()    // pending: 1

	metric := &dto.Metric{}
	if err := ordersCreated.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected 2 created orders, got %f", metric.Counter.GetValue())
	}

	gaugeMetric := &dto.Metric{}
	if err := pendingOrders.Write(gaugeMetric); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if gaugeMetric.Gauge.GetValue() != 1.0 {
		t.Errorf("expected 1 pending order, got %f", gaugeMetric.Gauge.GetValue())
	}
}

func TestRecordPaymentCounters(t *testing.T) {
	reg := prometheus.NewRegistry()

	succeeded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_payments_succeeded_total",
		Help: "Test counter",
	})
	declined := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_payments_declined_total",
		Help: "Test counter",
	})

	reg.MustRegister(succeeded, declined)

	metrics := &StorefrontMetrics{
		paymentsSucceeded: succeeded,
		paymentsDeclined:  declined,
	}

	metrics.RecordPaymentSucceeded()
	metrics.RecordPaymentSucceeded()
	metrics.RecordPaymentDeclined()

	metric := &dto.Metric{}
	if err := succeeded.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected 2 successful payments, got %f", metric.Counter.GetValue())
	}

	declinedMetric := &dto.Metric{}
	if err := declined.Write(declinedMetric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if declinedMetric.Counter.GetValue() != 1.0 {
		t.Errorf("expected 1 declined payment, got %f", declinedMetric.Counter.GetValue())
	}
}

func TestRecordDurations(t *testing.T) {
	reg := prometheus.NewRegistry()

	checkoutDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "test_checkout_duration_seconds",
		Help:    "Test histogram",
		Buckets: prometheus.DefBuckets,
	})

	reg.MustRegister(checkoutDuration)

	metrics := &StorefrontMetrics{
		checkoutDuration: checkoutDuration,
	}

	metrics.RecordCheckoutDuration(100 * time.Millisecond)
	metrics.RecordCheckoutDuration(500 * time.Millisecond)
	metrics.RecordCheckoutDuration(1 * time.Second)

	metric := &dto.Metric{}
	if err := checkoutDuration.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if metric.Histogram.GetSampleCount() != 3 {
		t.Errorf("expected 3 samples, got %d", metric.Histogram.GetSampleCount())
	}

	// 0.1 + 0.5 + 1.0 = 1.6
	sum := metric.Histogram.GetSampleSum()
	if sum < 1.5 || sum > 1.7 {
		t.Errorf("expected sum around 1.6, got %f", sum)
	}
}

func TestRecordOutboxEvent(t *testing.T) {
	reg := prometheus.NewRegistry()

	outboxEvents := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_outbox_events_total",
		Help: "Test counter",
	})

	reg.MustRegister(outboxEvents)

	metrics := &StorefrontMetrics{
		outboxEvents: outboxEvents,
	}

	metrics.RecordOutboxEvent()
	metrics.RecordOutboxEvent()

	metric := &dto.Metric{}
	if err := outboxEvents.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected counter value 2.0, got %f", metric.Counter.GetValue())
	}
}
