package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records the outcome of checkout attempts.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	success  prometheus.Counter
	failure  *prometheus.CounterVec
	total    prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	success := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_success_total",
		Help: "Checkouts that committed an invoice.",
	})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failure_total",
		Help: "Checkouts rolled back, labelled by reason.",
	}, []string{"reason"})
	total := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_invoice_total",
		Help:    "Invoice totals of committed checkouts.",
		Buckets: prometheus.ExponentialBuckets(100, 4, 8),
	})
	reg.MustRegister(duration, success, failure, total)
	return &CheckoutMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		total:    total,
	}
}

// ObserveSuccess records a committed checkout with its invoice total.
func (c *CheckoutMetrics) ObserveSuccess(elapsed time.Duration, invoiceTotal float64) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues("success").Observe(elapsed.Seconds())
	c.success.Inc()
	c.total.Observe(invoiceTotal)
}

// ObserveFailure records a rolled-back checkout with the rejection reason.
func (c *CheckoutMetrics) ObserveFailure(elapsed time.Duration, reason string) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues("failure").Observe(elapsed.Seconds())
	c.failure.WithLabelValues(normalizeLabel(reason)).Inc()
}
