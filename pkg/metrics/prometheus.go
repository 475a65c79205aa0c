package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the process-wide Prometheus metrics. A nil *Collector is
// valid and records nothing, so callers never need to guard.
type Collector struct {
	registry        *prometheus.Registry
	transactions    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	channelBalance  *prometheus.GaugeVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		transactions: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "cashdesk_transactions_total",
			Help: "Transactions recorded, by channel and outcome",
		}, []string{"channel", "outcome"}),
		requestDuration: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cashdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		channelBalance: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "cashdesk_channel_balance",
			Help: "Aggregate balance per channel",
		}, []string{"channel"}),
	}
}

func (c *Collector) RecordTransaction(channel, outcome string) {
	if c == nil {
		return
	}
	c.transactions.WithLabelValues(channel, outcome).Inc()
}

func (c *Collector) ObserveRequest(route, status string, seconds float64) {
	if c == nil {
		return
	}
	c.requestDuration.WithLabelValues(route, status).Observe(seconds)
}

func (c *Collector) SetChannelBalance(channel string, balance float64) {
	if c == nil {
		return
	}
	c.channelBalance.WithLabelValues(channel).Set(balance)
}

// Handler serves the registry for scraping.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
