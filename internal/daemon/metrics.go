package daemon

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "revtrack_"

	resultSuccess = "success"
	resultError   = "error"
)

// metrics are registered on a per-service registry so several services
// (tests, mostly) can coexist in one process.
type metrics struct {
	registry *prometheus.Registry

	totalRevenue    prometheus.Gauge
	targetAmount    prometheus.Gauge
	progressPercent prometheus.Gauge
	avgDaily        prometheus.Gauge
	requiredDaily   prometheus.Gauge
	daysRemaining   prometheus.Gauge
	entries         prometheus.Gauge
	polls           *prometheus.CounterVec
	pollLatency     prometheus.Histogram
}

func newMetrics() *metrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: metricPrefix + name, Help: help})
	}

	m := &metrics{
		registry:        prometheus.NewRegistry(),
		totalRevenue:    gauge("total_revenue", "Sum of all entry amounts"),
		targetAmount:    gauge("target_amount", "Goal target amount"),
		progressPercent: gauge("goal_progress_percent", "Goal progress clamped to 0-100"),
		avgDaily:        gauge("avg_daily_income", "Average income per elapsed day"),
		requiredDaily:   gauge("required_daily_income", "Income needed per remaining day"),
		daysRemaining:   gauge("days_remaining", "Days left until the target date"),
		entries:         gauge("entries", "Number of stored entries"),
		polls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "polls_total",
				Help: "Store polls by result",
			},
			[]string{"result"},
		),
		pollLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "poll_latency_seconds",
			Help:    "Store poll latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(
		m.totalRevenue,
		m.targetAmount,
		m.progressPercent,
		m.avgDaily,
		m.requiredDaily,
		m.daysRemaining,
		m.entries,
		m.polls,
		m.pollLatency,
	)
	return m
}

func (m *metrics) observe(s Snapshot) {
	m.totalRevenue.Set(s.TotalRevenue)
	m.targetAmount.Set(s.TargetAmount)
	m.progressPercent.Set(s.ProgressPercent)
	m.avgDaily.Set(s.AvgDailyIncome)
	m.requiredDaily.Set(s.RequiredDaily)
	m.daysRemaining.Set(float64(s.DaysRemaining))
	m.entries.Set(float64(s.Entries))
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
