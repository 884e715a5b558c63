// Package metrics defines the prometheus collectors for splitledger.
package metrics

import (
	"database/sql"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricPrefix = "splitledger_"

var (
	// HTTPRequestsTotal counts requests by method, route pattern, and
	// status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "http_requests_total",
			Help: "HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    metricPrefix + "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// SettlementTransitions counts settlement lifecycle transitions by the
	// state entered (pending on create, completed, cancelled).
	SettlementTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "settlement_transitions_total",
			Help: "Settlement lifecycle transitions by target state",
		},
		[]string{"state"},
	)
)

// RegisterDBGauges registers gauges computed from live database counts.
func RegisterDBGauges(db *sql.DB) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "settlements_pending",
			Help: "Settlements currently awaiting confirmation",
		},
		func() float64 {
			return queryCount(db, "SELECT COUNT(*) FROM settlements WHERE status = 'pending'")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "expenses_total",
			Help: "Expenses recorded across all groups",
		},
		func() float64 {
			return queryCount(db, "SELECT COUNT(*) FROM expenses")
		},
	))
}

func queryCount(db *sql.DB, query string) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		slog.Warn("metrics query failed", "query", query, "error", err)
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
