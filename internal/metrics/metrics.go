package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gamefi"

var (
	ChainQueries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chain_queries_total",
		Help:      "Read-only chain queries by method and result.",
	}, []string{"method", "result"})

	ChainQueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "chain_query_duration_seconds",
		Help:      "Latency of read-only chain queries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	Transactions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wallet_transactions_total",
		Help:      "Transaction requests submitted to the wallet by result.",
	}, []string{"result"})

	LedgerRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_requests_total",
		Help:      "Ledger HTTP requests by endpoint and result.",
	}, []string{"endpoint", "result"})

	SessionConnected = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "wallet_connected",
		Help:      "1 while a wallet session is connected.",
	})
)

// Register adds all collectors to reg
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{ChainQueries, ChainQueryDuration, Transactions, LedgerRequests, SessionConnected} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Result maps an error to a label value
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveChainQuery records one chain query
func ObserveChainQuery(method string, took time.Duration, err error) {
	ChainQueries.WithLabelValues(method, Result(err)).Inc()
	ChainQueryDuration.WithLabelValues(method).Observe(took.Seconds())
}
