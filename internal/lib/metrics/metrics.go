// Package metrics регистрирует метрики сервиса в реестре Prometheus по умолчанию.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Операции над транзакциями для TransactionMutations.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budget_http_requests_total",
		Help: "Number of HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "budget_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	TransactionMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budget_transactions_mutations_total",
		Help: "Successful transaction mutations by operation.",
	}, []string{"operation"})
)

// IncMutation отмечает успешную операцию над транзакцией.
func IncMutation(operation string) {
	TransactionMutations.WithLabelValues(operation).Inc()
}
