package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "partitioner"

// Metrics holds the collectors for partition maintenance
type Metrics struct {
	registry *prometheus.Registry

	operations        *prometheus.CounterVec
	partitions        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	refreshes         *prometheus.CounterVec
	lastSuccess       *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repository_operations_total",
			Help:      "Repository operations by table, operation and result.",
		}, []string{"table", "operation", "result"}),
		partitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partitions_total",
			Help:      "Partitions passed to successful create, detach and drop operations.",
		}, []string{"table", "operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "repository_operation_duration_seconds",
			Help:      "Duration of repository operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Reconciliation runs by table and result.",
		}, []string{"table", "result"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful reconciliation of a table.",
		}, []string{"table"}),
	}
	m.registry.MustRegister(
		m.operations,
		m.partitions,
		m.operationDuration,
		m.refreshes,
		m.lastSuccess,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRefresh records the outcome of one reconciliation of table
func (m *Metrics) ObserveRefresh(table string, at time.Time, err error) {
	m.refreshes.WithLabelValues(table, result(err)).Inc()
	if err == nil {
		m.lastSuccess.WithLabelValues(table).Set(float64(at.Unix()))
	}
}

func (m *Metrics) observeOperation(table, operation string, count int, start time.Time, err error) {
	m.operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	m.operations.WithLabelValues(table, operation, result(err)).Inc()
	if err == nil && count > 0 {
		m.partitions.WithLabelValues(table, operation).Add(float64(count))
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
