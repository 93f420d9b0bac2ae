// Package metrics expone métricas Prometheus de HTTP, reintentos y refresco del índice.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "proveo"

// Recorder agrupa los colectores. Un *Recorder nil es válido y no registra nada.
type Recorder struct {
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
	txRetries       prometheus.Counter
	refreshDuration *prometheus.HistogramVec
	refreshFailures prometheus.Counter
}

// New crea un registro propio con los colectores de la aplicación y los de Go/proceso.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Recorder{
		Registry: reg,
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP responses with status >= 400",
		}, []string{"method", "path", "status"}),
		txRetries: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_transaction_retries_total",
			Help:      "Total number of transaction retries after transient errors",
		}),
		refreshDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_index_refresh_duration_seconds",
			Help:      "Duration of search index refreshes in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
		refreshFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_index_refresh_failures_total",
			Help:      "Total number of failed search index refreshes",
		}),
	}
}

// ObserveRequest registra duración y, si aplica, error de una petición HTTP.
func (r *Recorder) ObserveRequest(method, path string, status int, d time.Duration) {
	if r == nil {
		return
	}
	s := strconv.Itoa(status)
	r.requestDuration.WithLabelValues(method, path, s).Observe(d.Seconds())
	if status >= 400 {
		r.requestErrors.WithLabelValues(method, path, s).Inc()
	}
}

// ObserveRetry cuenta un reintento de transacción.
func (r *Recorder) ObserveRetry() {
	if r == nil {
		return
	}
	r.txRetries.Inc()
}

// ObserveRefresh registra un refresco del índice.
func (r *Recorder) ObserveRefresh(concurrent bool, d time.Duration, err error) {
	if r == nil {
		return
	}
	mode := "blocking"
	if concurrent {
		mode = "concurrent"
	}
	r.refreshDuration.WithLabelValues(mode).Observe(d.Seconds())
	if err != nil {
		r.refreshFailures.Inc()
	}
}
