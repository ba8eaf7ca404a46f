package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Lifecycle collectors. All observation helpers are safe to call when
// metrics are disabled; they simply do nothing.
var (
	healthCheckTotal   *prometheus.CounterVec
	retryAttemptsTotal *prometheus.CounterVec
	statusPublishTotal *prometheus.CounterVec
)

// registerLifecycleCollectors is called from InitRegistry under the package
// lock.
func registerLifecycleCollectors(reg *prometheus.Registry) {
	healthCheckTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questforge_health_checks_total",
			Help: "Startup health check outcomes by result",
		},
		[]string{"result"},
	)

	retryAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questforge_retry_attempts_total",
			Help: "Retry attempts by operation",
		},
		[]string{"operation"},
	)

	statusPublishTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questforge_status_publishes_total",
			Help: "Status document publishes by document and result",
		},
		[]string{"document", "result"},
	)

	reg.MustRegister(healthCheckTotal, retryAttemptsTotal, statusPublishTotal)
}

// ObserveHealthCheck records one startup health check outcome.
func ObserveHealthCheck(ok bool) {
	mu.RLock()
	defer mu.RUnlock()
	if healthCheckTotal == nil {
		return
	}
	healthCheckTotal.WithLabelValues(result(ok)).Inc()
}

// ObserveRetryAttempt records one attempt of a retried operation.
func ObserveRetryAttempt(operation string) {
	mu.RLock()
	defer mu.RUnlock()
	if retryAttemptsTotal == nil {
		return
	}
	retryAttemptsTotal.WithLabelValues(operation).Inc()
}

// ObserveStatusPublish records one status document publish outcome.
func ObserveStatusPublish(document string, ok bool) {
	mu.RLock()
	defer mu.RUnlock()
	if statusPublishTotal == nil {
		return
	}
	statusPublishTotal.WithLabelValues(document, result(ok)).Inc()
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
