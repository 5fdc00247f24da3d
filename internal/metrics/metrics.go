// Package metrics defines the Prometheus collectors of the age API and the birthday feed.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tartampluch/go-age/internal/config"
)

// Metrics groups the collectors. Every series carries the config.MetricNamespace prefix.
type Metrics struct {
	Calculations    prometheus.Counter
	Rejections      *prometheus.CounterVec
	CalendarSyncs   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers the collectors on reg. Pass a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Calculations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.MetricNamespace,
			Name:      config.MetricCalculations,
			Help:      "Total number of successful age calculations",
		}),
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.MetricNamespace,
			Name:      config.MetricRejections,
			Help:      "Total number of rejected birth dates by validation kind",
		}, []string{config.MetricLabelKind}),
		CalendarSyncs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.MetricNamespace,
			Name:      config.MetricSyncs,
			Help:      "Total number of birthday feed synchronizations by result",
		}, []string{config.MetricLabelResult}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.MetricNamespace,
			Name:      config.MetricReqDuration,
			Help:      "Duration of HTTP requests by route",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{config.MetricLabelRoute}),
	}
}

// IncrementCalculations counts one successful age calculation.
func (m *Metrics) IncrementCalculations() {
	m.Calculations.Inc()
}

// IncrementRejections counts one rejected birth date under its validation kind.
func (m *Metrics) IncrementRejections(kind string) {
	m.Rejections.WithLabelValues(kind).Inc()
}

// IncrementSyncs counts one feed synchronization as success or failure.
func (m *Metrics) IncrementSyncs(ok bool) {
	result := config.MetricResultOK
	if !ok {
		result = config.MetricResultFailure
	}
	m.CalendarSyncs.WithLabelValues(result).Inc()
}

// ObserveRequest records the time elapsed since start. route must be a route pattern
// or config.RouteUnmatched, never a raw request path.
func (m *Metrics) ObserveRequest(route string, start time.Time) {
	m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}
