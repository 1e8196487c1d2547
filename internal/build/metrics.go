package build

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/fileroutes/pkg/routetree"
)

// Metrics holds the Prometheus collectors for route compilation.
type Metrics struct {
	compilesTotal   *prometheus.CounterVec
	compileDuration prometheus.Histogram
	errorsTotal     *prometheus.CounterVec
	routes          prometheus.Gauge
	files           prometheus.Gauge
}

// NewMetrics registers the compile metrics with reg under namespace.
//
// Metrics collected:
//   - <ns>_compiles_total: Counter of builds by status (ok, error, listing_error)
//   - <ns>_compile_duration_seconds: Histogram of list plus compile time
//   - <ns>_configuration_errors_total: Counter of route errors by kind
//   - <ns>_routes: Gauge of routes in the last successful build
//   - <ns>_route_files: Gauge of files in the last listing
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		compilesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compiles_total",
			Help:      "Total number of route tree builds",
		}, []string{"status"}),

		compileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compile_duration_seconds",
			Help:      "Route listing and compilation duration in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}),

		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "configuration_errors_total",
			Help:      "Total route configuration errors by kind",
		}, []string{"kind"}),

		routes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "routes",
			Help:      "Number of routes in the last successful build",
		}),

		files: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "route_files",
			Help:      "Number of route files in the last listing",
		}),
	}
}

func (m *Metrics) observe(status string, seconds float64) {
	if m == nil {
		return
	}
	m.compilesTotal.WithLabelValues(status).Inc()
	m.compileDuration.Observe(seconds)
}

func (m *Metrics) setFiles(n int) {
	if m == nil {
		return
	}
	m.files.Set(float64(n))
}

func (m *Metrics) setRoutes(n int) {
	if m == nil {
		return
	}
	m.routes.Set(float64(n))
}

func (m *Metrics) recordErrors(errs []*routetree.ConfigurationError) {
	if m == nil {
		return
	}
	for _, e := range errs {
		m.errorsTotal.WithLabelValues(string(e.Kind)).Inc()
	}
}
