package broadcastring

import "github.com/prometheus/client_golang/prometheus"

// Metrics wraps the Prometheus counters a Ring and its Cursors report
// against when wired in via WithMetrics. It is scoped to exactly this
// package's own counters rather than acting as a generic metrics sink,
// in contrast to the heavier hashicorp/go-metrics-over-Prometheus sink
// pattern used elsewhere in the corpus for whole-service metrics
// servers — a single ring buffer only needs a handful of counters.
type Metrics struct {
	pushesTotal      prometheus.Counter
	readMissTotal    *prometheus.CounterVec
	overrunsTotal    prometheus.Counter
	catchUpsTotal    prometheus.Counter
	lifetimeWarnings prometheus.Counter
}

// NewMetrics creates and registers a Metrics against reg. Pass
// prometheus.NewRegistry() for an isolated registry (e.g. in tests) or
// prometheus.DefaultRegisterer to expose these counters alongside the
// rest of a process's metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		pushesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "broadcastring",
			Name:      "pushes_total",
			Help:      "Number of values successfully pushed onto the ring.",
		}),
		readMissTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "broadcastring",
			Name:      "read_miss_total",
			Help:      "Number of Read calls that found no valid value, by reason.",
		}, []string{"reason"}),
		overrunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "broadcastring",
			Name:      "overruns_total",
			Help:      "Number of times a Cursor detected it had been lapped by producers.",
		}),
		catchUpsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "broadcastring",
			Name:      "catch_ups_total",
			Help:      "Number of times a Cursor fast-forwarded its read position.",
		}),
		lifetimeWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "broadcastring",
			Name:      "lifetime_warnings_total",
			Help:      "Number of pushes made at or past the ring's write lifetime limit.",
		}),
	}
	reg.MustRegister(m.pushesTotal, m.readMissTotal, m.overrunsTotal, m.catchUpsTotal, m.lifetimeWarnings)
	return m
}

const (
	missReasonNotYetPublished = "not_yet_published"
	missReasonOverrun         = "overrun"
)

func (m *Metrics) recordPush() {
	if m == nil {
		return
	}
	m.pushesTotal.Inc()
}

func (m *Metrics) recordReadMiss(reason string) {
	if m == nil {
		return
	}
	m.readMissTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) recordOverrun() {
	if m == nil {
		return
	}
	m.overrunsTotal.Inc()
}

func (m *Metrics) recordCatchUp() {
	if m == nil {
		return
	}
	m.catchUpsTotal.Inc()
}

func (m *Metrics) recordLifetimeWarning() {
	if m == nil {
		return
	}
	m.lifetimeWarnings.Inc()
}
