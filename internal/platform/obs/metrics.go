package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fulfillment-routing-service/internal/domain"
)

// Metrics holds the service's prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SimulationsTotal   *prometheus.CounterVec
	SimulationDuration prometheus.Histogram
	CandidatesPerRun   prometheus.Histogram
	WinnersTotal       *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		SimulationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Routing simulations by cache outcome.",
		}, []string{"cache"}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_duration_seconds",
			Help:      "Time spent producing a routing result.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5},
		}),
		CandidatesPerRun: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_candidates",
			Help:      "Rate cards evaluated per simulation.",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		}),
		WinnersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "winners_total",
			Help:      "Selected vendors by selection reason.",
		}, []string{"vendor", "reason"}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SimulationsTotal,
		m.SimulationDuration,
		m.CandidatesPerRun,
		m.WinnersTotal,
	)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (m *Metrics) ObserveSimulation(res domain.SimulationResult, cacheHit bool, dur time.Duration) {
	if m == nil {
		return
	}

	cache := "miss"
	if cacheHit {
		cache = "hit"
	}
	m.SimulationsTotal.WithLabelValues(cache).Inc()
	m.SimulationDuration.Observe(dur.Seconds())
	m.CandidatesPerRun.Observe(float64(len(res.Candidates)))

	if res.Winner == nil {
		return
	}
	reason := "least_cost"
	if res.Winner.IsPriority {
		reason = "priority"
	}
	m.WinnersTotal.WithLabelValues(res.Winner.VendorName, reason).Inc()
}
