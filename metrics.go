package hostmux

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rohanthewiz/hostmux/core/branch"
)

// Metrics holds the Prometheus metrics for a server.
type Metrics struct {
	registry       *prometheus.Registry
	requestsTotal  *prometheus.CounterVec
	resolveSeconds prometheus.Histogram
}

// NewMetrics creates the server metrics on a fresh registry.
// The router's cache and walk counters are exported through a collector
// that reads them on scrape, so resolution bookkeeping costs nothing
// beyond the router's own atomic counters.
func NewMetrics(namespace string, router *branch.Router[Handler]) *Metrics {
	if namespace == "" {
		namespace = "hostmux"
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status", "routed"},
	)

	m.resolveSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Route resolution time in seconds",
			Buckets:   []float64{.000001, .00001, .0001, .001, .01, .1},
		},
	)

	m.registry.MustRegister(m.requestsTotal, m.resolveSeconds)
	m.registry.MustRegister(newRouterCollector(namespace, router))
	m.registry.MustRegister(collectors.NewGoCollector())

	return m
}

// RecordRequest records a completed HTTP request and the time spent
// resolving its route.
func (m *Metrics) RecordRequest(method string, status int, routed bool, resolveDur time.Duration) {
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(status), strconv.FormatBool(routed)).Inc()
	m.resolveSeconds.Observe(resolveDur.Seconds())
}

// Handler returns an HTTP handler serving the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry returns the underlying Prometheus registry, e.g. for
// registering additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// routerCollector exports the router's lifetime counters on scrape.
type routerCollector struct {
	router       *branch.Router[Handler]
	cacheHits    *prometheus.Desc
	treeWalks    *prometheus.Desc
	cacheEntries *prometheus.Desc
}

func newRouterCollector(namespace string, router *branch.Router[Handler]) *routerCollector {
	return &routerCollector{
		router: router,
		cacheHits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "resolve_cache_hits_total"),
			"Resolutions served from the cache", nil, nil),
		treeWalks: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "resolve_tree_walks_total"),
			"Resolutions that walked the branch tree", nil, nil),
		cacheEntries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "resolve_cache_entries"),
			"Entries currently held in the resolution cache", nil, nil),
	}
}

func (c *routerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cacheHits
	ch <- c.treeWalks
	ch <- c.cacheEntries
}

func (c *routerCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.router.Stats()

	ch <- prometheus.MustNewConstMetric(c.cacheHits, prometheus.CounterValue, float64(stats.CacheHits))
	ch <- prometheus.MustNewConstMetric(c.treeWalks, prometheus.CounterValue, float64(stats.TreeWalks))
	ch <- prometheus.MustNewConstMetric(c.cacheEntries, prometheus.GaugeValue, float64(stats.CacheEntries))
}
