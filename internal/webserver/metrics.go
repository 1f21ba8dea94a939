package webserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/psidex/citygraph/internal/graphs"
)

type metrics struct {
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	normalized prometheus.Counter
	links      *prometheus.CounterVec
	writes     *prometheus.CounterVec
	limited    *prometheus.CounterVec
}

// newMetrics registers the server's collectors on reg. clients reports the number of
// connected websocket clients.
func newMetrics(reg *prometheus.Registry, clients func() int) *metrics {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "citygraph_ws_clients",
		Help: "Connected websocket clients",
	}, func() float64 { return float64(clients()) })

	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "citygraph_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "citygraph_http_request_duration_seconds",
			Help:    "HTTP request duration by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		normalized: f.NewCounter(prometheus.CounterOpts{
			Name: "citygraph_graphs_normalized_total",
			Help: "Graphs passed through the normalizer",
		}),
		links: f.NewCounterVec(prometheus.CounterOpts{
			Name: "citygraph_normalized_links_total",
			Help: "Links seen by the normalizer, indexed or skipped",
		}, []string{"result"}),
		writes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "citygraph_store_writes_total",
			Help: "Save and import attempts by result",
		}, []string{"op", "result"}),
		limited: f.NewCounterVec(prometheus.CounterOpts{
			Name: "citygraph_rate_limited_total",
			Help: "Requests refused by a rate limiter",
		}, []string{"op"}),
	}
}

func (m *metrics) observeNormalize(s graphs.Stats) {
	m.normalized.Inc()
	m.links.WithLabelValues("indexed").Add(float64(s.IndexedLinks))
	m.links.WithLabelValues("skipped").Add(float64(s.SkippedLinks))
}

func (m *metrics) observeWrite(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.writes.WithLabelValues(op, result).Inc()
}
