package infrastructure

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"scoutWorkspace/internal/modules/workspace/application/port"
)

var (
	catalogFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_workspace_catalog_fetches_total",
		Help: "Catalog fetches started, by mode",
	}, []string{"mode"})
	catalogFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_workspace_catalog_failures_total",
		Help: "Catalog fetches that failed, by mode",
	}, []string{"mode"})
	catalogDiscards = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_workspace_catalog_stale_discards_total",
		Help: "Catalog responses dropped because a newer search superseded them",
	}, []string{"mode"})
	catalogRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_workspace_catalog_rows_total",
		Help: "Player rows received from the catalog",
	}, []string{"mode"})
	catalogLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scout_workspace_catalog_fetch_seconds",
		Help:    "Catalog fetch latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})
	mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_workspace_mutations_total",
		Help: "Saved-search and shortlist mutations, by kind and result",
	}, []string{"kind", "result"})
	remoteCalls = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scout_workspace_remote_call_seconds",
		Help:    "Outbound REST call latency, by resource and status class",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "status"})
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_workspace_catalog_cache_lookups_total",
		Help: "Catalog page cache lookups, by result",
	}, []string{"result"})
	wsClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scout_workspace_ws_clients",
		Help: "Connected websocket clients",
	})
)

// PrometheusMetrics records workspace activity in the default registry.
type PrometheusMetrics struct{}

var _ port.WorkspaceMetrics = PrometheusMetrics{}

func (PrometheusMetrics) FetchStarted(mode string) {
	catalogFetches.WithLabelValues(mode).Inc()
}

func (PrometheusMetrics) FetchCompleted(mode string, rows int, elapsed time.Duration) {
	catalogRows.WithLabelValues(mode).Add(float64(rows))
	catalogLatency.WithLabelValues(mode).Observe(elapsed.Seconds())
}

func (PrometheusMetrics) FetchFailed(mode string) {
	catalogFailures.WithLabelValues(mode).Inc()
}

func (PrometheusMetrics) FetchDiscarded(mode string) {
	catalogDiscards.WithLabelValues(mode).Inc()
}

func (PrometheusMetrics) MutationCompleted(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	mutations.WithLabelValues(kind, result).Inc()
}

func observeRemoteCall(resource, status string, elapsed time.Duration) {
	remoteCalls.WithLabelValues(resource, status).Observe(elapsed.Seconds())
}
