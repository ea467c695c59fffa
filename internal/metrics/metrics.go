// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ボードサービスとHTTPミドルウェアから利用する。
type MetricsCollector interface {
	RecordQuery(sort string, results int, duration time.Duration)
	RecordCatalogSize(count int)
	RecordCatalogLoadFailure(source string)
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	queries      *prometheus.CounterVec
	queryResults prometheus.Histogram
	queryLatency prometheus.Histogram
	catalogSize  prometheus.Gauge
	catalogFail  *prometheus.CounterVec
	httpStatus   *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "raidboard_queries_total",
			Help: "並び順別の募集検索の合計数",
		}, []string{"sort"}),
		queryResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "raidboard_query_results",
			Help:    "検索条件に一致した募集数",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		queryLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "raidboard_query_latency_seconds",
			Help:    "募集検索のレイテンシ（秒）",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "raidboard_catalog_listings",
			Help: "直近に読み込んだカタログの募集数",
		}),
		catalogFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "raidboard_catalog_load_fail_total",
			Help: "カタログ読み込み失敗の合計数",
		}, []string{"source"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "raidboard_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.queries,
		c.queryResults,
		c.queryLatency,
		c.catalogSize,
		c.catalogFail,
		c.httpStatus,
	)

	return c
}

// RecordQuery は検索1回分の並び順、一致件数、所要時間を記録する。
func (c *Collector) RecordQuery(sort string, results int, duration time.Duration) {
	c.queries.WithLabelValues(sort).Inc()
	c.queryResults.Observe(float64(results))
	c.queryLatency.Observe(duration.Seconds())
}

// RecordCatalogSize はカタログの募集数を記録する。
func (c *Collector) RecordCatalogSize(count int) {
	c.catalogSize.Set(float64(count))
}

// RecordCatalogLoadFailure はカタログ読み込み失敗を記録する。
func (c *Collector) RecordCatalogLoadFailure(source string) {
	c.catalogFail.WithLabelValues(source).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NopCollector は何も記録しないMetricsCollector。CLIやテストで使う。
type NopCollector struct{}

func (NopCollector) RecordQuery(string, int, time.Duration) {}
func (NopCollector) RecordCatalogSize(int)                  {}
func (NopCollector) RecordCatalogLoadFailure(string)        {}
func (NopCollector) RecordHTTPStatus(int)                   {}
