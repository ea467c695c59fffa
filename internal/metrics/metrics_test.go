package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// findMetricFamily は収集結果から指定名のメトリクスを探す。
func findMetricFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("%s metric not found", name)
	return nil
}

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// TestCollector_ImplementsInterface はCollectorとNopCollectorがMetricsCollectorを実装することを検証する。
func TestCollector_ImplementsInterface(t *testing.T) {
	var _ MetricsCollector = (*Collector)(nil)
	var _ MetricsCollector = NopCollector{}
}

// TestRecordQuery_IncrementsCounterWithSortLabel は並び順ラベル付きで検索数が増加することを検証する。
func TestRecordQuery_IncrementsCounterWithSortLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordQuery("price_asc", 8, 2*time.Millisecond)
	c.RecordQuery("price_asc", 3, time.Millisecond)
	c.RecordQuery("karma_desc", 25, time.Millisecond)

	mf := findMetricFamily(t, reg, "raidboard_queries_total")
	if len(mf.GetMetric()) != 2 {
		t.Fatalf("expected 2 label combinations, got %d", len(mf.GetMetric()))
	}
	for _, m := range mf.GetMetric() {
		label := m.GetLabel()[0].GetValue()
		val := m.GetCounter().GetValue()
		switch label {
		case "price_asc":
			if val != 2 {
				t.Errorf("queries_total{sort=price_asc} = %v, want 2", val)
			}
		case "karma_desc":
			if val != 1 {
				t.Errorf("queries_total{sort=karma_desc} = %v, want 1", val)
			}
		default:
			t.Errorf("unexpected label value: %s", label)
		}
	}

	results := findMetricFamily(t, reg, "raidboard_query_results").GetMetric()[0].GetHistogram()
	if results.GetSampleCount() != 3 {
		t.Errorf("query_results sample_count = %d, want 3", results.GetSampleCount())
	}
	if results.GetSampleSum() != 36 {
		t.Errorf("query_results sample_sum = %v, want 36", results.GetSampleSum())
	}

	latency := findMetricFamily(t, reg, "raidboard_query_latency_seconds").GetMetric()[0].GetHistogram()
	if latency.GetSampleCount() != 3 {
		t.Errorf("latency sample_count = %d, want 3", latency.GetSampleCount())
	}
}

// TestRecordCatalogSize_SetsGauge はカタログ件数のゲージが最新値になることを検証する。
func TestRecordCatalogSize_SetsGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCatalogSize(30)
	c.RecordCatalogSize(25)

	val := findMetricFamily(t, reg, "raidboard_catalog_listings").GetMetric()[0].GetGauge().GetValue()
	if val != 25 {
		t.Errorf("catalog_listings = %v, want 25", val)
	}
}

// TestRecordCatalogLoadFailure_IncrementsCounter はカタログ読み込み失敗が記録されることを検証する。
func TestRecordCatalogLoadFailure_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCatalogLoadFailure("postgres")

	m := findMetricFamily(t, reg, "raidboard_catalog_load_fail_total").GetMetric()[0]
	if m.GetLabel()[0].GetValue() != "postgres" || m.GetCounter().GetValue() != 1 {
		t.Errorf("catalog_load_fail_total = %v", m)
	}
}

// TestRecordHTTPStatus_IncrementsCounterWithLabel はHTTPステータスカウンタがラベル付きで増加することを検証する。
func TestRecordHTTPStatus_IncrementsCounterWithLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(400)

	mf := findMetricFamily(t, reg, "raidboard_http_status_total")
	if len(mf.GetMetric()) != 2 {
		t.Fatalf("expected 2 label combinations, got %d", len(mf.GetMetric()))
	}
	for _, m := range mf.GetMetric() {
		label := m.GetLabel()[0].GetValue()
		val := m.GetCounter().GetValue()
		switch label {
		case "200":
			if val != 2 {
				t.Errorf("http_status_total{status_code=200} = %v, want 2", val)
			}
		case "400":
			if val != 1 {
				t.Errorf("http_status_total{status_code=400} = %v, want 1", val)
			}
		default:
			t.Errorf("unexpected label value: %s", label)
		}
	}
}
