package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL run.
type Metrics struct {
	RowsRead      prometheus.Counter
	RowsExcluded  *prometheus.CounterVec // labels: stage={clean,site,fact}, reason
	FactsEmitted  prometheus.Counter
	StageDuration *prometheus.HistogramVec // labels: stage={extract,transform,load}
	RunRunning    prometheus.Gauge
	TableRows     *prometheus.GaugeVec // labels: table={fact_aod,dim_date,dim_site,dim_wavelength}

	// Region enrichment metrics.
	RegionLookups *prometheus.CounterVec // labels: outcome={hit,empty,error}
	RegionCache   *prometheus.CounterVec // labels: result={hit,miss}
	RegionEnabled prometheus.Gauge
}

// NewMetrics creates and registers all run metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsRead,
		m.RowsExcluded,
		m.FactsEmitted,
		m.StageDuration,
		m.RunRunning,
		m.TableRows,
		m.RegionLookups,
		m.RegionCache,
		m.RegionEnabled,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aerosol_etl",
			Name:      "rows_read_total",
			Help:      "Raw rows read from the source table.",
		}),
		RowsExcluded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aerosol_etl",
			Name:      "rows_excluded_total",
			Help:      "Rows and sites excluded during the transform, by stage and reason.",
		}, []string{"stage", "reason"}),
		FactsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aerosol_etl",
			Name:      "facts_emitted_total",
			Help:      "Fact rows produced by the transform.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aerosol_etl",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"stage"}),
		RunRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aerosol_etl",
			Name:      "run_running",
			Help:      "1 while an ETL run is in flight, 0 otherwise.",
		}),
		TableRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "aerosol_etl",
			Name:      "table_rows",
			Help:      "Row count of each output table from the last run.",
		}, []string{"table"}),
		RegionLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aerosol_etl",
			Name:      "region_lookups_total",
			Help:      "Region lookups by outcome.",
		}, []string{"outcome"}),
		RegionCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aerosol_etl",
			Name:      "region_cache_total",
			Help:      "Region cache lookups by result.",
		}, []string{"result"}),
		RegionEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aerosol_etl",
			Name:      "region_enabled",
			Help:      "1 when region enrichment is enabled, 0 otherwise.",
		}),
	}
}
