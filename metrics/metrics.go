// Package metrics provides Prometheus observability metrics for the
// wellness reporting engine. It includes Critical and Important metrics
// for business and operational visibility.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// AlertsDetectedTotal tracks the number of alerts in the last detection
// run. Sustained high values indicate a site-level wellness problem.
var AlertsDetectedTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "wellness",
	Name:      "alerts_detected_total",
	Help:      "Number of alerts produced by the last detection run",
})

// AlertsByRule breaks the last detection run down by triggered rule.
var AlertsByRule = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "wellness",
	Name:      "alerts_by_rule",
	Help:      "Alerts from the last detection run broken down by rule",
}, []string{"rule"})

// MeanStress tracks the mean stress KPI of the last aggregation.
var MeanStress = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "wellness",
	Name:      "mean_stress",
	Help:      "Mean stress level over the last aggregated record collection",
})

// PctAdequateRest tracks the adequate-rest KPI of the last aggregation.
var PctAdequateRest = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "wellness",
	Name:      "pct_adequate_rest",
	Help:      "Percentage of records meeting the adequate-rest floor",
})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// RecordsIngestedTotal tracks records successfully normalized.
var RecordsIngestedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "ingest",
	Name:      "records_total",
	Help:      "Total shift records normalized from the record store",
})

// RecordsFiltered tracks the size of the collection after filtering.
var RecordsFiltered = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "ingest",
	Name:      "records_filtered",
	Help:      "Records surviving the date/site filters in the last run",
})

// RenderDurationSeconds tracks time to render a report by format.
var RenderDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "report",
	Name:      "render_duration_seconds",
	Help:      "Time taken to render a report",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
}, []string{"format"})

// ReportBytes tracks rendered report sizes by format.
var ReportBytes = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "report",
	Name:      "bytes",
	Help:      "Size of rendered reports in bytes",
	Buckets:   []float64{256, 1024, 4096, 16384, 65536, 262144, 1048576},
}, []string{"format"})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetRunGauges resets all per-run gauges before a new reporting run.
func ResetRunGauges() {
	AlertsDetectedTotal.Set(0)
	MeanStress.Set(0)
	PctAdequateRest.Set(0)
	RecordsFiltered.Set(0)
	AlertsByRule.Reset()
}
