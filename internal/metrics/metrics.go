// Package metrics records the outcome of a build run as Prometheus metrics and
// writes them in the node exporter textfile format.
package metrics

import (
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agentstation/orbitalguard/internal/importer"
	"github.com/agentstation/orbitalguard/internal/validate"
	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/constants"
	"github.com/agentstation/orbitalguard/pkg/errors"
)

const namespace = "orbitalguard"

// Import row outcomes.
const (
	OutcomeImported = "imported"
	OutcomeSkipped  = "skipped"
)

// Recorder holds the metrics of one run on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	rows          *prometheus.CounterVec
	skipped       *prometheus.CounterVec
	imputed       prometheus.Counter
	stageDuration *prometheus.GaugeVec
	orphans       *prometheus.GaugeVec
	tableRows     *prometheus.GaugeVec
	coverage      prometheus.Gauge
	lastSuccess   prometheus.Gauge
}

// NewRecorder creates a recorder with all metrics registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Source rows processed by table and outcome",
		}, []string{"table", "outcome"}),

		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_skipped_total",
			Help:      "Source rows skipped by table and reason",
		}, []string{"table", "reason"}),

		imputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imputed_lifetimes_total",
			Help:      "Registry rows whose expected lifetime was filled from strata",
		}),

		stageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each pipeline stage in the last run",
		}, []string{"stage"}),

		orphans: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "integrity_orphans",
			Help:      "Rows referencing an unknown space object, by table",
		}, []string{"table"}),

		tableRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_rows",
			Help:      "Rows per table after the last run",
		}, []string{"table"}),

		coverage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lifetime_coverage_ratio",
			Help:      "Share of satellite details with an expected lifetime",
		}),

		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time the last successful run finished",
		}),
	}

	r.registry.MustRegister(
		r.rows,
		r.skipped,
		r.imputed,
		r.stageDuration,
		r.orphans,
		r.tableRows,
		r.coverage,
		r.lastSuccess,
	)
	return r
}

// Registry returns the registry the metrics are registered on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveReport records the row outcomes of one import batch.
func (r *Recorder) ObserveReport(rep *importer.BatchReport) {
	if rep == nil {
		return
	}
	r.rows.WithLabelValues(rep.Table, OutcomeImported).Add(float64(rep.Imported))
	r.rows.WithLabelValues(rep.Table, OutcomeSkipped).Add(float64(rep.SkippedTotal()))
	for reason, n := range rep.Skipped {
		r.skipped.WithLabelValues(rep.Table, string(reason)).Add(float64(n))
	}
	r.imputed.Add(float64(rep.Imputed))
}

// ObserveStage records how long a stage took.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	r.stageDuration.WithLabelValues(stage).Set(d.Seconds())
}

// ObserveIntegrity records the validator's findings.
func (r *Recorder) ObserveIntegrity(rep *validate.IntegrityReport) {
	if rep == nil {
		return
	}
	for table, n := range rep.Counts {
		r.tableRows.WithLabelValues(table).Set(float64(n))
	}
	r.orphans.WithLabelValues(catalog.TableOrbits).Set(float64(rep.OrphanOrbitRows))
	r.orphans.WithLabelValues(catalog.TableSatelliteDetails).Set(float64(rep.OrphanDetails))
	r.coverage.Set(rep.LifetimeCoverage)
}

// MarkSuccess records the completion time of a successful run.
func (r *Recorder) MarkSuccess(t time.Time) {
	r.lastSuccess.Set(float64(t.Unix()))
}

// WriteTextfile writes the metrics to path, creating its directory. The file
// is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
