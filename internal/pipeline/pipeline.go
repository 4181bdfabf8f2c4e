package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/aerosol-aod-etl/internal/domain"
	"github.com/couchcryptid/aerosol-aod-etl/internal/observability"
)

// Extractor reads the full raw table from the source.
type Extractor interface {
	Extract(ctx context.Context) ([]domain.RawRecord, error)
}

// Transformer converts the raw table into the star schema.
type Transformer interface {
	Transform(ctx context.Context, raw []domain.RawRecord) (*domain.StarSchema, error)
}

// Loader persists the star schema in the warehouse.
type Loader interface {
	Load(ctx context.Context, schema *domain.StarSchema) error
}

// ReportPublisher emits the quality report after a successful load.
// Optional; a nil publisher disables reporting.
type ReportPublisher interface {
	Publish(ctx context.Context, report domain.QualityReport) error
}

// Pipeline orchestrates one extract-transform-load pass.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loader      Loader
	publisher   ReportPublisher
	logger      *slog.Logger
	metrics     *observability.Metrics
	done        atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
// publisher may be nil.
func New(e Extractor, t Transformer, l Loader, pub ReportPublisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		publisher:   pub,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness returns nil once a run has completed successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.done.Load() {
		return errors.New("no run has completed yet")
	}
	return nil
}

// Run executes one full ETL pass. Row- and site-level data problems are
// handled inside the transform and surfaced through the quality report;
// any error returned here is unrecoverable for the run.
func (p *Pipeline) Run(ctx context.Context) error {
	p.metrics.RunRunning.Set(1)
	defer p.metrics.RunRunning.Set(0)

	start := time.Now()
	raw, err := p.extractor.Extract(ctx)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	p.metrics.RowsRead.Add(float64(len(raw)))
	p.metrics.StageDuration.WithLabelValues("extract").Observe(time.Since(start).Seconds())
	p.logger.Info("extract complete", "rows", len(raw))

	start = time.Now()
	schema, err := p.transformer.Transform(ctx, raw)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	p.metrics.StageDuration.WithLabelValues("transform").Observe(time.Since(start).Seconds())
	p.recordTransform(schema)

	start = time.Now()
	if err := p.loader.Load(ctx, schema); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	p.metrics.StageDuration.WithLabelValues("load").Observe(time.Since(start).Seconds())
	p.logger.Info("load complete",
		"facts", len(schema.Facts),
		"dates", len(schema.Dates),
		"sites", len(schema.Sites),
		"wavelengths", len(schema.Wavelengths),
	)

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, schema.Report); err != nil {
			// Reporting is best-effort; the warehouse load already succeeded.
			p.logger.Warn("publish run report failed", "error", err, "run_id", schema.Report.RunID)
		}
	}

	p.done.Store(true)
	return nil
}

// recordTransform pushes the quality report into metrics and the log.
func (p *Pipeline) recordTransform(schema *domain.StarSchema) {
	r := schema.Report

	p.metrics.RowsExcluded.WithLabelValues("clean", "unparseable").Add(float64(r.RowsDropped))
	p.metrics.RowsExcluded.WithLabelValues("site", "invalid_coordinates").Add(float64(r.SitesExcluded))
	p.metrics.RowsExcluded.WithLabelValues("fact", "unmatched_dimension").Add(float64(r.FactsDropped))
	p.metrics.FactsEmitted.Add(float64(r.FactsEmitted))

	p.metrics.TableRows.WithLabelValues("fact_aod").Set(float64(r.FactsEmitted))
	p.metrics.TableRows.WithLabelValues("dim_date").Set(float64(r.DateRows))
	p.metrics.TableRows.WithLabelValues("dim_site").Set(float64(r.SiteRows))
	p.metrics.TableRows.WithLabelValues("dim_wavelength").Set(float64(r.WavelengthRows))

	p.logger.Info("transform complete",
		"run_id", r.RunID,
		"rows_read", r.RowsRead,
		"rows_dropped", r.RowsDropped,
		"sites_found", r.SitesFound,
		"sites_excluded", r.SitesExcluded,
		"sites_enriched", r.SitesEnriched,
		"lookup_errors", r.LookupErrors,
		"measurements", r.Measurements,
		"facts_dropped", r.FactsDropped,
		"facts_emitted", r.FactsEmitted,
	)
}
