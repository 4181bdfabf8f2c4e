package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/aerosol-aod-etl/internal/domain"
)

// AODTransformer implements Transformer using the domain transform with
// optional region enrichment.
type AODTransformer struct {
	spectral domain.SpectralConfig
	lookup   domain.RegionLookup
	source   string
	logger   *slog.Logger
}

// NewTransformer creates an AODTransformer. Pass a nil lookup to
// disable region enrichment. source names the input for the quality
// report.
func NewTransformer(spectral domain.SpectralConfig, lookup domain.RegionLookup, source string, logger *slog.Logger) *AODTransformer {
	return &AODTransformer{
		spectral: spectral,
		lookup:   lookup,
		source:   source,
		logger:   logger,
	}
}

func (t *AODTransformer) Transform(ctx context.Context, raw []domain.RawRecord) (*domain.StarSchema, error) {
	schema, err := domain.Transform(ctx, raw, t.spectral, t.lookup, t.logger)
	if err != nil {
		return nil, err
	}
	schema.Report.SourceFile = t.source
	return schema, nil
}
