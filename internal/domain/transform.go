package domain

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Transform runs the full star-schema pipeline over one raw table:
// clean, classify, reshape, site dedupe/validate/enrich, dimension
// build, fact assembly. It is a single synchronous pass with no I/O
// beyond the optional region lookup. The only fatal condition is a
// SchemaError; everything row- or site-scoped is excluded and counted
// in the returned report.
func Transform(ctx context.Context, raw []RawRecord, spectral SpectralConfig, lookup RegionLookup, logger *slog.Logger) (*StarSchema, error) {
	if len(spectral.Channels) == 0 {
		return nil, &SchemaError{Missing: "AOD channel configuration"}
	}

	cleaned, cleanStats := CleanTable(raw)
	cleaned = Classify(cleaned)
	long := Reshape(cleaned, spectral)

	sites, siteStats := CollectSites(long)
	enriched, lookupErrors := EnrichSites(ctx, sites, lookup, logger)

	dates := BuildDateDim(long)
	waves := BuildWavelengthDim(long, spectral)
	facts, factStats := AssembleFacts(long, dates, sites, waves)

	schema := &StarSchema{
		Facts:       facts,
		Dates:       dates,
		Sites:       sites,
		Wavelengths: waves,
		Report: QualityReport{
			RunID:          uuid.NewString(),
			RowsRead:       cleanStats.RowsRead,
			RowsDropped:    cleanStats.RowsDropped,
			SitesFound:     siteStats.Found,
			SitesExcluded:  siteStats.Excluded,
			SitesEnriched:  enriched,
			LookupErrors:   lookupErrors,
			Measurements:   len(long),
			FactsDropped:   factStats.Dropped,
			FactsEmitted:   factStats.Emitted,
			DateRows:       len(dates),
			SiteRows:       len(sites),
			WavelengthRows: len(waves),
			GeneratedAt:    clock.Now().UTC(),
		},
	}
	return schema, nil
}
