package domain

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
)

// SiteStats counts site-level outcomes for the quality report.
type SiteStats struct {
	Found    int // distinct tuples before validation
	Excluded int // missing or out-of-range coordinates
}

// CollectSites deduplicates the long table's site columns on the full
// (name, latitude, longitude, elevation) tuple and validates each
// coordinate pair. Invalid tuples are excluded and counted, never
// fatal; their measurements fall out later at the fact join. The
// result is sorted by natural key so surrogate keys come out identical
// across runs on identical input.
func CollectSites(measurements []LongMeasurement) ([]DimSite, SiteStats) {
	seen := make(map[string]bool)
	var stats SiteStats
	var sites []DimSite

	for _, m := range measurements {
		key := siteNaturalKey(m.Site, m.Latitude, m.Longitude, m.Elevation)
		if seen[key] {
			continue
		}
		seen[key] = true
		stats.Found++

		if !validCoords(m.Latitude, m.Longitude) {
			stats.Excluded++
			continue
		}
		sites = append(sites, DimSite{
			Name:      m.Site,
			Latitude:  m.Latitude.Float64,
			Longitude: m.Longitude.Float64,
			Elevation: m.Elevation,
		})
	}

	sort.Slice(sites, func(i, j int) bool {
		a, b := sites[i], sites[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Latitude != b.Latitude {
			return a.Latitude < b.Latitude
		}
		if a.Longitude != b.Longitude {
			return a.Longitude < b.Longitude
		}
		return a.Elevation.Float64 < b.Elevation.Float64
	})
	for i := range sites {
		sites[i].ID = i + 1
	}

	return sites, stats
}

// EnrichSites attaches country and continent to each site through the
// optional region lookup. A nil lookup disables enrichment; a failed or
// empty lookup leaves the fields unset and is counted, never fatal.
func EnrichSites(ctx context.Context, sites []DimSite, lookup RegionLookup, logger *slog.Logger) (int, int) {
	if lookup == nil {
		return 0, 0
	}

	var enriched, failures int
	for i := range sites {
		region, err := lookup.Locate(ctx, sites[i].Latitude, sites[i].Longitude)
		if err != nil {
			failures++
			logger.Warn("region lookup failed",
				"site", sites[i].Name,
				"lat", sites[i].Latitude,
				"lon", sites[i].Longitude,
				"error", err,
			)
			continue
		}
		if region.Country == "" && region.Continent == "" {
			continue
		}
		if region.Country != "" {
			sites[i].Country = sql.NullString{String: region.Country, Valid: true}
		}
		if region.Continent != "" {
			sites[i].Continent = sql.NullString{String: region.Continent, Valid: true}
		}
		enriched++
	}
	return enriched, failures
}

func validCoords(lat, lon sql.NullFloat64) bool {
	if !lat.Valid || !lon.Valid {
		return false
	}
	return lat.Float64 >= -90 && lat.Float64 <= 90 &&
		lon.Float64 >= -180 && lon.Float64 <= 180
}

// siteNaturalKey renders the full site tuple as a stable map key.
// Missing elevation is encoded distinctly from elevation zero.
func siteNaturalKey(name string, lat, lon, elev sql.NullFloat64) string {
	e := "-"
	if elev.Valid {
		e = fmt.Sprintf("%.1f", elev.Float64)
	}
	la, lo := "-", "-"
	if lat.Valid {
		la = fmt.Sprintf("%.6f", lat.Float64)
	}
	if lon.Valid {
		lo = fmt.Sprintf("%.6f", lon.Float64)
	}
	return fmt.Sprintf("%s|%s|%s|%s", name, la, lo, e)
}
