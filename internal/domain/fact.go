package domain

import "database/sql"

// FactStats counts the outcome of the dimensional join.
type FactStats struct {
	Dropped int // no matching dimension row, e.g. excluded site
	Emitted int
}

// AssembleFacts joins each long measurement to its three dimension rows
// on the natural keys (calendar date, full site tuple, wavelength) and
// substitutes surrogate foreign keys. Measurements that fail to match a
// dimension are dropped and counted. Fact IDs are dense, assigned in
// the long table's deterministic order.
func AssembleFacts(measurements []LongMeasurement, dates []DimDate, sites []DimSite, waves []DimWavelength) ([]FactAOD, FactStats) {
	dateIDs := make(map[string]int, len(dates))
	for _, d := range dates {
		dateIDs[d.Date.Format("2006-01-02")] = d.ID
	}
	waveIDs := make(map[int]int, len(waves))
	for _, w := range waves {
		waveIDs[w.WavelengthNM] = w.ID
	}
	siteIDs := make(map[string]int, len(sites))
	for _, s := range sites {
		key := siteNaturalKey(s.Name, nullFloat(s.Latitude), nullFloat(s.Longitude), s.Elevation)
		siteIDs[key] = s.ID
	}

	var stats FactStats
	facts := make([]FactAOD, 0, len(measurements))
	for _, m := range measurements {
		dateID, okDate := dateIDs[m.Date.Format("2006-01-02")]
		waveID, okWave := waveIDs[m.WavelengthNM]
		siteID, okSite := siteIDs[siteNaturalKey(m.Site, m.Latitude, m.Longitude, m.Elevation)]
		if !okDate || !okWave || !okSite {
			stats.Dropped++
			continue
		}
		facts = append(facts, FactAOD{
			ID:                len(facts) + 1,
			DateID:            dateID,
			WavelengthID:      waveID,
			SiteID:            siteID,
			Particle:          m.Particle,
			AOD:               m.AOD,
			PrecipitableWater: m.PrecipitableWater,
			AngstromExponent:  m.AngstromExponent,
		})
	}
	stats.Emitted = len(facts)
	return facts, stats
}

func nullFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}
