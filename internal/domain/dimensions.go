package domain

import "sort"

// BuildDateDim derives one row per distinct calendar date in the long
// table, sorted chronologically with dense surrogate keys starting at 1.
func BuildDateDim(measurements []LongMeasurement) []DimDate {
	seen := make(map[string]bool)
	var dates []DimDate
	for _, m := range measurements {
		key := m.Date.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		dates = append(dates, DimDate{
			Date:      m.Date,
			Year:      m.Date.Year(),
			Month:     int(m.Date.Month()),
			Day:       m.Date.Day(),
			DayOfYear: m.Date.YearDay(),
		})
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Date.Before(dates[j].Date) })
	for i := range dates {
		dates[i].ID = i + 1
	}
	return dates
}

// BuildWavelengthDim derives one row per distinct wavelength observed in
// the long table, labeled from the spectral configuration, sorted by
// wavelength ascending with dense surrogate keys starting at 1.
func BuildWavelengthDim(measurements []LongMeasurement, spectral SpectralConfig) []DimWavelength {
	seen := make(map[int]bool)
	var waves []DimWavelength
	for _, m := range measurements {
		if seen[m.WavelengthNM] {
			continue
		}
		seen[m.WavelengthNM] = true
		waves = append(waves, DimWavelength{
			WavelengthNM: m.WavelengthNM,
			SpectralBand: spectral.Band(m.WavelengthNM),
			Sensitivity:  spectral.Sensitivity(m.WavelengthNM),
		})
	}

	sort.Slice(waves, func(i, j int) bool { return waves[i].WavelengthNM < waves[j].WavelengthNM })
	for i := range waves {
		waves[i].ID = i + 1
	}
	return waves
}
