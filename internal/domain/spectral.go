package domain

import (
	"fmt"
	"sort"
)

// Channel maps one AOD wavelength to its source column name.
type Channel struct {
	WavelengthNM int
	Column       string
}

// LabelRule assigns Label to any wavelength strictly below BelowNM.
// Rules are evaluated in order; the first match wins.
type LabelRule struct {
	BelowNM int
	Label   string
}

// SpectralConfig enumerates the AOD channels the reshape iterates over
// and the threshold tables for spectral-band and particle-sensitivity
// labels. Band boundaries live here, not in the reshape logic, so they
// can change without touching it.
type SpectralConfig struct {
	Channels []Channel

	Bands       []LabelRule
	BandDefault string

	Sensitivities      []LabelRule
	SensitivityDefault string
}

// DefaultSpectral returns the channel set of the AERONET version 3
// daily-average product and the standard labeling thresholds:
// UV below 400 nm, VIS through 700 nm, NIR above; wavelengths through
// 500 nm discriminate fine particles best, 800 nm and up coarse
// particles, with a balanced band between.
func DefaultSpectral() SpectralConfig {
	wavelengths := []int{
		340, 380, 400, 440, 443, 490, 500, 510, 532, 551, 555,
		560, 620, 667, 675, 681, 709, 779, 865, 870, 1020, 1640,
	}
	channels := make([]Channel, len(wavelengths))
	for i, nm := range wavelengths {
		channels[i] = Channel{WavelengthNM: nm, Column: fmt.Sprintf("AOD_%dnm", nm)}
	}

	return SpectralConfig{
		Channels:    channels,
		Bands:       []LabelRule{{BelowNM: 400, Label: "UV"}, {BelowNM: 701, Label: "VIS"}},
		BandDefault: "NIR",
		Sensitivities: []LabelRule{
			{BelowNM: 501, Label: "fine-sensitive"},
			{BelowNM: 800, Label: "balanced"},
		},
		SensitivityDefault: "coarse-sensitive",
	}
}

// Band returns the spectral-band label for a wavelength.
func (c SpectralConfig) Band(nm int) string {
	return applyRules(c.Bands, c.BandDefault, nm)
}

// Sensitivity returns the particle-sensitivity label for a wavelength.
func (c SpectralConfig) Sensitivity(nm int) string {
	return applyRules(c.Sensitivities, c.SensitivityDefault, nm)
}

func applyRules(rules []LabelRule, fallback string, nm int) string {
	for _, r := range rules {
		if nm < r.BelowNM {
			return r.Label
		}
	}
	return fallback
}

// Reshape converts the cleaned wide table into long format: one
// LongMeasurement per (row, channel) pair with a non-missing AOD value.
// Missing pairs are dropped, so the output length equals the count of
// real measurements in the input. Channels are walked in ascending
// wavelength order for a deterministic row order.
func Reshape(records []CleanedRecord, spectral SpectralConfig) []LongMeasurement {
	wavelengths := make([]int, 0, len(spectral.Channels))
	for _, ch := range spectral.Channels {
		wavelengths = append(wavelengths, ch.WavelengthNM)
	}
	sort.Ints(wavelengths)

	var long []LongMeasurement
	for _, rec := range records {
		for _, nm := range wavelengths {
			aod, ok := rec.AOD[nm]
			if !ok || !aod.Valid {
				continue
			}
			long = append(long, LongMeasurement{
				Site:              rec.Site,
				Latitude:          rec.Latitude,
				Longitude:         rec.Longitude,
				Elevation:         rec.Elevation,
				Date:              rec.Date,
				WavelengthNM:      nm,
				AOD:               aod.Float64,
				Particle:          rec.Particle,
				PrecipitableWater: rec.PrecipitableWater,
				AngstromExponent:  rec.AngstromExponent,
			})
		}
	}
	return long
}
