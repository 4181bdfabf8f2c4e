package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpectralLabels(t *testing.T) {
	spectral := DefaultSpectral()

	tests := []struct {
		nm          int
		band        string
		sensitivity string
	}{
		{340, "UV", "fine-sensitive"},
		{380, "UV", "fine-sensitive"},
		{400, "VIS", "fine-sensitive"},
		{500, "VIS", "fine-sensitive"},
		{510, "VIS", "balanced"},
		{700, "VIS", "balanced"},
		{709, "NIR", "balanced"},
		{800, "NIR", "coarse-sensitive"},
		{870, "NIR", "coarse-sensitive"},
		{1640, "NIR", "coarse-sensitive"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.band, spectral.Band(tt.nm), "band for %dnm", tt.nm)
		assert.Equal(t, tt.sensitivity, spectral.Sensitivity(tt.nm), "sensitivity for %dnm", tt.nm)
	}
}

func TestDefaultSpectralChannels(t *testing.T) {
	spectral := DefaultSpectral()
	require.NotEmpty(t, spectral.Channels)

	// Column names follow the AOD_<nm>nm convention.
	for _, ch := range spectral.Channels {
		assert.Contains(t, ch.Column, "AOD_")
		assert.Contains(t, ch.Column, "nm")
	}
}

func TestReshape(t *testing.T) {
	date := time.Date(2024, 4, 26, 0, 0, 0, 0, time.UTC)

	t.Run("row count equals non-missing pairs", func(t *testing.T) {
		records := []CleanedRecord{
			{
				Site: "GSFC", Date: date, Particle: ParticleFine,
				AOD: map[int]sql.NullFloat64{340: nf(0.5), 500: {}, 870: nf(0.1)},
			},
			{
				Site: "Lille", Date: date, Particle: ParticleCoarse,
				AOD: map[int]sql.NullFloat64{340: {}, 500: nf(0.3), 870: {}},
			},
		}

		long := Reshape(records, DefaultSpectral())
		assert.Len(t, long, 3) // 2 non-missing in row one, 1 in row two
	})

	t.Run("emitted rows inherit the record's context", func(t *testing.T) {
		records := []CleanedRecord{{
			Site:              "Kanpur",
			Latitude:          nf(26.5127),
			Longitude:         nf(80.2319),
			Elevation:         nf(123),
			Date:              date,
			Particle:          ParticleMixed,
			AngstromExponent:  nf(1.2),
			PrecipitableWater: nf(3.1),
			AOD:               map[int]sql.NullFloat64{500: nf(0.42)},
		}}

		long := Reshape(records, DefaultSpectral())
		require.Len(t, long, 1)

		m := long[0]
		assert.Equal(t, "Kanpur", m.Site)
		assert.Equal(t, 500, m.WavelengthNM)
		assert.Equal(t, 0.42, m.AOD)
		assert.Equal(t, ParticleMixed, m.Particle)
		assert.Equal(t, nf(1.2), m.AngstromExponent)
		assert.Equal(t, nf(3.1), m.PrecipitableWater)
		assert.Equal(t, date, m.Date)
	})

	t.Run("channels emit in ascending wavelength order", func(t *testing.T) {
		records := []CleanedRecord{{
			Site: "A", Date: date,
			AOD: map[int]sql.NullFloat64{1640: nf(0.1), 340: nf(0.2), 870: nf(0.3)},
		}}

		long := Reshape(records, DefaultSpectral())
		require.Len(t, long, 3)
		assert.Equal(t, []int{340, 870, 1640},
			[]int{long[0].WavelengthNM, long[1].WavelengthNM, long[2].WavelengthNM})
	})

	t.Run("wavelengths outside the channel config are ignored", func(t *testing.T) {
		spectral := SpectralConfig{Channels: []Channel{{WavelengthNM: 500, Column: "AOD_500nm"}}}
		records := []CleanedRecord{{
			Site: "A", Date: date,
			AOD: map[int]sql.NullFloat64{500: nf(0.1), 999: nf(0.9)},
		}}

		long := Reshape(records, spectral)
		require.Len(t, long, 1)
		assert.Equal(t, 500, long[0].WavelengthNM)
	})
}
