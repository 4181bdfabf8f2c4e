package csvfile

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/aerosol-aod-etl/internal/domain"
)

const sampleCSV = `AERONET Version 3; AOD Level 2.0
All Sites, Daily Averages
Contact: nobody@example.org
AERONET_Site,Date(dd:mm:yyyy),Day_of_Year,AOD_340nm,AOD_500nm,440-870_Angstrom_Exponent,Precipitable_Water(cm),Site_Latitude(Degrees),Site_Longitude(Degrees),Site_Elevation(m)
GSFC,26:04:2024,117,0.512340,-999.000000,1.603321,2.143000,38.992500,-76.839800,87.000000
Banizoumbou,26:04:2024,117,-999.000000,0.301280,0.811230,3.412000,13.547300,2.665100,250.000000
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReader_Extract(t *testing.T) {
	reader := NewReader(writeTemp(t, sampleCSV), domain.DefaultSpectral(), slog.Default())

	records, err := reader.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	gsfc := records[0]
	assert.Equal(t, "GSFC", gsfc.Site)
	assert.Equal(t, "26:04:2024", gsfc.Date)
	assert.Equal(t, "38.992500", gsfc.Latitude)
	assert.Equal(t, "-76.839800", gsfc.Longitude)
	assert.Equal(t, "87.000000", gsfc.Elevation)
	assert.Equal(t, "1.603321", gsfc.AngstromExponent)
	assert.Equal(t, "2.143000", gsfc.PrecipitableWater)
	assert.Equal(t, "0.512340", gsfc.AOD[340])
	assert.Equal(t, "-999.000000", gsfc.AOD[500])

	// Channels without a matching column are simply absent.
	_, has1640 := gsfc.AOD[1640]
	assert.False(t, has1640)
}

func TestReader_Extract_QuotedPreamble(t *testing.T) {
	// Real AERONET preambles are free text; a stray quote must not
	// abort extraction.
	content := "AERONET Version 3; see \"https://aeronet.gsfc.nasa.gov\n" +
		"Contact: \"PI\" nobody@example.org\n" +
		"AERONET_Site,Date(dd:mm:yyyy),AOD_340nm\n" +
		"GSFC,26:04:2024,0.512340\n"

	reader := NewReader(writeTemp(t, content), domain.DefaultSpectral(), slog.Default())
	records, err := reader.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "GSFC", records[0].Site)
	assert.Equal(t, "0.512340", records[0].AOD[340])
}

func TestReader_Extract_SchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"no header row at all",
			"just some text\nmore text\n",
		},
		{
			"missing date column",
			"AERONET_Site,AOD_340nm\nGSFC,0.5\n",
		},
		{
			"missing site column",
			"Date(dd:mm:yyyy),AOD_340nm\n26:04:2024,0.5\n",
		},
		{
			"no AOD channel columns",
			"AERONET_Site,Date(dd:mm:yyyy),Precipitable_Water(cm)\nGSFC,26:04:2024,2.1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewReader(writeTemp(t, tt.content), domain.DefaultSpectral(), slog.Default())

			_, err := reader.Extract(context.Background())
			require.Error(t, err)

			var schemaErr *domain.SchemaError
			assert.ErrorAs(t, err, &schemaErr)
		})
	}
}

func TestReader_Extract_FileMissing(t *testing.T) {
	reader := NewReader(filepath.Join(t.TempDir(), "nope.csv"), domain.DefaultSpectral(), slog.Default())
	_, err := reader.Extract(context.Background())
	require.Error(t, err)

	var schemaErr *domain.SchemaError
	assert.False(t, errors.As(err, &schemaErr), "missing file is an I/O error, not a schema error")
}
