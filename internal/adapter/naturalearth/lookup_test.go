package naturalearth

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGeoJSON defines two toy countries: a square around the origin and
// a multipolygon with a hole.
const testGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"ADMIN": "Squareland", "CONTINENT": "Testia"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"ADMIN": "Ringland", "CONTINENT": "Testia"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [
            [[20,0],[30,0],[30,10],[20,10],[20,0]],
            [[24,4],[26,4],[26,6],[24,6],[24,4]]
          ]
        ]
      }
    }
  ]
}`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "countries.geojson")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLookup_Locate(t *testing.T) {
	lookup, err := NewLookup(writeDataset(t, testGeoJSON), slog.Default())
	require.NoError(t, err)

	tests := []struct {
		name      string
		lat, lon  float64
		country   string
		continent string
	}{
		{"inside square", 5, 5, "Squareland", "Testia"},
		{"inside multipolygon", 2, 22, "Ringland", "Testia"},
		{"inside hole counts as outside", 5, 25, "", ""},
		{"open ocean", 50, 50, "", ""},
		{"outside bounding box", -40, -40, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, err := lookup.Locate(context.Background(), tt.lat, tt.lon)
			require.NoError(t, err)
			assert.Equal(t, tt.country, region.Country)
			assert.Equal(t, tt.continent, region.Continent)
		})
	}
}

func TestNewLookup_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewLookup(filepath.Join(t.TempDir(), "nope.geojson"), slog.Default())
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := NewLookup(writeDataset(t, "{not json"), slog.Default())
		assert.Error(t, err)
	})

	t.Run("no usable features", func(t *testing.T) {
		_, err := NewLookup(writeDataset(t, `{"type":"FeatureCollection","features":[]}`), slog.Default())
		assert.Error(t, err)
	})
}

func TestLookup_ThirdCoordinateIgnored(t *testing.T) {
	// Some exports carry altitude as a third position element.
	withZ := `{
	  "type": "FeatureCollection",
	  "features": [{
	    "type": "Feature",
	    "properties": {"ADMIN": "Flatland", "CONTINENT": "Testia"},
	    "geometry": {
	      "type": "Polygon",
	      "coordinates": [[[0,0,1],[10,0,1],[10,10,1],[0,10,1],[0,0,1]]]
	    }
	  }]
	}`
	lookup, err := NewLookup(writeDataset(t, withZ), slog.Default())
	require.NoError(t, err)

	region, err := lookup.Locate(context.Background(), 5, 5)
	require.NoError(t, err)
	assert.Equal(t, "Flatland", region.Country)
}
