// Package naturalearth resolves coordinates to countries and continents
// by point-in-polygon lookup against a Natural Earth admin-0 countries
// GeoJSON file.
package naturalearth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/aerosol-aod-etl/internal/domain"
)

// Lookup implements domain.RegionLookup over an in-memory country index.
// The whole dataset is loaded once at startup; lookups are pure
// computation with no I/O.
type Lookup struct {
	countries []country
	logger    *slog.Logger
}

type country struct {
	name      string
	continent string
	polygons  []polygon
}

// polygon holds the rings of one polygon: ring 0 is the outer boundary,
// the rest are holes. Points are [lon, lat] as in GeoJSON.
type polygon struct {
	rings [][][2]float64
	// Bounding box over the outer ring, a cheap prefilter before ray casting.
	minLon, minLat, maxLon, maxLat float64
}

// NewLookup loads and indexes the GeoJSON file at path.
func NewLookup(path string, logger *slog.Logger) (*Lookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boundary dataset: %w", err)
	}

	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse boundary dataset: %w", err)
	}

	l := &Lookup{logger: logger}
	for _, f := range fc.Features {
		c := country{name: f.Properties.Admin, continent: f.Properties.Continent}
		switch f.Geometry.Type {
		case "Polygon":
			var coords [][][2]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &coords); err != nil {
				return nil, fmt.Errorf("parse polygon for %q: %w", c.name, err)
			}
			c.polygons = append(c.polygons, newPolygon(coords))
		case "MultiPolygon":
			var coords [][][][2]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &coords); err != nil {
				return nil, fmt.Errorf("parse multipolygon for %q: %w", c.name, err)
			}
			for _, p := range coords {
				c.polygons = append(c.polygons, newPolygon(p))
			}
		default:
			logger.Warn("skipping unsupported geometry", "country", c.name, "type", f.Geometry.Type)
			continue
		}
		l.countries = append(l.countries, c)
	}

	if len(l.countries) == 0 {
		return nil, fmt.Errorf("boundary dataset %s contains no usable features", path)
	}
	logger.Info("boundary dataset loaded", "path", path, "countries", len(l.countries))
	return l, nil
}

// Locate returns the country and continent containing the point, or an
// empty Region when no polygon contains it (e.g. open ocean). It never
// returns an error after a successful load.
func (l *Lookup) Locate(_ context.Context, lat, lon float64) (domain.Region, error) {
	for _, c := range l.countries {
		for _, p := range c.polygons {
			if p.contains(lon, lat) {
				return domain.Region{Country: c.name, Continent: c.continent}, nil
			}
		}
	}
	return domain.Region{}, nil
}

func newPolygon(rings [][][2]float64) polygon {
	p := polygon{rings: rings}
	if len(rings) == 0 || len(rings[0]) == 0 {
		return p
	}
	p.minLon, p.maxLon = rings[0][0][0], rings[0][0][0]
	p.minLat, p.maxLat = rings[0][0][1], rings[0][0][1]
	for _, pt := range rings[0] {
		p.minLon = min(p.minLon, pt[0])
		p.maxLon = max(p.maxLon, pt[0])
		p.minLat = min(p.minLat, pt[1])
		p.maxLat = max(p.maxLat, pt[1])
	}
	return p
}

// contains tests the point with even-odd ray casting over all rings, so
// points inside a hole count as outside.
func (p polygon) contains(lon, lat float64) bool {
	if lon < p.minLon || lon > p.maxLon || lat < p.minLat || lat > p.maxLat {
		return false
	}
	inside := false
	for _, ring := range p.rings {
		n := len(ring)
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			yi, yj := ring[i][1], ring[j][1]
			xi, xj := ring[i][0], ring[j][0]
			if (yi > lat) != (yj > lat) &&
				lon < (xj-xi)*(lat-yi)/(yj-yi)+xi {
				inside = !inside
			}
		}
	}
	return inside
}

// GeoJSON wire types, limited to the fields the lookup needs.

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties properties `json:"properties"`
	Geometry   geometry   `json:"geometry"`
}

type properties struct {
	Admin     string `json:"ADMIN"`
	Continent string `json:"CONTINENT"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}
