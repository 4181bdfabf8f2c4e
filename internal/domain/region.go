package domain

import "context"

// Region is the geographic classification of a coordinate pair.
// Either or both fields may be empty when the lookup has no answer,
// e.g. for points in open ocean.
type Region struct {
	Country   string
	Continent string
}

// RegionLookup resolves a coordinate pair to a country and continent.
// It is an optional capability: the transform accepts a nil lookup and
// leaves the enrichment fields unset.
type RegionLookup interface {
	Locate(ctx context.Context, lat, lon float64) (Region, error)
}
