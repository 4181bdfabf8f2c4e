package domain

import (
	"database/sql"
	"time"
)

// RawRecord is one row of the wide-format AERONET daily-average table,
// all fields as unparsed strings exactly as they appear in the CSV.
// AOD holds the per-channel optical depth columns keyed by wavelength
// in nanometers; the extractor populates it from the configured
// channel-to-column mapping.
type RawRecord struct {
	Site              string
	Latitude          string
	Longitude         string
	Elevation         string
	Date              string // dd:mm:yyyy
	AngstromExponent  string // 440-870 nm
	PrecipitableWater string // cm
	AOD               map[int]string
}

// CleanedRecord is a RawRecord after sentinel replacement, date parsing,
// and numeric coercion. Missing measurements carry Valid=false; the
// -999 sentinel never survives cleaning.
type CleanedRecord struct {
	Site              string
	Latitude          sql.NullFloat64
	Longitude         sql.NullFloat64
	Elevation         sql.NullFloat64
	Date              time.Time
	AngstromExponent  sql.NullFloat64
	PrecipitableWater sql.NullFloat64
	Particle          ParticleClass
	AOD               map[int]sql.NullFloat64
}

// ParticleClass is the categorical particle-size label derived from the
// Angstrom exponent.
type ParticleClass string

const (
	ParticleFine    ParticleClass = "fine"
	ParticleCoarse  ParticleClass = "coarse"
	ParticleMixed   ParticleClass = "mixed"
	ParticleUnknown ParticleClass = "unknown"
)

// LongMeasurement is one (site, date, wavelength) observation produced
// by the wide-to-long reshape. AOD is always a real measurement; rows
// for missing channel values are never emitted.
type LongMeasurement struct {
	Site              string
	Latitude          sql.NullFloat64
	Longitude         sql.NullFloat64
	Elevation         sql.NullFloat64
	Date              time.Time
	WavelengthNM      int
	AOD               float64
	Particle          ParticleClass
	PrecipitableWater sql.NullFloat64
	AngstromExponent  sql.NullFloat64
}

// DimDate is one distinct calendar date, decomposed for warehouse queries.
type DimDate struct {
	ID        int
	Date      time.Time
	Year      int
	Month     int
	Day       int
	DayOfYear int
}

// DimWavelength is one distinct AOD channel with its spectral labels.
type DimWavelength struct {
	ID           int
	WavelengthNM int
	SpectralBand string
	Sensitivity  string
}

// DimSite is one distinct, coordinate-valid observation site, optionally
// enriched with country and continent.
type DimSite struct {
	ID        int
	Name      string
	Latitude  float64
	Longitude float64
	Elevation sql.NullFloat64
	Country   sql.NullString
	Continent sql.NullString
}

// FactAOD is one measurement joined to its three dimension keys.
type FactAOD struct {
	ID                int
	DateID            int
	WavelengthID      int
	SiteID            int
	Particle          ParticleClass
	AOD               float64
	PrecipitableWater sql.NullFloat64
	AngstromExponent  sql.NullFloat64
}

// StarSchema is the complete output of one transform run: the fact
// table, the three dimensions, and the data-quality report.
type StarSchema struct {
	Facts       []FactAOD
	Dates       []DimDate
	Sites       []DimSite
	Wavelengths []DimWavelength
	Report      QualityReport
}

// QualityReport accounts for every row and site the transform excluded,
// so data loss is visible to the caller and to downstream monitoring.
type QualityReport struct {
	RunID      string `json:"run_id"`
	SourceFile string `json:"source_file,omitempty"`

	RowsRead      int `json:"rows_read"`
	RowsDropped   int `json:"rows_dropped"`   // unparseable date or structure
	SitesFound    int `json:"sites_found"`    // distinct site tuples before validation
	SitesExcluded int `json:"sites_excluded"` // coordinates out of range or missing
	SitesEnriched int `json:"sites_enriched"` // country/continent attached
	LookupErrors  int `json:"lookup_errors"`  // region lookup failures, non-fatal

	Measurements int `json:"measurements"`  // long rows after reshape
	FactsDropped int `json:"facts_dropped"` // no matching dimension row
	FactsEmitted int `json:"facts_emitted"`

	DateRows       int `json:"date_rows"`
	SiteRows       int `json:"site_rows"`
	WavelengthRows int `json:"wavelength_rows"`

	GeneratedAt time.Time `json:"generated_at"`
}
