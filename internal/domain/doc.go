// Package domain transforms AERONET aerosol measurements into a star
// schema for the aerosol data warehouse.
//
// # Data Source
//
// Input rows come from the AERONET version 3 all-sites daily-average
// product (AOD level 2.0): one row per site per day, with one aerosol
// optical depth column per instrument wavelength ("AOD_340nm" through
// "AOD_1640nm"), the 440-870 nm Angstrom exponent, precipitable water
// in cm, and the site's name, coordinates, and elevation.
//
// # AERONET Conventions
//
// Missing values:
//
//	-999 (in any textual form: "-999", "-999.0", "-999.000000") is the
//	sentinel for "no measurement". Cleaning replaces it with an explicit
//	missing value; it never appears past [CleanTable].
//
// Dates:
//
//	The date column uses dd:mm:yyyy, e.g. "26:04:2024". Rows with an
//	unparseable date are dropped and counted, not fatal.
//
// Particle classification:
//
//	The Angstrom exponent indicates dominant particle size; higher
//	values mean finer particles. Classes, with boundaries inclusive to
//	their side:
//
//	  ae >= 1.5        fine    (smoke, urban pollution)
//	  ae <= 1.0        coarse  (dust, sea salt)
//	  1.0 < ae < 1.5   mixed
//	  missing          unknown
//
// Spectral labels:
//
//	Wavelengths below 400 nm are UV, through 700 nm VIS, above NIR.
//	Short wavelengths discriminate fine particles best (through 500 nm),
//	long wavelengths coarse particles (800 nm and up), the middle band
//	is balanced. Both threshold tables live in [SpectralConfig].
//
// # Star Schema
//
// One transform run produces four tables: fact_aod plus the date, site,
// and wavelength dimensions. Surrogate keys are dense integers assigned
// in sorted natural-key order (dates chronological, wavelengths
// ascending, sites by name then coordinates), so re-running the
// transform on identical input yields byte-identical tables. Every fact
// row references exactly one row in each dimension; measurements whose
// site failed coordinate validation are dropped at the join and counted
// in the [QualityReport].
package domain
