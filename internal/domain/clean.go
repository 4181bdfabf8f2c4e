package domain

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
	"time"
)

// sentinelValue is the AERONET placeholder for "no measurement".
const sentinelValue = -999.0

// dateLayout matches the Date(dd:mm:yyyy) column, e.g. "26:04:2024".
const dateLayout = "02:01:2006"

// CleanStats counts what the Cleaner read and dropped.
type CleanStats struct {
	RowsRead    int
	RowsDropped int
}

// CleanTable normalizes a raw table: the -999 sentinel becomes an
// explicit missing value, dates are parsed, and every measurement field
// is coerced to a float. A row whose date cannot be parsed is dropped
// and counted; a non-numeric measurement token becomes missing rather
// than failing the row. Swapped coordinate pairs (|lat| > 90 while
// |lon| <= 90) are corrected here so every later stage sees the same
// site tuple.
func CleanTable(records []RawRecord) ([]CleanedRecord, CleanStats) {
	stats := CleanStats{RowsRead: len(records)}
	cleaned := make([]CleanedRecord, 0, len(records))

	for _, raw := range records {
		date, err := time.Parse(dateLayout, strings.TrimSpace(raw.Date))
		if err != nil {
			stats.RowsDropped++
			continue
		}

		rec := CleanedRecord{
			Site:              strings.TrimSpace(raw.Site),
			Latitude:          parseMeasurement(raw.Latitude),
			Longitude:         parseMeasurement(raw.Longitude),
			Elevation:         parseMeasurement(raw.Elevation),
			Date:              date,
			AngstromExponent:  parseMeasurement(raw.AngstromExponent),
			PrecipitableWater: parseMeasurement(raw.PrecipitableWater),
			AOD:               make(map[int]sql.NullFloat64, len(raw.AOD)),
		}
		for nm, value := range raw.AOD {
			rec.AOD[nm] = parseMeasurement(value)
		}
		rec.Latitude, rec.Longitude = fixSwappedCoords(rec.Latitude, rec.Longitude)

		cleaned = append(cleaned, rec)
	}

	return cleaned, stats
}

// parseMeasurement coerces a raw token to a float. Empty strings,
// non-numeric tokens, and the -999 sentinel all become missing.
func parseMeasurement(s string) sql.NullFloat64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullFloat64{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == sentinelValue {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

// fixSwappedCoords corrects records where latitude and longitude were
// evidently entered in the wrong order. Only unambiguous cases are
// swapped: a latitude beyond 90 degrees paired with a longitude that is
// a plausible latitude.
func fixSwappedCoords(lat, lon sql.NullFloat64) (sql.NullFloat64, sql.NullFloat64) {
	if !lat.Valid || !lon.Valid {
		return lat, lon
	}
	if math.Abs(lat.Float64) > 90 && math.Abs(lon.Float64) <= 90 {
		return lon, lat
	}
	return lat, lon
}
