// Package csvfile extracts the raw AERONET daily-average table from a
// local CSV file.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/aerosol-aod-etl/internal/domain"
)

// AERONET column names for the non-channel fields.
const (
	colSite      = "AERONET_Site"
	colLatitude  = "Site_Latitude(Degrees)"
	colLongitude = "Site_Longitude(Degrees)"
	colElevation = "Site_Elevation(m)"
	colDate      = "Date(dd:mm:yyyy)"
	colAngstrom  = "440-870_Angstrom_Exponent"
	colWater     = "Precipitable_Water(cm)"
)

// headerScanLimit caps how many leading lines are searched for the
// header row. AERONET files carry a short free-text preamble before it.
const headerScanLimit = 10

// Reader extracts RawRecords from an AERONET CSV file.
// It implements pipeline.Extractor.
type Reader struct {
	path     string
	spectral domain.SpectralConfig
	logger   *slog.Logger
}

// NewReader creates a Reader for the given file path and channel configuration.
func NewReader(path string, spectral domain.SpectralConfig, logger *slog.Logger) *Reader {
	return &Reader{path: path, spectral: spectral, logger: logger}
}

// Extract reads the whole file into a raw table. A missing date column,
// missing site column, or zero recognized AOD channel columns is a
// domain.SchemaError: no partial result would be meaningful.
func (r *Reader) Extract(ctx context.Context) ([]domain.RawRecord, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // preamble lines have arbitrary field counts
	cr.LazyQuotes = true    // and may contain unbalanced quotes

	cols, err := r.findHeader(cr)
	if err != nil {
		return nil, err
	}

	channels := make(map[int]int) // wavelength nm -> column index
	for _, ch := range r.spectral.Channels {
		if idx, ok := cols[ch.Column]; ok {
			channels[ch.WavelengthNM] = idx
		}
	}

	if _, ok := cols[colDate]; !ok {
		return nil, &domain.SchemaError{Missing: "date column " + colDate}
	}
	if _, ok := cols[colSite]; !ok {
		return nil, &domain.SchemaError{Missing: "site column " + colSite}
	}
	if len(channels) == 0 {
		return nil, &domain.SchemaError{Missing: "AOD channel columns"}
	}

	var records []domain.RawRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read input row: %w", err)
		}

		rec := domain.RawRecord{
			Site:              field(row, cols, colSite),
			Latitude:          field(row, cols, colLatitude),
			Longitude:         field(row, cols, colLongitude),
			Elevation:         field(row, cols, colElevation),
			Date:              field(row, cols, colDate),
			AngstromExponent:  field(row, cols, colAngstrom),
			PrecipitableWater: field(row, cols, colWater),
			AOD:               make(map[int]string, len(channels)),
		}
		for nm, idx := range channels {
			if idx < len(row) {
				rec.AOD[nm] = row[idx]
			}
		}
		records = append(records, rec)
	}

	r.logger.Info("input file read", "path", r.path, "rows", len(records), "channels", len(channels))
	return records, nil
}

// findHeader scans the leading lines for the row containing the date
// column and returns a name-to-index map for it.
func (r *Reader) findHeader(cr *csv.Reader) (map[string]int, error) {
	for i := 0; i < headerScanLimit; i++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		for _, cell := range row {
			if cell != colDate {
				continue
			}
			cols := make(map[string]int, len(row))
			for idx, name := range row {
				cols[name] = idx
			}
			return cols, nil
		}
	}
	return nil, &domain.SchemaError{Missing: "header row with " + colDate}
}

func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
