// Command validate runs extract and transform over an input file and
// prints the quality report, without touching the warehouse. Useful for
// checking a new AERONET download before loading it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/aerosol-aod-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/aerosol-aod-etl/internal/adapter/naturalearth"
	"github.com/couchcryptid/aerosol-aod-etl/internal/domain"
	"github.com/couchcryptid/aerosol-aod-etl/internal/observability"
)

func main() {
	input := flag.String("input", "data/All_Sites_Times_Daily_Averages_AOD20.csv", "input CSV path")
	boundaries := flag.String("boundaries", "", "Natural Earth countries GeoJSON path (optional)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger := observability.NewLogger(level, "text")

	if err := run(*input, *boundaries, logger); err != nil {
		logger.Error("validation failed", "error", err)
		os.Exit(1)
	}
}

func run(input, boundaries string, logger *slog.Logger) error {
	ctx := context.Background()
	spectral := domain.DefaultSpectral()

	var lookup domain.RegionLookup
	if boundaries != "" {
		ne, err := naturalearth.NewLookup(boundaries, logger)
		if err != nil {
			return err
		}
		lookup = ne
	}

	reader := csvfile.NewReader(input, spectral, logger)
	raw, err := reader.Extract(ctx)
	if err != nil {
		return err
	}

	schema, err := domain.Transform(ctx, raw, spectral, lookup, logger)
	if err != nil {
		return err
	}
	schema.Report.SourceFile = input

	out, err := json.MarshalIndent(schema.Report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
