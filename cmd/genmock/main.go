// Command genmock writes a synthetic AERONET-style daily-average CSV for
// local pipeline testing, including the file preamble, the -999 missing
// sentinel, and a tunable missing-value rate.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/couchcryptid/aerosol-aod-etl/internal/domain"
)

var mockSites = []struct {
	name      string
	lat, lon  float64
	elevation float64
}{
	{"GSFC", 38.9925, -76.8398, 87},
	{"Mauna_Loa", 19.5362, -155.5763, 3402},
	{"Banizoumbou", 13.5473, 2.6651, 250},
	{"Alta_Floresta", -9.8714, -56.1044, 277},
	{"Lille", 50.6117, 3.1417, 60},
	{"Kanpur", 26.5127, 80.2319, 123},
}

func main() {
	out := flag.String("out", "data/mock_aod_daily.csv", "output CSV path")
	days := flag.Int("days", 30, "days of data per site")
	missing := flag.Float64("missing", 0.3, "fraction of AOD values replaced by the -999 sentinel")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	if err := generate(*out, *days, *missing, *seed); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s: %d sites x %d days\n", *out, len(mockSites), *days)
}

func generate(path string, days int, missingRate float64, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	spectral := domain.DefaultSpectral()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// AERONET files open with a short free-text preamble before the header.
	fmt.Fprintln(f, "AERONET Version 3; AOD Level 2.0")
	fmt.Fprintln(f, "All Sites, Daily Averages (mock data)")
	fmt.Fprintln(f, "Contact: nobody@example.org")

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"AERONET_Site", "Date(dd:mm:yyyy)", "Day_of_Year",
		"440-870_Angstrom_Exponent", "Precipitable_Water(cm)",
		"Site_Latitude(Degrees)", "Site_Longitude(Degrees)", "Site_Elevation(m)",
	}
	for _, ch := range spectral.Channels {
		header = append(header, ch.Column)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, site := range mockSites {
		for d := 0; d < days; d++ {
			date := start.AddDate(0, 0, d)
			row := []string{
				site.name,
				date.Format("02:01:2006"),
				fmt.Sprintf("%d", date.YearDay()),
				fmt.Sprintf("%.4f", 0.2+rng.Float64()*1.8), // ae in [0.2, 2.0]
				fmt.Sprintf("%.4f", 0.5+rng.Float64()*4.0),
				fmt.Sprintf("%.6f", site.lat),
				fmt.Sprintf("%.6f", site.lon),
				fmt.Sprintf("%.1f", site.elevation),
			}
			for range spectral.Channels {
				if rng.Float64() < missingRate {
					row = append(row, "-999.000000")
					continue
				}
				row = append(row, fmt.Sprintf("%.6f", 0.01+rng.Float64()*0.8))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
