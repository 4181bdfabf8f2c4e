// Package postgres persists the star schema in the warehouse database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"

	"github.com/couchcryptid/aerosol-aod-etl/internal/domain"
)

// defaultBatchSize bounds fact COPY transactions when the caller
// supplies no usable batch size.
const defaultBatchSize = 10000

// Loader writes the four output tables to Postgres as a full refresh:
// ensure DDL, truncate, insert dimensions, bulk-copy facts.
// It implements pipeline.Loader.
type Loader struct {
	db        *sql.DB
	batchSize int
	logger    *slog.Logger
}

// Connect opens and pings the warehouse database.
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	return db, nil
}

// NewLoader creates a Loader over an open database handle. batchSize
// bounds the number of fact rows per COPY transaction; values below 1
// fall back to the default.
func NewLoader(db *sql.DB, batchSize int, logger *slog.Logger) *Loader {
	if batchSize < 1 {
		batchSize = defaultBatchSize
	}
	return &Loader{db: db, batchSize: batchSize, logger: logger}
}

// Load performs the full-refresh load. Dimensions go in one transaction
// so the fact table's foreign keys always resolve; facts follow in
// batched COPY transactions.
func (l *Loader) Load(ctx context.Context, schema *domain.StarSchema) error {
	if err := l.ensureSchema(ctx); err != nil {
		return err
	}
	if err := l.truncate(ctx); err != nil {
		return err
	}
	if err := l.insertDimensions(ctx, schema); err != nil {
		return err
	}
	if err := l.copyFacts(ctx, schema.Facts); err != nil {
		return err
	}
	l.logger.Info("warehouse load complete",
		"facts", len(schema.Facts),
		"dates", len(schema.Dates),
		"sites", len(schema.Sites),
		"wavelengths", len(schema.Wavelengths),
	)
	return nil
}

func (l *Loader) ensureSchema(ctx context.Context) error {
	for _, stmt := range ddl {
		if _, err := l.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema objects: %w", err)
		}
	}
	return nil
}

// truncateSQL empties all four tables in one statement; listing them
// together keeps the foreign keys satisfied mid-refresh.
const truncateSQL = "TRUNCATE fact_aod, dim_wavelength, dim_date, dim_site"

func (l *Loader) truncate(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, truncateSQL)
	if err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

func (l *Loader) insertDimensions(ctx context.Context, schema *domain.StarSchema) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin dimension insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, w := range schema.Wavelengths {
		_, err := tx.ExecContext(ctx, insertSQL("dim_wavelength"),
			w.ID, w.WavelengthNM, w.SpectralBand, w.Sensitivity)
		if err != nil {
			return fmt.Errorf("insert dim_wavelength: %w", err)
		}
	}

	for _, d := range schema.Dates {
		_, err := tx.ExecContext(ctx, insertSQL("dim_date"),
			d.ID, d.Date, d.Year, d.Month, d.Day, d.DayOfYear)
		if err != nil {
			return fmt.Errorf("insert dim_date: %w", err)
		}
	}

	for _, s := range schema.Sites {
		_, err := tx.ExecContext(ctx, insertSQL("dim_site"),
			s.ID, s.Name, s.Latitude, s.Longitude, s.Elevation, s.Country, s.Continent)
		if err != nil {
			return fmt.Errorf("insert dim_site: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit dimension insert: %w", err)
	}
	return nil
}

// insertSQL renders the INSERT statement for a table from its column
// list, keeping statement and schema in one place.
func insertSQL(table string) string {
	cols := tableColumns[table]
	params := make([]string, len(cols))
	for i := range cols {
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(params, ", "))
}

// copyFacts bulk-loads fact rows with pq.CopyIn, batchSize rows per transaction.
func (l *Loader) copyFacts(ctx context.Context, facts []domain.FactAOD) error {
	for start := 0; start < len(facts); start += l.batchSize {
		end := min(start+l.batchSize, len(facts))
		if err := l.copyFactBatch(ctx, facts[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) copyFactBatch(ctx context.Context, facts []domain.FactAOD) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin fact copy: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("fact_aod", tableColumns["fact_aod"]...))
	if err != nil {
		return fmt.Errorf("prepare fact copy: %w", err)
	}

	for _, f := range facts {
		_, err := stmt.ExecContext(ctx,
			f.ID, f.DateID, f.WavelengthID, f.SiteID,
			string(f.Particle), f.AOD, f.PrecipitableWater, f.AngstromExponent)
		if err != nil {
			stmt.Close()
			return fmt.Errorf("copy fact row %d: %w", f.ID, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flush fact copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close fact copy: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fact copy: %w", err)
	}
	return nil
}

// tableColumns lists each table's columns in insert order.
var tableColumns = map[string][]string{
	"dim_wavelength": {"id_wavelength", "wavelength_nm", "spectral_band", "sensitive_aerosol"},
	"dim_date":       {"id_date", "date", "year", "month", "day", "day_of_year"},
	"dim_site":       {"id_site", "aeronet_site", "latitude", "longitude", "elevation", "country", "continent"},
	"fact_aod": {"fact_id", "id_date", "id_wavelength", "id_site",
		"particle_type", "aod_value", "precipitable_water", "angstrom_exponent"},
}

// ddl creates the star schema. Column sets mirror the transform output;
// foreign keys guarantee every fact row resolves in each dimension.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS dim_wavelength (
		id_wavelength     INT PRIMARY KEY,
		wavelength_nm     DOUBLE PRECISION NOT NULL UNIQUE,
		spectral_band     TEXT,
		sensitive_aerosol TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS dim_date (
		id_date     INT PRIMARY KEY,
		date        DATE NOT NULL UNIQUE,
		year        SMALLINT NOT NULL,
		month       SMALLINT NOT NULL,
		day         SMALLINT NOT NULL,
		day_of_year SMALLINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dim_site (
		id_site      INT PRIMARY KEY,
		aeronet_site TEXT NOT NULL,
		latitude     NUMERIC(9,6) NOT NULL,
		longitude    NUMERIC(9,6) NOT NULL,
		elevation    DOUBLE PRECISION,
		country      TEXT,
		continent    TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS ix_site_name ON dim_site (aeronet_site)`,
	`CREATE TABLE IF NOT EXISTS fact_aod (
		fact_id            BIGINT PRIMARY KEY,
		id_date            INT NOT NULL REFERENCES dim_date (id_date),
		id_wavelength      INT NOT NULL REFERENCES dim_wavelength (id_wavelength),
		id_site            INT NOT NULL REFERENCES dim_site (id_site),
		particle_type      TEXT,
		aod_value          DOUBLE PRECISION NOT NULL,
		precipitable_water DOUBLE PRECISION,
		angstrom_exponent  DOUBLE PRECISION
	)`,
	`CREATE INDEX IF NOT EXISTS ix_fact_date ON fact_aod (id_date)`,
	`CREATE INDEX IF NOT EXISTS ix_fact_wavelength ON fact_aod (id_wavelength)`,
	`CREATE INDEX IF NOT EXISTS ix_fact_site ON fact_aod (id_site)`,
}
