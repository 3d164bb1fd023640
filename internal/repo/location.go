// Package repo contains all database access logic for the admin gateway.
// The gateway owns a single table set — the geographic reference data — and
// loads it wholesale at startup; no per-request queries happen here.
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/communitas/admin-gateway/internal/geo"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LocationRepo loads the geographic reference hierarchy.
// The service layer depends on this interface, not the Postgres
// implementation, which allows startup wiring to be unit-tested with a mock.
type LocationRepo interface {
	// LoadDataset reads the full country → state → city hierarchy and
	// assembles it into an immutable geo.Dataset.
	LoadDataset(ctx context.Context) (geo.Dataset, error)
}

// pgLocationRepo is the Postgres implementation of LocationRepo.
type pgLocationRepo struct {
	db db
}

// NewLocationRepo constructs a LocationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewLocationRepo(db db) LocationRepo {
	return &pgLocationRepo{db: db}
}

// LoadDataset reads countries, states, and cities in three ordered queries
// and stitches them together in memory. Row counts are small (curated
// operating regions), so a single pass per table is fine.
func (r *pgLocationRepo) LoadDataset(ctx context.Context) (geo.Dataset, error) {
	countries, index, err := r.loadCountries(ctx)
	if err != nil {
		return geo.Dataset{}, fmt.Errorf("repo.LocationRepo.LoadDataset: %w", err)
	}
	if err := r.loadStates(ctx, countries, index); err != nil {
		return geo.Dataset{}, fmt.Errorf("repo.LocationRepo.LoadDataset: %w", err)
	}
	if err := r.loadCities(ctx, countries, index); err != nil {
		return geo.Dataset{}, fmt.Errorf("repo.LocationRepo.LoadDataset: %w", err)
	}
	return geo.NewDataset(countries), nil
}

// loadCountries returns the country list in sort order plus a code → slice
// index lookup used when attaching states and cities.
func (r *pgLocationRepo) loadCountries(ctx context.Context) ([]geo.Country, map[string]int, error) {
	const q = `
		SELECT code, name
		FROM countries
		ORDER BY sort_order, name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("countries: %w", err)
	}
	defer rows.Close()

	var countries []geo.Country
	index := make(map[string]int)
	for rows.Next() {
		var c geo.Country
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, nil, fmt.Errorf("countries: scan: %w", err)
		}
		index[c.Code] = len(countries)
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("countries: rows: %w", err)
	}
	return countries, index, nil
}

func (r *pgLocationRepo) loadStates(ctx context.Context, countries []geo.Country, index map[string]int) error {
	const q = `
		SELECT country_code, code, name
		FROM states
		ORDER BY country_code, sort_order, name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return fmt.Errorf("states: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var countryCode string
		var s geo.State
		if err := rows.Scan(&countryCode, &s.Code, &s.Name); err != nil {
			return fmt.Errorf("states: scan: %w", err)
		}
		i, ok := index[countryCode]
		if !ok {
			// The FK should prevent this; seed mistakes must surface at startup.
			return fmt.Errorf("states: unknown country code %q", countryCode)
		}
		countries[i].States = append(countries[i].States, s)
	}
	return rows.Err()
}

func (r *pgLocationRepo) loadCities(ctx context.Context, countries []geo.Country, index map[string]int) error {
	const q = `
		SELECT country_code, state_code, name
		FROM cities
		ORDER BY country_code, state_code, sort_order, name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return fmt.Errorf("cities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var countryCode, stateCode, name string
		if err := rows.Scan(&countryCode, &stateCode, &name); err != nil {
			return fmt.Errorf("cities: scan: %w", err)
		}
		i, ok := index[countryCode]
		if !ok {
			return fmt.Errorf("cities: unknown country code %q", countryCode)
		}
		states := countries[i].States
		var attached bool
		for j := range states {
			if states[j].Code == stateCode {
				states[j].Cities = append(states[j].Cities, geo.City{Name: name})
				attached = true
				break
			}
		}
		if !attached {
			return fmt.Errorf("cities: unknown state code %q in country %q", stateCode, countryCode)
		}
	}
	return rows.Err()
}
