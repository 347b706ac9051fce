package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/launchdash/launchdash/internal/launch"
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound = errors.New("not found")
	ErrEmpty    = errors.New("snapshot has no launches")
)

// Import describes one ReplaceLaunches call.
type Import struct {
	ID         int64
	Source     string
	Records    int
	ImportedAt time.Time
}

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS launches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    flight_number INTEGER NOT NULL DEFAULT 0,
    site TEXT NOT NULL,
    payload_mass_kg REAL NOT NULL,
    class INTEGER NOT NULL CHECK (class IN (0, 1)),
    booster_version TEXT NOT NULL DEFAULT '',
    booster_version_category TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_launches_site ON launches(site);

CREATE TABLE IF NOT EXISTS imports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT NOT NULL,
    records INTEGER NOT NULL,
    imported_at INTEGER NOT NULL DEFAULT (unixepoch())
);
`

func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ReplaceLaunches(ctx context.Context, source string, records []launch.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM launches`); err != nil {
		return fmt.Errorf("failed to clear launches: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO launches (flight_number, site, payload_mass_kg, class, booster_version, booster_version_category)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.FlightNumber, string(r.Site), r.PayloadMassKg, r.Class(), r.BoosterVersion, r.BoosterVersionCategory,
		); err != nil {
			return fmt.Errorf("failed to insert launch: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (source, records, imported_at) VALUES (?, ?, ?)`,
		source, len(records), time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// ListLaunches returns the snapshot in insertion order.
func (s *SQLiteStore) ListLaunches(ctx context.Context) ([]launch.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT flight_number, site, payload_mass_kg, class, booster_version, booster_version_category
		 FROM launches ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list launches: %w", err)
	}
	defer rows.Close()

	var records []launch.Record
	for rows.Next() {
		var (
			r     launch.Record
			site  string
			class int
		)
		if err := rows.Scan(&r.FlightNumber, &site, &r.PayloadMassKg, &class, &r.BoosterVersion, &r.BoosterVersionCategory); err != nil {
			return nil, fmt.Errorf("failed to scan launch: %w", err)
		}
		r.Site, err = launch.ParseSite(site)
		if err != nil {
			return nil, fmt.Errorf("corrupt snapshot row: %w", err)
		}
		r.Success = class == 1
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read launches: %w", err)
	}

	return records, nil
}

func (s *SQLiteStore) CountLaunches(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM launches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count launches: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) LastImport(ctx context.Context) (*Import, error) {
	var (
		imp        Import
		importedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, records, imported_at FROM imports ORDER BY id DESC LIMIT 1`,
	).Scan(&imp.ID, &imp.Source, &imp.Records, &importedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last import: %w", err)
	}
	imp.ImportedAt = time.Unix(importedAt, 0)
	return &imp, nil
}

// LoadDataset reads the snapshot into an in-memory dataset.
func (s *SQLiteStore) LoadDataset(ctx context.Context) (*launch.Dataset, error) {
	records, err := s.ListLaunches(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	return launch.NewDataset(records)
}
