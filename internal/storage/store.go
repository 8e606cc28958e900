package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/runnerr0/wqlab/internal/series"
)

// ErrNotFound is returned when an export id does not exist.
var ErrNotFound = errors.New("export not found")

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store defines the export database operations.
type Store interface {
	SaveExport(ctx context.Context, export *Export, data map[string]series.SiteSeries) error
	GetExport(ctx context.Context, id string) (*Export, error)
	ListExports(ctx context.Context) ([]Export, error)
	GetSeries(ctx context.Context, id string) (map[string]series.SiteSeries, error)
	DeleteExport(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db    *sql.DB
	clock clockwork.Clock

	getExport    *sql.Stmt
	deleteExport *sql.Stmt
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithClock sets the clock used to stamp exports.
func WithClock(c clockwork.Clock) Option {
	return func(s *SQLiteStore) { s.clock = c }
}

// NewSQLiteStore creates a store from an already-opened and migrated database.
func NewSQLiteStore(db *sql.DB, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db, clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.getExport, err = s.db.Prepare(`
		SELECT id, source, characteristic, unit_label, exported_at, site_count, point_count
		FROM exports WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.deleteExport, err = s.db.Prepare(`DELETE FROM exports WHERE id = ?`)
	return err
}

// SaveExport writes the export header and every point in one transaction.
// ID, ExportedAt, Sites and Points are filled in on export.
func (s *SQLiteStore) SaveExport(ctx context.Context, export *Export, data map[string]series.SiteSeries) error {
	export.ID = uuid.NewString()
	export.ExportedAt = s.clock.Now().UTC()
	export.Sites = len(data)
	export.Points = series.PointCount(data)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO exports (id, source, characteristic, unit_label, exported_at, site_count, point_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		export.ID, export.Source, export.Characteristic, export.UnitLabel,
		export.ExportedAt.Format(timeLayout), export.Sites, export.Points,
	)
	if err != nil {
		return fmt.Errorf("insert export: %w", err)
	}

	insert, err := tx.PrepareContext(ctx,
		"INSERT INTO observations (export_id, site, seq, ts, value) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("prepare observation insert: %w", err)
	}
	defer insert.Close()

	for _, site := range series.SortedSites(data) {
		for i, p := range data[site].Points {
			if _, err := insert.ExecContext(ctx,
				export.ID, site, i, p.Time.UTC().Format(timeLayout), p.Value,
			); err != nil {
				return fmt.Errorf("insert observation %s/%d: %w", site, i, err)
			}
		}
	}

	return tx.Commit()
}

// GetExport retrieves one export header by id.
func (s *SQLiteStore) GetExport(ctx context.Context, id string) (*Export, error) {
	e, err := scanExport(s.getExport.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get export: %w", err)
	}
	return e, nil
}

// ListExports returns every export, newest first.
func (s *SQLiteStore) ListExports(ctx context.Context) ([]Export, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, characteristic, unit_label, exported_at, site_count, point_count
		FROM exports ORDER BY exported_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query exports: %w", err)
	}
	defer rows.Close()

	exports := []Export{}
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		exports = append(exports, *e)
	}
	return exports, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExport(row rowScanner) (*Export, error) {
	var e Export
	var ts string
	if err := row.Scan(&e.ID, &e.Source, &e.Characteristic, &e.UnitLabel, &ts, &e.Sites, &e.Points); err != nil {
		return nil, err
	}
	e.ExportedAt, _ = parseTimestamp(ts)
	return &e, nil
}

// GetSeries rebuilds the per-site series of an export in stored order.
func (s *SQLiteStore) GetSeries(ctx context.Context, id string) (map[string]series.SiteSeries, error) {
	if _, err := s.GetExport(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT site, ts, value FROM observations WHERE export_id = ? ORDER BY site, seq", id,
	)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	out := make(map[string]series.SiteSeries)
	for rows.Next() {
		var site, ts string
		var v float64
		if err := rows.Scan(&site, &ts, &v); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		t, err := parseTimestamp(ts)
		if err != nil {
			return nil, err
		}
		ss := out[site]
		ss.Site = site
		ss.Points = append(ss.Points, series.Point{Time: t, Value: v})
		out[site] = ss
	}
	return out, rows.Err()
}

// DeleteExport removes an export; its observations cascade.
func (s *SQLiteStore) DeleteExport(ctx context.Context, id string) error {
	res, err := s.deleteExport.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("delete export: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM exports").Scan(&stats.TotalExports); err != nil {
		return nil, fmt.Errorf("count exports: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM observations").Scan(&stats.TotalObservations); err != nil {
		return nil, fmt.Errorf("count observations: %w", err)
	}

	if stats.TotalExports > 0 {
		var oldest, newest string
		err := s.db.QueryRowContext(ctx, "SELECT MIN(exported_at), MAX(exported_at) FROM exports").Scan(&oldest, &newest)
		if err != nil {
			return nil, fmt.Errorf("export time range: %w", err)
		}
		stats.OldestExport, _ = parseTimestamp(oldest)
		stats.NewestExport, _ = parseTimestamp(newest)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT characteristic, COUNT(*) AS cnt FROM exports GROUP BY characteristic ORDER BY cnt DESC, characteristic LIMIT 10",
	)
	if err != nil {
		return nil, fmt.Errorf("top characteristics: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc CharacteristicCount
		if err := rows.Scan(&cc.Characteristic, &cc.Count); err != nil {
			return nil, err
		}
		stats.TopCharacteristics = append(stats.TopCharacteristics, cc)
	}
	return stats, rows.Err()
}

// Close releases prepared statements. The underlying *sql.DB is not closed.
func (s *SQLiteStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.getExport, s.deleteExport} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}

// parseTimestamp tries the timestamp formats SQLite hands back.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}
