package storage

import "database/sql"

// migrateV001 creates the export schema. Every statement uses IF NOT EXISTS
// for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS exports (
			id             TEXT PRIMARY KEY,
			source         TEXT NOT NULL DEFAULT '',
			characteristic TEXT NOT NULL,
			unit_label     TEXT NOT NULL DEFAULT '',
			exported_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			site_count     INTEGER NOT NULL DEFAULT 0,
			point_count    INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS observations (
			export_id TEXT NOT NULL REFERENCES exports(id) ON DELETE CASCADE,
			site      TEXT NOT NULL,
			seq       INTEGER NOT NULL,
			ts        DATETIME NOT NULL,
			value     REAL NOT NULL,
			PRIMARY KEY (export_id, site, seq)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_exports_characteristic ON exports(characteristic)`,
		`CREATE INDEX IF NOT EXISTS idx_exports_exported_at    ON exports(exported_at)`,
		`CREATE INDEX IF NOT EXISTS idx_observations_site_ts   ON observations(site, ts)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
