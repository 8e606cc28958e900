package cli

import (
	"bytes"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/wqlab/internal/prompt"
	"github.com/runnerr0/wqlab/internal/storage"
)

const sampleCSV = `MonitoringLocationIdentifier,CharacteristicName,ActivityStartDate,ResultMeasureValue,ResultMeasure/MeasureUnitCode
S1,pH,2023-01-01,7.2,pH units
S1,pH,bad-date,7.5,
S2,pH,2023-01-02,abc,
S1,Turbidity,2023-01-03,4.1,NTU
S3,Turbidity,2023-01-05,3.0,NTU
`

const disjointCSV = `MonitoringLocationIdentifier,CharacteristicName,ActivityStartDate,ResultMeasureValue,ResultMeasure/MeasureUnitCode
S1,pH,2023-01-01,7.2,pH units
S2,pH,2023-02-01,7.4,pH units
S3,Turbidity,2023-01-03,4.1,NTU
S4,Turbidity,2023-01-05,3.0,NTU
`

const stationCSV = `MonitoringLocationName,LatitudeMeasure,LongitudeMeasure
Kentucky River <Lock 4>,38.0,-84.0
Elkhorn Creek,39.0,-85.0
Unknown,not-a-number,-85.0
`

var fixedNow = time.Date(2025, 4, 2, 15, 0, 0, 0, time.UTC)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// writeFile writes content to name inside a fresh temp dir.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// testGlobals points --config at a small, colourless config so tests never
// read the real home directory.
func testGlobals(t *testing.T) *GlobalFlags {
	t.Helper()
	path := writeFile(t, "config.yaml", `
chart:
  width: 400
  height: 300
map:
  open_browser: true
logging:
  level: error
  color: false
`)
	return &GlobalFlags{Config: path}
}

func testSession(t *testing.T, globals *GlobalFlags, p prompt.Provider, out io.Writer) *session {
	t.Helper()
	s, err := newSession(globals, p, out)
	require.NoError(t, err)
	return s
}

// setupStore creates a migrated in-memory store with a fake clock.
func setupStore(t *testing.T) (*storage.SQLiteStore, *clockwork.FakeClock) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, storage.NewMigrationRunner(db).Run())

	clock := clockwork.NewFakeClockAt(fixedNow)
	store, err := storage.NewSQLiteStore(db, storage.WithClock(clock))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, clock
}
