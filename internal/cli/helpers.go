package cli

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"

	"github.com/runnerr0/wqlab/internal/config"
	"github.com/runnerr0/wqlab/internal/dataset"
	"github.com/runnerr0/wqlab/internal/prompt"
	"github.com/runnerr0/wqlab/internal/series"
	"github.com/runnerr0/wqlab/internal/storage"
)

const (
	msgNoFile           = "No file selected. Exiting."
	msgNoCharacteristic = "No characteristic entered. Exiting."
	msgInvalidSelection = "Invalid or duplicate selections."
	msgNotNumeric       = "Invalid input. Please enter numeric values."
)

// exitError ends a command cleanly after its message is printed.
type exitError struct {
	msg string
}

func (e *exitError) Error() string { return e.msg }

func exitWith(format string, args ...any) error {
	return &exitError{msg: fmt.Sprintf(format, args...)}
}

// finish prints the message of an exitError and swallows it.
func finish(out io.Writer, err error) error {
	var ee *exitError
	if errors.As(err, &ee) {
		fmt.Fprintln(out, ee.msg)
		return nil
	}
	return err
}

func noDataMessage(name string) error {
	return exitWith("No data found for '%s'.", name)
}

// session is the per-invocation state shared by the data commands.
type session struct {
	cfg      *config.Config
	log      *slog.Logger
	prompter prompt.Provider
	out      io.Writer
	json     bool
}

func newSession(globals *GlobalFlags, prompter prompt.Provider, out io.Writer) (*session, error) {
	if globals == nil {
		globals = &GlobalFlags{}
	}
	cfg, err := config.Resolve(globals.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if out == nil {
		out = os.Stdout
	}
	if prompter == nil {
		prompter = prompt.NewTerminal(os.Stdin, out)
	}
	return &session{
		cfg:      cfg,
		log:      newLogger(cfg.Logging, globals.Verbose, os.Stderr),
		prompter: prompter,
		out:      out,
		json:     globals.JSON,
	}, nil
}

// sourceFile returns flagValue, or asks the prompter for a file.
func (s *session) sourceFile(flagValue, title string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	path, err := s.prompter.ChooseFile(title)
	if errors.Is(err, prompt.ErrNoSelection) || (err == nil && strings.TrimSpace(path) == "") {
		return "", exitWith(msgNoFile)
	}
	if err != nil {
		return "", fmt.Errorf("choose file: %w", err)
	}
	return strings.TrimSpace(path), nil
}

func (s *session) loadDataset(flagValue, title string) (*dataset.Dataset, error) {
	path, err := s.sourceFile(flagValue, title)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(path, s.cfg.Columns)
	if err != nil {
		return nil, err
	}
	s.log.Debug("dataset loaded", "source", path, "rows", ds.Len())
	return ds, nil
}

// clean filters one characteristic and logs the cleaning diagnostics.
func (s *session) clean(ds *dataset.Dataset, name string) (map[string]series.SiteSeries, series.CleanReport) {
	m, report := series.NewFilter(s.cfg.Parsing.DateLayouts).FilterAndClean(ds, name)
	s.log.Info("cleaned series",
		"characteristic", name,
		"matching", report.Matching,
		"valid_dates", report.ValidDates,
		"valid_values", report.ValidValues,
		"remaining", report.Remaining,
		"sites", report.Sites,
	)
	return m, report
}

func (s *session) printJSON(v any) error {
	return writeJSON(s.out, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// openStore opens the export database at path, runs migrations,
// and returns a ready-to-use store and the underlying *sql.DB.
func openStore(path string, clock clockwork.Clock) (*storage.SQLiteStore, *sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	// Foreign keys are a per-connection setting.
	db.SetMaxOpenConns(1)

	if err := storage.NewMigrationRunner(db).Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	var opts []storage.Option
	if clock != nil {
		opts = append(opts, storage.WithClock(clock))
	}
	store, err := storage.NewSQLiteStore(db, opts...)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	return store, db, nil
}

// chartPath derives an output file name from the plotted characteristics.
// Names are transliterated, so "Température" becomes "temperature".
func chartPath(format string, names ...string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		part := strings.ReplaceAll(slug.Make(n), "-", "_")
		if part == "" {
			part = "chart"
		}
		parts[i] = part
	}
	return strings.Join(parts, "_vs_") + "_over_time." + format
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if i > 0 {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
