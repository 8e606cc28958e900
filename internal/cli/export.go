package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/wqlab/internal/series"
	"github.com/runnerr0/wqlab/internal/storage"
)

// exportJSON is the JSON form of one stored export.
type exportJSON struct {
	ID             string `json:"id"`
	Source         string `json:"source"`
	Characteristic string `json:"characteristic"`
	UnitLabel      string `json:"unit_label"`
	ExportedAt     string `json:"exported_at"`
	Sites          int    `json:"sites"`
	Points         int    `json:"points"`
}

func toExportJSON(e storage.Export) exportJSON {
	return exportJSON{
		ID:             e.ID,
		Source:         e.Source,
		Characteristic: e.Characteristic,
		UnitLabel:      e.UnitLabel,
		ExportedAt:     e.ExportedAt.UTC().Format(time.RFC3339),
		Sites:          e.Sites,
		Points:         e.Points,
	}
}

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	s, err := newSession(c.globals, c.prompter, c.out)
	if err != nil {
		return err
	}

	// Resolve the source before touching the database so a cancelled
	// selection leaves no file behind.
	path, err := s.sourceFile(c.File, "Select water quality CSV")
	if err != nil {
		return finish(s.out, err)
	}
	c.File = path

	store, db, err := openStore(c.dbPath(s), c.clock)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return finish(s.out, c.executeWithStore(s, store))
}

func (c *ExportCommand) dbPath(s *session) string {
	if c.DB != "" {
		return c.DB
	}
	return s.cfg.Export.Database
}

// executeWithStore runs the export against a provided store (used by tests).
func (c *ExportCommand) executeWithStore(s *session, store storage.Store) error {
	name := strings.TrimSpace(c.Characteristic)
	if name == "" {
		return exitWith(msgNoCharacteristic)
	}

	ds, err := s.loadDataset(c.File, "Select water quality CSV")
	if err != nil {
		return err
	}
	data, report := s.clean(ds, name)
	if report.Remaining == 0 {
		return noDataMessage(name)
	}

	e := &storage.Export{
		Source:         ds.Source,
		Characteristic: name,
		UnitLabel:      series.ResolveUnitLabel(ds, name),
	}
	if err := store.SaveExport(context.Background(), e, data); err != nil {
		return fmt.Errorf("save export: %w", err)
	}
	s.log.Debug("export saved", "id", e.ID, "points", e.Points)

	if s.json {
		return s.printJSON(toExportJSON(*e))
	}
	fmt.Fprintf(s.out, "Exported %s points from %d sites (%s)\n", formatNumber(int64(e.Points)), e.Sites, e.ID)
	return nil
}
