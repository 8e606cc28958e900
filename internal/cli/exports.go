package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/wqlab/internal/config"
	"github.com/runnerr0/wqlab/internal/storage"
)

// exportsJSON is the JSON output of the exports listing.
type exportsJSON struct {
	Database           string                    `json:"database"`
	TotalExports       int64                     `json:"total_exports"`
	TotalObservations  int64                     `json:"total_observations"`
	OldestExport       string                    `json:"oldest_export,omitempty"`
	NewestExport       string                    `json:"newest_export,omitempty"`
	TopCharacteristics []characteristicCountJSON `json:"top_characteristics"`
	Exports            []exportJSON              `json:"exports"`
}

type characteristicCountJSON struct {
	Characteristic string `json:"characteristic"`
	Count          int64  `json:"count"`
}

// Execute implements the go-flags Commander interface for ExportsCommand.
func (c *ExportsCommand) Execute(args []string) error {
	globals := c.globals
	if globals == nil {
		globals = &GlobalFlags{}
	}
	cfg, err := config.Resolve(globals.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.DB == "" {
		c.DB = cfg.Export.Database
	}
	if _, err := os.Stat(c.DB); err != nil {
		return fmt.Errorf("export database %s: %w", c.DB, err)
	}

	store, db, err := openStore(c.DB, nil)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore lists or deletes exports in a provided store (used by tests).
func (c *ExportsCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	asJSON := c.globals != nil && c.globals.JSON

	if c.Delete != "" {
		if err := store.DeleteExport(ctx, c.Delete); err != nil {
			return err
		}
		if asJSON {
			return writeJSON(out, map[string]string{"deleted": c.Delete})
		}
		fmt.Fprintf(out, "Deleted export %s\n", c.Delete)
		return nil
	}

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}
	exports, err := store.ListExports(ctx)
	if err != nil {
		return fmt.Errorf("list exports: %w", err)
	}

	if asJSON {
		res := exportsJSON{
			Database:           c.DB,
			TotalExports:       stats.TotalExports,
			TotalObservations:  stats.TotalObservations,
			TopCharacteristics: make([]characteristicCountJSON, len(stats.TopCharacteristics)),
			Exports:            make([]exportJSON, len(exports)),
		}
		if stats.TotalExports > 0 {
			res.OldestExport = stats.OldestExport.UTC().Format(time.RFC3339)
			res.NewestExport = stats.NewestExport.UTC().Format(time.RFC3339)
		}
		for i, cc := range stats.TopCharacteristics {
			res.TopCharacteristics[i] = characteristicCountJSON{Characteristic: cc.Characteristic, Count: cc.Count}
		}
		for i, e := range exports {
			res.Exports[i] = toExportJSON(e)
		}
		return writeJSON(out, res)
	}

	fmt.Fprintln(out, "wqlab Exports")
	fmt.Fprintln(out, "=============")
	if c.DB != "" {
		fmt.Fprintf(out, "Database:      %s\n", c.DB)
	}
	fmt.Fprintf(out, "Exports:       %s\n", formatNumber(stats.TotalExports))
	fmt.Fprintf(out, "Observations:  %s\n", formatNumber(stats.TotalObservations))
	if stats.TotalExports > 0 {
		fmt.Fprintf(out, "Oldest:        %s\n", stats.OldestExport.Local().Format("2006-01-02 15:04"))
		fmt.Fprintf(out, "Newest:        %s\n", stats.NewestExport.Local().Format("2006-01-02 15:04"))
	}

	if len(stats.TopCharacteristics) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Top Characteristics:")
		for _, cc := range stats.TopCharacteristics {
			fmt.Fprintf(out, "  %-30s %s\n", cc.Characteristic, formatNumber(cc.Count))
		}
	}

	if len(exports) > 0 {
		fmt.Fprintln(out)
		for _, e := range exports {
			fmt.Fprintf(out, "%s  %s  %-30s %4d sites %8s points\n",
				e.ID, e.ExportedAt.Local().Format("2006-01-02 15:04"), e.Characteristic, e.Sites, formatNumber(int64(e.Points)))
		}
	}
	return nil
}
