package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/runnerr0/wqlab/internal/config"
)

// Execute implements the go-flags Commander interface for InitConfigCommand.
func (c *InitConfigCommand) Execute(args []string) error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}

	path := c.Path
	if path == "" || path == config.DefaultConfigPath {
		def, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = def
	} else if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	_, statErr := os.Stat(path)
	existed := statErr == nil

	if _, err := config.LoadOrCreateAt(path); err != nil {
		return err
	}

	if existed {
		fmt.Fprintf(out, "Config already exists at %s\n", path)
	} else {
		fmt.Fprintf(out, "Config written to %s\n", path)
	}
	return nil
}
