package stationmap

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/browser"
)

// openFile is swapped out in tests.
var openFile = browser.OpenFile

// Open launches the system browser on path without waiting for it to exit.
func Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve map path: %w", err)
	}
	if err := openFile(abs); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
