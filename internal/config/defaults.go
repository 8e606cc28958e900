package config

import (
	"github.com/runnerr0/wqlab/internal/dataset"
	"github.com/runnerr0/wqlab/internal/series"
)

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Columns: dataset.DefaultColumns(),
		Parsing: ParsingConfig{
			DateLayouts: series.DefaultLayouts(),
		},
		Chart: ChartConfig{
			Width:  1200,
			Height: 600,
			Format: "png",
		},
		Map: MapConfig{
			Output:      "station_map.html",
			Zoom:        7,
			OpenBrowser: true,
		},
		Export: ExportConfig{
			Database: "wqlab.db",
		},
		Logging: LoggingConfig{
			Level: "info",
			Color: true,
		},
	}
}
