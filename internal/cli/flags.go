package cli

import (
	"io"

	"github.com/jonboulle/clockwork"

	"github.com/runnerr0/wqlab/internal/prompt"
)

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// CharacteristicsCommand lists the characteristics present in a CSV.
type CharacteristicsCommand struct {
	File string `long:"file" description:"Water quality CSV (prompted when omitted)"`

	globals  *GlobalFlags
	version  string
	prompter prompt.Provider // nil means the terminal
	out      io.Writer       // nil means stdout
}

// PlotCommand renders one characteristic over time, one line per site.
type PlotCommand struct {
	File           string `long:"file" description:"Water quality CSV (prompted when omitted)"`
	Characteristic string `long:"characteristic" description:"Characteristic name, case-insensitive (prompted when omitted)"`
	Out            string `long:"out" description:"Output image path; extension selects png, svg or pdf"`

	globals  *GlobalFlags
	version  string
	prompter prompt.Provider
	out      io.Writer
}

// CompareCommand renders two characteristics on dual y-axes.
type CompareCommand struct {
	File        string `long:"file" description:"Water quality CSV (prompted when omitted)"`
	First       int    `long:"first" description:"Number of the first characteristic in the listing"`
	Second      int    `long:"second" description:"Number of the second characteristic in the listing"`
	SharedSites bool   `long:"shared-sites" description:"Only plot sites that report both characteristics"`
	Out         string `long:"out" description:"Output image path; extension selects png or svg"`

	globals  *GlobalFlags
	version  string
	prompter prompt.Provider
	out      io.Writer
}

// MapCommand writes an HTML map of monitoring stations.
type MapCommand struct {
	File   string `long:"file" description:"Station CSV (prompted when omitted)"`
	Out    string `long:"out" description:"Output HTML path (default from config)"`
	NoOpen bool   `long:"no-open" description:"Do not open the map in a browser"`

	globals  *GlobalFlags
	version  string
	prompter prompt.Provider
	out      io.Writer
	clock    clockwork.Clock    // nil means the real clock
	open     func(string) error // nil means stationmap.Open
}

// ExportCommand writes the cleaned series of one characteristic to SQLite.
type ExportCommand struct {
	File           string `long:"file" description:"Water quality CSV (prompted when omitted)"`
	Characteristic string `long:"characteristic" description:"Characteristic name, case-insensitive" required:"true"`
	DB             string `long:"db" description:"Export database path (default from config)"`

	globals  *GlobalFlags
	version  string
	prompter prompt.Provider
	out      io.Writer
	clock    clockwork.Clock
}

// ExportsCommand lists or deletes stored exports.
type ExportsCommand struct {
	DB     string `long:"db" description:"Export database path (default from config)"`
	Delete string `long:"delete" description:"Delete the export with this ID"`

	globals *GlobalFlags
	version string
	out     io.Writer
}

// InitConfigCommand writes the default config file.
type InitConfigCommand struct {
	Path string `long:"path" description:"Where to write the config" default:"~/.config/wqlab/config.yaml"`

	globals *GlobalFlags
	version string
	out     io.Writer
}
