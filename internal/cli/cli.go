package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Characteristics *CharacteristicsCommand
	Plot            *PlotCommand
	Compare         *CompareCommand
	Map             *MapCommand
	Export          *ExportCommand
	Exports         *ExportsCommand
	InitConfig      *InitConfigCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "wqlab"
	parser.LongDescription = "Plot water quality monitoring data: station maps, per-site time series and dual-axis comparisons."

	cmds := &commands{
		Characteristics: &CharacteristicsCommand{globals: &globals, version: version},
		Plot:            &PlotCommand{globals: &globals, version: version},
		Compare:         &CompareCommand{globals: &globals, version: version},
		Map:             &MapCommand{globals: &globals, version: version},
		Export:          &ExportCommand{globals: &globals, version: version},
		Exports:         &ExportsCommand{globals: &globals, version: version},
		InitConfig:      &InitConfigCommand{globals: &globals, version: version},
	}

	parser.AddCommand("characteristics", "List characteristics in a CSV", "List the distinct water quality characteristics found in a CSV, sorted.", cmds.Characteristics)
	parser.AddCommand("plot", "Plot one characteristic over time", "Plot one characteristic over time with one line per monitoring site.", cmds.Plot)
	parser.AddCommand("compare", "Plot two characteristics on dual axes", "Plot two characteristics on primary and secondary y-axes, optionally restricted to shared sites.", cmds.Compare)
	parser.AddCommand("map", "Write a station map", "Write a standalone HTML map with one marker per monitoring station.", cmds.Map)
	parser.AddCommand("export", "Save cleaned series to SQLite", "Save the cleaned per-site series of one characteristic to an export database.", cmds.Export)
	parser.AddCommand("exports", "List or delete saved exports", "List the exports in an export database, or delete one by ID.", cmds.Exports)
	parser.AddCommand("init-config", "Write the default config file", "Write the default config file, or load it if it already exists.", cmds.InitConfig)

	return parser, &globals, cmds
}

// Run is the main entry point for the wqlab CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// go-flags requires a subcommand, but --version is valid without one.
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("wqlab %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
