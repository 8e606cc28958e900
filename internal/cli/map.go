package cli

import (
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/runnerr0/wqlab/internal/dataset"
	"github.com/runnerr0/wqlab/internal/stationmap"
)

type mapJSON struct {
	Output    string  `json:"output"`
	Stations  int     `json:"stations"`
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	Opened    bool    `json:"opened"`
}

// Execute implements the go-flags Commander interface for MapCommand.
func (c *MapCommand) Execute(args []string) error {
	s, err := newSession(c.globals, c.prompter, c.out)
	if err != nil {
		return err
	}
	return finish(s.out, c.run(s))
}

func (c *MapCommand) run(s *session) error {
	path, err := s.sourceFile(c.File, "Select station CSV file")
	if err != nil {
		return err
	}
	stations, err := dataset.LoadStations(path, s.cfg.Columns)
	if err != nil {
		return err
	}
	s.log.Debug("stations loaded", "source", path, "stations", len(stations))

	clock := c.clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	m, err := stationmap.Build(stations, s.cfg.Map.Zoom, clock.Now())
	if err != nil {
		return err
	}

	out := c.Out
	if out == "" {
		out = s.cfg.Map.Output
	}
	if err := stationmap.WriteFile(out, m); err != nil {
		return err
	}

	opened := false
	if s.cfg.Map.OpenBrowser && !c.NoOpen {
		open := c.open
		if open == nil {
			open = stationmap.Open
		}
		if err := open(out); err != nil {
			s.log.Warn("could not open browser", "path", out, "error", err)
		} else {
			opened = true
		}
	}

	if s.json {
		return s.printJSON(mapJSON{
			Output:    out,
			Stations:  len(m.Stations),
			CenterLat: m.CenterLat,
			CenterLon: m.CenterLon,
			Opened:    opened,
		})
	}
	fmt.Fprintf(s.out, "Map saved to %s\n", out)
	return nil
}
