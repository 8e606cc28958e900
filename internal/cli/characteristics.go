package cli

import (
	"fmt"

	"github.com/runnerr0/wqlab/internal/series"
)

type characteristicsJSON struct {
	Source          string   `json:"source"`
	Rows            int      `json:"rows"`
	Characteristics []string `json:"characteristics"`
}

// Execute implements the go-flags Commander interface for CharacteristicsCommand.
func (c *CharacteristicsCommand) Execute(args []string) error {
	s, err := newSession(c.globals, c.prompter, c.out)
	if err != nil {
		return err
	}
	return finish(s.out, c.run(s))
}

func (c *CharacteristicsCommand) run(s *session) error {
	ds, err := s.loadDataset(c.File, "Select water quality CSV")
	if err != nil {
		return err
	}
	names := series.ListCharacteristics(ds)

	if s.json {
		return s.printJSON(characteristicsJSON{Source: ds.Source, Rows: ds.Len(), Characteristics: names})
	}

	if len(names) == 0 {
		fmt.Fprintln(s.out, "No characteristics found.")
		return nil
	}
	printCharacteristics(s, names)
	return nil
}

func printCharacteristics(s *session, names []string) {
	fmt.Fprintln(s.out, "Available water quality characteristics:")
	for _, n := range names {
		fmt.Fprintf(s.out, "  - %s\n", n)
	}
}
