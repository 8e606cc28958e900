package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/wqlab/internal/prompt"
	"github.com/runnerr0/wqlab/internal/stationmap"
)

func newMapCommand(t *testing.T, opened *[]string) (*MapCommand, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &MapCommand{
		File:    writeFile(t, "stations.csv", stationCSV),
		Out:     filepath.Join(t.TempDir(), "map.html"),
		globals: testGlobals(t),
		out:     &out,
		clock:   clockwork.NewFakeClockAt(fixedNow),
		open: func(path string) error {
			*opened = append(*opened, path)
			return nil
		},
	}, &out
}

func TestMap_WritesHTMLAndOpens(t *testing.T) {
	var opened []string
	cmd, out := newMapCommand(t, &opened)

	require.NoError(t, cmd.Execute(nil))
	assert.Equal(t, "Map saved to "+cmd.Out+"\n", out.String())
	assert.Equal(t, []string{cmd.Out}, opened)

	data, err := os.ReadFile(cmd.Out)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, `"Elkhorn Creek"`)
	assert.NotContains(t, html, "<Lock 4>", "station names must be escaped")
	assert.Contains(t, html, "2025-04-02T15:00:00Z")
}

func TestMap_NoOpen(t *testing.T) {
	var opened []string
	cmd, _ := newMapCommand(t, &opened)
	cmd.NoOpen = true

	require.NoError(t, cmd.Execute(nil))
	assert.Empty(t, opened)
	assert.FileExists(t, cmd.Out)
}

func TestMap_OpenFailureIsNotFatal(t *testing.T) {
	var opened []string
	cmd, out := newMapCommand(t, &opened)
	cmd.open = func(string) error { return errors.New("no browser") }

	require.NoError(t, cmd.Execute(nil))
	assert.Contains(t, out.String(), "Map saved to")
}

func TestMap_JSON(t *testing.T) {
	var opened []string
	cmd, out := newMapCommand(t, &opened)
	cmd.globals.JSON = true

	require.NoError(t, cmd.Execute(nil))

	var res mapJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, 2, res.Stations)
	assert.InDelta(t, 38.5, res.CenterLat, 1e-9)
	assert.InDelta(t, -84.5, res.CenterLon, 1e-9)
	assert.True(t, res.Opened)
}

func TestMap_NoFileSelected(t *testing.T) {
	var opened []string
	cmd, out := newMapCommand(t, &opened)
	cmd.File = ""
	p := &prompt.Scripted{}
	cmd.prompter = p

	require.NoError(t, cmd.Execute(nil))
	assert.Equal(t, "No file selected. Exiting.\n", out.String())
	assert.Equal(t, []string{"Select station CSV file"}, p.Asked)
	assert.NoFileExists(t, cmd.Out)
}

func TestMap_NoValidStations(t *testing.T) {
	var opened []string
	cmd, _ := newMapCommand(t, &opened)
	cmd.File = writeFile(t, "bad.csv", "MonitoringLocationName,LatitudeMeasure,LongitudeMeasure\nX,,\n")

	err := cmd.Execute(nil)
	assert.ErrorIs(t, err, stationmap.ErrNoStations)
	assert.Empty(t, opened)
}
