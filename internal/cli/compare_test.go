package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/wqlab/internal/prompt"
)

func runCompare(t *testing.T, cmd *CompareCommand) string {
	t.Helper()
	var out bytes.Buffer
	cmd.out = &out
	if cmd.globals == nil {
		cmd.globals = testGlobals(t)
	}
	require.NoError(t, cmd.Execute(nil))
	return out.String()
}

func TestCompare_FlagSelection(t *testing.T) {
	chartFile := filepath.Join(t.TempDir(), "dual.png")
	output := runCompare(t, &CompareCommand{
		File:   writeFile(t, "data.csv", sampleCSV),
		First:  2,
		Second: 1,
		Out:    chartFile,
	})

	assert.Equal(t, "Chart saved to "+chartFile+"\n", output)
	data, err := os.ReadFile(chartFile)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestCompare_ScriptedSelection(t *testing.T) {
	chartFile := filepath.Join(t.TempDir(), "dual.svg")
	p := &prompt.Scripted{Choices: []int{1, 2}}
	output := runCompare(t, &CompareCommand{
		File:     writeFile(t, "data.csv", sampleCSV),
		Out:      chartFile,
		prompter: p,
	})

	assert.Contains(t, output, "Chart saved to")
	require.Len(t, p.Asked, 2)
	assert.Contains(t, p.Asked[0], "FIRST")
	assert.Contains(t, p.Asked[1], "SECOND")

	data, err := os.ReadFile(chartFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestCompare_InvalidSelections(t *testing.T) {
	tests := []struct {
		name string
		cmd  *CompareCommand
	}{
		{"duplicate flags", &CompareCommand{First: 1, Second: 1}},
		{"out of range flag", &CompareCommand{First: 5, Second: 1}},
		{"negative flag", &CompareCommand{First: -1, Second: 1}},
		{"duplicate choices", &CompareCommand{prompter: &prompt.Scripted{Choices: []int{2, 2}}}},
		{"out of range choice", &CompareCommand{prompter: &prompt.Scripted{Choices: []int{9, 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cmd.File = writeFile(t, "data.csv", sampleCSV)
			tt.cmd.Out = filepath.Join(t.TempDir(), "dual.png")
			output := runCompare(t, tt.cmd)
			assert.Equal(t, "Invalid or duplicate selections.\n", output)
			assert.NoFileExists(t, tt.cmd.Out)
		})
	}
}

func TestCompare_CaseVariantsAreDuplicates(t *testing.T) {
	csv := `MonitoringLocationIdentifier,CharacteristicName,ActivityStartDate,ResultMeasureValue
S1,pH,2023-01-01,7.2
S1,PH,2023-01-02,7.3
`
	out := filepath.Join(t.TempDir(), "dual.png")
	output := runCompare(t, &CompareCommand{
		File:   writeFile(t, "data.csv", csv),
		First:  1,
		Second: 2,
		Out:    out,
	})
	assert.Equal(t, "Invalid or duplicate selections.\n", output)
	assert.NoFileExists(t, out)
}

func TestCompare_NonNumericChoice(t *testing.T) {
	output := runCompare(t, &CompareCommand{
		File:     writeFile(t, "data.csv", sampleCSV),
		prompter: prompt.NewTerminal(strings.NewReader("two\n"), io.Discard),
	})
	assert.Equal(t, "Invalid input. Please enter numeric values.\n", output)
}

func TestCompare_NoChoiceEntered(t *testing.T) {
	output := runCompare(t, &CompareCommand{
		File:     writeFile(t, "data.csv", sampleCSV),
		prompter: &prompt.Scripted{},
	})
	assert.Equal(t, "No characteristic entered. Exiting.\n", output)
}

func TestCompare_NoFileSelected(t *testing.T) {
	output := runCompare(t, &CompareCommand{prompter: &prompt.Scripted{}})
	assert.Equal(t, "No file selected. Exiting.\n", output)
}

func TestCompare_JSONCountsAllSites(t *testing.T) {
	globals := testGlobals(t)
	globals.JSON = true
	output := runCompare(t, &CompareCommand{
		File:    writeFile(t, "data.csv", sampleCSV),
		First:   2,
		Second:  1,
		Out:     filepath.Join(t.TempDir(), "dual.png"),
		globals: globals,
	})

	var res chartJSON
	require.NoError(t, json.Unmarshal([]byte(output), &res))
	assert.Equal(t, []string{"pH", "Turbidity"}, res.Characteristics)
	assert.Equal(t, []string{"pH units", "NTU"}, res.Units)
	assert.Equal(t, 2, res.Sites)
	assert.Equal(t, 3, res.Points)
}

func TestCompare_SharedSitesRestrictsBothSides(t *testing.T) {
	globals := testGlobals(t)
	globals.JSON = true
	output := runCompare(t, &CompareCommand{
		File:        writeFile(t, "data.csv", sampleCSV),
		First:       2,
		Second:      1,
		SharedSites: true,
		Out:         filepath.Join(t.TempDir(), "dual.png"),
		globals:     globals,
	})

	var res chartJSON
	require.NoError(t, json.Unmarshal([]byte(output), &res))
	assert.Equal(t, 1, res.Sites)
	assert.Equal(t, 2, res.Points)
}

func TestCompare_DisjointSharedSitesRendersEmptyChart(t *testing.T) {
	chartFile := filepath.Join(t.TempDir(), "dual.png")
	output := runCompare(t, &CompareCommand{
		File:        writeFile(t, "data.csv", disjointCSV),
		First:       1,
		Second:      2,
		SharedSites: true,
		Out:         chartFile,
	})

	assert.Equal(t, "Chart saved to "+chartFile+"\n", output)
	data, err := os.ReadFile(chartFile)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestCompare_NoDataForOneCharacteristic(t *testing.T) {
	csv := `MonitoringLocationIdentifier,CharacteristicName,ActivityStartDate,ResultMeasureValue
S1,pH,2023-01-01,7.2
S1,Turbidity,bad-date,4.1
`
	output := runCompare(t, &CompareCommand{
		File:   writeFile(t, "data.csv", csv),
		First:  1,
		Second: 2,
		Out:    filepath.Join(t.TempDir(), "dual.png"),
	})
	assert.Equal(t, "No data found for one or both selected characteristics: Turbidity, pH\n", output)
}

func TestCompare_UnsupportedFormatErrors(t *testing.T) {
	cmd := &CompareCommand{
		File:    writeFile(t, "data.csv", sampleCSV),
		First:   1,
		Second:  2,
		Out:     filepath.Join(t.TempDir(), "dual.pdf"),
		globals: testGlobals(t),
		out:     &bytes.Buffer{},
	}
	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.NoFileExists(t, cmd.Out)
}
