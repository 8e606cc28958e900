package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_AskText(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("  pH  \n"), &out)

	got, err := term.AskText("Characteristic")
	require.NoError(t, err)
	assert.Equal(t, "pH", got)
	assert.Equal(t, "Characteristic: ", out.String())
}

func TestTerminal_AskText_EmptyAnswer(t *testing.T) {
	term := NewTerminal(strings.NewReader("\n"), &bytes.Buffer{})
	_, err := term.AskText("Characteristic")
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestTerminal_AskText_EOF(t *testing.T) {
	term := NewTerminal(strings.NewReader(""), &bytes.Buffer{})
	_, err := term.AskText("Characteristic")
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestTerminal_ChooseFile(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("data/narrowresult.csv\n"), &out)

	got, err := term.ChooseFile("Select water quality CSV")
	require.NoError(t, err)
	assert.Equal(t, "data/narrowresult.csv", got)
	assert.Contains(t, out.String(), "Select water quality CSV (path): ")
}

func TestTerminal_ChooseOneOf(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("2\n"), &out)

	idx, err := term.ChooseOneOf("Enter the number", []string{"Turbidity", "pH", "Nitrate"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "1. Turbidity\n2. pH\n3. Nitrate\n")
}

func TestTerminal_ChooseOneOf_Invalid(t *testing.T) {
	options := []string{"a", "b"}
	for _, input := range []string{"0\n", "3\n", "-1\n", "two\n"} {
		term := NewTerminal(strings.NewReader(input), &bytes.Buffer{})
		_, err := term.ChooseOneOf("pick", options)
		assert.ErrorIs(t, err, ErrInvalidSelection, "input %q", input)
	}
}

func TestTerminal_ChooseOneOf_NotNumeric(t *testing.T) {
	term := NewTerminal(strings.NewReader("two\n"), &bytes.Buffer{})
	_, err := term.ChooseOneOf("pick", []string{"a", "b"})
	assert.ErrorIs(t, err, ErrNotNumeric)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	term = NewTerminal(strings.NewReader("3\n"), &bytes.Buffer{})
	_, err = term.ChooseOneOf("pick", []string{"a", "b"})
	assert.NotErrorIs(t, err, ErrNotNumeric)
}

func TestTerminal_ChooseOneOf_NoOptions(t *testing.T) {
	term := NewTerminal(strings.NewReader("1\n"), &bytes.Buffer{})
	_, err := term.ChooseOneOf("pick", nil)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestTerminal_SequentialAnswers(t *testing.T) {
	term := NewTerminal(strings.NewReader("1\n3\n"), &bytes.Buffer{})
	options := []string{"a", "b", "c"}

	first, err := term.ChooseOneOf("first", options)
	require.NoError(t, err)
	second, err := term.ChooseOneOf("second", options)
	require.NoError(t, err)

	assert.Equal(t, 0, first)
	assert.Equal(t, 2, second)
}

func TestScripted(t *testing.T) {
	s := &Scripted{
		Files:   []string{"a.csv"},
		Choices: []int{2, 5},
		Texts:   []string{"pH", ""},
	}

	f, err := s.ChooseFile("file")
	require.NoError(t, err)
	assert.Equal(t, "a.csv", f)

	idx, err := s.ChooseOneOf("one", []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = s.ChooseOneOf("two", []string{"x", "y"})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = s.ChooseOneOf("three", []string{"x", "y"})
	assert.ErrorIs(t, err, ErrNoSelection)

	text, err := s.AskText("text")
	require.NoError(t, err)
	assert.Equal(t, "pH", text)

	_, err = s.AskText("text")
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = s.ChooseFile("file")
	assert.ErrorIs(t, err, ErrNoSelection)

	assert.Equal(t, []string{"file", "one", "two", "three", "text", "text", "file"}, s.Asked)
}

func TestScripted_ImplementsProvider(t *testing.T) {
	var _ Provider = (*Scripted)(nil)
	var _ Provider = (*Terminal)(nil)
}
