package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Terminal reads answers line by line from in and writes prompts to out.
type Terminal struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewTerminal creates a Terminal over the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{scanner: bufio.NewScanner(in), out: out}
}

// ChooseFile asks for a path. There is no file dialog; the path is typed.
func (t *Terminal) ChooseFile(title string) (string, error) {
	return t.AskText(title + " (path)")
}

// ChooseOneOf prints options numbered from 1 and reads the chosen number.
func (t *Terminal) ChooseOneOf(prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("%w: no options to choose from", ErrInvalidSelection)
	}
	for i, opt := range options {
		fmt.Fprintf(t.out, "%d. %s\n", i+1, opt)
	}

	answer, err := t.AskText(prompt)
	if err != nil {
		return 0, err
	}
	return parseChoice(answer, len(options))
}

// AskText prints prompt and reads one line.
func (t *Terminal) AskText(prompt string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", prompt)

	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrNoSelection
	}
	answer := strings.TrimSpace(t.scanner.Text())
	if answer == "" {
		return "", ErrNoSelection
	}
	return answer, nil
}

// parseChoice converts a 1-based answer into a 0-based index.
func parseChoice(answer string, n int) (int, error) {
	choice, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidSelection, answer, ErrNotNumeric)
	}
	if choice < 1 || choice > n {
		return 0, fmt.Errorf("%w: %d is outside 1-%d", ErrInvalidSelection, choice, n)
	}
	return choice - 1, nil
}
