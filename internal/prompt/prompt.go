// Package prompt provides the interactive selections the CLI needs: a
// source file, one option from a list, or a line of free text.
package prompt

import "errors"

var (
	// ErrNoSelection is returned when the user gives an empty answer.
	ErrNoSelection = errors.New("no selection made")
	// ErrInvalidSelection is returned for a choice that is not a listed option.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrNotNumeric is returned alongside ErrInvalidSelection when a
	// choice is not a number at all.
	ErrNotNumeric = errors.New("not a number")
)

// Provider asks the user for input.
type Provider interface {
	// ChooseFile returns a path to a source file.
	ChooseFile(title string) (string, error)
	// ChooseOneOf returns the zero-based index of the chosen option.
	ChooseOneOf(prompt string, options []string) (int, error)
	// AskText returns one trimmed line of text.
	AskText(prompt string) (string, error)
}
