package prompt

import "fmt"

// Scripted replays canned answers in order. An exhausted queue behaves like
// an empty answer. Choices are 1-based, as a user would type them.
type Scripted struct {
	Files   []string
	Choices []int
	Texts   []string

	// Asked records every prompt in the order it was asked.
	Asked []string
}

// ChooseFile returns the next scripted file.
func (s *Scripted) ChooseFile(title string) (string, error) {
	s.Asked = append(s.Asked, title)
	if len(s.Files) == 0 || s.Files[0] == "" {
		s.pop(&s.Files)
		return "", ErrNoSelection
	}
	return s.pop(&s.Files), nil
}

// ChooseOneOf returns the next scripted choice as a 0-based index.
func (s *Scripted) ChooseOneOf(prompt string, options []string) (int, error) {
	s.Asked = append(s.Asked, prompt)
	if len(s.Choices) == 0 {
		return 0, ErrNoSelection
	}
	choice := s.Choices[0]
	s.Choices = s.Choices[1:]
	return parseChoice(fmt.Sprint(choice), len(options))
}

// AskText returns the next scripted text.
func (s *Scripted) AskText(prompt string) (string, error) {
	s.Asked = append(s.Asked, prompt)
	if len(s.Texts) == 0 || s.Texts[0] == "" {
		s.pop(&s.Texts)
		return "", ErrNoSelection
	}
	return s.pop(&s.Texts), nil
}

func (s *Scripted) pop(q *[]string) string {
	if len(*q) == 0 {
		return ""
	}
	v := (*q)[0]
	*q = (*q)[1:]
	return v
}
