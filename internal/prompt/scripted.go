package prompt

import (
	"context"
	"fmt"
	"sync"
)

// Answer is one scripted response.
type Answer struct {
	// Text is the input, the folder path, or the value/label of the item to pick.
	Text string
	// Yes answers a Confirm.
	Yes bool
	// Cancel makes the prompt return ErrCancelled.
	Cancel bool
}

// Text answers with a value.
func Text(s string) Answer { return Answer{Text: s} }

// Yes confirms.
func Yes() Answer { return Answer{Yes: true, Text: "Yes"} }

// No declines.
func No() Answer { return Answer{Text: "No"} }

// Cancel dismisses the prompt.
func Cancel() Answer { return Answer{Cancel: true} }

// Scripted is a Prompter that replays queued answers in order. It is used
// for non-interactive runs and tests.
type Scripted struct {
	mu      sync.Mutex
	answers []Answer
	// Asked records every prompt title or question in order.
	Asked []string
}

// NewScripted creates a Scripted prompter with the given answers.
func NewScripted(answers ...Answer) *Scripted {
	return &Scripted{answers: answers}
}

// Remaining reports how many answers have not been consumed.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

func (s *Scripted) next(asked string) (Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Asked = append(s.Asked, asked)
	if len(s.answers) == 0 {
		return Answer{}, fmt.Errorf("no scripted answer for %q: %w", asked, ErrCancelled)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if a.Cancel {
		return Answer{}, ErrCancelled
	}
	return a, nil
}

// Pick selects the first non-separator item whose Value or Label matches.
func (s *Scripted) Pick(ctx context.Context, title string, items []Item) (Item, error) {
	a, err := s.next(title)
	if err != nil {
		return Item{}, err
	}
	for _, it := range items {
		if it.Separator {
			continue
		}
		if it.Value == a.Text || it.Label == a.Text {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("scripted pick %q not offered in %q: %w", a.Text, title, ErrCancelled)
}

// Input returns the scripted text, which may be empty.
func (s *Scripted) Input(ctx context.Context, field Field) (string, error) {
	a, err := s.next(field.Prompt)
	if err != nil {
		return "", err
	}
	return a.Text, nil
}

// BrowseFolder returns the scripted path.
func (s *Scripted) BrowseFolder(ctx context.Context, title string) (string, error) {
	a, err := s.next(title)
	if err != nil {
		return "", err
	}
	if a.Text == "" {
		return "", ErrCancelled
	}
	return a.Text, nil
}

// Confirm returns the scripted decision.
func (s *Scripted) Confirm(ctx context.Context, question string) (bool, error) {
	a, err := s.next(question)
	if err != nil {
		return false, err
	}
	return a.Yes, nil
}
