// Package matcher narrows the breed catalog down by name or by visible traits.
package matcher

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mrlokans/dogspotter/internal/entities"
)

var (
	// ErrInvalidOption is returned when an answer is not one of the step's options.
	ErrInvalidOption = errors.New("invalid option")
	// ErrQuestionnaireComplete is returned when answering after the last step.
	ErrQuestionnaireComplete = errors.New("questionnaire already complete")
)

// Step identifiers, matching the breed attribute they filter on.
const (
	StepSize       = "size"
	StepCoatLength = "coat_length"
	StepEars       = "ears"
)

// Step is one question of the trait questionnaire.
type Step struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

var steps = []Step{
	{
		ID:      StepSize,
		Title:   "What size is the dog?",
		Options: []string{"toy", "small", "medium", "large", "giant"},
	},
	{
		ID:      StepCoatLength,
		Title:   "How long is the coat?",
		Options: []string{"short", "medium", "long"},
	},
	{
		ID:      StepEars,
		Title:   "What shape are the ears?",
		Options: []string{"droopy", "pricked", "semi-pricked", "folded"},
	},
}

// Steps returns the questionnaire in order.
func Steps() []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = Step{ID: s.ID, Title: s.Title, Options: slices.Clone(s.Options)}
	}
	return out
}

// Selections holds the chosen trait per step. Empty fields match anything.
type Selections struct {
	Size       string `json:"size,omitempty"`
	CoatLength string `json:"coat_length,omitempty"`
	Ears       string `json:"ears,omitempty"`
}

// Get returns the selection for a step id.
func (s Selections) Get(stepID string) string {
	switch stepID {
	case StepSize:
		return s.Size
	case StepCoatLength:
		return s.CoatLength
	case StepEars:
		return s.Ears
	}
	return ""
}

func (s *Selections) set(stepID, option string) {
	switch stepID {
	case StepSize:
		s.Size = option
	case StepCoatLength:
		s.CoatLength = option
	case StepEars:
		s.Ears = option
	}
}

// Validate checks every non-empty selection against its step's options.
func (s Selections) Validate() error {
	for _, step := range steps {
		v := s.Get(step.ID)
		if v != "" && !slices.Contains(step.Options, v) {
			return fmt.Errorf("%w: %q for %s", ErrInvalidOption, v, step.ID)
		}
	}
	return nil
}

// Questionnaire walks the steps one answer at a time.
type Questionnaire struct {
	current    int
	selections Selections
}

// NewQuestionnaire starts at the first step.
func NewQuestionnaire() *Questionnaire {
	return &Questionnaire{}
}

// Current returns the step awaiting an answer. ok is false once done.
func (q *Questionnaire) Current() (step Step, ok bool) {
	if q.Done() {
		return Step{}, false
	}
	return steps[q.current], true
}

// Answer records option for the current step and advances.
func (q *Questionnaire) Answer(option string) error {
	step, ok := q.Current()
	if !ok {
		return ErrQuestionnaireComplete
	}
	if !slices.Contains(step.Options, option) {
		return fmt.Errorf("%w: %q for %s", ErrInvalidOption, option, step.ID)
	}
	q.selections.set(step.ID, option)
	q.current++
	return nil
}

func (q *Questionnaire) Done() bool {
	return q.current >= len(steps)
}

func (q *Questionnaire) Selections() Selections {
	return q.selections
}

// Reset returns to the first step with no selections.
func (q *Questionnaire) Reset() {
	q.current = 0
	q.selections = Selections{}
}

// Match returns the breeds whose traits equal every non-empty selection,
// preserving input order.
func Match(breeds []entities.Breed, sel Selections) []entities.Breed {
	out := make([]entities.Breed, 0)
	for _, b := range breeds {
		if sel.Size != "" && string(b.Size) != sel.Size {
			continue
		}
		if sel.CoatLength != "" && b.CoatLength != sel.CoatLength {
			continue
		}
		if sel.Ears != "" && b.Ears != sel.Ears {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Search returns the breeds whose name or any alternative name contains query,
// ignoring case. A blank query returns every breed.
func Search(breeds []entities.Breed, query string) []entities.Breed {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append(make([]entities.Breed, 0, len(breeds)), breeds...)
	}

	out := make([]entities.Breed, 0)
	for _, b := range breeds {
		if matchesName(b, q) {
			out = append(out, b)
		}
	}
	return out
}

func matchesName(b entities.Breed, lowered string) bool {
	if strings.Contains(strings.ToLower(b.Name), lowered) {
		return true
	}
	for _, alt := range b.AltNames {
		if strings.Contains(strings.ToLower(alt), lowered) {
			return true
		}
	}
	return false
}
