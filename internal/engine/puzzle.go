// Package engine runs puzzle rounds. Each variant is a small state machine
// that consumes immutable content, reacts to discrete user actions and to
// scheduled transitions, and reports points and round completion.
package engine

import (
	"fmt"
	"time"

	"puzzle-service/internal/content"
	"puzzle-service/internal/domain"
)

// Action is a discrete user input.
type Action interface{ action() }

// Flip turns a matching card face up.
type Flip struct{ Index int }

// SelectOption picks a quiz option by index.
type SelectOption struct{ Index int }

// Guess offers a letter to the reveal or first-letter puzzle.
type Guess struct{ Letter string }

// Select picks a number in the counting puzzle.
type Select struct{ Value int }

// Answer submits a typed arithmetic answer.
type Answer struct{ Value string }

// ToggleHint shows or hides the reveal pictogram.
type ToggleHint struct{}

// Next starts a new round once the current one is complete.
type Next struct{}

func (Flip) action()         {}
func (SelectOption) action() {}
func (Guess) action()        {}
func (Select) action()       {}
func (Answer) action()       {}
func (ToggleHint) action()   {}
func (Next) action()         {}

// Points awarded per accepted-correct transition.
const (
	MatchPoints       = 5
	QuizPoints        = 10
	RevealPoints      = 15
	FirstLetterPoints = 5
	CountPoints       = 5
	MathPoints        = 10
)

// Delays are the display times before a scheduled transition fires.
type Delays struct {
	Mismatch time.Duration // matching: two different cards stay face up
	Correct  time.Duration // quiz, first-letter, count: celebrate before moving on
	Wrong    time.Duration // quiz, first-letter, count: wrong flag shown
	Math     time.Duration // math: both feedback kinds
}

func DefaultDelays() Delays {
	return Delays{
		Mismatch: time.Second,
		Correct:  2 * time.Second,
		Wrong:    time.Second,
		Math:     1500 * time.Millisecond,
	}
}

// Feedback is the transient evaluation flag shown after a choice.
type Feedback string

const (
	FeedbackNone    Feedback = ""
	FeedbackCorrect Feedback = "correct"
	FeedbackWrong   Feedback = "wrong"
)

type transition int

const (
	hideCards transition = iota + 1
	clearFeedback
	advance
)

type delayed struct {
	delay time.Duration
	t     transition
}

// outcome is what a variant reports for one input or transition.
type outcome struct {
	accepted bool
	points   int
	after    []delayed
	done     bool
}

var ignored = outcome{}

type puzzle interface {
	apply(a Action) outcome
	fire(t transition) outcome
	view(v *View)
}

// newPuzzle builds the variant for c. Every content type must be listed here.
func newPuzzle(kind domain.Kind, c domain.Content, d Delays, rnd content.Rand) (puzzle, error) {
	if c == nil {
		return nil, fmt.Errorf("%s: no content", kind)
	}
	if c.Kind() != kind {
		return nil, fmt.Errorf("%s: got %s content", kind, c.Kind())
	}
	switch v := c.(type) {
	case domain.MatchingContent:
		return newMatching(v, d, rnd), nil
	case domain.QuizContent:
		return newQuiz(v, d), nil
	case domain.RevealContent:
		return newReveal(v), nil
	case domain.FirstLetterContent:
		return newFirstLetter(v, d), nil
	case domain.CountContent:
		return newCount(v, d), nil
	case domain.MathContent:
		return newArithmetic(v, d), nil
	default:
		return nil, fmt.Errorf("%w: %T", domain.ErrUnknownKind, c)
	}
}

// autoAdvance reports whether a completed round immediately starts the next
// one. Matching and reveal wait for an explicit Next.
func autoAdvance(kind domain.Kind) bool {
	switch kind {
	case domain.KindQuiz, domain.KindFirstLetter, domain.KindCount, domain.KindMath:
		return true
	}
	return false
}
