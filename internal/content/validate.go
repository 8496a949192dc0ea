package content

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"puzzle-service/internal/domain"
	"puzzle-service/internal/textnorm"
)

const (
	quizOptions  = 4
	letterOption = 3
	countOptions = 3
	countMax     = 10
)

// Validate checks content against the shape rules of its kind: required
// fields, unique option sets with exactly one correct answer, and an answer
// that indexes or matches a present option.
func Validate(c domain.Content) error {
	switch v := c.(type) {
	case domain.MatchingContent:
		return validateMatching(v)
	case domain.QuizContent:
		return validateQuiz(v)
	case domain.RevealContent:
		return validateReveal(v)
	case domain.FirstLetterContent:
		return validateFirstLetter(v)
	case domain.CountContent:
		return validateCount(v)
	case domain.MathContent:
		return validateMath(v)
	case nil:
		return invalid("missing content")
	default:
		return fmt.Errorf("%w: %T", domain.ErrUnknownKind, c)
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidContent, fmt.Sprintf(format, args...))
}

func validateMatching(c domain.MatchingContent) error {
	if len(c.Pairs) != domain.PairCount {
		return invalid("matching deck has %d pairs, want %d", len(c.Pairs), domain.PairCount)
	}
	ids := make(map[int]struct{}, len(c.Pairs))
	for i, p := range c.Pairs {
		if _, dup := ids[p.ID]; dup {
			return invalid("pair %d repeats id %d", i, p.ID)
		}
		ids[p.ID] = struct{}{}
		if strings.TrimSpace(p.SideA) == "" || strings.TrimSpace(p.SideB) == "" {
			return invalid("pair %d has an empty side", p.ID)
		}
	}
	return nil
}

func validateQuiz(c domain.QuizContent) error {
	if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Body) == "" {
		return invalid("quiz needs a title and a body")
	}
	if len(c.Questions) == 0 {
		return invalid("quiz has no questions")
	}
	for i, q := range c.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return invalid("question %d has no prompt", i)
		}
		if len(q.Options) != quizOptions {
			return invalid("question %d has %d options, want %d", i, len(q.Options), quizOptions)
		}
		if err := uniqueOptions(q.Options); err != nil {
			return invalid("question %d: %v", i, err)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return invalid("question %d correct index %d out of range", i, q.CorrectIndex)
		}
	}
	return nil
}

func validateReveal(c domain.RevealContent) error {
	letters := textnorm.Letters(c.AnswerWord)
	if len(letters) == 0 {
		return invalid("reveal word is empty")
	}
	// Only the standard keyboard is offered, so every rune must be guessable.
	for _, r := range letters {
		if !textnorm.IsLetter(r) {
			return invalid("reveal word %q contains non-letter %q", c.AnswerWord, r)
		}
	}
	if len(c.Options) == 0 && c.CorrectLetter == "" {
		return nil
	}
	if len(c.Options) != letterOption {
		return invalid("reveal has %d options, want %d", len(c.Options), letterOption)
	}
	return letterOptions(c.Options, c.CorrectLetter)
}

func validateFirstLetter(c domain.FirstLetterContent) error {
	letters := textnorm.Letters(c.AnswerWord)
	if len(letters) == 0 {
		return invalid("first-letter word is empty")
	}
	if len(c.Options) != letterOption {
		return invalid("first-letter has %d options, want %d", len(c.Options), letterOption)
	}
	if err := letterOptions(c.Options, c.Letter); err != nil {
		return err
	}
	first, _ := utf8.DecodeRuneInString(c.Letter)
	if textnorm.LetterClass(first) != textnorm.LetterClass(letters[0]) {
		return invalid("letter %q does not start %q", c.Letter, c.AnswerWord)
	}
	return nil
}

func validateCount(c domain.CountContent) error {
	if c.TargetCount < 1 || c.TargetCount > countMax {
		return invalid("target count %d outside 1..%d", c.TargetCount, countMax)
	}
	if c.Pictogram == "" {
		return invalid("count has no pictogram")
	}
	if len(c.Options) != countOptions {
		return invalid("count has %d options, want %d", len(c.Options), countOptions)
	}
	seen := make(map[int]struct{}, len(c.Options))
	hits := 0
	for _, o := range c.Options {
		if o < 1 || o > countMax {
			return invalid("count option %d outside 1..%d", o, countMax)
		}
		if _, dup := seen[o]; dup {
			return invalid("count option %d repeated", o)
		}
		seen[o] = struct{}{}
		if o == c.TargetCount {
			hits++
		}
	}
	if hits != 1 {
		return invalid("target count %d not among options", c.TargetCount)
	}
	return nil
}

func validateMath(c domain.MathContent) error {
	var want int
	switch c.Operator {
	case domain.OpAdd:
		want = c.Left + c.Right
	case domain.OpSub:
		want = c.Left - c.Right
	case domain.OpMul:
		want = c.Left * c.Right
	case domain.OpDiv:
		if c.Right == 0 || c.Left%c.Right != 0 {
			return invalid("division %d ÷ %d is not whole", c.Left, c.Right)
		}
		want = c.Left / c.Right
	default:
		return invalid("unknown operator %q", c.Operator)
	}
	if want != c.Answer || want < 0 {
		return invalid("answer %d does not solve %d %s %d", c.Answer, c.Left, c.Operator, c.Right)
	}
	return nil
}

func uniqueOptions(options []string) error {
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			return fmt.Errorf("empty option")
		}
		if _, dup := seen[o]; dup {
			return fmt.Errorf("option %q repeated", o)
		}
		seen[o] = struct{}{}
	}
	return nil
}

// letterOptions checks a set of single-letter options that contains the
// correct letter exactly once.
func letterOptions(options []string, correct string) error {
	if err := uniqueOptions(options); err != nil {
		return invalid("%v", err)
	}
	if utf8.RuneCountInString(correct) != 1 {
		return invalid("correct letter %q is not a single letter", correct)
	}
	hits := 0
	for _, o := range options {
		if utf8.RuneCountInString(o) != 1 {
			return invalid("option %q is not a single letter", o)
		}
		if o == correct {
			hits++
		}
	}
	if hits != 1 {
		return invalid("correct letter %q not among options", correct)
	}
	return nil
}
