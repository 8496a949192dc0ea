package domain

import (
	"fmt"
	"strings"
)

// Kind identifies a puzzle variant and the content shape it consumes.
type Kind string

const (
	KindMatching    Kind = "matching"
	KindQuiz        Kind = "quiz"
	KindReveal      Kind = "reveal"
	KindFirstLetter Kind = "firstLetter"
	KindCount       Kind = "count"
	KindMath        Kind = "math"
)

// Kinds lists every puzzle kind in menu order.
func Kinds() []Kind {
	return []Kind{KindMath, KindQuiz, KindMatching, KindReveal, KindCount, KindFirstLetter}
}

// ParseKind validates a kind received from outside the process.
func ParseKind(raw string) (Kind, error) {
	raw = strings.TrimSpace(raw)
	for _, k := range Kinds() {
		if strings.EqualFold(string(k), raw) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

// Generated reports whether content for the kind comes from the remote
// generator. Other kinds are built locally on every acquisition.
func (k Kind) Generated() bool {
	switch k {
	case KindMatching, KindQuiz, KindReveal, KindFirstLetter:
		return true
	}
	return false
}

// Content is the tagged union of puzzle content. Every implementation lives in
// this package; consumers switch on the concrete type.
type Content interface {
	Kind() Kind
	isContent()
}

// PairCount is the fixed number of pairs in a matching deck.
const PairCount = 8

// Pair is one vocabulary pair of a matching deck.
type Pair struct {
	ID    int    `json:"id" yaml:"id"`
	SideA string `json:"sideA" yaml:"sideA"`
	SideB string `json:"sideB" yaml:"sideB"`
}

// MatchingContent is an ordered deck of pairs.
type MatchingContent struct {
	Pairs []Pair `json:"pairs" yaml:"pairs"`
}

// Question models a multiple-choice question with exactly four options.
type Question struct {
	Prompt       string   `json:"prompt" yaml:"prompt"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correctIndex" yaml:"correctIndex"`
}

// QuizContent is a short story followed by questions about it.
type QuizContent struct {
	Title     string     `json:"title" yaml:"title"`
	Body      string     `json:"body" yaml:"body"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// RevealContent drives the letter-reveal puzzle. Options and CorrectLetter are
// optional; when present they follow the same rules as every option set.
type RevealContent struct {
	AnswerWord    string   `json:"answerWord" yaml:"answerWord"`
	Category      string   `json:"category" yaml:"category"`
	Pictogram     string   `json:"pictogram" yaml:"pictogram"`
	Options       []string `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectLetter string   `json:"correctLetter,omitempty" yaml:"correctLetter,omitempty"`
}

// FirstLetterContent asks for the first letter of a pictured word.
type FirstLetterContent struct {
	AnswerWord string   `json:"answerWord" yaml:"answerWord"`
	Letter     string   `json:"letter" yaml:"letter"`
	Options    []string `json:"options" yaml:"options"`
	Pictogram  string   `json:"pictogram" yaml:"pictogram"`
}

// CountContent shows TargetCount pictograms and three numbers to pick from.
type CountContent struct {
	TargetCount int    `json:"targetCount"`
	Pictogram   string `json:"pictogram"`
	Options     []int  `json:"options"`
}

// Operator is an arithmetic operator of a math problem.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "×"
	OpDiv Operator = "÷"
)

// MathContent is a single arithmetic problem.
type MathContent struct {
	Left     int      `json:"left"`
	Right    int      `json:"right"`
	Operator Operator `json:"operator"`
	Answer   int      `json:"answer"`
}

func (MatchingContent) Kind() Kind    { return KindMatching }
func (QuizContent) Kind() Kind        { return KindQuiz }
func (RevealContent) Kind() Kind      { return KindReveal }
func (FirstLetterContent) Kind() Kind { return KindFirstLetter }
func (CountContent) Kind() Kind       { return KindCount }
func (MathContent) Kind() Kind        { return KindMath }

func (MatchingContent) isContent()    {}
func (QuizContent) isContent()        {}
func (RevealContent) isContent()      {}
func (FirstLetterContent) isContent() {}
func (CountContent) isContent()       {}
func (MathContent) isContent()        {}

// Profile is the identity and score snapshot shown by the router.
type Profile struct {
	UserName   string `json:"userName"`
	TotalScore int    `json:"totalScore"`
	Kinds      []Kind `json:"kinds"`
}
