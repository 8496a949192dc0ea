package engine

import (
	"puzzle-service/internal/domain"
	"puzzle-service/internal/textnorm"
)

// MaxMistakes is the number of absent guesses that loses a reveal round.
const MaxMistakes = 6

// RevealStatus is the state of a reveal round.
type RevealStatus string

const (
	RevealPlaying RevealStatus = "playing"
	RevealWon     RevealStatus = "won"
	RevealLost    RevealStatus = "lost"
)

type reveal struct {
	content  domain.RevealContent
	letters  []rune
	classes  map[rune]struct{}
	guessed  map[rune]bool
	order    []rune
	mistakes int
	status   RevealStatus
	hint     bool
}

func newReveal(c domain.RevealContent) *reveal {
	return &reveal{
		content: c,
		letters: textnorm.Letters(c.AnswerWord),
		classes: textnorm.Classes(c.AnswerWord),
		guessed: make(map[rune]bool),
		status:  RevealPlaying,
	}
}

// guessLetter accepts a single Hebrew letter, vocalized or not.
func guessLetter(raw string) (rune, bool) {
	rs := textnorm.Letters(raw)
	if len(rs) != 1 || !textnorm.IsLetter(rs[0]) {
		return 0, false
	}
	return rs[0], true
}

func (r *reveal) apply(a Action) outcome {
	switch act := a.(type) {
	case ToggleHint:
		r.hint = !r.hint
		return outcome{accepted: true}
	case Guess:
		if r.status != RevealPlaying {
			return ignored
		}
		letter, ok := guessLetter(act.Letter)
		if !ok {
			return ignored
		}
		class := textnorm.LetterClass(letter)
		if r.guessed[class] {
			return ignored
		}
		r.guessed[class] = true
		r.order = append(r.order, class)

		if _, present := r.classes[class]; present {
			if r.solved() {
				r.status = RevealWon
				return outcome{accepted: true, points: RevealPoints, done: true}
			}
			return outcome{accepted: true}
		}
		r.mistakes++
		if r.mistakes >= MaxMistakes {
			r.status = RevealLost
			return outcome{accepted: true, done: true}
		}
		return outcome{accepted: true}
	}
	return ignored
}

// solved reports whether every letter class of the word has been guessed.
func (r *reveal) solved() bool {
	for class := range r.classes {
		if !r.guessed[class] {
			return false
		}
	}
	return true
}

func (r *reveal) fire(transition) outcome { return ignored }

func (r *reveal) view(v *View) {
	slots := make([]string, len(r.letters))
	for i, l := range r.letters {
		if r.status == RevealLost || r.guessed[textnorm.LetterClass(l)] {
			slots[i] = string(l)
		} else {
			slots[i] = "_"
		}
	}
	guessed := make([]string, len(r.order))
	for i, g := range r.order {
		guessed[i] = string(g)
	}
	rv := &RevealView{
		Category:          r.content.Category,
		Hint:              r.hint,
		Slots:             slots,
		Guessed:           guessed,
		Mistakes:          r.mistakes,
		RemainingAttempts: MaxMistakes - r.mistakes,
		Status:            r.status,
	}
	if r.hint || r.status != RevealPlaying {
		rv.Pictogram = r.content.Pictogram
	}
	if r.status != RevealPlaying {
		rv.AnswerWord = r.content.AnswerWord
	}
	v.Reveal = rv
}
