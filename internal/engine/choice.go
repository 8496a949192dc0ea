package engine

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"puzzle-service/internal/domain"
)

// choice is the shared single-answer flow of the first-letter, count and
// math puzzles: one evaluation, feedback held until a scheduled transition,
// and no further input while feedback shows.
type choice struct {
	feedback Feedback
	chosen   string
	points   int
	correct  time.Duration
	wrong    time.Duration
}

func (c *choice) evaluate(chosen string, ok bool) outcome {
	c.chosen = chosen
	if ok {
		c.feedback = FeedbackCorrect
		return outcome{accepted: true, points: c.points, after: []delayed{{delay: c.correct, t: advance}}}
	}
	c.feedback = FeedbackWrong
	return outcome{accepted: true, after: []delayed{{delay: c.wrong, t: clearFeedback}}}
}

func (c *choice) fire(t transition) outcome {
	switch t {
	case clearFeedback:
		c.feedback, c.chosen = FeedbackNone, ""
		return outcome{accepted: true}
	case advance:
		c.feedback, c.chosen = FeedbackNone, ""
		return outcome{accepted: true, done: true}
	}
	return ignored
}

func (c *choice) busy() bool { return c.feedback != FeedbackNone }

type firstLetter struct {
	choice
	content domain.FirstLetterContent
}

func newFirstLetter(c domain.FirstLetterContent, d Delays) *firstLetter {
	return &firstLetter{
		choice:  choice{points: FirstLetterPoints, correct: d.Correct, wrong: d.Wrong},
		content: c,
	}
}

func (f *firstLetter) apply(a Action) outcome {
	g, ok := a.(Guess)
	if !ok || f.busy() || !slices.Contains(f.content.Options, g.Letter) {
		return ignored
	}
	return f.evaluate(g.Letter, g.Letter == f.content.Letter)
}

func (f *firstLetter) view(v *View) {
	v.FirstLetter = &FirstLetterView{
		AnswerWord: f.content.AnswerWord,
		Pictogram:  f.content.Pictogram,
		Options:    append([]string(nil), f.content.Options...),
		Chosen:     f.chosen,
		Feedback:   f.feedback,
	}
}

type count struct {
	choice
	content domain.CountContent
}

func newCount(c domain.CountContent, d Delays) *count {
	return &count{
		choice:  choice{points: CountPoints, correct: d.Correct, wrong: d.Wrong},
		content: c,
	}
}

func (c *count) apply(a Action) outcome {
	s, ok := a.(Select)
	if !ok || c.busy() || !slices.Contains(c.content.Options, s.Value) {
		return ignored
	}
	return c.evaluate(strconv.Itoa(s.Value), s.Value == c.content.TargetCount)
}

func (c *count) view(v *View) {
	v.Count = &CountView{
		Pictogram: c.content.Pictogram,
		Items:     c.content.TargetCount,
		Options:   append([]int(nil), c.content.Options...),
		Chosen:    c.chosen,
		Feedback:  c.feedback,
	}
}

type arithmetic struct {
	choice
	content domain.MathContent
}

func newArithmetic(c domain.MathContent, d Delays) *arithmetic {
	return &arithmetic{
		choice:  choice{points: MathPoints, correct: d.Math, wrong: d.Math},
		content: c,
	}
}

func (m *arithmetic) apply(a Action) outcome {
	ans, ok := a.(Answer)
	if !ok || m.busy() {
		return ignored
	}
	raw := strings.TrimSpace(ans.Value)
	if raw == "" {
		return ignored
	}
	n, err := strconv.Atoi(raw)
	return m.evaluate(raw, err == nil && n == m.content.Answer)
}

func (m *arithmetic) view(v *View) {
	v.Math = &MathView{
		Left:     m.content.Left,
		Right:    m.content.Right,
		Operator: m.content.Operator,
		Chosen:   m.chosen,
		Feedback: m.feedback,
	}
}
