package engine

import "puzzle-service/internal/domain"

type quiz struct {
	content  domain.QuizContent
	question int
	selected int
	feedback Feedback
	delays   Delays
}

func newQuiz(c domain.QuizContent, d Delays) *quiz {
	return &quiz{content: c, selected: -1, delays: d}
}

func (q *quiz) apply(a Action) outcome {
	sel, ok := a.(SelectOption)
	if !ok || q.feedback != FeedbackNone {
		return ignored
	}
	current := q.content.Questions[q.question]
	if sel.Index < 0 || sel.Index >= len(current.Options) {
		return ignored
	}

	q.selected = sel.Index
	if sel.Index == current.CorrectIndex {
		q.feedback = FeedbackCorrect
		return outcome{accepted: true, points: QuizPoints, after: []delayed{{delay: q.delays.Correct, t: advance}}}
	}
	q.feedback = FeedbackWrong
	return outcome{accepted: true, after: []delayed{{delay: q.delays.Wrong, t: clearFeedback}}}
}

func (q *quiz) fire(t transition) outcome {
	switch t {
	case clearFeedback:
		q.feedback = FeedbackNone
		q.selected = -1
		return outcome{accepted: true}
	case advance:
		q.feedback = FeedbackNone
		q.selected = -1
		if q.question < len(q.content.Questions)-1 {
			q.question++
			return outcome{accepted: true}
		}
		return outcome{accepted: true, done: true}
	}
	return ignored
}

func (q *quiz) view(v *View) {
	current := q.content.Questions[q.question]
	v.Quiz = &QuizView{
		Title:         q.content.Title,
		Body:          q.content.Body,
		QuestionIndex: q.question,
		QuestionCount: len(q.content.Questions),
		Prompt:        current.Prompt,
		Options:       append([]string(nil), current.Options...),
		Selected:      q.selected,
		Feedback:      q.feedback,
	}
}
