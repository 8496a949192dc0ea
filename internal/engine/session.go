package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"puzzle-service/internal/content"
	"puzzle-service/internal/domain"
)

// Scorer receives the points of accepted-correct transitions.
type Scorer interface {
	Add(ctx context.Context, points int) int
	Total() int
}

type discard struct{}

func (discard) Add(context.Context, int) int { return 0 }
func (discard) Total() int                   { return 0 }

// command is a side effect requested by the session and carried out by Loop.
type command interface{ command() }

type acquireCmd struct{ round int }

type scheduleCmd struct {
	delay time.Duration
	timer timerFired
}

func (acquireCmd) command()  {}
func (scheduleCmd) command() {}

// timerFired and contentArrived are tagged with the round that requested
// them; events for any other round are stale and dropped.
type timerFired struct {
	round int
	t     transition
}

type contentArrived struct {
	round   int
	content domain.Content
}

// Session is the single-threaded state of one puzzle run. It never blocks:
// every effect is returned as a command.
type Session struct {
	id      string
	kind    domain.Kind
	scorer  Scorer
	delays  Delays
	rnd     content.Rand
	round   int
	loading bool
	done    bool
	pending int
	puzzle  puzzle
}

// NewSession creates a session; a nil scorer discards points.
func NewSession(id string, kind domain.Kind, scorer Scorer, delays Delays, rnd content.Rand) *Session {
	if scorer == nil {
		scorer = discard{}
	}
	return &Session{id: id, kind: kind, scorer: scorer, delays: delays, rnd: rnd}
}

func (s *Session) ID() string        { return s.id }
func (s *Session) Kind() domain.Kind { return s.kind }

// Begin starts a new round and asks for its content.
func (s *Session) Begin() []command {
	s.round++
	s.loading = true
	s.done = false
	s.pending = 0
	s.puzzle = nil
	return []command{acquireCmd{round: s.round}}
}

// Load installs content for round. Stale or unusable content is dropped.
func (s *Session) Load(round int, c domain.Content) {
	if round != s.round || !s.loading {
		return
	}
	p, err := newPuzzle(s.kind, c, s.delays, s.rnd)
	if err != nil {
		log.Error().Err(err).Str("session", s.id).Msg("content rejected")
		return
	}
	s.puzzle = p
	s.loading = false
}

// Handle applies a user action. Input is ignored while loading and while a
// scheduled transition is outstanding.
func (s *Session) Handle(ctx context.Context, a Action) []command {
	if s.loading || s.puzzle == nil {
		return nil
	}
	if _, next := a.(Next); next {
		if s.done {
			return s.Begin()
		}
		return nil
	}
	if s.done {
		return nil
	}
	if _, hint := a.(ToggleHint); !hint && s.pending > 0 {
		return nil
	}
	return s.settle(ctx, s.puzzle.apply(a))
}

// Fire applies a scheduled transition.
func (s *Session) Fire(ctx context.Context, ev timerFired) []command {
	if ev.round != s.round || s.puzzle == nil || s.pending == 0 {
		return nil
	}
	s.pending--
	return s.settle(ctx, s.puzzle.fire(ev.t))
}

func (s *Session) settle(ctx context.Context, o outcome) []command {
	if !o.accepted {
		return nil
	}
	if o.points > 0 {
		s.scorer.Add(ctx, o.points)
	}
	var cmds []command
	for _, d := range o.after {
		s.pending++
		cmds = append(cmds, scheduleCmd{delay: d.delay, timer: timerFired{round: s.round, t: d.t}})
	}
	if o.done {
		if autoAdvance(s.kind) {
			return append(cmds, s.Begin()...)
		}
		s.done = true
	}
	return cmds
}

func (s *Session) Phase() Phase {
	switch {
	case s.loading || s.puzzle == nil:
		return PhaseLoading
	case s.done:
		return PhaseComplete
	case s.pending > 0:
		return PhaseEvaluating
	}
	return PhaseReady
}

// View snapshots the session.
func (s *Session) View() View {
	v := View{
		SessionID: s.id,
		Kind:      s.kind,
		Phase:     s.Phase(),
		Round:     s.round,
		Score:     s.scorer.Total(),
	}
	if s.puzzle != nil {
		s.puzzle.view(&v)
	}
	return v
}
