package engine

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"puzzle-service/internal/domain"
)

type manualScheduler struct {
	mu  sync.Mutex
	fns []func()
}

func (m *manualScheduler) AfterFunc(_ time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fns = append(m.fns, f)
	return func() bool { return false }
}

func (m *manualScheduler) fireAll() {
	m.mu.Lock()
	fns := m.fns
	m.fns = nil
	m.mu.Unlock()
	for _, f := range fns {
		f()
	}
}

type staticAcquirer struct {
	calls   atomic.Int32
	content domain.Content
}

func (a *staticAcquirer) Acquire(context.Context, domain.Kind) domain.Content {
	a.calls.Add(1)
	return a.content
}

func waitFor(t *testing.T, views <-chan View, ok func(View) bool) View {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case v, open := <-views:
			if !open {
				t.Fatalf("view channel closed")
			}
			if ok(v) {
				return v
			}
		case <-deadline:
			t.Fatalf("timed out waiting for view")
		}
	}
}

func TestLoopSerializesActionsAndTimers(t *testing.T) {
	quiz := domain.QuizContent{
		Title: "t", Body: "b",
		Questions: []domain.Question{{Prompt: "p", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 3}},
	}
	acq := &staticAcquirer{content: quiz}
	sched := &manualScheduler{}
	sc := &tally{}
	loop := NewLoop(NewSession("loop", domain.KindQuiz, sc, DefaultDelays(), rand.New(rand.NewPCG(1, 1))), acq, sched)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()

	views, unsubscribe := loop.Subscribe()
	defer unsubscribe()

	waitFor(t, views, func(v View) bool { return v.Phase == PhaseReady && v.Round == 1 })

	if err := loop.Submit(ctx, SelectOption{Index: 3}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	waitFor(t, views, func(v View) bool { return v.Phase == PhaseEvaluating && v.Score == 10 })

	// Input during feedback is dropped even though it reaches the queue.
	if err := loop.Submit(ctx, SelectOption{Index: 3}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	sched.fireAll()
	v := waitFor(t, views, func(v View) bool { return v.Phase == PhaseReady && v.Round == 2 })
	if v.Score != 10 {
		t.Fatalf("expected score 10, got %d", v.Score)
	}
	if acq.calls.Load() != 2 {
		t.Fatalf("expected two acquisitions, got %d", acq.calls.Load())
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
	if err := loop.Submit(context.Background(), Next{}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	for range views {
	}
}

func TestLoopSnapshotBeforeContent(t *testing.T) {
	block := make(chan struct{})
	acq := acquirerFunc(func(ctx context.Context, _ domain.Kind) domain.Content {
		select {
		case <-block:
		case <-ctx.Done():
		}
		return domain.CountContent{TargetCount: 1, Pictogram: "⭐", Options: []int{1, 2, 3}}
	})
	loop := NewLoop(NewSession("slow", domain.KindCount, &tally{}, DefaultDelays(), nil), acq, &manualScheduler{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	views, unsubscribe := loop.Subscribe()
	defer unsubscribe()
	waitFor(t, views, func(v View) bool { return v.Phase == PhaseLoading && v.Round == 1 })

	if err := loop.Submit(ctx, Select{Value: 1}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	close(block)
	v := waitFor(t, views, func(v View) bool { return v.Phase == PhaseReady })
	if v.Count == nil || v.Count.Feedback != FeedbackNone || v.Score != 0 {
		t.Fatalf("input before content must be ignored, got %+v", v)
	}
	if loop.Snapshot().Phase != PhaseReady {
		t.Fatalf("snapshot should track the latest view")
	}
}

func TestLoopForgetsFiredTimers(t *testing.T) {
	acq := &staticAcquirer{content: domain.MathContent{Left: 2, Right: 2, Operator: domain.OpAdd, Answer: 4}}
	sched := &manualScheduler{}
	loop := NewLoop(NewSession("timers", domain.KindMath, &tally{}, DefaultDelays(), nil), acq, sched)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	views, unsubscribe := loop.Subscribe()
	defer unsubscribe()
	waitFor(t, views, func(v View) bool { return v.Phase == PhaseReady })

	for i := 0; i < 5; i++ {
		if err := loop.Submit(ctx, Answer{Value: "5"}); err != nil {
			t.Fatalf("submit: %v", err)
		}
		waitFor(t, views, func(v View) bool { return v.Phase == PhaseEvaluating })
		sched.fireAll()
		waitFor(t, views, func(v View) bool { return v.Phase == PhaseReady })
	}

	loop.mu.Lock()
	pending := len(loop.timers)
	loop.mu.Unlock()
	if pending != 0 {
		t.Fatalf("expected no pending timers, got %d", pending)
	}
}

func TestLoopDropsQueuedEventsAfterCancel(t *testing.T) {
	count := domain.CountContent{TargetCount: 2, Pictogram: "⭐", Options: []int{1, 2, 3}}
	acq := acquirerFunc(func(ctx context.Context, _ domain.Kind) domain.Content {
		<-ctx.Done()
		return count
	})
	sc := &tally{}
	loop := NewLoop(NewSession("queued", domain.KindCount, sc, DefaultDelays(), nil), acq, &manualScheduler{})

	ctx, cancel := context.WithCancel(context.Background())
	loop.events <- contentArrived{round: 1, content: count}
	if err := loop.Submit(ctx, Select{Value: 2}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	cancel()

	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
	if got := loop.Snapshot(); got.Phase != PhaseLoading || sc.Total() != 0 {
		t.Fatalf("queued events must be dropped once cancelled, got %s score %d", got.Phase, sc.Total())
	}
}

type acquirerFunc func(ctx context.Context, kind domain.Kind) domain.Content

func (f acquirerFunc) Acquire(ctx context.Context, kind domain.Kind) domain.Content {
	return f(ctx, kind)
}
