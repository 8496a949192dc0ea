package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"puzzle-service/internal/domain"
)

// ErrClosed is returned by Submit once the loop has stopped.
var ErrClosed = errors.New("session closed")

// Acquirer supplies content for a round. It must always return usable content.
type Acquirer interface {
	Acquire(ctx context.Context, kind domain.Kind) domain.Content
}

// Scheduler runs f after d. The returned func cancels it.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// TimerScheduler schedules on wall-clock timers.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Loop owns a Session and feeds it from a single event queue, so user
// actions, timer expiries and arriving content never interleave.
type Loop struct {
	session  *Session
	acquirer Acquirer
	sched    Scheduler
	events   chan any
	done     chan struct{}

	mu          sync.Mutex
	last        View
	subscribers map[chan View]struct{}
	timers      map[uint64]func() bool
	nextTimer   uint64
}

func NewLoop(session *Session, acquirer Acquirer, sched Scheduler) *Loop {
	if sched == nil {
		sched = TimerScheduler{}
	}
	return &Loop{
		session:     session,
		acquirer:    acquirer,
		sched:       sched,
		events:      make(chan any, 16),
		done:        make(chan struct{}),
		last:        session.View(),
		subscribers: make(map[chan View]struct{}),
		timers:      make(map[uint64]func() bool),
	}
}

func (l *Loop) ID() string        { return l.session.ID() }
func (l *Loop) Kind() domain.Kind { return l.session.Kind() }

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Run processes events until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.shutdown()

	l.exec(ctx, l.session.Begin())
	l.publish()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-l.events:
			// A cancelled loop drops whatever is still queued.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.exec(ctx, l.dispatch(ctx, ev))
			l.publish()
		}
	}
}

// Submit queues a user action.
func (l *Loop) Submit(ctx context.Context, a Action) error {
	select {
	case <-l.done:
		return ErrClosed
	default:
	}
	select {
	case l.events <- a:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the most recently published view.
func (l *Loop) Snapshot() View {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

// Subscribe returns a channel of views, primed with the current one. The
// caller must invoke cancel. The channel is closed when the loop stops.
func (l *Loop) Subscribe() (<-chan View, func()) {
	ch := make(chan View, 8)

	l.mu.Lock()
	select {
	case <-l.done:
		l.mu.Unlock()
		close(ch)
		return ch, func() {}
	default:
	}
	l.subscribers[ch] = struct{}{}
	ch <- l.last
	l.mu.Unlock()

	cancel := func() {
		l.mu.Lock()
		if _, ok := l.subscribers[ch]; ok {
			delete(l.subscribers, ch)
			close(ch)
		}
		l.mu.Unlock()
	}
	return ch, cancel
}

func (l *Loop) dispatch(ctx context.Context, ev any) []command {
	switch e := ev.(type) {
	case Action:
		return l.session.Handle(ctx, e)
	case timerFired:
		return l.session.Fire(ctx, e)
	case contentArrived:
		l.session.Load(e.round, e.content)
	}
	return nil
}

func (l *Loop) exec(ctx context.Context, cmds []command) {
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case acquireCmd:
			kind := l.session.Kind()
			go func() {
				l.push(contentArrived{round: c.round, content: l.acquirer.Acquire(ctx, kind)})
			}()
		case scheduleCmd:
			l.mu.Lock()
			l.nextTimer++
			id := l.nextTimer
			l.timers[id] = nil
			l.mu.Unlock()

			stop := l.sched.AfterFunc(c.delay, func() {
				l.mu.Lock()
				delete(l.timers, id)
				l.mu.Unlock()
				l.push(c.timer)
			})

			l.mu.Lock()
			if _, pending := l.timers[id]; pending {
				l.timers[id] = stop
			}
			l.mu.Unlock()
		}
	}
}

func (l *Loop) push(ev any) {
	select {
	case l.events <- ev:
	case <-l.done:
	}
}

func (l *Loop) publish() {
	v := l.session.View()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.last = v
	for ch := range l.subscribers {
		select {
		case ch <- v:
		default:
			// Slow readers only need the latest view.
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}

func (l *Loop) shutdown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	close(l.done)
	for id, stop := range l.timers {
		if stop != nil {
			stop()
		}
		delete(l.timers, id)
	}
	for ch := range l.subscribers {
		delete(l.subscribers, ch)
		close(ch)
	}
}
