package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"puzzle-service/internal/content"
	"puzzle-service/internal/domain"
	"puzzle-service/internal/engine"
	"puzzle-service/internal/score"
	"puzzle-service/internal/store"
)

// SessionRepository abstracts where running puzzle loops are tracked (in-memory, Redis, etc).
type SessionRepository interface {
	Put(loop *engine.Loop)
	Get(id string) (*engine.Loop, bool)
	Delete(id string)
}

// DefaultPreschool lists the names that get the preschool menu.
var DefaultPreschool = []string{"aviv", "אביב"}

var (
	preschoolKinds = []domain.Kind{domain.KindCount, domain.KindFirstLetter}
	schoolKinds    = []domain.Kind{domain.KindMath, domain.KindQuiz, domain.KindMatching, domain.KindReveal}
)

// Options tune a PuzzleService. Zero values pick the defaults.
type Options struct {
	Delays    engine.Delays
	Preschool []string
	Scheduler engine.Scheduler
	Rand      content.Rand
}

// PuzzleService contains the puzzle use cases: who is playing, what they may
// play, and the single puzzle session running for them.
type PuzzleService struct {
	kv       store.KV
	sessions SessionRepository
	acquirer engine.Acquirer
	ledger   *score.Ledger
	identity *score.Identity
	opts     Options
	children map[string]struct{}

	mu     sync.Mutex
	active *engine.Loop
	cancel context.CancelFunc
}

func NewPuzzleService(kv store.KV, sessions SessionRepository, acquirer engine.Acquirer, opts Options) *PuzzleService {
	if opts.Delays == (engine.Delays{}) {
		opts.Delays = engine.DefaultDelays()
	}
	if opts.Preschool == nil {
		opts.Preschool = DefaultPreschool
	}
	if opts.Scheduler == nil {
		opts.Scheduler = engine.TimerScheduler{}
	}
	children := make(map[string]struct{}, len(opts.Preschool))
	for _, name := range opts.Preschool {
		children[store.NormalizeName(name)] = struct{}{}
	}
	ledger := score.NewLedger(kv)
	return &PuzzleService{
		kv:       kv,
		sessions: sessions,
		acquirer: acquirer,
		ledger:   ledger,
		identity: score.NewIdentity(kv, ledger),
		opts:     opts,
		children: children,
	}
}

// Restore picks up the identity persisted by a previous run.
func (s *PuzzleService) Restore(ctx context.Context) (string, bool) {
	return s.identity.Restore(ctx)
}

// Menu returns the puzzle kinds offered to userName.
func (s *PuzzleService) Menu(userName string) []domain.Kind {
	if _, ok := s.children[store.NormalizeName(userName)]; ok {
		return append([]domain.Kind(nil), preschoolKinds...)
	}
	return append([]domain.Kind(nil), schoolKinds...)
}

// SignIn switches the identity once the running session has stopped. A persistence failure is returned with a
// usable profile; the identity just will not survive a restart.
func (s *PuzzleService) SignIn(ctx context.Context, userName string) (domain.Profile, error) {
	s.EndActive()
	user, err := s.identity.Set(ctx, userName)
	if errors.Is(err, domain.ErrEmptyName) {
		return domain.Profile{}, err
	}
	return s.profileFor(user), err
}

// SignOut ends the running puzzle and forgets the identity.
func (s *PuzzleService) SignOut(ctx context.Context) error {
	s.EndActive()
	return s.identity.Clear(ctx)
}

// Profile reports the current identity and score.
func (s *PuzzleService) Profile() (domain.Profile, error) {
	user := s.identity.Current()
	if user == "" {
		return domain.Profile{}, domain.ErrNoIdentity
	}
	return s.profileFor(user), nil
}

func (s *PuzzleService) profileFor(user string) domain.Profile {
	return domain.Profile{UserName: user, TotalScore: s.ledger.Total(), Kinds: s.Menu(user)}
}

// SetCredential registers the generator credential; an empty value removes it.
func (s *PuzzleService) SetCredential(ctx context.Context, credential string) error {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		if err := s.kv.Delete(ctx, store.CredentialKey); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("clear credential: %w", err)
		}
		return nil
	}
	if err := s.kv.Set(ctx, store.CredentialKey, credential); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	return nil
}

// StartPuzzle replaces any running session with a new one of kind. The
// session runs until EndPuzzle, the next StartPuzzle or SignOut.
func (s *PuzzleService) StartPuzzle(ctx context.Context, kind domain.Kind) (*engine.Loop, error) {
	if s.identity.Current() == "" {
		return nil, domain.ErrNoIdentity
	}
	kind, err := domain.ParseKind(string(kind))
	if err != nil {
		return nil, err
	}

	session := engine.NewSession(uuid.NewString(), kind, s.ledger, s.opts.Delays, s.opts.Rand)
	loop := engine.NewLoop(session, s.acquirer, s.opts.Scheduler)
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	for {
		s.stop("")
		s.mu.Lock()
		if s.active == nil {
			s.active, s.cancel = loop, cancel
			s.mu.Unlock()
			break
		}
		s.mu.Unlock()
	}

	s.sessions.Put(loop)
	go func() {
		err := loop.Run(runCtx)
		log.Debug().Err(err).Str("session", loop.ID()).Str("kind", string(kind)).Msg("puzzle session stopped")
		s.sessions.Delete(loop.ID())
		s.mu.Lock()
		if s.active == loop {
			s.active, s.cancel = nil, nil
		}
		s.mu.Unlock()
	}()
	log.Info().Str("session", loop.ID()).Str("kind", string(kind)).Str("user", s.identity.Current()).Msg("puzzle session started")
	return loop, nil
}

// Session looks up a running session.
func (s *PuzzleService) Session(id string) (*engine.Loop, bool) {
	return s.sessions.Get(id)
}

// EndPuzzle stops the session with id if it is the running one.
func (s *PuzzleService) EndPuzzle(id string) {
	if id != "" {
		s.stop(id)
	}
}

// EndActive stops whichever session is running.
func (s *PuzzleService) EndActive() {
	s.stop("")
}

// stop cancels the running session, or only the one with id when id is set,
// and returns once its loop has exited. No ledger write can follow it.
func (s *PuzzleService) stop(id string) {
	s.mu.Lock()
	loop, cancel := s.active, s.cancel
	if loop == nil || (id != "" && loop.ID() != id) {
		s.mu.Unlock()
		return
	}
	s.active, s.cancel = nil, nil
	s.mu.Unlock()

	cancel()
	<-loop.Done()
}
