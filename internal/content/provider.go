// Package content acquires puzzle content: from a remote generator when a
// credential is configured, otherwise (or on any failure) from the bundled
// fallback pool. Acquisition never fails from the caller's point of view.
package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"puzzle-service/internal/domain"
)

// Generator produces raw text for an instruction, authenticated by an opaque
// credential.
type Generator interface {
	Generate(ctx context.Context, credential, prompt string) (string, error)
}

// CredentialSource reports the configured generator credential, "" if none.
type CredentialSource interface {
	Credential(ctx context.Context) (string, error)
}

// Source records where acquired content came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
	SourceLocal    Source = "local"
)

// Stage names the step of a remote acquisition that failed.
type Stage string

const (
	StageCredential Stage = "credential"
	StageGenerate   Stage = "generate"
	StageTimeout    Stage = "timeout"
	StageParse      Stage = "parse"
	StageValidate   Stage = "validate"
)

// AcquisitionError describes a remote acquisition that was replaced by a
// fallback draw.
type AcquisitionError struct {
	Kind  domain.Kind
	Stage Stage
	Err   error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire %s: %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// Result is the outcome of one acquisition. Content is always usable for a
// known kind; Err is set when a remote attempt failed and the fallback was used.
type Result struct {
	Content domain.Content
	Source  Source
	Err     error
}

const DefaultTimeout = 15 * time.Second

// Provider acquires content. It holds no cache: every call is independent.
type Provider struct {
	generator   Generator
	credentials CredentialSource
	pool        *Pool
	timeout     time.Duration
	rnd         Rand
}

// Option configures a Provider.
type Option func(*Provider)

// WithTimeout bounds each remote generation call.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithRand replaces the random source used for fallback draws and local kinds.
func WithRand(r Rand) Option {
	return func(p *Provider) {
		if r != nil {
			p.rnd = &lockedRand{r: r}
		}
	}
}

// WithPool replaces the bundled fallback pool.
func WithPool(pool *Pool) Option {
	return func(p *Provider) {
		if pool != nil {
			p.pool = pool
		}
	}
}

// NewProvider builds a provider. A nil generator or credential source means
// the provider always serves the fallback pool.
func NewProvider(generator Generator, credentials CredentialSource, opts ...Option) *Provider {
	p := &Provider{
		generator:   generator,
		credentials: credentials,
		timeout:     DefaultTimeout,
		rnd:         globalRand{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.pool == nil {
		p.pool = DefaultPool()
	}
	return p
}

// Acquire returns content for kind, absorbing every remote failure.
func (p *Provider) Acquire(ctx context.Context, kind domain.Kind) domain.Content {
	res := p.Try(ctx, kind)
	if res.Err != nil {
		log.Warn().Err(res.Err).Str("kind", string(kind)).Str("source", string(res.Source)).Msg("content acquisition fell back")
	}
	return res.Content
}

// Try performs one acquisition and keeps the failure path visible.
func (p *Provider) Try(ctx context.Context, kind domain.Kind) Result {
	kind, err := domain.ParseKind(string(kind))
	if err != nil {
		return Result{Err: err}
	}
	if !kind.Generated() {
		c, _ := p.pool.Draw(kind, p.rnd)
		return Result{Content: c, Source: SourceLocal}
	}

	credential, err := p.credential(ctx)
	if err != nil {
		return p.fallback(kind, &AcquisitionError{Kind: kind, Stage: StageCredential, Err: err})
	}
	if credential == "" || p.generator == nil {
		return p.fallback(kind, nil)
	}

	c, aerr := p.remote(ctx, kind, credential)
	if aerr != nil {
		return p.fallback(kind, aerr)
	}
	return Result{Content: c, Source: SourceRemote}
}

func (p *Provider) credential(ctx context.Context) (string, error) {
	if p.credentials == nil {
		return "", nil
	}
	return p.credentials.Credential(ctx)
}

func (p *Provider) remote(ctx context.Context, kind domain.Kind, credential string) (c domain.Content, aerr *AcquisitionError) {
	defer func() {
		if r := recover(); r != nil {
			c, aerr = nil, &AcquisitionError{Kind: kind, Stage: StageGenerate, Err: fmt.Errorf("generator panic: %v", r)}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	text, err := p.generator.Generate(ctx, credential, Template(kind))
	if err != nil {
		stage := StageGenerate
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			stage = StageTimeout
		}
		return nil, &AcquisitionError{Kind: kind, Stage: stage, Err: err}
	}

	decoded, err := Decode(kind, []byte(StripFences(text)))
	if err != nil {
		return nil, &AcquisitionError{Kind: kind, Stage: StageParse, Err: err}
	}
	if err := Validate(decoded); err != nil {
		return nil, &AcquisitionError{Kind: kind, Stage: StageValidate, Err: err}
	}
	return decoded, nil
}

func (p *Provider) fallback(kind domain.Kind, cause *AcquisitionError) Result {
	c, _ := p.pool.Draw(kind, p.rnd)
	res := Result{Content: c, Source: SourceFallback}
	if cause != nil {
		res.Err = cause
	}
	return res
}
