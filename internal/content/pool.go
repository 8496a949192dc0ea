package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"puzzle-service/internal/domain"
)

//go:embed pool.yaml
var bundledPool []byte

// Pool is the static fallback content, grouped by kind.
type Pool struct {
	Decks        []domain.MatchingContent    `yaml:"decks"`
	Stories      []domain.QuizContent        `yaml:"stories"`
	Words        []domain.RevealContent      `yaml:"words"`
	FirstLetters []domain.FirstLetterContent `yaml:"firstLetters"`
}

// LoadPool parses a YAML pool and validates every entry. Each generated kind
// must have at least one entry so a fallback draw can never come up empty.
func LoadPool(data []byte) (*Pool, error) {
	var p Pool
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse pool: %w", err)
	}
	for _, kind := range domain.Kinds() {
		if !kind.Generated() {
			continue
		}
		entries := p.entries(kind)
		if len(entries) == 0 {
			return nil, fmt.Errorf("pool has no %s content", kind)
		}
		for i, c := range entries {
			if err := Validate(c); err != nil {
				return nil, fmt.Errorf("pool %s[%d]: %w", kind, i, err)
			}
		}
	}
	return &p, nil
}

// DefaultPool returns the bundled pool.
func DefaultPool() *Pool {
	p, err := LoadPool(bundledPool)
	if err != nil {
		panic(err)
	}
	return p
}

// Draw returns a uniformly random entry for kind. Local kinds are generated.
func (p *Pool) Draw(kind domain.Kind, rnd Rand) (domain.Content, bool) {
	switch kind {
	case domain.KindCount:
		return NewCount(rnd), true
	case domain.KindMath:
		return NewMath(rnd), true
	}
	entries := p.entries(kind)
	if len(entries) == 0 {
		return nil, false
	}
	return entries[rnd.IntN(len(entries))], true
}

func (p *Pool) entries(kind domain.Kind) []domain.Content {
	var out []domain.Content
	switch kind {
	case domain.KindMatching:
		for _, c := range p.Decks {
			out = append(out, c)
		}
	case domain.KindQuiz:
		for _, c := range p.Stories {
			out = append(out, c)
		}
	case domain.KindReveal:
		for _, c := range p.Words {
			out = append(out, c)
		}
	case domain.KindFirstLetter:
		for _, c := range p.FirstLetters {
			out = append(out, c)
		}
	}
	return out
}
