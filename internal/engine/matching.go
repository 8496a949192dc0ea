package engine

import (
	"slices"

	"puzzle-service/internal/content"
	"puzzle-service/internal/domain"
)

// Side tells which half of a pair a card shows.
type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

// Card is one card of a shuffled matching deck.
type Card struct {
	PairID int
	Side   Side
	Text   string
}

type matching struct {
	cards   []Card
	pairs   int
	faceUp  []int
	matched map[int]bool
	delays  Delays
}

// BuildDeck turns pairs into two cards each and shuffles them.
func BuildDeck(pairs []domain.Pair, rnd content.Rand) []Card {
	cards := make([]Card, 0, 2*len(pairs))
	for _, p := range pairs {
		cards = append(cards,
			Card{PairID: p.ID, Side: SideA, Text: p.SideA},
			Card{PairID: p.ID, Side: SideB, Text: p.SideB},
		)
	}
	content.Shuffle(rnd, len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return cards
}

func newMatching(c domain.MatchingContent, d Delays, rnd content.Rand) *matching {
	return &matching{
		cards:   BuildDeck(c.Pairs, rnd),
		pairs:   len(c.Pairs),
		matched: make(map[int]bool, len(c.Pairs)),
		delays:  d,
	}
}

func (m *matching) apply(a Action) outcome {
	flip, ok := a.(Flip)
	if !ok {
		return ignored
	}
	i := flip.Index
	if len(m.faceUp) == 2 || i < 0 || i >= len(m.cards) {
		return ignored
	}
	if slices.Contains(m.faceUp, i) || m.matched[m.cards[i].PairID] {
		return ignored
	}

	m.faceUp = append(m.faceUp, i)
	if len(m.faceUp) < 2 {
		return outcome{accepted: true}
	}

	first, second := m.cards[m.faceUp[0]], m.cards[m.faceUp[1]]
	if first.PairID != second.PairID {
		return outcome{accepted: true, after: []delayed{{delay: m.delays.Mismatch, t: hideCards}}}
	}
	m.matched[first.PairID] = true
	m.faceUp = nil
	return outcome{accepted: true, points: MatchPoints, done: len(m.matched) == m.pairs}
}

func (m *matching) fire(t transition) outcome {
	if t != hideCards {
		return ignored
	}
	m.faceUp = nil
	return outcome{accepted: true}
}

func (m *matching) view(v *View) {
	cards := make([]CardView, len(m.cards))
	for i, c := range m.cards {
		up := slices.Contains(m.faceUp, i)
		matched := m.matched[c.PairID]
		cards[i] = CardView{Side: c.Side, FaceUp: up || matched, Matched: matched}
		if up || matched {
			cards[i].Text = c.Text
		}
	}
	v.Matching = &MatchingView{
		Cards:        cards,
		MatchedPairs: len(m.matched),
		TotalPairs:   m.pairs,
	}
}
