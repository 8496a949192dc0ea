package content

import (
	"math/rand/v2"
	"slices"
	"sync"

	"puzzle-service/internal/domain"
)

// Rand is the randomness the provider draws from.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// lockedRand makes a seeded generator safe for concurrent acquisitions.
type lockedRand struct {
	mu sync.Mutex
	r  Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

var countPictograms = []string{"🍎", "🐶", "⭐", "🚗", "🎈", "🍪", "🐱", "⚽"}

// NewCount builds a counting round: a target in 1..10 and two distinct
// decoys, shuffled.
func NewCount(rnd Rand) domain.CountContent {
	target := rnd.IntN(countMax) + 1
	options := []int{target}
	for len(options) < countOptions {
		candidate := rnd.IntN(countMax) + 1
		if !slices.Contains(options, candidate) {
			options = append(options, candidate)
		}
	}
	shuffle(rnd, len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return domain.CountContent{
		TargetCount: target,
		Pictogram:   countPictograms[rnd.IntN(len(countPictograms))],
		Options:     options,
	}
}

// NewMath builds an arithmetic problem with a whole, non-negative answer.
func NewMath(rnd Rand) domain.MathContent {
	ops := []domain.Operator{domain.OpAdd, domain.OpSub, domain.OpMul, domain.OpDiv}
	op := ops[rnd.IntN(len(ops))]

	var left, right, answer int
	switch op {
	case domain.OpAdd:
		left = rnd.IntN(50) + 1
		right = rnd.IntN(50) + 1
		answer = left + right
	case domain.OpSub:
		left = rnd.IntN(100) + 10
		right = rnd.IntN(left)
		answer = left - right
	case domain.OpMul:
		left = rnd.IntN(6) + 1
		right = rnd.IntN(10) + 1
		answer = left * right
	case domain.OpDiv:
		answer = rnd.IntN(10) + 1
		right = rnd.IntN(5) + 1
		left = answer * right
	}
	return domain.MathContent{Left: left, Right: right, Operator: op, Answer: answer}
}

// shuffle is a Fisher-Yates shuffle over rnd.
func shuffle(rnd Rand, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, rnd.IntN(i+1))
	}
}

// Shuffle permutes n elements using rnd, or the global source when rnd is nil.
func Shuffle(rnd Rand, n int, swap func(i, j int)) {
	if rnd == nil {
		rnd = globalRand{}
	}
	shuffle(rnd, n, swap)
}
