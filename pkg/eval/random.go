package eval

import (
	"context"
	"math/rand"

	"github.com/PaMeirelles/FitosBot/pkg/board"
)

// Random is a randomized noise generator. It is used to add a small amount of
// randomness to evaluations. The limit specifies how many distinct point values
// may be added: the range is [-limit/2; limit-1-limit/2] in integer division,
// e.g. [-5; 4] for a limit of 10. The zero value always returns zero.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Evaluate(ctx context.Context, b *board.Board) Score {
	if n.limit <= 0 {
		return 0
	}
	return Score(n.rand.Intn(n.limit) - n.limit/2)
}

// Randomize wraps an evaluator with additive noise.
func Randomize(ev Evaluator, limit int, seed int64) Evaluator {
	if limit <= 0 {
		return ev
	}
	return noisy{ev: ev, noise: NewRandom(limit, seed)}
}

type noisy struct {
	ev    Evaluator
	noise Random
}

func (n noisy) Evaluate(ctx context.Context, b *board.Board) Score {
	return n.ev.Evaluate(ctx, b) + n.noise.Evaluate(ctx, b)
}
