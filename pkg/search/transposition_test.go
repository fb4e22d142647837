package search_test

import (
	"math/rand"
	"testing"

	"github.com/PaMeirelles/FitosBot/pkg/board"
	"github.com/PaMeirelles/FitosBot/pkg/eval"
	"github.com/PaMeirelles/FitosBot/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestTranspositionTable(t *testing.T) {
	// (1) Size is rounded down to a power of two.

	tt := search.NewTranspositionTable(0x1000)
	assert.Equal(t, 0x1000, tt.Size())
	tt2 := search.NewTranspositionTable(0x1f00)
	assert.Equal(t, 0x1000, tt2.Size())

	// (2) Probe misses on an empty table and on a different hash.

	hash := board.ZobristHash(rand.New(rand.NewSource(1)).Uint64())

	_, ok := tt.Probe(hash, -search.Mate, search.Mate, 1)
	assert.False(t, ok)

	m := board.Move{God: board.Pan, From: board.C3, To: board.B3, Build: board.B2}
	tt.Store(hash, m, 123, 3, search.ExactBound)

	_, ok = tt.Probe(hash^0xff0000, -search.Mate, search.Mate, 1)
	assert.False(t, ok)

	// (3) Exact hits return the stored score, but only at sufficient depth.

	score, ok := tt.Probe(hash, -search.Mate, search.Mate, 3)
	assert.True(t, ok)
	assert.Equal(t, eval.Score(123), score)

	_, ok = tt.Probe(hash, -search.Mate, search.Mate, 4)
	assert.False(t, ok)

	move, score, ok := tt.ProbePV(hash)
	assert.True(t, ok)
	assert.True(t, m.Equals(move))
	assert.Equal(t, eval.Score(123), score)

	// (4) Bound semantics: an upper bound at or below alpha returns alpha, a
	// lower bound at or above beta returns beta, anything else misses.

	tt.Store(hash, m, 10, 3, search.UpperBound)
	score, ok = tt.Probe(hash, 50, 100, 3)
	assert.True(t, ok)
	assert.Equal(t, eval.Score(50), score)
	_, ok = tt.Probe(hash, 5, 100, 3)
	assert.False(t, ok)

	tt.Store(hash, m, 90, 3, search.LowerBound)
	score, ok = tt.Probe(hash, 0, 80, 3)
	assert.True(t, ok)
	assert.Equal(t, eval.Score(80), score)
	_, ok = tt.Probe(hash, 0, 95, 3)
	assert.False(t, ok)

	// (5) Writes always replace.

	tt.Store(hash, m, 55, 1, search.ExactBound)
	score, ok = tt.Probe(hash, -search.Mate, search.Mate, 1)
	assert.True(t, ok)
	assert.Equal(t, eval.Score(55), score)

	// (6) Clear drops everything.

	tt.Clear()
	_, _, ok = tt.ProbePV(hash)
	assert.False(t, ok)
}

func TestTranspositionTableCollisionSlots(t *testing.T) {
	// Two hashes mapping to the same slot must not be confused: the full
	// 64-bit key decides.
	tt := search.NewTranspositionTable(16)

	a := board.ZobristHash(0x10)
	b := board.ZobristHash(0x10 + 16) // same slot index

	tt.Store(a, board.Move{}, 1, 1, search.ExactBound)
	_, ok := tt.Probe(b, -search.Mate, search.Mate, 1)
	assert.False(t, ok)

	tt.Store(b, board.Move{}, 2, 1, search.ExactBound)
	score, ok := tt.Probe(b, -search.Mate, search.Mate, 1)
	assert.True(t, ok)
	assert.Equal(t, eval.Score(2), score)

	// The newer write evicted the older entry.
	_, ok = tt.Probe(a, -search.Mate, search.Mate, 1)
	assert.False(t, ok)
}
