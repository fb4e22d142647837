package search

import (
	"fmt"
	"math/bits"

	"github.com/PaMeirelles/FitosBot/pkg/board"
	"github.com/PaMeirelles/FitosBot/pkg/eval"
)

// Bound represents the bound of a -- possibly inexact -- search score.
type Bound uint8

const (
	UpperBound Bound = iota // score did not improve alpha
	LowerBound              // beta cutoff occurred
	ExactBound              // score improved alpha without a cutoff
)

func (b Bound) String() string {
	switch b {
	case UpperBound:
		return "Upper"
	case LowerBound:
		return "Lower"
	case ExactBound:
		return "Exact"
	default:
		return "?"
	}
}

// DefaultTableSize is the default number of transposition table slots.
const DefaultTableSize = 1 << 22

type entry struct {
	hash  board.ZobristHash
	move  board.Move
	score eval.Score
	depth int16
	bound Bound
	used  bool
}

// TranspositionTable is a fixed-size, direct-mapped, always-replace table of
// search results keyed by the full zobrist hash. The slot count is a power of
// two so indexing is a mask. Probes compare the full 64-bit hash; the index
// alone is insufficient.
type TranspositionTable struct {
	table []entry
	mask  uint64

	newWrites, overwrites, hits, cuts uint64
}

// NewTranspositionTable creates a table with the given number of slots,
// rounded down to a power of two.
func NewTranspositionTable(size int) *TranspositionTable {
	if size < 1 {
		size = 1
	}
	n := uint64(1) << (63 - bits.LeadingZeros64(uint64(size)))
	return &TranspositionTable{
		table: make([]entry, n),
		mask:  n - 1,
	}
}

// Size returns the number of slots.
func (t *TranspositionTable) Size() int {
	return len(t.table)
}

// Clear drops all entries and statistics.
func (t *TranspositionTable) Clear() {
	for i := range t.table {
		t.table[i] = entry{}
	}
	t.newWrites, t.overwrites, t.hits, t.cuts = 0, 0, 0, 0
}

// Store writes the entry, unconditionally replacing any previous occupant of
// the slot.
func (t *TranspositionTable) Store(hash board.ZobristHash, move board.Move, score eval.Score, depth int, bound Bound) {
	idx := uint64(hash) & t.mask
	if t.table[idx].used {
		t.overwrites++
	} else {
		t.newWrites++
	}
	t.table[idx] = entry{
		hash:  hash,
		move:  move,
		score: score,
		depth: int16(depth),
		bound: bound,
		used:  true,
	}
}

// Probe looks up the position. On a hit at sufficient depth it returns the
// score implied by the stored bound: exact scores directly, an upper bound
// at or below alpha as alpha, a lower bound at or above beta as beta.
func (t *TranspositionTable) Probe(hash board.ZobristHash, alpha, beta eval.Score, depth int) (eval.Score, bool) {
	e := &t.table[uint64(hash)&t.mask]
	if !e.used || e.hash != hash || int(e.depth) < depth {
		return 0, false
	}
	t.hits++

	switch e.bound {
	case UpperBound:
		if e.score <= alpha {
			t.cuts++
			return alpha, true
		}
	case LowerBound:
		if e.score >= beta {
			t.cuts++
			return beta, true
		}
	case ExactBound:
		t.cuts++
		return e.score, true
	}
	return 0, false
}

// ProbePV returns the stored best move and score for the position regardless
// of depth, used to extract the root move after a search.
func (t *TranspositionTable) ProbePV(hash board.ZobristHash) (board.Move, eval.Score, bool) {
	e := &t.table[uint64(hash)&t.mask]
	if !e.used || e.hash != hash {
		return board.Move{}, 0, false
	}
	return e.move, e.score, true
}

// Used returns the utilization as a fraction [0;1].
func (t *TranspositionTable) Used() float64 {
	return float64(t.newWrites) / float64(len(t.table))
}

func (t *TranspositionTable) String() string {
	return fmt.Sprintf("TT[slots=%v, used=%v%%, hits=%v, cuts=%v, overwrites=%v]",
		len(t.table), int(100*t.Used()), t.hits, t.cuts, t.overwrites)
}
