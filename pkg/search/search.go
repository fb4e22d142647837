// Package search contains the negamax search, quiescence extension and
// transposition table.
package search

import (
	"context"
	"time"

	"github.com/PaMeirelles/FitosBot/pkg/board"
	"github.com/PaMeirelles/FitosBot/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

const (
	// Mate is the terminal score magnitude. Mate scores are reduced by the
	// ply distance so faster wins score higher.
	Mate eval.Score = 10000

	// checkEvery is the node interval between wall-clock checks.
	checkEvery = 4096

	// mateWindow is the margin under Mate that still counts as a proved mate
	// for the iterative-deepening early exit.
	mateWindow eval.Score = 100
)

// run carries the mutable state of one search: the board (exclusively owned
// for the duration), node count, deadline and per-ply move buffers.
type run struct {
	ctx context.Context
	b   *board.Board
	ev  eval.Evaluator
	tt  *TranspositionTable

	deadline time.Time
	nodes    uint64
	aborted  bool

	// rootMove is the best root move found at the current depth so far.
	rootMove    board.Move
	hasRootMove bool

	bufs [][]board.Move
}

// buf returns a reusable empty move buffer for the given ply.
func (r *run) buf(ply int) []board.Move {
	for len(r.bufs) <= ply {
		r.bufs = append(r.bufs, make([]board.Move, 0, 128))
	}
	return r.bufs[ply][:0]
}

func (r *run) checkAbort() {
	if time.Now().After(r.deadline) || contextx.IsCancelled(r.ctx) {
		r.aborted = true
	}
}

// negamax searches to the given depth with fail-hard alpha-beta pruning and
// returns the side-relative score. On abort it returns 0; the board is always
// restored because every Apply is undone in the same frame.
func (r *run) negamax(depth, ply int, alpha, beta eval.Score) eval.Score {
	r.nodes++
	if r.nodes%checkEvery == 0 {
		r.checkAbort()
	}
	if r.aborted {
		return 0
	}

	if state := r.b.State(); state != board.Ongoing {
		if board.Color(state) == r.b.Turn() {
			return Mate - eval.Score(ply)
		}
		return -Mate + eval.Score(ply)
	}

	if depth == 0 {
		return r.quiesce(ply, alpha, beta)
	}

	if score, ok := r.tt.Probe(r.b.Hash(), alpha, beta, depth); ok {
		return score
	}

	moves := r.b.Generate(r.buf(ply))
	r.bufs[ply] = moves
	if len(moves) == 0 {
		return -Mate + eval.Score(ply)
	}
	scoreMoves(r.b, moves)

	maxScore := -Mate * 100
	best := -1
	origAlpha := alpha

	for i := range moves {
		pickMove(moves, i)
		m := &moves[i]

		r.b.Apply(m)
		score := -r.negamax(depth-1, ply+1, -beta, -alpha)
		r.b.Undo(m)

		if r.aborted {
			return 0
		}

		if score > maxScore {
			maxScore = score
			best = i
			if ply == 0 {
				r.rootMove, r.hasRootMove = moves[i], true
			}
			if maxScore > alpha {
				if maxScore >= beta {
					r.tt.Store(r.b.Hash(), moves[i], beta, depth, LowerBound)
					return beta
				}
				alpha = maxScore
			}
		}
	}

	if alpha != origAlpha {
		r.tt.Store(r.b.Hash(), moves[best], maxScore, depth, ExactBound)
	} else {
		r.tt.Store(r.b.Hash(), moves[best], alpha, depth, UpperBound)
	}
	return alpha
}

// quiesce extends the search along tactical moves only: climbs and Pan drops
// of two or more levels. No transposition table.
func (r *run) quiesce(ply int, alpha, beta eval.Score) eval.Score {
	if state := r.b.State(); state != board.Ongoing {
		if board.Color(state) == r.b.Turn() {
			return Mate - eval.Score(ply)
		}
		return -Mate + eval.Score(ply)
	}

	turn := r.b.Turn()
	standPat := r.ev.Evaluate(r.ctx, r.b) * eval.Unit(turn)
	if standPat >= beta {
		return beta
	}
	alpha = eval.Max(alpha, standPat)

	moves := r.b.Generate(r.buf(ply))
	r.bufs[ply] = moves
	pan := r.b.GodOf(turn) == board.Pan

	r.checkAbort()
	if r.aborted {
		return 0
	}

	for i := range moves {
		m := &moves[i]
		climb := r.b.Height(m.To) > r.b.Height(m.From)
		drop := pan && int(r.b.Height(m.To)) <= int(r.b.Height(m.From))-2
		if !climb && !drop {
			continue
		}

		r.b.Apply(m)
		score := -r.quiesce(ply+1, -beta, -alpha)
		r.b.Undo(m)

		if r.aborted {
			return 0
		}

		if score >= beta {
			return beta
		}
		alpha = eval.Max(alpha, score)
	}
	return alpha
}
