package search

import (
	"context"
	"time"

	"github.com/PaMeirelles/FitosBot/pkg/board"
	"github.com/PaMeirelles/FitosBot/pkg/eval"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold dynamic search options.
type Options struct {
	// DepthLimit, if set, stops iterative deepening at the given depth.
	DepthLimit lang.Optional[uint]
}

// Search is an iterative-deepening negamax search with quiescence and a
// transposition table. The evaluator is treated as a black box scoring from
// Gray's perspective.
type Search struct {
	Eval eval.Evaluator
	TT   *TranspositionTable
}

// Result is the outcome of one search.
type Result struct {
	Move  board.Move
	Score eval.Score
	Depth int
	Nodes uint64
}

// BestMove searches the position under a wall-clock budget of one tenth of the
// given remaining time. It returns false iff the side to move has no legal
// move. The board is exclusively owned for the duration and restored to its
// entry state before returning.
func (s Search) BestMove(ctx context.Context, b *board.Board, remaining time.Duration, opt Options) (Result, bool) {
	start := time.Now()
	r := &run{
		ctx:      ctx,
		b:        b,
		ev:       s.Eval,
		tt:       s.TT,
		deadline: start.Add(remaining / 10),
	}

	var ret Result
	have := false

	for depth := 1; ; depth++ {
		r.hasRootMove = false
		score := r.negamax(depth, 0, -Mate, Mate)

		if r.aborted {
			// Keep the previous iteration's result, unless the very first
			// iteration already produced a move.
			if !have && r.hasRootMove {
				ret = Result{Move: r.rootMove, Score: score, Depth: depth, Nodes: r.nodes}
				have = true
			}
			break
		}
		if r.hasRootMove {
			ret = Result{Move: r.rootMove, Score: score, Depth: depth, Nodes: r.nodes}
			have = true
		} else if m, sc, ok := s.TT.ProbePV(b.Hash()); ok {
			// The root position hit the table exactly; recover its move.
			ret = Result{Move: m, Score: sc, Depth: depth, Nodes: r.nodes}
			have = true
			score = sc
		} else {
			break // no legal move
		}

		logw.Debugf(ctx, "depth=%v score=%v nodes=%v time=%v best=%v",
			depth, score, r.nodes, time.Since(start), b.FormatMove(ret.Move))

		if score > Mate-mateWindow || score < -(Mate-mateWindow) {
			break // proved mate either way; deeper search cannot improve it
		}
		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) == limit {
			break
		}
		if time.Now().After(r.deadline) {
			break
		}
	}

	if !have {
		// The deadline passed before any root move was searched: fall back to
		// the best-ordered legal move, if there is one.
		if moves := b.Generate(nil); len(moves) > 0 {
			scoreMoves(b, moves)
			pickMove(moves, 0)
			ret = Result{Move: moves[0], Nodes: r.nodes}
			have = true
		}
	}

	logw.Debugf(ctx, "search done: %v nodes, %v", r.nodes, s.TT)
	return ret, have
}
