package eval

import (
	"context"

	"github.com/PaMeirelles/FitosBot/pkg/board"
)

// posScore rewards central squares; the center sees the most build targets.
var posScore = [25]Score{
	-50, -30, -10, -30, -50,
	-30, 10, 30, 10, -30,
	-10, 30, 50, 30, 10,
	-30, 10, 30, 10, -30,
	-50, -30, -10, -30, -50,
}

// heightScore rewards standing high. Height 2 dominates: it threatens the win.
var heightScore = [4]Score{0, 100, 400, 350}

// Support bonuses for elevated workers: free neighbouring squares at the same
// height keep retreats open, squares one higher are climbing threats.
var (
	sameHeightSupport = [3]Score{-30, 0, 55}
	nextHeightSupport = [3]Score{0, 35, 120}
)

// Classical is the hand-tuned positional evaluator: per-worker square and
// height scores plus support terms, Gray minus Blue.
type Classical struct{}

func (Classical) Evaluate(ctx context.Context, b *board.Board) Score {
	return scoreWorker(b, 0) + scoreWorker(b, 1) - scoreWorker(b, 2) - scoreWorker(b, 3)
}

func scoreWorker(b *board.Board, slot int) Score {
	sq := b.Worker(slot)
	h := b.Height(sq)

	score := posScore[sq] + heightScore[h]

	if h > 0 {
		sameH, nextH := 0, 0
		for _, n := range board.Neighbours[sq] {
			if !b.IsFree(n) {
				continue
			}
			switch b.Height(n) {
			case h:
				sameH++
			case h + 1:
				nextH++
			}
		}
		if sameH > 2 {
			sameH = 2
		}
		if nextH > 2 {
			nextH = 2
		}
		score += sameHeightSupport[sameH] + nextHeightSupport[nextH]
	}
	return score
}
