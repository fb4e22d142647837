package search

import "github.com/PaMeirelles/FitosBot/pkg/board"

// scoreMoves assigns the ordering priority: ten points per level climbed plus
// the gain in two-step connectivity from the from-square to the destination.
func scoreMoves(b *board.Board, moves []board.Move) {
	for i := range moves {
		m := &moves[i]
		diff := int(b.Height(m.To)) - int(b.Height(m.From))
		m.Score = int16(diff*10 + board.DoubleNeighbours[m.To] - board.DoubleNeighbours[m.From])
	}
}

// pickMove swaps the highest-scored remaining move into position start.
// Selection on demand beats a full sort when cutoffs stop the scan early.
func pickMove(moves []board.Move, start int) {
	best := start
	for i := start + 1; i < len(moves); i++ {
		if moves[i].Score > moves[best].Score {
			best = i
		}
	}
	if best != start {
		moves[start], moves[best] = moves[best], moves[start]
	}
}
