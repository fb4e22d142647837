// Package eval contains position evaluation logic and utilities.
package eval

import (
	"context"

	"github.com/PaMeirelles/FitosBot/pkg/board"
)

// Score is a signed position score in points. Positive favors Gray. Heuristic
// scores stay well inside (-Mate; Mate); the search layers mate-distance
// scores on top.
type Score int32

// Evaluator is a static position evaluator.
type Evaluator interface {
	// Evaluate returns the position score in points from Gray's perspective.
	Evaluate(ctx context.Context, b *board.Board) Score
}

// Unit returns the signed evaluation unit for the side to move, so that
// Unit(c) * Evaluate(b) is side-relative.
func Unit(c board.Color) Score {
	return Score(c.Unit())
}

// Max returns the largest of the given scores.
func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

// Min returns the smallest of the given scores.
func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}
