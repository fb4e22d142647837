package search_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PaMeirelles/FitosBot/pkg/board"
	"github.com/PaMeirelles/FitosBot/pkg/eval"
	"github.com/PaMeirelles/FitosBot/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zt = board.NewZobristTable(0)

func makePosition(blocks [25]int8, gray, blue [2]board.Square, turn board.Color, godGray, godBlue board.God, athena bool) string {
	var sb strings.Builder
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		sb.WriteByte('0' + byte(blocks[sq]))
		switch {
		case sq == gray[0] || sq == gray[1]:
			sb.WriteByte('G')
		case sq == blue[0] || sq == blue[1]:
			sb.WriteByte('B')
		default:
			sb.WriteByte('N')
		}
	}
	if turn == board.Gray {
		sb.WriteByte('0')
	} else {
		sb.WriteByte('1')
	}
	sb.WriteByte('0' + byte(godGray))
	sb.WriteByte('0' + byte(godBlue))
	if athena {
		sb.WriteByte('1')
	} else {
		sb.WriteByte('0')
	}
	return sb.String()
}

func newSearch() search.Search {
	return search.Search{
		Eval: eval.Classical{},
		TT:   search.NewTranspositionTable(1 << 16),
	}
}

func bestMove(t *testing.T, position string, budget time.Duration, opt search.Options) (search.Result, *board.Board) {
	t.Helper()
	b, err := board.Parse(zt, position)
	require.NoError(t, err)

	ret, ok := newSearch().BestMove(context.Background(), b.Fork(), budget, opt)
	require.True(t, ok)
	require.True(t, b.Validate(ret.Move), "illegal best move %v on %v", ret.Move, b)
	return ret, b
}

func TestFindsClimbWin(t *testing.T) {
	// Gray stands on height 2 next to a finished tower: stepping up wins.
	blocks := [25]int8{}
	blocks[board.C3] = 2
	blocks[board.D3] = 3
	pos := makePosition(blocks, [2]board.Square{board.C3, board.A1}, [2]board.Square{board.E5, board.A5}, board.Gray, board.Athena, board.Apollo, false)

	ret, b := bestMove(t, pos, time.Second, search.Options{})

	assert.Equal(t, board.D3, ret.Move.To)
	assert.Equal(t, search.Mate-1, ret.Score)

	b.Apply(&ret.Move)
	assert.Equal(t, board.GrayWins, b.State())
}

func TestFindsPanDrop(t *testing.T) {
	// Pan on height 2 wins at once by dropping to ground level.
	blocks := [25]int8{}
	blocks[board.C3] = 2
	pos := makePosition(blocks, [2]board.Square{board.C3, board.A1}, [2]board.Square{board.E5, board.A5}, board.Gray, board.Pan, board.Apollo, false)

	ret, b := bestMove(t, pos, time.Second, search.Options{})

	assert.Equal(t, search.Mate-1, ret.Score)

	b.Apply(&ret.Move)
	assert.Equal(t, board.GrayWins, b.State())
}

func TestBlueFindsWin(t *testing.T) {
	// Blue to move with an immediate win; the score is side-relative, so blue
	// reports the same mate score gray would.
	blocks := [25]int8{}
	blocks[board.C3] = 2
	blocks[board.D3] = 3
	pos := makePosition(blocks, [2]board.Square{board.E5, board.A5}, [2]board.Square{board.C3, board.A1}, board.Blue, board.Apollo, board.Athena, false)

	ret, b := bestMove(t, pos, time.Second, search.Options{})
	assert.Equal(t, search.Mate-1, ret.Score)

	b.Apply(&ret.Move)
	assert.Equal(t, board.BlueWins, b.State())
}

func TestAvoidsHandingOverTheTower(t *testing.T) {
	// Gray must not build the third level next to a blue worker standing on
	// height 2: depth 2 sees the immediate refutation.
	blocks := [25]int8{}
	blocks[board.C3] = 2 // blue worker here
	blocks[board.C4] = 2
	pos := makePosition(blocks, [2]board.Square{board.B2, board.E1}, [2]board.Square{board.C3, board.E5}, board.Gray, board.Apollo, board.Apollo, false)

	ret, b := bestMove(t, pos, 5*time.Second, search.Options{DepthLimit: lang.Some[uint](3)})

	b.Apply(&ret.Move)
	require.Equal(t, board.Ongoing, b.State())

	// No blue reply may win outright.
	for _, reply := range b.Generate(nil) {
		b.Apply(&reply)
		assert.NotEqual(t, board.BlueWins, b.State(), "losing move %v allows %v", ret.Move, reply)
		b.Undo(&reply)
	}
}

func TestNoMoves(t *testing.T) {
	// Walled-in gray has no legal move; the search reports none.
	blocks := [25]int8{}
	for _, sq := range []board.Square{board.B1, board.A2, board.B2, board.D5, board.E4, board.D4} {
		blocks[sq] = 4
	}
	pos := makePosition(blocks, [2]board.Square{board.A1, board.E5}, [2]board.Square{board.C3, board.D3}, board.Gray, board.Apollo, board.Apollo, false)
	b, err := board.Parse(zt, pos)
	require.NoError(t, err)

	_, ok := newSearch().BestMove(context.Background(), b, time.Second, search.Options{})
	assert.False(t, ok)
}

func TestBoardRestoredAfterSearch(t *testing.T) {
	blocks := [25]int8{}
	blocks[board.C2] = 1
	pos := makePosition(blocks, [2]board.Square{board.B2, board.E1}, [2]board.Square{board.C4, board.E5}, board.Gray, board.Prometheus, board.Hermes, false)
	b, err := board.Parse(zt, pos)
	require.NoError(t, err)
	hash := b.Hash()

	_, ok := newSearch().BestMove(context.Background(), b, 200*time.Millisecond, search.Options{})
	require.True(t, ok)

	assert.Equal(t, pos, b.Position())
	assert.Equal(t, hash, b.Hash())
}

func TestDepthLimit(t *testing.T) {
	pos := makePosition([25]int8{}, [2]board.Square{board.B2, board.E1}, [2]board.Square{board.C4, board.E5}, board.Gray, board.Artemis, board.Minotaur, false)
	b, err := board.Parse(zt, pos)
	require.NoError(t, err)

	ret, ok := newSearch().BestMove(context.Background(), b, time.Hour, search.Options{DepthLimit: lang.Some[uint](2)})
	require.True(t, ok)
	assert.Equal(t, 2, ret.Depth)
}

func TestCancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pos := makePosition([25]int8{}, [2]board.Square{board.B2, board.E1}, [2]board.Square{board.C4, board.E5}, board.Gray, board.Demeter, board.Hephaestus, false)
	b, err := board.Parse(zt, pos)
	require.NoError(t, err)

	start := time.Now()
	_, _ = newSearch().BestMove(ctx, b, time.Hour, search.Options{})
	assert.Less(t, time.Since(start), 30*time.Second)
}

func TestSearchAllGodPairings(t *testing.T) {
	// Smoke test: a shallow search returns a legal move for every god.
	blocks := [25]int8{
		0, 1, 2, 0, 0,
		1, 2, 3, 0, 0,
		0, 0, 1, 1, 0,
		0, 2, 2, 1, 0,
		0, 0, 0, 1, 0,
	}
	for god := board.ZeroGod; god < board.NumGods; god++ {
		pos := makePosition(blocks, [2]board.Square{board.A1, board.D3}, [2]board.Square{board.C4, board.E5}, board.Gray, god, board.Apollo, false)
		ret, b := bestMove(t, pos, 100*time.Millisecond, search.Options{DepthLimit: lang.Some[uint](2)})

		b.Apply(&ret.Move)
		b.Undo(&ret.Move)
		assert.Equal(t, pos, b.Position(), "god %v", god)
	}
}
