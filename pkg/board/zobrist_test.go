package board_test

import (
	"math/rand"
	"testing"

	"github.com/PaMeirelles/FitosBot/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZobristTableDeterministic(t *testing.T) {
	a := board.NewZobristTable(42)
	z := board.NewZobristTable(42)

	pos := makePosition([25]int8{}, [2]board.Square{board.A1, board.B1}, [2]board.Square{board.D5, board.E5}, board.Gray, board.Apollo, board.Artemis, false)
	ba, err := board.Parse(a, pos)
	require.NoError(t, err)
	bz, err := board.Parse(z, pos)
	require.NoError(t, err)

	assert.Equal(t, ba.Hash(), bz.Hash())
}

func TestHashComponents(t *testing.T) {
	blocks := [25]int8{}
	base := makePosition(blocks, [2]board.Square{board.A1, board.B1}, [2]board.Square{board.D5, board.E5}, board.Gray, board.Apollo, board.Artemis, false)
	b := parse(t, base)

	// Turn, athena flag, heights and worker squares all change the hash.
	variants := []string{
		makePosition(blocks, [2]board.Square{board.A1, board.B1}, [2]board.Square{board.D5, board.E5}, board.Blue, board.Apollo, board.Artemis, false),
		makePosition(blocks, [2]board.Square{board.A1, board.B1}, [2]board.Square{board.D5, board.E5}, board.Gray, board.Apollo, board.Artemis, true),
		makePosition([25]int8{0, 0, 1}, [2]board.Square{board.A1, board.B1}, [2]board.Square{board.D5, board.E5}, board.Gray, board.Apollo, board.Artemis, false),
		makePosition(blocks, [2]board.Square{board.A1, board.C1}, [2]board.Square{board.D5, board.E5}, board.Gray, board.Apollo, board.Artemis, false),
		makePosition(blocks, [2]board.Square{board.A1, board.B1}, [2]board.Square{board.C5, board.E5}, board.Gray, board.Apollo, board.Artemis, false),
	}
	for _, pos := range variants {
		v := parse(t, pos)
		assert.NotEqual(t, b.Hash(), v.Hash(), "hash ignores a component: %v vs %v", base, pos)
	}

	// Parsing the same position again yields the same hash.
	swapped := parse(t, base)
	assert.Equal(t, b.Hash(), swapped.Hash())
}

// randomPosition builds a random but parseable position string.
func randomPosition(r *rand.Rand) string {
	var blocks [25]int8
	for sq := range blocks {
		blocks[sq] = int8(r.Intn(5))
	}

	perm := r.Perm(25)
	var gray, blue [2]board.Square
	gray[0], gray[1] = board.Square(perm[0]), board.Square(perm[1])
	blue[0], blue[1] = board.Square(perm[2]), board.Square(perm[3])
	for _, sq := range perm[:4] {
		if blocks[sq] == 4 {
			blocks[sq] = int8(r.Intn(4))
		}
	}

	turn := board.Gray
	if r.Intn(2) == 1 {
		turn = board.Blue
	}
	return makePosition(blocks, gray, blue, turn,
		board.God(r.Intn(int(board.NumGods))), board.God(r.Intn(int(board.NumGods))), r.Intn(4) == 0)
}

func TestMakeUnmakeFuzz(t *testing.T) {
	// For a large spread of random positions, every generated move applied
	// and undone must restore the position string and the hash bit-for-bit,
	// and the incremental hash must match a from-scratch recomputation at
	// every step.
	r := rand.New(rand.NewSource(1))

	positions := 0
	moves := 0
	for positions < 10000 {
		pos := randomPosition(r)
		b, err := board.Parse(zt, pos)
		require.NoError(t, err)
		positions++

		for i, m := range b.Generate(nil) {
			require.True(t, b.Validate(m), "unsound move %v on %v", m, pos)

			b.Apply(&m)
			require.Equal(t, zt.Hash(b), b.Hash(), "incremental hash diverged after %v on %v", m, pos)

			b.Undo(&m)
			require.Equal(t, pos, b.Position(), "unmake mismatch after %v", m)
			require.Equal(t, zt.Hash(b), b.Hash(), "incremental hash diverged after undo of %v on %v", m, pos)

			moves++
			if i > 40 {
				break // cap per-position work; the position spread matters more
			}
		}
	}
	t.Logf("tested %v moves over %v positions", moves, positions)
}

func TestMakeUnmakeDeep(t *testing.T) {
	// Random playouts: apply a few plies, then unwind them all and compare
	// against the starting point.
	r := rand.New(rand.NewSource(2))

	for game := 0; game < 200; game++ {
		pos := randomPosition(r)
		b, err := board.Parse(zt, pos)
		require.NoError(t, err)

		var applied []board.Move
		for ply := 0; ply < 6; ply++ {
			if b.State() != board.Ongoing {
				break
			}
			moves := b.Generate(nil)
			if len(moves) == 0 {
				break
			}
			m := moves[r.Intn(len(moves))]
			b.Apply(&m)
			require.Equal(t, zt.Hash(b), b.Hash())
			applied = append(applied, m)
		}
		for i := len(applied) - 1; i >= 0; i-- {
			b.Undo(&applied[i])
		}
		require.Equal(t, pos, b.Position())
		require.Equal(t, zt.Hash(b), b.Hash())
	}
}
