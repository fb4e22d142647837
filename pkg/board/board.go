package board

import (
	"fmt"
	"strings"
)

// PositionLength is the length of the canonical position string: 25 pairs of
// (height, worker code), one turn char, two god digits and the athena flag.
const PositionLength = 54

// Outcome is the terminal state of a position: +1 Gray wins, -1 Blue wins,
// 0 ongoing.
type Outcome int8

const (
	GrayWins Outcome = 1
	BlueWins Outcome = -1
	Ongoing  Outcome = 0
)

func (o Outcome) String() string {
	switch o {
	case GrayWins:
		return "gray wins"
	case BlueWins:
		return "blue wins"
	default:
		return "ongoing"
	}
}

// Board represents the full game state: block heights, the four workers
// (slots 0,1 Gray; 2,3 Blue), side to move, the two gods, the Athena no-climb
// flag and the running zobrist hash. Mutation happens only via Apply/Undo,
// which form an exact inverse pair. Not thread-safe.
type Board struct {
	zt *ZobristTable

	heights [NumSquares]int8
	workers [4]Square
	turn    Color
	gods    [2]God

	// athena is set iff the side to move may not climb this turn.
	athena bool

	// lastDescent is the height delta of the last Pan move, read by State
	// immediately after Apply for the drop-win.
	lastDescent int8

	// won is set iff the last move stepped onto a height-3 square from below.
	won bool

	hash ZobristHash
}

// Parse creates a board from the canonical position string.
func Parse(zt *ZobristTable, position string) (*Board, error) {
	if len(position) != PositionLength {
		return nil, fmt.Errorf("invalid position: expected length %v, got %v", PositionLength, len(position))
	}

	b := &Board{zt: zt}

	grays, blues := 0, 0
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		h := position[2*sq]
		if h < '0' || h > '4' {
			return nil, fmt.Errorf("invalid block height at %v: '%c'", sq, h)
		}
		b.heights[sq] = int8(h - '0')

		switch code := position[2*sq+1]; code {
		case 'G':
			if grays == 2 {
				return nil, fmt.Errorf("invalid position: more than 2 gray workers")
			}
			b.workers[grays] = sq
			grays++
		case 'B':
			if blues == 2 {
				return nil, fmt.Errorf("invalid position: more than 2 blue workers")
			}
			b.workers[2+blues] = sq
			blues++
		case 'N':
			// empty
		default:
			return nil, fmt.Errorf("invalid worker code '%c' at %v", code, sq)
		}
	}
	if grays != 2 || blues != 2 {
		return nil, fmt.Errorf("invalid worker count: %v gray, %v blue", grays, blues)
	}
	for _, sq := range b.workers {
		if b.heights[sq] == 4 {
			return nil, fmt.Errorf("invalid position: worker on dome at %v", sq)
		}
	}

	switch position[50] {
	case '0':
		b.turn = Gray
	case '1':
		b.turn = Blue
	default:
		return nil, fmt.Errorf("invalid turn: '%c'", position[50])
	}

	for i := 0; i < 2; i++ {
		god, err := ParseGod(rune(position[51+i]))
		if err != nil {
			return nil, err
		}
		b.gods[i] = god
	}

	switch position[53] {
	case '0':
		b.athena = false
	case '1':
		b.athena = true
	default:
		return nil, fmt.Errorf("invalid athena flag: '%c'", position[53])
	}

	b.hash = zt.Hash(b)
	return b, nil
}

// Position reconstructs the canonical position string.
func (b *Board) Position() string {
	var sb strings.Builder
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		sb.WriteByte('0' + byte(b.heights[sq]))
		switch slot := b.occupant(sq); {
		case slot < 0:
			sb.WriteByte('N')
		case slot < 2:
			sb.WriteByte('G')
		default:
			sb.WriteByte('B')
		}
	}
	if b.turn == Gray {
		sb.WriteByte('0')
	} else {
		sb.WriteByte('1')
	}
	sb.WriteByte('0' + byte(b.gods[0]))
	sb.WriteByte('0' + byte(b.gods[1]))
	if b.athena {
		sb.WriteByte('1')
	} else {
		sb.WriteByte('0')
	}
	return sb.String()
}

// Fork returns an independent copy of the board, sharing the zobrist table.
func (b *Board) Fork() *Board {
	fork := *b
	return &fork
}

func (b *Board) Turn() Color {
	return b.turn
}

// GodOf returns the god assigned to the given color.
func (b *Board) GodOf(c Color) God {
	return b.gods[c.index()]
}

func (b *Board) Height(sq Square) int8 {
	return b.heights[sq]
}

// Worker returns the square of the given worker slot (0,1 Gray; 2,3 Blue).
func (b *Board) Worker(slot int) Square {
	return b.workers[slot]
}

func (b *Board) AthenaFlag() bool {
	return b.athena
}

func (b *Board) Hash() ZobristHash {
	return b.hash
}

// IsFree returns true iff the square is neither domed nor occupied.
func (b *Board) IsFree(sq Square) bool {
	return b.heights[sq] < 4 && b.occupant(sq) < 0
}

// occupant returns the worker slot standing on sq, or -1.
func (b *Board) occupant(sq Square) int {
	for i, w := range b.workers {
		if w == sq {
			return i
		}
	}
	return -1
}

// slotColor returns the color owning the given worker slot.
func slotColor(slot int) Color {
	if slot < 2 {
		return Gray
	}
	return Blue
}

// Apply performs the move, updating worker positions, block heights, the
// athena flag, side to move and the zobrist hash. The move must be legal; the
// undo slots are stamped so Undo can reverse it exactly.
func (b *Board) Apply(m *Move) {
	c := b.turn
	god := b.gods[c.index()]
	if m.God != god {
		panic(fmt.Sprintf("god mismatch: %v move on %v turn", m.God, god))
	}

	m.AthenaBefore = b.athena

	fromH, toH := b.heights[m.From], b.heights[m.To]
	b.won = fromH < 3 && toH == 3
	b.lastDescent = 0
	if god == Pan {
		b.lastDescent = toH - fromH
	}

	switch god {
	case Apollo:
		b.applyApollo(m, c)
	case Artemis, Athena, Pan:
		b.shiftWorker(m.From, m.To, c)
		b.raiseBlock(m.Build)
	case Atlas:
		b.applyAtlas(m, c)
	case Demeter, Hephaestus:
		b.shiftWorker(m.From, m.To, c)
		b.raiseBlock(m.Build)
		if m.HasBuild2 {
			b.raiseBlock(m.Build2)
		}
	case Hermes:
		b.shiftWorker(m.From, m.To, c)
		b.raiseBlock(m.Build)
	case Minotaur:
		b.applyMinotaur(m, c)
	case Prometheus:
		if m.HasOptBuild {
			b.raiseBlock(m.OptBuild)
		}
		b.shiftWorker(m.From, m.To, c)
		b.raiseBlock(m.Build)
	}

	flag := god == Athena && toH > fromH
	if flag != b.athena {
		b.athena = flag
		b.hash ^= b.zt.athena
	}

	b.turn = c.Opponent()
	b.hash ^= b.zt.turn
}

// Undo reverses the move. The transient signals (won, lastDescent) are cleared
// rather than restored: they are read only immediately after the matching
// Apply.
func (b *Board) Undo(m *Move) {
	b.turn = b.turn.Opponent()
	b.hash ^= b.zt.turn

	if b.athena != m.AthenaBefore {
		b.athena = m.AthenaBefore
		b.hash ^= b.zt.athena
	}
	b.won = false
	b.lastDescent = 0

	c := b.turn
	switch m.God {
	case Apollo:
		b.undoApollo(m, c)
	case Artemis, Athena, Pan:
		b.lowerBlock(m.Build)
		b.shiftWorker(m.To, m.From, c)
	case Atlas:
		b.undoAtlas(m, c)
	case Demeter, Hephaestus:
		if m.HasBuild2 {
			b.lowerBlock(m.Build2)
		}
		b.lowerBlock(m.Build)
		b.shiftWorker(m.To, m.From, c)
	case Hermes:
		b.lowerBlock(m.Build)
		b.shiftWorker(m.To, m.From, c)
	case Minotaur:
		b.undoMinotaur(m, c)
	case Prometheus:
		b.lowerBlock(m.Build)
		b.shiftWorker(m.To, m.From, c)
		if m.HasOptBuild {
			b.lowerBlock(m.OptBuild)
		}
	}
}

// State returns the terminal state of the position: the standard height-3 win,
// Pan's drop-win, or a loss for a side to move with no legal move.
func (b *Board) State() Outcome {
	mover := b.turn.Opponent()

	if b.won {
		return Outcome(mover)
	}
	if b.lastDescent <= -2 && b.gods[mover.index()] == Pan {
		return Outcome(mover)
	}
	if !b.hasAnyMove(b.turn) {
		return Outcome(mover)
	}
	return Ongoing
}

// hasAnyMove reports whether the given side has at least one legal move. It
// mirrors the generator without materializing moves: a reachable square always
// admits a build on the vacated from-square, so move existence reduces to
// step existence (plus the Apollo/Minotaur displacement conditions).
func (b *Board) hasAnyMove(c Color) bool {
	god := b.gods[c.index()]
	lo, hi := c.slots()

	for i := lo; i < hi; i++ {
		w := b.workers[i]
		wH := b.heights[w]
		for _, n := range Neighbours[w] {
			if b.heights[n] == 4 {
				continue
			}
			if god == Hermes {
				// Hermes can stay put and build on any non-dome neighbour.
				return true
			}
			if b.heights[n]-wH > 1 {
				continue
			}
			if b.athena && b.heights[n] > wH {
				continue
			}
			occ := b.occupant(n)
			if occ < 0 {
				return true
			}
			if slotColor(occ) == c {
				continue
			}
			switch god {
			case Apollo:
				// After the swap the from-square is occupied, so some other
				// neighbour of n must be free to build on.
				for _, bn := range Neighbours[n] {
					if bn != w && b.IsFree(bn) {
						return true
					}
				}
			case Minotaur:
				if p, ok := pushSquare(w, n); ok && b.IsFree(p) {
					return true
				}
			}
		}
	}
	return false
}

// FormatMove renders the move in text form against this board. Hermes moves
// generated without an explicit path get a canonical walk reconstructed here.
func (b *Board) FormatMove(m Move) string {
	if m.God == Hermes && m.To != m.From && m.Path == nil {
		if path, ok := b.walkPath(m.From, m.To); ok {
			m.Path = path
		} else {
			m.Path = []Square{m.To}
		}
	}
	return m.String()
}

// walkPath finds a shortest Hermes ground walk from a to z, all squares free
// and at a's height. Returns the path excluding a.
func (b *Board) walkPath(a, z Square) ([]Square, bool) {
	if b.heights[z] != b.heights[a] {
		return nil, false
	}

	var parent [NumSquares]Square
	var visited [NumSquares]bool
	visited[a] = true

	queue := []Square{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range Neighbours[cur] {
			if visited[n] || !b.IsFree(n) || b.heights[n] != b.heights[a] {
				continue
			}
			visited[n] = true
			parent[n] = cur
			if n == z {
				var path []Square
				for sq := z; sq != a; sq = parent[sq] {
					path = append(path, sq)
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path, true
			}
			queue = append(queue, n)
		}
	}
	return nil, false
}

func (b *Board) String() string {
	return fmt.Sprintf("board{pos=%v, turn=%v, gods=%v/%v, hash=%x}", b.Position(), b.turn, b.gods[0], b.gods[1], b.hash)
}

// shiftWorker moves the given color's worker from a to b, maintaining the
// hash. A stay-put shift is a no-op.
func (b *Board) shiftWorker(from, to Square, c Color) {
	lo, hi := c.slots()
	for i := lo; i < hi; i++ {
		if b.workers[i] == from {
			b.workers[i] = to
			b.hash ^= b.zt.moveWorker(from, to, c)
			return
		}
	}
	panic(fmt.Sprintf("no %v worker on %v", c, from))
}

func (b *Board) raiseBlock(sq Square) {
	h := b.heights[sq]
	b.heights[sq] = h + 1
	b.hash ^= b.zt.build(sq, h, h+1)
}

func (b *Board) lowerBlock(sq Square) {
	h := b.heights[sq]
	b.heights[sq] = h - 1
	b.hash ^= b.zt.build(sq, h, h-1)
}

func (b *Board) setHeight(sq Square, h int8) {
	old := b.heights[sq]
	b.heights[sq] = h
	b.hash ^= b.zt.build(sq, old, h)
}

func (b *Board) applyApollo(m *Move, c Color) {
	m.SwappedSlot = -1
	if occ := b.occupant(m.To); occ >= 0 {
		m.SwappedSlot = int8(occ)
		b.workers[occ] = m.From
		b.hash ^= b.zt.moveWorker(m.To, m.From, c.Opponent())
	}
	b.shiftWorker(m.From, m.To, c)
	b.raiseBlock(m.Build)
}

func (b *Board) undoApollo(m *Move, c Color) {
	b.lowerBlock(m.Build)
	b.shiftWorker(m.To, m.From, c)
	if m.SwappedSlot >= 0 {
		b.workers[m.SwappedSlot] = m.To
		b.hash ^= b.zt.moveWorker(m.From, m.To, c.Opponent())
	}
}

func (b *Board) applyAtlas(m *Move, c Color) {
	b.shiftWorker(m.From, m.To, c)
	if m.Dome {
		m.PrevHeight = b.heights[m.Build]
		b.setHeight(m.Build, 4)
	} else {
		b.raiseBlock(m.Build)
	}
}

func (b *Board) undoAtlas(m *Move, c Color) {
	if m.Dome {
		b.setHeight(m.Build, m.PrevHeight)
	} else {
		b.lowerBlock(m.Build)
	}
	b.shiftWorker(m.To, m.From, c)
}

func (b *Board) applyMinotaur(m *Move, c Color) {
	m.SwappedSlot = -1
	if occ := b.occupant(m.To); occ >= 0 {
		p, ok := pushSquare(m.From, m.To)
		if !ok {
			panic(fmt.Sprintf("minotaur push off board: %v", m))
		}
		m.SwappedSlot = int8(occ)
		b.workers[occ] = p
		b.hash ^= b.zt.moveWorker(m.To, p, c.Opponent())
	}
	b.shiftWorker(m.From, m.To, c)
	b.raiseBlock(m.Build)
}

func (b *Board) undoMinotaur(m *Move, c Color) {
	b.lowerBlock(m.Build)
	b.shiftWorker(m.To, m.From, c)
	if m.SwappedSlot >= 0 {
		p, _ := pushSquare(m.From, m.To)
		b.workers[m.SwappedSlot] = m.To
		b.hash ^= b.zt.moveWorker(p, m.To, c.Opponent())
	}
}
