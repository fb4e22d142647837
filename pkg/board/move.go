package board

import (
	"fmt"
	"strings"
)

// Move represents a single turn for one god, carrying the squares it touches.
// One value type serves all ten gods, tagged by God; the optional fields are
// meaningful only for the gods that use them.
//
// Apply stamps the undo slots (AthenaBefore, PrevHeight, SwappedSlot) so that
// Undo can reverse the move exactly. The generator initialises AthenaBefore to
// the board's current flag as well, so a generated move round-trips without an
// intervening Apply.
type Move struct {
	God             God
	From, To, Build Square

	Mid    Square // Artemis intermediate square
	HasMid bool

	Build2    Square // Demeter/Hephaestus second build
	HasBuild2 bool

	Dome bool // Atlas dome build

	OptBuild    Square // Prometheus pre-move build
	HasOptBuild bool

	// Path is the explicit Hermes walk (excluding From). Generated moves leave
	// it nil: the final square alone identifies the resulting state, and
	// Board.FormatMove reconstructs a canonical path on demand.
	Path []Square

	// Score is the move ordering priority. Not part of move identity.
	Score int16

	// Undo slots.
	AthenaBefore bool
	PrevHeight   int8 // Atlas: height of Build before the dome was placed
	SwappedSlot  int8 // Apollo/Minotaur: displaced worker slot, -1 if none
}

// ParseMove parses a move in the text form for the given god, a concatenation
// of square tokens such as "a1b2b3", with the god-specific optional suffixes.
func ParseMove(god God, str string) (Move, error) {
	sqs, suffix, err := splitSquares(str)
	if err != nil {
		return Move{}, fmt.Errorf("invalid move '%v': %w", str, err)
	}
	if suffix != "" && !(god == Atlas && suffix == "D") {
		return Move{}, fmt.Errorf("invalid move '%v': unexpected suffix '%v'", str, suffix)
	}

	m := Move{God: god, SwappedSlot: -1}
	switch god {
	case Apollo, Athena, Minotaur, Pan:
		if len(sqs) != 3 {
			return Move{}, fmt.Errorf("invalid %v move '%v': want 3 squares", god, str)
		}
		m.From, m.To, m.Build = sqs[0], sqs[1], sqs[2]

	case Artemis:
		switch len(sqs) {
		case 3:
			m.From, m.To, m.Build = sqs[0], sqs[1], sqs[2]
		case 4:
			m.From, m.Mid, m.To, m.Build = sqs[0], sqs[1], sqs[2], sqs[3]
			m.HasMid = true
		default:
			return Move{}, fmt.Errorf("invalid %v move '%v': want 3 or 4 squares", god, str)
		}

	case Atlas:
		if len(sqs) != 3 {
			return Move{}, fmt.Errorf("invalid %v move '%v': want 3 squares", god, str)
		}
		m.From, m.To, m.Build = sqs[0], sqs[1], sqs[2]
		m.Dome = suffix == "D"

	case Demeter, Hephaestus:
		switch len(sqs) {
		case 3:
			m.From, m.To, m.Build = sqs[0], sqs[1], sqs[2]
		case 4:
			m.From, m.To, m.Build, m.Build2 = sqs[0], sqs[1], sqs[2], sqs[3]
			m.HasBuild2 = true
		default:
			return Move{}, fmt.Errorf("invalid %v move '%v': want 3 or 4 squares", god, str)
		}

	case Hermes:
		if len(sqs) < 2 {
			return Move{}, fmt.Errorf("invalid %v move '%v': want at least 2 squares", god, str)
		}
		m.From = sqs[0]
		m.Build = sqs[len(sqs)-1]
		if len(sqs) == 2 {
			m.To = m.From // stay put
		} else {
			m.Path = append([]Square(nil), sqs[1:len(sqs)-1]...)
			m.To = m.Path[len(m.Path)-1]
		}

	case Prometheus:
		switch len(sqs) {
		case 3:
			m.From, m.To, m.Build = sqs[0], sqs[1], sqs[2]
		case 4:
			m.From, m.To, m.Build, m.OptBuild = sqs[0], sqs[1], sqs[2], sqs[3]
			m.HasOptBuild = true
		default:
			return Move{}, fmt.Errorf("invalid %v move '%v': want 3 or 4 squares", god, str)
		}

	default:
		return Move{}, fmt.Errorf("invalid god: %v", god)
	}
	return m, nil
}

func splitSquares(str string) ([]Square, string, error) {
	var sqs []Square
	rest := str
	for len(rest) >= 2 && rest[0] >= 'a' && rest[0] <= 'e' {
		sq, err := ParseSquare(rest[:2])
		if err != nil {
			return nil, "", err
		}
		sqs = append(sqs, sq)
		rest = rest[2:]
	}
	if len(sqs) == 0 {
		return nil, "", fmt.Errorf("no squares")
	}
	return sqs, rest, nil
}

// Equals returns true iff the moves describe the same turn. Ordering score and
// undo slots are ignored.
func (m Move) Equals(o Move) bool {
	if m.God != o.God || m.From != o.From || m.To != o.To || m.Build != o.Build {
		return false
	}
	if m.HasMid != o.HasMid || (m.HasMid && m.Mid != o.Mid) {
		return false
	}
	if m.HasBuild2 != o.HasBuild2 || (m.HasBuild2 && m.Build2 != o.Build2) {
		return false
	}
	if m.HasOptBuild != o.HasOptBuild || (m.HasOptBuild && m.OptBuild != o.OptBuild) {
		return false
	}
	if m.Dome != o.Dome {
		return false
	}
	if len(m.Path) != len(o.Path) {
		return false
	}
	for i := range m.Path {
		if m.Path[i] != o.Path[i] {
			return false
		}
	}
	return true
}

func (m Move) String() string {
	var sb strings.Builder
	sb.WriteString(m.From.String())
	switch {
	case m.God == Hermes && m.To == m.From:
		// stay put: just from + build
	case m.God == Hermes && len(m.Path) > 0:
		for _, sq := range m.Path {
			sb.WriteString(sq.String())
		}
	default:
		if m.HasMid {
			sb.WriteString(m.Mid.String())
		}
		sb.WriteString(m.To.String())
	}
	sb.WriteString(m.Build.String())
	if m.HasBuild2 {
		sb.WriteString(m.Build2.String())
	}
	if m.HasOptBuild {
		sb.WriteString(m.OptBuild.String())
	}
	if m.Dome {
		sb.WriteString("D")
	}
	return sb.String()
}

// FormatMoves formats a list of moves with the given printer.
func FormatMoves(moves []Move, fn func(Move) string) string {
	var sb strings.Builder
	for i, m := range moves {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fn(m))
	}
	return sb.String()
}
