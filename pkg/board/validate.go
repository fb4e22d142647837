package board

// Validate reports whether the move is legal on this board for the side to
// move. Generated moves always validate; the entry point exists for externally
// supplied moves.
func (b *Board) Validate(m Move) bool {
	c := b.turn
	if m.God != b.gods[c.index()] {
		return false
	}
	if occ := b.occupant(m.From); occ < 0 || slotColor(occ) != c {
		return false
	}

	switch m.God {
	case Apollo:
		return b.validApollo(m, c)
	case Artemis:
		return b.validArtemis(m)
	case Athena, Pan:
		return b.stepOK(m.From, m.To) && b.buildOK(m.From, m.To, m.Build)
	case Atlas:
		return b.stepOK(m.From, m.To) && b.buildOK(m.From, m.To, m.Build)
	case Demeter:
		return b.validDemeter(m)
	case Hephaestus:
		return b.validHephaestus(m)
	case Hermes:
		return b.validHermes(m)
	case Minotaur:
		return b.validMinotaur(m, c)
	case Prometheus:
		return b.validPrometheus(m)
	default:
		return false
	}
}

func adjacent(a, z Square) bool {
	for _, n := range Neighbours[a] {
		if n == z {
			return true
		}
	}
	return false
}

// heightOK checks the climb limit for a single step, including the Athena
// no-climb flag.
func (b *Board) heightOK(from, to Square) bool {
	diff := b.heights[to] - b.heights[from]
	if diff > 1 {
		return false
	}
	if b.athena && diff > 0 {
		return false
	}
	return true
}

// stepOK checks a standard single step onto a free square.
func (b *Board) stepOK(from, to Square) bool {
	return adjacent(from, to) && b.heightOK(from, to) && b.IsFree(to)
}

// buildOK checks a build adjacent to the final square. The vacated from-square
// counts as free.
func (b *Board) buildOK(from, final, build Square) bool {
	return adjacent(final, build) && build != final && (build == from || b.IsFree(build))
}

func (b *Board) validApollo(m Move, c Color) bool {
	if !adjacent(m.From, m.To) || !b.heightOK(m.From, m.To) {
		return false
	}
	occ := b.occupant(m.To)
	switch {
	case occ >= 0 && slotColor(occ) == c:
		return false
	case occ < 0 && b.heights[m.To] == 4:
		return false
	}
	if !b.buildOK(m.From, m.To, m.Build) {
		return false
	}
	if occ >= 0 && m.Build == m.From {
		return false // from-square holds the displaced worker after the swap
	}
	return true
}

func (b *Board) validArtemis(m Move) bool {
	if !m.HasMid {
		if !b.stepOK(m.From, m.To) {
			return false
		}
	} else {
		if !b.stepOK(m.From, m.Mid) || !b.stepOK(m.Mid, m.To) || m.To == m.From {
			return false
		}
	}
	return b.buildOK(m.From, m.To, m.Build)
}

func (b *Board) validDemeter(m Move) bool {
	if !b.stepOK(m.From, m.To) || !b.buildOK(m.From, m.To, m.Build) {
		return false
	}
	if m.HasBuild2 {
		if m.Build2 == m.Build || !b.buildOK(m.From, m.To, m.Build2) {
			return false
		}
	}
	return true
}

func (b *Board) validHephaestus(m Move) bool {
	if !b.stepOK(m.From, m.To) || !b.buildOK(m.From, m.To, m.Build) {
		return false
	}
	if m.HasBuild2 {
		// The second block goes on the same square and may not complete a dome.
		if m.Build2 != m.Build || b.heights[m.Build] > 1 {
			return false
		}
	}
	return true
}

func (b *Board) validHermes(m Move) bool {
	if m.To == m.From {
		// Stay put; the build must still land on a free neighbour.
		return len(m.Path) == 0 && b.buildOK(m.From, m.From, m.Build)
	}

	startH := b.heights[m.From]
	switch {
	case len(m.Path) == 1 || (len(m.Path) == 0 && b.heights[m.To] != startH):
		// Single standard step.
		if len(m.Path) == 1 && m.Path[0] != m.To {
			return false
		}
		if !b.stepOK(m.From, m.To) {
			return false
		}
	case len(m.Path) == 0:
		// Generated walk: the final square identifies the state.
		if _, ok := b.walkPath(m.From, m.To); !ok {
			return false
		}
	default:
		// Explicit multi-step walk: simple, free, flat at the starting height.
		var seen [NumSquares]bool
		seen[m.From] = true
		cur := m.From
		for _, sq := range m.Path {
			if seen[sq] || !adjacent(cur, sq) || !b.IsFree(sq) || b.heights[sq] != startH {
				return false
			}
			seen[sq] = true
			cur = sq
		}
		if cur != m.To {
			return false
		}
	}
	return b.buildOK(m.From, m.To, m.Build)
}

func (b *Board) validMinotaur(m Move, c Color) bool {
	if !adjacent(m.From, m.To) || !b.heightOK(m.From, m.To) {
		return false
	}
	occ := b.occupant(m.To)
	if occ >= 0 {
		if slotColor(occ) == c {
			return false
		}
		p, ok := pushSquare(m.From, m.To)
		if !ok || !b.IsFree(p) {
			return false
		}
		if m.Build == p {
			return false // the pushed worker lands there
		}
	} else if b.heights[m.To] == 4 {
		return false
	}
	return b.buildOK(m.From, m.To, m.Build)
}

func (b *Board) validPrometheus(m Move) bool {
	if !m.HasOptBuild {
		return b.stepOK(m.From, m.To) && b.buildOK(m.From, m.To, m.Build)
	}

	if !b.buildOK(m.From, m.From, m.OptBuild) {
		return false
	}

	// Check the move and final build against post-pre-build heights.
	b.heights[m.OptBuild]++
	ok := adjacent(m.From, m.To) && b.IsFree(m.To) &&
		b.heights[m.To] <= b.heights[m.From] &&
		b.buildOK(m.From, m.To, m.Build)
	b.heights[m.OptBuild]--
	return ok
}
