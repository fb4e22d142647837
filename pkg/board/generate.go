package board

// Generate appends every legal move for the side to move to buf and returns
// it. Passing a reused buffer keeps generation allocation-free; pass nil for a
// fresh slice. No duplicates are emitted.
func (b *Board) Generate(buf []Move) []Move {
	c := b.turn
	god := b.gods[c.index()]
	lo, hi := c.slots()

	for i := lo; i < hi; i++ {
		from := b.workers[i]
		switch god {
		case Apollo:
			buf = b.genApollo(buf, from, c)
		case Artemis:
			buf = b.genArtemis(buf, from)
		case Athena:
			buf = b.genStandard(buf, Athena, from)
		case Atlas:
			buf = b.genAtlas(buf, from)
		case Demeter:
			buf = b.genDemeter(buf, from)
		case Hephaestus:
			buf = b.genHephaestus(buf, from)
		case Hermes:
			buf = b.genHermes(buf, from)
		case Minotaur:
			buf = b.genMinotaur(buf, from, c)
		case Pan:
			buf = b.genStandard(buf, Pan, from)
		case Prometheus:
			buf = b.genPrometheus(buf, from)
		}
	}
	return buf
}

// emit stamps the shared move fields and appends.
func (b *Board) emit(buf []Move, m Move) []Move {
	m.AthenaBefore = b.athena
	m.SwappedSlot = -1
	return append(buf, m)
}

// genStandard emits the base turn shape: one step onto a free square, then one
// build next to it.
func (b *Board) genStandard(buf []Move, god God, from Square) []Move {
	for _, to := range Neighbours[from] {
		if !b.IsFree(to) || !b.heightOK(from, to) {
			continue
		}
		for _, build := range Neighbours[to] {
			if build == to || (build != from && !b.IsFree(build)) {
				continue
			}
			buf = b.emit(buf, Move{God: god, From: from, To: to, Build: build})
		}
	}
	return buf
}

func (b *Board) genApollo(buf []Move, from Square, c Color) []Move {
	for _, to := range Neighbours[from] {
		if !b.heightOK(from, to) {
			continue
		}
		occ := b.occupant(to)
		switch {
		case occ >= 0 && slotColor(occ) == c:
			continue
		case occ < 0 && b.heights[to] == 4:
			continue
		}
		swap := occ >= 0
		for _, build := range Neighbours[to] {
			if build == to {
				continue
			}
			if swap {
				// The displaced worker occupies the from-square.
				if !b.IsFree(build) {
					continue
				}
			} else if build != from && !b.IsFree(build) {
				continue
			}
			buf = b.emit(buf, Move{God: Apollo, From: from, To: to, Build: build})
		}
	}
	return buf
}

func (b *Board) genArtemis(buf []Move, from Square) []Move {
	// Dedupe by final square: a square reachable in one step is never emitted
	// again via a two-step path.
	var reached [NumSquares]bool

	for _, to := range Neighbours[from] {
		if !b.IsFree(to) || !b.heightOK(from, to) {
			continue
		}
		reached[to] = true
		for _, build := range Neighbours[to] {
			if build == to || (build != from && !b.IsFree(build)) {
				continue
			}
			buf = b.emit(buf, Move{God: Artemis, From: from, To: to, Build: build})
		}
	}

	for _, mid := range Neighbours[from] {
		if !b.IsFree(mid) || !b.heightOK(from, mid) {
			continue
		}
		for _, to := range Neighbours[mid] {
			if to == from || reached[to] || !b.IsFree(to) || !b.heightOK(mid, to) {
				continue
			}
			reached[to] = true
			for _, build := range Neighbours[to] {
				if build == to || (build != from && !b.IsFree(build)) {
					continue
				}
				buf = b.emit(buf, Move{God: Artemis, From: from, Mid: mid, HasMid: true, To: to, Build: build})
			}
		}
	}
	return buf
}

func (b *Board) genAtlas(buf []Move, from Square) []Move {
	for _, to := range Neighbours[from] {
		if !b.IsFree(to) || !b.heightOK(from, to) {
			continue
		}
		for _, build := range Neighbours[to] {
			if build == to || (build != from && !b.IsFree(build)) {
				continue
			}
			buf = b.emit(buf, Move{God: Atlas, From: from, To: to, Build: build})
			buf = b.emit(buf, Move{God: Atlas, From: from, To: to, Build: build, Dome: true})
		}
	}
	return buf
}

func (b *Board) genDemeter(buf []Move, from Square) []Move {
	var builds [8]Square
	for _, to := range Neighbours[from] {
		if !b.IsFree(to) || !b.heightOK(from, to) {
			continue
		}
		n := 0
		for _, build := range Neighbours[to] {
			if build == to || (build != from && !b.IsFree(build)) {
				continue
			}
			builds[n] = build
			n++
		}
		// Unordered build pairs: i == j is the single build, i < j the double.
		for i := 0; i < n; i++ {
			buf = b.emit(buf, Move{God: Demeter, From: from, To: to, Build: builds[i]})
			for j := i + 1; j < n; j++ {
				buf = b.emit(buf, Move{God: Demeter, From: from, To: to, Build: builds[i], Build2: builds[j], HasBuild2: true})
			}
		}
	}
	return buf
}

func (b *Board) genHephaestus(buf []Move, from Square) []Move {
	for _, to := range Neighbours[from] {
		if !b.IsFree(to) || !b.heightOK(from, to) {
			continue
		}
		for _, build := range Neighbours[to] {
			if build == to || (build != from && !b.IsFree(build)) {
				continue
			}
			buf = b.emit(buf, Move{God: Hephaestus, From: from, To: to, Build: build})
			if b.heights[build] <= 1 {
				buf = b.emit(buf, Move{God: Hephaestus, From: from, To: to, Build: build, Build2: build, HasBuild2: true})
			}
		}
	}
	return buf
}

func (b *Board) genHermes(buf []Move, from Square) []Move {
	startH := b.heights[from]

	// Stay put and build.
	for _, build := range Neighbours[from] {
		if !b.IsFree(build) {
			continue
		}
		buf = b.emit(buf, Move{God: Hermes, From: from, To: from, Build: build})
	}

	// Ground walk over the connected component of free squares at the starting
	// height, one move per reachable final square.
	var visited [NumSquares]bool
	visited[from] = true
	queue := make([]Square, 0, NumSquares)
	queue = append(queue, from)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, to := range Neighbours[cur] {
			if visited[to] || !b.IsFree(to) || b.heights[to] != startH {
				continue
			}
			visited[to] = true
			queue = append(queue, to)
			for _, build := range Neighbours[to] {
				if build == to || (build != from && !b.IsFree(build)) {
					continue
				}
				buf = b.emit(buf, Move{God: Hermes, From: from, To: to, Build: build})
			}
		}
	}

	// Single climbing or descending step.
	for _, to := range Neighbours[from] {
		if !b.IsFree(to) || b.heights[to] == startH || !b.heightOK(from, to) {
			continue
		}
		for _, build := range Neighbours[to] {
			if build == to || (build != from && !b.IsFree(build)) {
				continue
			}
			buf = b.emit(buf, Move{God: Hermes, From: from, To: to, Build: build})
		}
	}
	return buf
}

func (b *Board) genMinotaur(buf []Move, from Square, c Color) []Move {
	for _, to := range Neighbours[from] {
		if !b.heightOK(from, to) {
			continue
		}
		occ := b.occupant(to)
		if occ < 0 {
			if b.heights[to] == 4 {
				continue
			}
			for _, build := range Neighbours[to] {
				if build == to || (build != from && !b.IsFree(build)) {
					continue
				}
				buf = b.emit(buf, Move{God: Minotaur, From: from, To: to, Build: build})
			}
			continue
		}
		if slotColor(occ) == c {
			continue
		}
		p, ok := pushSquare(from, to)
		if !ok || !b.IsFree(p) {
			continue
		}
		for _, build := range Neighbours[to] {
			if build == to || build == p || (build != from && !b.IsFree(build)) {
				continue
			}
			buf = b.emit(buf, Move{God: Minotaur, From: from, To: to, Build: build})
		}
	}
	return buf
}

func (b *Board) genPrometheus(buf []Move, from Square) []Move {
	// Without the pre-build: the base turn shape.
	buf = b.genStandard(buf, Prometheus, from)

	// With the pre-build: build next to the from-square first, then a
	// non-climbing move and build, both judged against the raised heights.
	for _, opt := range Neighbours[from] {
		if !b.IsFree(opt) {
			continue
		}
		b.heights[opt]++
		for _, to := range Neighbours[from] {
			if !b.IsFree(to) || b.heights[to] > b.heights[from] {
				continue
			}
			for _, build := range Neighbours[to] {
				if build == to || (build != from && !b.IsFree(build)) {
					continue
				}
				buf = b.emit(buf, Move{God: Prometheus, From: from, To: to, Build: build, OptBuild: opt, HasOptBuild: true})
			}
		}
		b.heights[opt]--
	}
	return buf
}
