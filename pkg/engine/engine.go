// Package engine ties the board, evaluation, transposition table and search
// together behind the text protocol.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PaMeirelles/FitosBot/pkg/board"
	"github.com/PaMeirelles/FitosBot/pkg/eval"
	"github.com/PaMeirelles/FitosBot/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(1, 2, 0)

// Options are engine creation options.
type Options struct {
	// Depth is the search depth limit. If zero, there is no limit.
	Depth uint
	// Hash is the transposition table slot count. If zero, the default of
	// 2^22 slots is used.
	Hash uint
	// Noise adds some randomness to the leaf evaluations, in points.
	Noise uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v}", o.Depth, o.Hash, o.Noise)
}

// Engine encapsulates game-playing logic, search and evaluation. The board is
// installed by the position command and owned by the search during a go
// command. Not safe for concurrent go commands; the protocol is line-at-a-time.
type Engine struct {
	name, author string

	zt   *board.ZobristTable
	seed int64
	opts Options

	ev eval.Evaluator
	tt *search.TranspositionTable
	b  *board.Board

	mu sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithZobrist configures the engine to use the given random seed instead of
// the default seed of zero.
func WithZobrist(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

func New(ctx context.Context, name, author string, ev eval.Evaluator, opts ...Option) *Engine {
	e := &Engine{
		name:   name,
		author: author,
		ev:     ev,
	}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.seed)

	slots := int(e.opts.Hash)
	if slots == 0 {
		slots = search.DefaultTableSize
	}
	e.tt = search.NewTranspositionTable(slots)
	if e.opts.Noise > 0 {
		e.ev = eval.Randomize(e.ev, int(e.opts.Noise), e.seed)
	}

	logw.Infof(ctx, "Initialized engine: %v, options=%v, TT slots=%v", e.Name(), e.opts, e.tt.Size())
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

// SetPosition installs a new board from the canonical position string. On
// error the prior board is kept.
func (e *Engine) SetPosition(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := board.Parse(e.zt, position)
	if err != nil {
		return err
	}
	e.b = b

	logw.Infof(ctx, "New board: %v", e.b)
	return nil
}

// Position returns the current position string, if a board is installed.
func (e *Engine) Position() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.b == nil {
		return "", false
	}
	return e.b.Position(), true
}

// Turn returns the side to move, if a board is installed.
func (e *Engine) Turn() (board.Color, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.b == nil {
		return 0, false
	}
	return e.b.Turn(), true
}

// BestMove searches the current position with the given remaining clock time
// and returns the move in text form. Returns false if no board is installed or
// the side to move has no legal move.
func (e *Engine) BestMove(ctx context.Context, remaining time.Duration) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.b == nil {
		logw.Warningf(ctx, "No position installed")
		return "", false
	}

	var opt search.Options
	if e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}

	s := search.Search{Eval: e.ev, TT: e.tt}
	ret, ok := s.BestMove(ctx, e.b.Fork(), remaining, opt)
	if !ok {
		logw.Infof(ctx, "No legal move: %v", e.b)
		return "", false
	}

	text := e.b.FormatMove(ret.Move)
	logw.Infof(ctx, "Best move %v: depth=%v score=%v nodes=%v", text, ret.Depth, ret.Score, ret.Nodes)
	return text, true
}
