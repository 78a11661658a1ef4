// Package engine is CoTuLenh's public facade (spec.md §4.12): a single
// owned mutable value wrapping pkg/board's GameState, with every query
// read-only and every mutation routed through move/deployStep/
// commitDeploy/undo/put/remove/load. Grounded on the teacher's
// pkg/engine.Engine: functional options, a mutex guarding every method,
// logw logging at entry points and a build-stamped version, generalized
// from a search-and-evaluate chess engine to a pure rules engine with no
// search of its own.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/cotulenh-dev/cotulenh-engine/pkg/board"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/board/fen"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/errs"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/movegen"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(1, 0, 0)

// defaultCacheSize is the legal-move LRU capacity (spec.md §5).
const defaultCacheSize = 64

// Options are engine creation options.
type Options struct {
	// CacheSize bounds the legal-move cache. Unset uses defaultCacheSize.
	CacheSize lang.Optional[int]
}

func (o Options) String() string {
	size, _ := o.CacheSize.V()
	return fmt.Sprintf("{cacheSize=%v}", size)
}

// Engine encapsulates a single CoTuLenh game's rules state: the board, its
// move history (for undo/history) and a legal-move cache. It has no search
// or evaluation of its own.
type Engine struct {
	name, author string
	opts         Options

	s       *board.GameState
	history []historyEntry
	cache   *board.MoveCache

	mu sync.Mutex
}

// historyEntry is the command-pattern record (spec.md §9) behind undo: a
// whole pre-mutation state snapshot plus enough metadata to render
// History(). Snapshotting the full state (rather than diff-patching, as
// execute/undo do at the board layer) keeps commitDeploy -- which has no
// board.Move of its own -- uniformly undoable alongside move/deployStep/
// put/remove.
type historyEntry struct {
	label  string // "move", "deployStep", "commitDeploy", "put", "remove"
	san    string // empty for put/remove/commitDeploy
	move   board.Move
	before *board.GameState
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithName sets the engine's reported name and author.
func WithName(name, author string) Option {
	return func(e *Engine) {
		e.name = name
		e.author = author
	}
}

// WithCacheSize bounds the legal-move cache (spec.md §5's "small LRU
// cache"); unset or non-positive falls back to defaultCacheSize.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		e.opts.CacheSize = lang.Some(n)
	}
}

// New creates an engine loaded at fenOrDefault, or the standard starting
// position if fenOrDefault is empty (spec.md §4.12 `new`).
func New(ctx context.Context, fenOrDefault string, opts ...Option) (*Engine, error) {
	e := &Engine{
		name:   "cotulenh-engine",
		author: "cotulenh-dev",
	}
	for _, fn := range opts {
		fn(e)
	}
	size, ok := e.opts.CacheSize.V()
	if !ok || size <= 0 {
		size = defaultCacheSize
	}
	e.cache = board.NewMoveCache(size)

	position := fenOrDefault
	if position == "" {
		position = fen.Initial
	}
	if err := e.Load(ctx, position); err != nil {
		return nil, err
	}

	logw.Infof(ctx, "Initialized %v", e.Name())
	return e, nil
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

// Load replaces the current position with the one decoded from position,
// discarding history (spec.md §4.12 `new`/`load`). Returns InvalidFEN on a
// malformed or structurally invalid string.
func (e *Engine) Load(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Load %v", position)

	s, err := fen.Decode(position)
	if err != nil {
		return err
	}
	e.s = s
	e.history = nil
	e.cache.Clear()
	e.recordRepetitionLocked()

	logw.Infof(ctx, "New position: %v", fen.Encode(e.s))
	return nil
}

// Fen returns the canonical FEN of the current effective state (spec.md
// §4.12 `fen`), including a deploy suffix while a deploy session is Active.
func (e *Engine) Fen(ctx context.Context) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.s)
}

// recordRepetitionLocked stamps the current canonical position into the
// repetition map (spec.md §9: keyed by board+turn+deploy suffix, excluding
// the half-move clock). Caller must hold e.mu.
func (e *Engine) recordRepetitionLocked() {
	e.s.Repetition[fen.Canonical(e.s)]++
}

// pushHistoryLocked records a mutation for later Undo and invalidates the
// move cache (spec.md §5: the cache is invalidated on any mutation).
// Caller must hold e.mu.
func (e *Engine) pushHistoryLocked(entry historyEntry) {
	e.history = append(e.history, entry)
	e.cache.Clear()
}

// legalMovesLocked returns (and caches) the legal moves for the side to
// move, keyed by the full effective FEN per spec.md §9's caching note.
// Caller must hold e.mu.
func (e *Engine) legalMovesLocked() []board.Move {
	key := fen.Encode(e.s)
	if cached, ok := e.cache.Get(key); ok {
		return cached
	}
	moves := movegen.LegalMoves(e.s, e.s.Turn)
	e.cache.Put(key, moves)
	return moves
}

// Undo reverts the most recent mutation -- a move, deploy step,
// commitDeploy, put or remove -- restoring the engine to its immediately
// prior snapshot (spec.md §4.12 `undo`).
func (e *Engine) Undo(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.history) == 0 {
		return &errs.IllegalMove{Reason: "no move to undo"}
	}
	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	e.s = last.before
	e.cache.Clear()

	logw.Infof(ctx, "Undo %v", last.label)
	return nil
}

// cloneState deep-copies s so it can be stashed as a pre-mutation snapshot
// without aliasing the live GameState's maps.
func cloneState(s *board.GameState) *board.GameState {
	clone := *s
	clone.Repetition = make(map[string]int, len(s.Repetition))
	for k, v := range s.Repetition {
		clone.Repetition[k] = v
	}
	if s.Deploy != nil {
		clone.Deploy = cloneDeploySession(s.Deploy)
	}
	return &clone
}

func cloneDeploySession(d *board.DeploySession) *board.DeploySession {
	c := *d
	c.Remaining = append([]board.Piece{}, d.Remaining...)
	c.Moved = append([]board.DeployPlacement{}, d.Moved...)
	c.Stayed = make(map[board.PieceRole]bool, len(d.Stayed))
	for k, v := range d.Stayed {
		c.Stayed[k] = v
	}
	c.Overlay = make(map[board.Square]board.Piece, len(d.Overlay))
	for k, v := range d.Overlay {
		c.Overlay[k] = v
	}
	return &c
}
