package engine

import (
	"fmt"
	"sync"

	"github.com/chesscore/enginecore/internal/board"
	"github.com/chesscore/enginecore/internal/nnue"
)

// defaultHashMB is the transposition table size used until the UCI
// layer issues "setoption name Hash".
const defaultHashMB = 64

// Engine owns the transposition table, the NNUE evaluator, and runs
// searches on a single worker goroutine. It never runs two searches
// concurrently; a caller must Stop and wait for the previous search
// to finish before starting a new one.
type Engine struct {
	mu sync.Mutex

	tt   *TranspositionTable
	net  *nnue.Network
	eval *nnue.Evaluator
	sr   *Searcher

	running bool
	done    chan struct{}

	lastBest  board.Move
	lastScore int
}

// NewEngine builds an Engine with an empty network; LoadNNUE must be
// called before any search produces a meaningful evaluation.
func NewEngine() *Engine {
	net := &nnue.Network{}
	tt := NewTranspositionTable(defaultHashMB)
	eval := nnue.NewEvaluator(net)
	return &Engine{
		tt:   tt,
		net:  net,
		eval: eval,
		sr:   NewSearcher(tt, eval),
	}
}

// LoadNNUE replaces the evaluator's network weights from a file.
func (e *Engine) LoadNNUE(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	net, err := nnue.LoadWeights(path)
	if err != nil {
		return fmt.Errorf("engine: load nnue weights: %w", err)
	}
	e.net = net
	e.eval = nnue.NewEvaluator(net)
	e.sr = NewSearcher(e.tt, e.eval)
	return nil
}

// SetHashSize reallocates the transposition table, discarding its
// current contents.
func (e *Engine) SetHashSize(mb int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tt = NewTranspositionTable(mb)
	e.sr = NewSearcher(e.tt, e.eval)
}

// ClearHash wipes the transposition table without resizing it.
func (e *Engine) ClearHash() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tt.Clear()
}

// IsRunning reports whether a search is currently in flight.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Go launches a search on its own goroutine and returns immediately.
// onInfo is invoked once per completed iterative-deepening depth;
// onDone is invoked exactly once, from the search goroutine after the
// search has returned, with the chosen move and its score. Go refuses to start a second
// search while one is already running.
func (e *Engine) Go(pos *board.Position, limits Limits, onInfo func(SearchInfo), onDone func(board.Move, int)) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return fmt.Errorf("engine: search already in progress")
	}
	e.running = true
	done := make(chan struct{})
	e.done = done
	sr := e.sr
	e.mu.Unlock()

	go func() {
		defer close(done)
		best, score := sr.Run(pos, limits, onInfo)

		e.mu.Lock()
		e.lastBest, e.lastScore = best, score
		e.running = false
		e.mu.Unlock()

		if onDone != nil {
			onDone(best, score)
		}
	}()

	return nil
}

// Stop requests cancellation of the running search; it is a no-op if
// no search is in flight. It does not block until the search exits —
// callers that need that should wait for the matching Go call's onDone
// callback.
func (e *Engine) Stop() {
	e.mu.Lock()
	sr := e.sr
	e.mu.Unlock()
	sr.Stop()
}

// HashFull reports the transposition table's per-mille occupancy.
func (e *Engine) HashFull() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tt.HashFull()
}

// NewGame clears the transposition table so no search state leaks
// across games.
func (e *Engine) NewGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tt.Clear()
}
