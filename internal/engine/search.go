package engine

import (
	"sync/atomic"
	"time"

	"github.com/chesscore/enginecore/internal/board"
	"github.com/chesscore/enginecore/internal/nnue"
)

// MaxPly bounds recursion depth: iterative deepening never requests a
// depth beyond it, and quiescence refuses to recurse past it even
// under check-evasion churn.
const MaxPly = 128

// SearchInfo is one iterative-deepening report, handed to the engine's
// onInfo callback after every completed depth.
type SearchInfo struct {
	Depth   int
	Score   int
	IsMate  bool
	MateIn  int
	Nodes   uint64
	Elapsed time.Duration
	PV      []board.Move
}

// Searcher runs a single-threaded negamax search with iterative
// deepening, alpha-beta pruning, a transposition table, and a capture
// quiescence extension. One Searcher is owned by exactly one search
// goroutine at a time.
type Searcher struct {
	tt   *TranspositionTable
	eval *nnue.Evaluator
	tm   *TimeManager

	nodes     uint64
	nodeLimit uint64
	aborted   bool
	stop      atomic.Bool
}

func NewSearcher(tt *TranspositionTable, eval *nnue.Evaluator) *Searcher {
	return &Searcher{tt: tt, eval: eval}
}

// Stop requests cooperative cancellation; the running search notices
// it on its next node-count heartbeat.
func (s *Searcher) Stop() { s.stop.Store(true) }

// Nodes reports the node count of the most recent (or in-flight) run.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// Run performs iterative deepening from root until a stopping
// condition fires, reporting each completed depth through onInfo.
// It returns the best move found and its score. If not even depth 1
// completed before cancellation, it returns board.NoMove.
func (s *Searcher) Run(root *board.Position, limits Limits, onInfo func(SearchInfo)) (board.Move, int) {
	s.tt.Clear()
	s.eval.InitRoot(root)
	s.nodes = 0
	s.nodeLimit = limits.Nodes
	s.aborted = false
	s.stop.Store(false)
	s.tm = NewTimeManager(limits, root.Side(), root.FullMoveNumber)

	start := time.Now()

	maxDepth := MaxPly - 1
	if limits.Depth > 0 && limits.Depth < maxDepth {
		maxDepth = limits.Depth
	}

	bestMove := board.NoMove
	var bestScore int

	for depth := 1; depth <= maxDepth; depth++ {
		score := s.negamax(root, 0, depth, -Infinity, Infinity)
		if s.aborted {
			break
		}

		pv := s.reconstructPV(root)
		if len(pv) > 0 {
			bestMove = pv[0]
		}
		bestScore = score

		if onInfo != nil {
			info := SearchInfo{
				Depth:   depth,
				Score:   score,
				Nodes:   s.nodes,
				Elapsed: time.Since(start),
				PV:      pv,
			}
			if abs(score) > MaxEval {
				info.IsMate = true
				mateIn := (CheckmateScore - abs(score) + 1) / 2
				if score < 0 {
					mateIn = -mateIn
				}
				info.MateIn = mateIn
			}
			onInfo(info)
		}

		if abs(score) >= CheckmateScore-maxDepth {
			break
		}
		if s.tm.MateSatisfied(score) {
			break
		}
		if limits.Nodes > 0 && s.nodes >= limits.Nodes {
			break
		}
		if s.tm.ShouldStop(depth + 1) {
			break
		}
	}

	return bestMove, bestScore
}

func (s *Searcher) heartbeat(iterativeDepth int) {
	if s.nodes%heartbeatNodes != 0 {
		return
	}
	if s.stop.Load() {
		s.aborted = true
		return
	}
	if s.nodeLimit > 0 && s.nodes >= s.nodeLimit {
		s.aborted = true
		return
	}
	if s.tm.ShouldStop(iterativeDepth) {
		s.aborted = true
	}
}

// negamax evaluates pos at plyFromRoot within a search iterated to
// iterativeDepth, returning a score from the perspective of the side
// to move.
func (s *Searcher) negamax(pos *board.Position, plyFromRoot, iterativeDepth, alpha, beta int) int {
	remainingDepth := iterativeDepth - plyFromRoot

	entry, hit := s.tt.Probe(pos.Hash())
	if hit && entry.Depth >= remainingDepth {
		return entry.Score
	}
	pvHint := board.NoMove
	if hit {
		pvHint = entry.Move
	}

	if plyFromRoot >= iterativeDepth {
		return s.quiescence(pos, plyFromRoot, alpha, beta)
	}

	s.nodes++
	s.heartbeat(iterativeDepth)
	if s.aborted {
		return alpha
	}

	moves := pos.GeneratePseudoLegalMoves()
	scores := ScoreMoves(&moves, pvHint)

	bestScore := -CheckmateScore + plyFromRoot
	bestMove := board.NoMove

	for i := 0; i < moves.Len(); i++ {
		PickMove(&moves, scores, i)
		m := moves.Get(i)

		rec := s.eval.BeginRecording(plyFromRoot + 1)
		child := pos.Clone()
		child.SetRecorder(rec)
		child.ApplyInPlace(m)
		child.SetRecorder(nil)

		if !child.IsLegal() {
			continue
		}
		if bestMove.IsNone() {
			bestMove = m
		}

		score := -s.negamax(child, plyFromRoot+1, iterativeDepth, -beta, -alpha)
		if s.aborted {
			return alpha
		}

		if score >= beta {
			return score
		}
		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
	}

	if s.aborted {
		return alpha
	}

	if bestMove.IsNone() {
		if !pos.InCheck() {
			bestScore = 0
		}
	}

	s.tt.Store(pos.Hash(), remainingDepth, bestScore, bestMove)
	return bestScore
}

// quiescence resolves capture sequences past the nominal search
// horizon so the static evaluation is never taken in the middle of a
// hanging exchange. It carries no transposition entries of its own.
func (s *Searcher) quiescence(pos *board.Position, ply, alpha, beta int) int {
	s.nodes++
	s.heartbeat(0) // the depth limit is checked by negamax and Run, not here
	if s.aborted {
		return alpha
	}

	standPat := s.eval.Evaluate(pos, ply)
	if standPat > MaxEval {
		standPat = MaxEval
	} else if standPat < -MaxEval {
		standPat = -MaxEval
	}
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if standPat+board.PieceValue[board.Queen] < alpha {
		return alpha
	}
	if ply >= MaxPly-1 {
		return standPat
	}

	captures := pos.GenerateCaptures()
	scores := ScoreMoves(&captures, board.NoMove)

	for i := 0; i < captures.Len(); i++ {
		PickMove(&captures, scores, i)
		m := captures.Get(i)

		rec := s.eval.BeginRecording(ply + 1)
		child := pos.Clone()
		child.SetRecorder(rec)
		child.ApplyInPlace(m)
		child.SetRecorder(nil)

		if !child.IsLegal() {
			continue
		}

		score := -s.quiescence(child, ply+1, -beta, -alpha)
		if s.aborted {
			return alpha
		}

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// reconstructPV walks the transposition table's recorded best moves
// from root, replaying each one to find the next node. A visited-hash
// guard stops it from looping forever through a repetition cycle.
func (s *Searcher) reconstructPV(root *board.Position) []board.Move {
	var pv []board.Move
	visited := make(map[uint64]bool)
	pos := root

	for i := 0; i < MaxPly; i++ {
		h := pos.Hash()
		if visited[h] {
			break
		}
		visited[h] = true

		entry, ok := s.tt.Probe(h)
		if !ok || entry.Move.IsNone() {
			break
		}
		pv = append(pv, entry.Move)

		child := pos.Clone()
		child.ApplyInPlace(entry.Move)
		pos = child
	}
	return pv
}
