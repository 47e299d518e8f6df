package engine

import (
	"time"

	"github.com/chesscore/enginecore/internal/board"
)

// Limits mirrors the UCI "go" parameters the time manager consumes.
type Limits struct {
	Infinite  bool
	Depth     int // 0 = unset
	Nodes     uint64
	Mate      int
	MoveTime  time.Duration
	WTime     time.Duration
	BTime     time.Duration
	WInc      time.Duration
	BInc      time.Duration
	MovesToGo int
}

// TimeManager decides, on a node-count heartbeat, whether the current
// search must abort.
type TimeManager struct {
	start    time.Time
	limits   Limits
	infinite bool
	target   time.Duration
}

// NewTimeManager computes the stop target once, at search start, from
// the game-clock triple and the side to move.
func NewTimeManager(l Limits, side board.Color, fullMoveCount int) *TimeManager {
	m := &TimeManager{start: time.Now(), limits: l}

	if l.Infinite {
		m.infinite = true
		return m
	}
	if l.MoveTime > 0 {
		return m
	}

	var remaining, inc time.Duration
	if side == board.White {
		remaining, inc = l.WTime, l.WInc
	} else {
		remaining, inc = l.BTime, l.BInc
	}
	if remaining <= 0 {
		// No clock and no movetime: depth/nodes alone bound the search.
		m.infinite = true
		return m
	}

	moves := l.MovesToGo
	if moves <= 0 {
		moves = 40 - fullMoveCount
		if moves < 20 {
			moves = 20
		}
	}

	available := remaining + inc*time.Duration(moves)
	limit := available / time.Duration(moves)

	factor := float64(fullMoveCount) / 8.0
	if factor > 1.0 {
		factor = 1.0
	}
	if factor < 0.33 {
		factor = 0.33
	}

	target := 0.8 * (float64(limit)*factor - float64(500*time.Millisecond))
	if target < 0 {
		target = 0
	}
	m.target = time.Duration(target)
	return m
}

func (m *TimeManager) Elapsed() time.Duration { return time.Since(m.start) }

// ShouldStop implements the decision rule in order: infinite never
// stops; an exceeded depth limit always stops; otherwise a fixed
// movetime or a computed clock-derived target governs.
func (m *TimeManager) ShouldStop(iterativeDepth int) bool {
	if m.infinite {
		return false
	}
	if m.limits.Depth > 0 && iterativeDepth > m.limits.Depth {
		return true
	}
	elapsed := m.Elapsed()
	if m.limits.MoveTime > 0 {
		return elapsed >= m.limits.MoveTime
	}
	return elapsed > m.target
}

// MateSatisfied reports whether a forced mate within the requested
// move count has already been found at the root.
func (m *TimeManager) MateSatisfied(score int) bool {
	if m.limits.Mate <= 0 {
		return false
	}
	dist := CheckmateScore - abs(score)
	return abs(score) > MaxEval && dist <= 2*m.limits.Mate
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
