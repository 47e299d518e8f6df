package engine

import "github.com/chesscore/enginecore/internal/board"

// Move-ordering score buckets: lower sorts first.
const (
	scorePV       = 0
	scorePromote  = 1
	scoreCapture  = 2
	scoreOther    = 3
)

// ScoreMoves assigns each move in the list its ordering bucket in a
// single pass: the PV move (if present in this list) first, then
// promotions, then captures, then everything else.
func ScoreMoves(moves *board.MoveList, pvMove board.Move) []int {
	scores := make([]int, moves.Len())
	hasPV := !pvMove.IsNone()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		switch {
		case hasPV && m == pvMove:
			scores[i] = scorePV
		case m.IsPromotion():
			scores[i] = scorePromote
		case m.Capture:
			scores[i] = scoreCapture
		default:
			scores[i] = scoreOther
		}
	}
	return scores
}

// PickMove performs one step of a selection sort: it finds the
// lowest-scored move at or after index `from` and swaps it into
// place. Because a beta cutoff usually arrives within the first few
// moves, a full sort is wasted work — the list rarely needs more than
// a handful of these partial passes.
func PickMove(moves *board.MoveList, scores []int, from int) {
	best := from
	for i := from + 1; i < moves.Len(); i++ {
		if scores[i] < scores[best] {
			best = i
		}
	}
	if best != from {
		moves.Swap(from, best)
		scores[from], scores[best] = scores[best], scores[from]
	}
}
