package engine

import (
	"testing"
	"time"

	"github.com/chesscore/enginecore/internal/board"
	"github.com/chesscore/enginecore/internal/nnue"
)

func testSearcher() *Searcher {
	net := &nnue.Network{}
	net.InitRandom(98765)
	tt := NewTranspositionTable(1)
	eval := nnue.NewEvaluator(net)
	return NewSearcher(tt, eval)
}

func mustFEN(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("parsing fen %q: %v", fen, err)
	}
	return pos
}

func TestSearchFindsMateInOne(t *testing.T) {
	pos := mustFEN(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	s := testSearcher()

	limits := Limits{Depth: 3}
	move, score := s.Run(pos, limits, nil)

	if move.IsNone() {
		t.Fatal("expected a move, got NoMove")
	}
	if move.String() != "a1a8" {
		t.Errorf("expected mating move a1a8, got %s", move.String())
	}
	if score <= MaxEval {
		t.Errorf("expected a mate score above MaxEval, got %d", score)
	}
}

func TestSearchStalemateRootScoresZero(t *testing.T) {
	pos := mustFEN(t, "k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	if !pos.IsStalemate() {
		t.Fatal("fixture position is not actually stalemate")
	}

	s := testSearcher()
	move, score := s.Run(pos, Limits{Depth: 2}, nil)

	if !move.IsNone() {
		t.Errorf("expected NoMove at a terminal root, got %s", move.String())
	}
	if score != 0 {
		t.Errorf("expected stalemate score 0, got %d", score)
	}
}

func TestSearchCheckmateRootScoresLoss(t *testing.T) {
	pos := mustFEN(t, "k7/8/8/8/8/8/5PPP/r5K1 w - - 0 1")
	if !pos.IsCheckmate() {
		t.Fatal("fixture position is not actually checkmate")
	}

	s := testSearcher()
	move, score := s.Run(pos, Limits{Depth: 2}, nil)

	if !move.IsNone() {
		t.Errorf("expected NoMove at a terminal root, got %s", move.String())
	}
	want := -CheckmateScore
	if score != want {
		t.Errorf("expected checkmate root score %d, got %d", want, score)
	}
}

// TestIterativeDeepeningReportsEveryDepth checks that onInfo fires once
// per completed depth, in increasing order, up to the requested depth,
// and that the search returns a move.
func TestIterativeDeepeningReportsEveryDepth(t *testing.T) {
	pos := board.NewStartingPosition()
	s := testSearcher()

	var depths []int
	onInfo := func(info SearchInfo) {
		depths = append(depths, info.Depth)
	}

	move, _ := s.Run(pos, Limits{Depth: 3}, onInfo)

	if move.IsNone() {
		t.Fatal("expected a move from the starting position")
	}
	for i, d := range depths {
		if d != i+1 {
			t.Fatalf("expected depths in order 1..N, got %v", depths)
		}
	}
	if len(depths) != 3 {
		t.Fatalf("expected 3 completed depths, got %d (%v)", len(depths), depths)
	}
}

func TestStopAbortsSearchPromptly(t *testing.T) {
	pos := board.NewStartingPosition()
	s := testSearcher()

	go func() {
		time.Sleep(5 * time.Millisecond)
		s.Stop()
	}()

	done := make(chan struct{})
	go func() {
		s.Run(pos, Limits{Depth: 60}, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("search did not stop within 5 seconds of Stop()")
	}
}
