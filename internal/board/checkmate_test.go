package board

import "testing"

func TestCheckmate(t *testing.T) {
	// White: Ka1, Ra8. Black: Kh8 boxed in by its own pawns on g7/h7.
	// Black to move, already checkmated.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("error parsing FEN:", err)
	}

	t.Log("checkmate position:")
	t.Log(pos)
	t.Log("InCheck:", pos.InCheck())

	moves := pos.GenerateLegalMoves()
	t.Log("black legal moves:", moves.Len())
	for i := 0; i < moves.Len(); i++ {
		t.Log("  move:", moves.Get(i))
	}

	if !pos.IsCheckmate() {
		t.Error("expected checkmate but got false")
	}
}

func TestNotCheckmate(t *testing.T) {
	// Black king on h8 can simply capture the checking rook on g8.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("error parsing FEN:", err)
	}

	t.Log("not-checkmate position (king can capture rook):")
	t.Log(pos)
	t.Log("InCheck:", pos.InCheck())

	moves := pos.GenerateLegalMoves()
	t.Log("black legal moves:", moves.Len())
	for i := 0; i < moves.Len(); i++ {
		t.Log("  move:", moves.Get(i))
	}

	if pos.IsCheckmate() {
		t.Error("expected NOT checkmate but got true")
	}
}

func TestMateInOne(t *testing.T) {
	// Scenario 5: a1a8 is mate.
	pos, err := ParseFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - -")
	if err != nil {
		t.Fatal("error parsing FEN:", err)
	}

	moves := pos.GenerateLegalMoves()
	var found bool
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.String() != "a1a8" {
			continue
		}
		found = true
		child := pos.Clone()
		child.ApplyInPlace(m)
		if !child.IsCheckmate() {
			t.Errorf("expected a1a8 to deliver checkmate")
		}
	}
	if !found {
		t.Fatalf("expected a1a8 to be a legal move")
	}
}

func TestStalemate(t *testing.T) {
	// Classic stalemate: black king boxed in on a8, no legal moves,
	// not in check.
	pos, err := ParseFEN("k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	if err != nil {
		t.Fatal("error parsing FEN:", err)
	}
	if !pos.IsStalemate() {
		t.Errorf("expected stalemate")
	}
}
