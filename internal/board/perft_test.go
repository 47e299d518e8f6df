package board

import "testing"

// perft counts the number of leaf nodes at the given depth. Standard
// way to verify move generation correctness; every node applies each
// legal move to a clone rather than undoing it on the original.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		child := p.Clone()
		child.ApplyInPlace(moves.Get(i))
		nodes += perft(child, depth-1)
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	pos := NewStartingPosition()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		// depth 5 takes longer; enable for thorough verification:
		// {5, 4865609},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftKiwipete exercises castling, en passant, and promotion
// together. FEN: r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -
func TestPerftKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftPosition3 exercises en passant edge cases.
// FEN: 8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -
func TestPerftPosition3(t *testing.T) {
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftEnPassantPin covers the horizontal-pin edge case: a black
// pawn could capture en passant, but doing so would expose its own
// king to a rook on the same rank once both pawns vanish.
// FEN: 8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1
func TestPerftEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if m := moves.Get(i); m.IsEnPassant() {
			t.Errorf("en passant move %v should be illegal (horizontal pin)", m)
		}
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 6},
		{2, 94},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestEnPassantRemovesCorrectPawn exercises the scenario in which the
// en passant capture target is f6 but the captured pawn sits on f5.
func TestEnPassantRemovesCorrectPawn(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 1")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	var capture Move
	found := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From == E5 && m.To == F6 {
			capture = m
			found = true
		}
	}
	if !found {
		t.Fatalf("expected e5f6 to be a legal move")
	}
	if !capture.IsEnPassant() {
		t.Fatalf("expected e5f6 to be tagged as an en passant capture")
	}

	child := pos.Clone()
	child.ApplyInPlace(capture)

	if child.PieceAt(F5) != NoPiece {
		t.Errorf("expected f5 pawn to be removed by en passant, still occupied by %v", child.PieceAt(F5))
	}
	if child.PieceAt(F6) != PW {
		t.Errorf("expected white pawn on f6 after capture, got %v", child.PieceAt(F6))
	}
}

// TestCastlingLegality covers scenario 4: all four castles are legal
// from a clear board, and a castle is omitted when a path square is
// attacked.
func TestCastlingLegality(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	wantWhite := map[string]bool{"e1g1": false, "e1c1": false}
	for i := 0; i < moves.Len(); i++ {
		s := moves.Get(i).String()
		if _, ok := wantWhite[s]; ok {
			wantWhite[s] = true
		}
	}
	for lan, seen := range wantWhite {
		if !seen {
			t.Errorf("expected %s to be a legal white castle", lan)
		}
	}

	// A quiet white rook move that leaves black's castling paths
	// unattacked (after e1g1 the f1 rook would attack f8).
	var child *Position
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i).String() == "a1b1" {
			child = pos.Clone()
			child.ApplyInPlace(moves.Get(i))
		}
	}
	if child == nil {
		t.Fatalf("a1b1 not found among legal moves")
	}
	blackMoves := child.GenerateLegalMoves()
	wantBlack := map[string]bool{"e8g8": false, "e8c8": false}
	for i := 0; i < blackMoves.Len(); i++ {
		s := blackMoves.Get(i).String()
		if _, ok := wantBlack[s]; ok {
			wantBlack[s] = true
		}
	}
	for lan, seen := range wantBlack {
		if !seen {
			t.Errorf("expected %s to be a legal black castle", lan)
		}
	}
}

// TestCastleOmittedWhenPathAttacked checks that a castle through an
// attacked square is not generated.
func TestCastleOmittedWhenPathAttacked(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i).String() == "e1g1" {
			t.Errorf("e1g1 should be illegal: e1 is attacked by the rook on e2")
		}
	}
}

// TestZobristStability walks the tree to depth 4 from the starting
// position and asserts that recomputing the digest from scratch
// always matches the incrementally maintained hash.
func TestZobristStability(t *testing.T) {
	var walk func(p *Position, depth int)
	walk = func(p *Position, depth int) {
		if got, want := p.Hash(), p.ComputeZobristFromScratch(); got != want {
			t.Fatalf("hash mismatch: incremental=%x fromScratch=%x fen=%s", got, want, p.FEN())
		}
		if depth == 0 {
			return
		}
		moves := p.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			child := p.Clone()
			child.ApplyInPlace(moves.Get(i))
			walk(child, depth-1)
		}
	}
	walk(NewStartingPosition(), 4)
}
