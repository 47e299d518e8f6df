package nnue

import (
	"testing"

	"github.com/chesscore/enginecore/internal/board"
)

func testNetwork() *Network {
	net := &Network{}
	net.InitRandom(12345)
	return net
}

// TestIncrementalMatchesFresh checks that forward() at a ply reached
// via incremental edits is bit-identical to a fresh init from that
// ply's board state.
func TestIncrementalMatchesFresh(t *testing.T) {
	net := testNetwork()
	root := board.NewStartingPosition()

	e := NewEvaluator(net)
	e.InitRoot(root)

	moves := root.GenerateLegalMoves()
	if moves.Len() == 0 {
		t.Fatal("expected legal moves from starting position")
	}

	pos := root
	for ply := 1; ply <= 3; ply++ {
		m := moves.Get(0)
		rec := e.BeginRecording(ply)
		child := pos.Clone()
		child.SetRecorder(rec)
		child.ApplyInPlace(m)
		child.SetRecorder(nil)

		incremental := e.Evaluate(child, ply)
		fresh := e.EvaluateFresh(child)
		if incremental != fresh {
			t.Fatalf("ply %d: incremental=%d fresh=%d", ply, incremental, fresh)
		}

		pos = child
		moves = pos.GenerateLegalMoves()
		if moves.Len() == 0 {
			break
		}
	}
}

func TestFeatureIndexFormula(t *testing.T) {
	idx := whiteFeatureIndex(board.QW, board.D4)
	if idx != 64*int(board.QW)+int(board.D4) {
		t.Errorf("unexpected white feature index %d", idx)
	}
	black := blackFeatureIndex(board.QW, board.D4)
	wantPiece := (int(board.QW) + 6) % 12
	wantSq := int(board.D4) ^ 0b111000
	if black != 64*wantPiece+wantSq {
		t.Errorf("unexpected black feature index %d", black)
	}
}
