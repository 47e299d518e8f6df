package nnue

import "github.com/chesscore/enginecore/internal/board"

// Evaluator owns the network weights and the per-search accumulator
// stack. One Evaluator is created per search worker.
type Evaluator struct {
	net   *Network
	stack Stack
}

func NewEvaluator(net *Network) *Evaluator {
	return &Evaluator{net: net}
}

// InitRoot must be called once at the start of every search with the
// root position, before any BeginRecording/Evaluate calls.
func (e *Evaluator) InitRoot(pos *board.Position) {
	e.stack.InitRoot(pos, e.net)
}

// BeginRecording returns the edit recorder for the node at ply; the
// caller attaches it to the child position before calling
// ApplyInPlace, then detaches it (SetRecorder(nil)).
func (e *Evaluator) BeginRecording(ply int) board.EditRecorder {
	return e.stack.BeginRecording(ply)
}

// Evaluate returns the position's score, from the perspective of the
// side to move, using the accumulator for ply (rebuilding it lazily
// if dirty).
func (e *Evaluator) Evaluate(pos *board.Position, ply int) int {
	acc := e.stack.Forward(ply, e.net)
	bucket := bucketFor(pos.Occupied().PopCount())

	var own, other *[HLSize]int16
	if pos.Side() == board.White {
		own, other = &acc.White, &acc.Black
	} else {
		own, other = &acc.Black, &acc.White
	}
	return e.net.Forward(own, other, bucket)
}

// EvaluateFresh recomputes an accumulator from scratch for pos,
// bypassing the stack. Used by tests to check that incremental and
// from-scratch accumulators agree bit-for-bit.
func (e *Evaluator) EvaluateFresh(pos *board.Position) int {
	var acc Accumulator
	computeFull(&acc, pos, e.net)
	bucket := bucketFor(pos.Occupied().PopCount())
	var own, other *[HLSize]int16
	if pos.Side() == board.White {
		own, other = &acc.White, &acc.Black
	} else {
		own, other = &acc.Black, &acc.White
	}
	return e.net.Forward(own, other, bucket)
}
