package nnue

import "github.com/chesscore/enginecore/internal/board"

// Accumulator holds the hidden-layer activation vector from both
// fixed perspectives. White and Black here name the perspective, not
// which side is to move.
type Accumulator struct {
	White [HLSize]int16
	Black [HLSize]int16
}

type edit struct {
	piece board.Piece
	sq    board.Square
	add   bool
}

// node is one ply's slot in the accumulator stack: its accumulator is
// trustworthy only when clean is true; otherwise it must be rebuilt
// by replaying edits from the nearest clean ancestor.
type node struct {
	acc   Accumulator
	edits []edit
	clean bool
}

// MaxPly bounds the accumulator stack depth; search never recurses
// past it.
const MaxPly = 128

// Stack is a fixed-depth stack of per-ply accumulator nodes. It
// implements the edit-recorder / dirty-flag / replay-from-nearest-
// clean-ancestor protocol: nodes are marked dirty before a move is
// applied into them, and only rebuilt lazily when their value is
// actually needed for evaluation.
type Stack struct {
	nodes [MaxPly]node
}

// InitRoot computes node 0's accumulator from scratch and marks it
// the stack's single clean node; every other node starts dirty.
func (s *Stack) InitRoot(pos *board.Position, net *Network) {
	for i := range s.nodes {
		s.nodes[i].clean = false
		s.nodes[i].edits = s.nodes[i].edits[:0]
	}
	computeFull(&s.nodes[0].acc, pos, net)
	s.nodes[0].clean = true
}

// recorder appends edits into node[ply] as moves are applied.
type recorder struct{ n *node }

func (r recorder) RecordEdit(p board.Piece, sq board.Square, add bool) {
	r.n.edits = append(r.n.edits, edit{piece: p, sq: sq, add: add})
}

// BeginRecording marks node ply dirty, clears its edit log, and
// returns a board.EditRecorder the caller attaches to the child
// position before applying the move that produces ply's board.
func (s *Stack) BeginRecording(ply int) board.EditRecorder {
	n := &s.nodes[ply]
	n.clean = false
	n.edits = n.edits[:0]
	return recorder{n: n}
}

// Forward returns the clean accumulator at ply, replaying recorded
// edits up from the nearest clean ancestor if necessary.
func (s *Stack) Forward(ply int, net *Network) *Accumulator {
	c := ply
	for c > 0 && !s.nodes[c].clean {
		c--
	}
	for p := c + 1; p <= ply; p++ {
		s.nodes[p].acc = s.nodes[p-1].acc
		for _, e := range s.nodes[p].edits {
			applyEdit(&s.nodes[p].acc, e, net)
		}
		s.nodes[p].clean = true
	}
	return &s.nodes[ply].acc
}

func computeFull(acc *Accumulator, pos *board.Position, net *Network) {
	acc.White = net.L1Bias
	acc.Black = net.L1Bias
	for pc := board.PW; pc <= board.KB; pc++ {
		pos.Bitboard(pc).ForEach(func(sq board.Square) {
			applyEdit(acc, edit{piece: pc, sq: sq, add: true}, net)
		})
	}
}

func applyEdit(acc *Accumulator, e edit, net *Network) {
	whiteIdx := whiteFeatureIndex(e.piece, e.sq)
	blackIdx := blackFeatureIndex(e.piece, e.sq)
	sign := int16(1)
	if !e.add {
		sign = -1
	}
	wrow := &net.L1Weights[whiteIdx]
	brow := &net.L1Weights[blackIdx]
	for i := 0; i < HLSize; i++ {
		acc.White[i] += sign * wrow[i]
		acc.Black[i] += sign * brow[i]
	}
}

// whiteFeatureIndex is 64*b+s for piece b on square s.
func whiteFeatureIndex(p board.Piece, sq board.Square) int {
	return 64*int(p) + int(sq)
}

// blackFeatureIndex color-swaps the piece and mirrors the square
// vertically: 64*((b+6) mod 12) + (s XOR 0b111000).
func blackFeatureIndex(p board.Piece, sq board.Square) int {
	swapped := (int(p) + 6) % 12
	mirrored := int(sq) ^ 0b111000
	return 64*swapped + mirrored
}
