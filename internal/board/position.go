package board

import "math/bits"

// Castling right bits, ordered to match the Zobrist castling key index
// (bit i keys zobristCastling(i)).
const (
	CastleWK uint8 = 1 << 0
	CastleWQ uint8 = 1 << 1
	CastleBK uint8 = 1 << 2
	CastleBQ uint8 = 1 << 3
	AllCastling = CastleWK | CastleWQ | CastleBK | CastleBQ
)

// EditRecorder receives piece add/remove events as a board is mutated.
// The NNUE accumulator stack attaches one to the position's recorder
// slot for the duration of a single move application so the incoming
// child ply knows exactly which features changed.
type EditRecorder interface {
	RecordEdit(p Piece, sq Square, add bool)
}

// Position is the board state plus game-length counters. It has value
// semantics: every move is applied to a clone, never undone.
type Position struct {
	boards   [NumPieces]Bitboard
	side     Color
	castling uint8
	epTarget Bitboard // single-bit mask, 0 if none
	hash     uint64

	FullMoveNumber  int
	NoCaptureOrPush int

	// derived state, recomputed lazily whenever hash changes
	derivedHash    uint64
	derivedValid   bool
	occupied       Bitboard
	colorPieces    [2]Bitboard
	attackedBy     [2]Bitboard
	checks         Bitboard

	recorder EditRecorder
}

// NewStartingPosition returns the standard chess starting position.
func NewStartingPosition() *Position {
	p, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// Clone returns an independent copy; moves are always applied to a
// clone, never undone on the original.
func (p *Position) Clone() *Position {
	c := *p
	c.recorder = nil
	return &c
}

func (p *Position) Side() Color  { return p.side }
func (p *Position) Hash() uint64 { return p.hash }

func (p *Position) SetRecorder(r EditRecorder) { p.recorder = r }

func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	for pc := PW; pc <= KB; pc++ {
		if p.boards[pc]&bb != 0 {
			return pc
		}
	}
	return NoPiece
}

func (p *Position) Bitboard(pc Piece) Bitboard { return p.boards[pc] }

func (p *Position) KingSquare(c Color) Square {
	return p.boards[Make(King, c)].LSB()
}

func (p *Position) CastlingRights() uint8 { return p.castling }
func (p *Position) EnPassantTarget() Bitboard { return p.epTarget }

// place sets piece p on sq, which must currently be empty.
func (p *Position) place(pc Piece, sq Square) {
	if p.boards[pc].IsSet(sq) {
		panic("board: place on occupied square")
	}
	p.boards[pc] = p.boards[pc].Set(sq)
	p.hash ^= zobristPiece(pc, sq)
	if p.recorder != nil {
		p.recorder.RecordEdit(pc, sq, true)
	}
}

// remove clears piece p from sq, which must currently hold it.
func (p *Position) remove(pc Piece, sq Square) {
	if !p.boards[pc].IsSet(sq) {
		panic("board: remove from empty square")
	}
	p.boards[pc] = p.boards[pc].Clear(sq)
	p.hash ^= zobristPiece(pc, sq)
	if p.recorder != nil {
		p.recorder.RecordEdit(pc, sq, false)
	}
}

// moveOrCapture moves pc from `from` to `to`, first removing any
// opposing piece occupying `to`. Returns whether a capture occurred.
func (p *Position) moveOrCapture(pc Piece, from, to Square) bool {
	captured := false
	if p.occupiedAt(to) {
		opp := pc.Color().Other()
		found := false
		for t := Pawn; t <= King; t++ {
			victim := Make(t, opp)
			if p.boards[victim].IsSet(to) {
				p.remove(victim, to)
				found = true
				break
			}
		}
		if !found {
			panic("board: capture target has no opposing piece")
		}
		captured = true
	}
	p.remove(pc, from)
	p.place(pc, to)
	return captured
}

func (p *Position) occupiedAt(sq Square) bool {
	for pc := PW; pc <= KB; pc++ {
		if p.boards[pc].IsSet(sq) {
			return true
		}
	}
	return false
}

func (p *Position) forbid(right uint8) {
	if p.castling&right != 0 {
		p.castling &^= right
		p.hash ^= zobristCastling(bits.TrailingZeros8(right))
	}
}

func (p *Position) setEnPassant(mask Bitboard) {
	if p.epTarget != 0 {
		p.hash ^= zobristEnPassant(p.epTarget.LSB())
	}
	p.epTarget = mask
	if mask != 0 {
		p.hash ^= zobristEnPassant(mask.LSB())
	}
}

func (p *Position) switchSide() {
	p.side = p.side.Other()
	p.hash ^= zobristSideToMove()
}

// deriveIfNeeded recomputes occupied/color/attack/check bitboards when
// the hash has changed since the last computation.
func (p *Position) deriveIfNeeded() {
	if p.derivedValid && p.derivedHash == p.hash {
		return
	}
	var occ, white, black Bitboard
	for pc := PW; pc <= KB; pc++ {
		occ |= p.boards[pc]
		if pc.Color() == White {
			white |= p.boards[pc]
		} else {
			black |= p.boards[pc]
		}
	}
	p.occupied = occ
	p.colorPieces[White] = white
	p.colorPieces[Black] = black
	p.attackedBy[White] = p.attacksBySide(White, occ)
	p.attackedBy[Black] = p.attacksBySide(Black, occ)
	p.checks = (p.boards[KW] & p.attackedBy[Black]) | (p.boards[KB] & p.attackedBy[White])
	p.derivedHash = p.hash
	p.derivedValid = true
}

// attacksBySide returns the union of every square attacked by color c.
func (p *Position) attacksBySide(c Color, occ Bitboard) Bitboard {
	var att Bitboard

	pawns := p.boards[Make(Pawn, c)]
	if c == White {
		att |= (pawns & NotFileA).NorthWest()
		att |= (pawns & NotFileH).NorthEast()
	} else {
		att |= (pawns & NotFileA).SouthWest()
		att |= (pawns & NotFileH).SouthEast()
	}

	p.boards[Make(Knight, c)].ForEach(func(sq Square) { att |= KnightAttacks[sq] })
	p.boards[Make(King, c)].ForEach(func(sq Square) { att |= KingAttacks[sq] })
	p.boards[Make(Bishop, c)].ForEach(func(sq Square) { att |= BishopAttacks(sq, occ) })
	p.boards[Make(Rook, c)].ForEach(func(sq Square) { att |= RookAttacks(sq, occ) })
	p.boards[Make(Queen, c)].ForEach(func(sq Square) { att |= QueenAttacks(sq, occ) })

	return att
}

func (p *Position) Occupied() Bitboard {
	p.deriveIfNeeded()
	return p.occupied
}

func (p *Position) ColorPieces(c Color) Bitboard {
	p.deriveIfNeeded()
	return p.colorPieces[c]
}

// UnsafeFor returns the squares attacked by the opponent of c.
func (p *Position) UnsafeFor(c Color) Bitboard {
	p.deriveIfNeeded()
	return p.attackedBy[c.Other()]
}

func (p *Position) InCheck() bool {
	p.deriveIfNeeded()
	return p.boards[Make(King, p.side)]&p.attackedBy[p.side.Other()] != 0
}

// IsLegal reports whether the side that just moved (the opponent of
// the side now to move) left its own king safe.
func (p *Position) IsLegal() bool {
	p.deriveIfNeeded()
	justMoved := p.side.Other()
	kingBB := p.boards[Make(King, justMoved)]
	return kingBB&p.attackedBy[p.side] == 0
}

// HasLegalMoves is a terminal-position check for the UCI "d" command
// and tests; search itself generates pseudo-legal moves and filters
// them with IsLegal as it goes.
func (p *Position) HasLegalMoves() bool {
	legal := p.GenerateLegalMoves()
	return legal.Len() > 0
}

func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

func (p *Position) IsInsufficientMaterial() bool {
	nonKing := p.Occupied() &^ (p.boards[KW] | p.boards[KB])
	if nonKing == 0 {
		return true
	}
	if p.boards[PW]|p.boards[PB]|p.boards[RW]|p.boards[RB]|p.boards[QW]|p.boards[QB] != 0 {
		return false
	}
	minorCount := (p.boards[NW] | p.boards[BW] | p.boards[NB] | p.boards[BB]).PopCount()
	return minorCount <= 1
}

// ComputeZobristFromScratch rebuilds the Zobrist digest by enumerating
// every occupied square, ignoring the incrementally-maintained hash.
// Used by invariant tests.
func (p *Position) ComputeZobristFromScratch() uint64 {
	var h uint64
	for pc := PW; pc <= KB; pc++ {
		p.boards[pc].ForEach(func(sq Square) {
			h ^= zobristPiece(pc, sq)
		})
	}
	if p.side == Black {
		h ^= zobristSideToMove()
	}
	for i := 0; i < 4; i++ {
		if p.castling&(1<<uint(i)) != 0 {
			h ^= zobristCastling(i)
		}
	}
	if p.epTarget != 0 {
		h ^= zobristEnPassant(p.epTarget.LSB())
	}
	return h
}
