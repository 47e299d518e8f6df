package board

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// GeneratePseudoLegalMoves fills a move list with every pseudo-legal
// move for the side to move. Moves that leave the mover's own king
// attacked are not filtered here (except king moves, which exclude
// squares under attack directly) — callers filter with IsLegal after
// applying.
func (p *Position) GeneratePseudoLegalMoves() MoveList {
	var list MoveList
	p.generateMoves(&list, false)
	return list
}

// GenerateCaptures fills a move list with every capture (including
// capture-promotions) plus quiet promotions, for quiescence search.
// Non-promoting quiet moves are excluded.
func (p *Position) GenerateCaptures() MoveList {
	var list MoveList
	p.generateMoves(&list, true)
	return list
}

// GenerateLegalMoves filters the pseudo-legal list by applying each
// move to a clone and checking IsLegal.
func (p *Position) GenerateLegalMoves() MoveList {
	pseudo := p.GeneratePseudoLegalMoves()
	var legal MoveList
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		child := p.Clone()
		child.ApplyInPlace(m)
		if child.IsLegal() {
			legal.Add(m)
		}
	}
	return legal
}

func (p *Position) generateMoves(list *MoveList, capturesOnly bool) {
	side := p.side
	own := p.ColorPieces(side)
	occ := p.Occupied()
	friendlyEmpty := ^own

	p.generateKnightMoves(list, side, friendlyEmpty, occ, capturesOnly)
	p.generateKingMoves(list, side, friendlyEmpty, occ, capturesOnly)
	p.generateSliderMoves(list, Bishop, side, friendlyEmpty, occ, capturesOnly)
	p.generateSliderMoves(list, Rook, side, friendlyEmpty, occ, capturesOnly)
	p.generateSliderMoves(list, Queen, side, friendlyEmpty, occ, capturesOnly)
	p.generatePawnMoves(list, side, occ, capturesOnly)
	if !capturesOnly {
		p.generateCastling(list, side)
	}
}

func (p *Position) generateKnightMoves(list *MoveList, side Color, friendlyEmpty, occ Bitboard, capturesOnly bool) {
	pc := Make(Knight, side)
	p.boards[pc].ForEach(func(from Square) {
		targets := KnightAttacks[from] & friendlyEmpty
		if capturesOnly {
			targets &= occ
		}
		targets.ForEach(func(to Square) {
			list.Add(Move{From: from, To: to, Piece: pc, Capture: occ.IsSet(to)})
		})
	})
}

func (p *Position) generateKingMoves(list *MoveList, side Color, friendlyEmpty, occ Bitboard, capturesOnly bool) {
	pc := Make(King, side)
	from := p.boards[pc].LSB()
	unsafe := p.UnsafeFor(side)
	targets := KingAttacks[from] & friendlyEmpty &^ unsafe
	if capturesOnly {
		targets &= occ
	}
	targets.ForEach(func(to Square) {
		list.Add(Move{From: from, To: to, Piece: pc, Capture: occ.IsSet(to)})
	})
}

func (p *Position) generateSliderMoves(list *MoveList, t PieceType, side Color, friendlyEmpty, occ Bitboard, capturesOnly bool) {
	pc := Make(t, side)
	p.boards[pc].ForEach(func(from Square) {
		var attacks Bitboard
		switch t {
		case Bishop:
			attacks = BishopAttacks(from, occ)
		case Rook:
			attacks = RookAttacks(from, occ)
		case Queen:
			attacks = QueenAttacks(from, occ)
		}
		targets := attacks & friendlyEmpty
		if capturesOnly {
			targets &= occ
		}
		targets.ForEach(func(to Square) {
			list.Add(Move{From: from, To: to, Piece: pc, Capture: occ.IsSet(to)})
		})
	})
}

func (p *Position) generatePawnMoves(list *MoveList, side Color, occ Bitboard, capturesOnly bool) {
	pc := Make(Pawn, side)
	pawns := p.boards[pc]
	empty := ^occ
	epBB := p.epTarget

	var push1, push2, capL, capR Bitboard
	var pushDir, capLDir, capRDir int
	var promoRank Bitboard
	var doublePushRank Bitboard

	if side == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		capL = (pawns & NotFileA).NorthWest()
		capR = (pawns & NotFileH).NorthEast()
		pushDir, capLDir, capRDir = 8, 7, 9
		promoRank = Rank8
		doublePushRank = Rank4
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		capL = (pawns & NotFileA).SouthWest()
		capR = (pawns & NotFileH).SouthEast()
		pushDir, capLDir, capRDir = -8, -9, -7
		promoRank = Rank1
		doublePushRank = Rank5
	}

	if !capturesOnly {
		push1.ForEach(func(to Square) {
			from := Square(int(to) - pushDir)
			p.addPawnMove(list, pc, from, to, Normal, false, promoRank)
		})
		(push2 & doublePushRank).ForEach(func(to Square) {
			from := Square(int(to) - 2*pushDir)
			list.Add(Move{From: from, To: to, Piece: pc, Type: PawnDouble})
		})
	} else {
		// Quiescence still needs quiet promotions: a pawn queening on
		// an empty square is as forcing as a capture and must not be
		// invisible to the horizon search.
		(push1 & promoRank).ForEach(func(to Square) {
			from := Square(int(to) - pushDir)
			p.addPawnMove(list, pc, from, to, Normal, false, promoRank)
		})
	}

	targetsOrEP := func(bb Bitboard) Bitboard {
		return bb & (p.colorPieces[side.Other()] | epBB)
	}

	targetsOrEP(capL).ForEach(func(to Square) {
		from := Square(int(to) - capLDir)
		p.addPawnCapture(list, pc, from, to, epBB, EnpasKing, promoRank, occ)
	})
	targetsOrEP(capR).ForEach(func(to Square) {
		from := Square(int(to) - capRDir)
		p.addPawnCapture(list, pc, from, to, epBB, EnpasQueen, promoRank, occ)
	})
}

func (p *Position) addPawnMove(list *MoveList, pc Piece, from, to Square, t MoveType, capture bool, promoRank Bitboard) {
	if SquareBB(to)&promoRank != 0 {
		for _, promo := range [4]Promotion{PromoQueen, PromoRook, PromoKnight, PromoBishop} {
			list.Add(Move{From: from, To: to, Piece: pc, Type: Promote, Promotion: promo, Capture: capture})
		}
		return
	}
	list.Add(Move{From: from, To: to, Piece: pc, Type: t, Capture: capture})
}

func (p *Position) addPawnCapture(list *MoveList, pc Piece, from, to Square, epBB Bitboard, epType MoveType, promoRank Bitboard, occ Bitboard) {
	if epBB != 0 && SquareBB(to) == epBB {
		list.Add(Move{From: from, To: to, Piece: pc, Type: epType, Capture: true})
		return
	}
	p.addPawnMove(list, pc, from, to, Normal, true, promoRank)
}

func (p *Position) generateCastling(list *MoveList, side Color) {
	occ := p.Occupied()
	unsafe := p.UnsafeFor(side)
	if side == White {
		if p.castling&CastleWK != 0 && occ&(SquareBB(F1)|SquareBB(G1)) == 0 &&
			unsafe&(SquareBB(E1)|SquareBB(F1)|SquareBB(G1)) == 0 {
			list.Add(Move{From: E1, To: G1, Piece: KW, Type: CastleMoveWK})
		}
		if p.castling&CastleWQ != 0 && occ&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			unsafe&(SquareBB(E1)|SquareBB(D1)|SquareBB(C1)) == 0 {
			list.Add(Move{From: E1, To: C1, Piece: KW, Type: CastleMoveWQ})
		}
	} else {
		if p.castling&CastleBK != 0 && occ&(SquareBB(F8)|SquareBB(G8)) == 0 &&
			unsafe&(SquareBB(E8)|SquareBB(F8)|SquareBB(G8)) == 0 {
			list.Add(Move{From: E8, To: G8, Piece: KB, Type: CastleMoveBK})
		}
		if p.castling&CastleBQ != 0 && occ&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
			unsafe&(SquareBB(E8)|SquareBB(D8)|SquareBB(C8)) == 0 {
			list.Add(Move{From: E8, To: C8, Piece: KB, Type: CastleMoveBQ})
		}
	}
}

// ApplyInPlace mutates the position by playing move m. It never
// undoes — the caller is expected to have already cloned if the
// pre-move state is still needed.
func (p *Position) ApplyInPlace(m Move) {
	mover := p.side

	switch m.Type {
	case CastleMoveWK:
		p.remove(KW, E1)
		p.place(KW, G1)
		p.remove(RW, H1)
		p.place(RW, F1)
		p.forbid(CastleWK)
		p.forbid(CastleWQ)
	case CastleMoveWQ:
		p.remove(KW, E1)
		p.place(KW, C1)
		p.remove(RW, A1)
		p.place(RW, D1)
		p.forbid(CastleWK)
		p.forbid(CastleWQ)
	case CastleMoveBK:
		p.remove(KB, E8)
		p.place(KB, G8)
		p.remove(RB, H8)
		p.place(RB, F8)
		p.forbid(CastleBK)
		p.forbid(CastleBQ)
	case CastleMoveBQ:
		p.remove(KB, E8)
		p.place(KB, C8)
		p.remove(RB, A8)
		p.place(RB, D8)
		p.forbid(CastleBK)
		p.forbid(CastleBQ)
	default:
		p.moveOrCapture(m.Piece, m.From, m.To)
		p.updateCastlingOnSquares(m.From, m.To)

		switch m.Type {
		case EnpasKing, EnpasQueen:
			victimSq := NewSquare(m.To.File(), m.From.Rank())
			p.remove(Make(Pawn, mover.Other()), victimSq)
		case Promote:
			p.remove(m.Piece, m.To)
			p.place(Make(m.Promotion.pieceType(), mover), m.To)
		}
	}

	if m.Type == PawnDouble {
		var target Square
		if mover == White {
			target = Square(int(m.From) + 8)
		} else {
			target = Square(int(m.From) - 8)
		}
		p.setEnPassant(SquareBB(target))
	} else {
		p.setEnPassant(0)
	}

	if m.Capture || m.Piece.Type() == Pawn {
		p.NoCaptureOrPush = 0
	} else {
		p.NoCaptureOrPush++
	}
	if mover == Black {
		p.FullMoveNumber++
	}

	p.switchSide()
}

func (p *Position) updateCastlingOnSquares(from, to Square) {
	check := func(sq Square) {
		switch sq {
		case A1:
			p.forbid(CastleWQ)
		case H1:
			p.forbid(CastleWK)
		case E1:
			p.forbid(CastleWK)
			p.forbid(CastleWQ)
		case A8:
			p.forbid(CastleBQ)
		case H8:
			p.forbid(CastleBK)
		case E8:
			p.forbid(CastleBK)
			p.forbid(CastleBQ)
		}
	}
	check(from)
	check(to)
}
