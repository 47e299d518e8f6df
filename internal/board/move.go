package board

import "fmt"

// MoveType tags the special handling a move needs when applied.
type MoveType uint8

const (
	Normal MoveType = iota
	PawnDouble
	EnpasKing  // capturing pawn approaches from the kingside
	EnpasQueen // capturing pawn approaches from the queenside
	Promote
	CastleMoveWK
	CastleMoveWQ
	CastleMoveBK
	CastleMoveBQ
)

// Promotion names the piece type a pawn promotes to; PromoNone for
// every non-promotion move.
type Promotion uint8

const (
	PromoNone Promotion = iota
	PromoQueen
	PromoRook
	PromoKnight
	PromoBishop
)

func (p Promotion) letter() byte {
	switch p {
	case PromoQueen:
		return 'q'
	case PromoRook:
		return 'r'
	case PromoKnight:
		return 'n'
	case PromoBishop:
		return 'b'
	}
	return 0
}

func (p Promotion) pieceType() PieceType {
	switch p {
	case PromoRook:
		return Rook
	case PromoKnight:
		return Knight
	case PromoBishop:
		return Bishop
	default:
		return Queen
	}
}

// Move is a compact record of a pseudo-legal move: origin/destination
// squares, the moving piece, an optional promotion, a move-type tag
// driving special apply-in-place handling, and a capture flag that
// drives move ordering.
type Move struct {
	From, To  Square
	Piece     Piece
	Promotion Promotion
	Type      MoveType
	Capture   bool
}

// NoMove is the sentinel for "no move available".
var NoMove = Move{Piece: NoPiece}

func (m Move) IsNone() bool       { return m.Piece == NoPiece }
func (m Move) IsPromotion() bool  { return m.Type == Promote }
func (m Move) IsCastle() bool {
	switch m.Type {
	case CastleMoveWK, CastleMoveWQ, CastleMoveBK, CastleMoveBQ:
		return true
	}
	return false
}
func (m Move) IsEnPassant() bool { return m.Type == EnpasKing || m.Type == EnpasQueen }

func (m Move) String() string {
	if m.IsNone() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if l := m.Promotion.letter(); l != 0 {
		s += string(l)
	}
	return s
}

// ParseLAN splits a UCI long-algebraic move token into its square and
// promotion parts. It does not resolve piece/type/capture — the
// caller matches the result against a generated move list.
func ParseLAN(s string) (from, to Square, promo Promotion, err error) {
	if len(s) != 4 && len(s) != 5 {
		return NoSquare, NoSquare, PromoNone, fmt.Errorf("malformed LAN move %q", s)
	}
	from, err = ParseSquare(s[0:2])
	if err != nil {
		return NoSquare, NoSquare, PromoNone, err
	}
	to, err = ParseSquare(s[2:4])
	if err != nil {
		return NoSquare, NoSquare, PromoNone, err
	}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = PromoQueen
		case 'r':
			promo = PromoRook
		case 'n':
			promo = PromoKnight
		case 'b':
			promo = PromoBishop
		default:
			return NoSquare, NoSquare, PromoNone, fmt.Errorf("bad promotion letter %q", s[4])
		}
	}
	return from, to, promo, nil
}

// MaxMoves upper-bounds the pseudo-legal move count (218 is the
// largest known for any reachable position); 256 leaves headroom.
const MaxMoves = 256

// MoveList is a fixed-capacity, non-allocating move buffer.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

func (l *MoveList) Add(m Move) {
	if l.count >= MaxMoves {
		panic("board: move list overflow")
	}
	l.moves[l.count] = m
	l.count++
}

func (l *MoveList) Len() int           { return l.count }
func (l *MoveList) Get(i int) Move     { return l.moves[i] }
func (l *MoveList) Set(i int, m Move)  { l.moves[i] = m }
func (l *MoveList) Swap(i, j int)      { l.moves[i], l.moves[j] = l.moves[j], l.moves[i] }
func (l *MoveList) Slice() []Move      { return l.moves[:l.count] }
func (l *MoveList) Truncate(n int)     { l.count = n }
