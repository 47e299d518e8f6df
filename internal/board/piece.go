package board

// Piece is an index into the board's 12 piece bitboards.
// Ordering follows {PW, RW, NW, BW, QW, KW, PB, RB, NB, BB, QB, KB}:
// rook before knight, matching the table this package's Zobrist and
// NNUE feature indexing are built against.
type Piece int

const (
	PW Piece = iota
	RW
	NW
	BW
	QW
	KW
	PB
	RB
	NB
	BB
	QB
	KB
	NoPiece Piece = -1
)

const NumPieces = 12

// Color is White or Black.
type Color int

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	return c ^ 1
}

// PieceType strips color: Pawn..King, matching the low 6 indices.
type PieceType int

const (
	Pawn PieceType = iota
	Rook
	Knight
	Bishop
	Queen
	King
)

// Color returns the color of a piece index.
func (p Piece) Color() Color {
	if p < 6 {
		return White
	}
	return Black
}

// Type returns the piece type, stripping color.
func (p Piece) Type() PieceType {
	return PieceType(int(p) % 6)
}

// Make builds a piece index from a type and color.
func Make(t PieceType, c Color) Piece {
	return Piece(int(t) + int(c)*6)
}

func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	letters := [12]byte{'P', 'R', 'N', 'B', 'Q', 'K', 'p', 'r', 'n', 'b', 'q', 'k'}
	return string(letters[p])
}

// PieceFromChar maps a FEN piece letter to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return PW
	case 'R':
		return RW
	case 'N':
		return NW
	case 'B':
		return BW
	case 'Q':
		return QW
	case 'K':
		return KW
	case 'p':
		return PB
	case 'r':
		return RB
	case 'n':
		return NB
	case 'b':
		return BB
	case 'q':
		return QB
	case 'k':
		return KB
	}
	return NoPiece
}

// PieceValue gives a crude centipawn value, used only by quiescence
// delta pruning (the real evaluation is the NNUE network).
var PieceValue = [6]int{100, 500, 320, 330, 900, 0}
