package board

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFEN is best-effort: the first four fields (placement, side,
// castling, en-passant) are required; halfmove clock and fullmove
// number default to 0/1 when absent, and unrecognized trailing tokens
// are ignored.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("board: FEN needs at least 4 fields, got %d", len(fields))
	}

	p := &Position{FullMoveNumber: 1}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("board: FEN placement needs 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pc := PieceFromChar(byte(c))
			if pc == NoPiece || file > 7 {
				continue // best-effort: ignore unrecognized tokens
			}
			p.boards[pc] = p.boards[pc].Set(NewSquare(file, rank))
			file++
		}
	}

	switch fields[1] {
	case "b":
		p.side = Black
	default:
		p.side = White
	}

	for _, c := range fields[2] {
		switch c {
		case 'K':
			p.castling |= CastleWK
		case 'Q':
			p.castling |= CastleWQ
		case 'k':
			p.castling |= CastleBK
		case 'q':
			p.castling |= CastleBQ
		}
	}

	if fields[3] != "-" {
		if sq, err := ParseSquare(fields[3]); err == nil {
			p.epTarget = SquareBB(sq)
		}
	}

	if len(fields) >= 5 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			p.NoCaptureOrPush = n
		}
	}
	if len(fields) >= 6 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			p.FullMoveNumber = n
		}
	}

	p.hash = p.ComputeZobristFromScratch()
	return p, nil
}

// FEN renders the position back into standard six-field notation.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(NewSquare(file, rank))
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.side == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	rights := ""
	if p.castling&CastleWK != 0 {
		rights += "K"
	}
	if p.castling&CastleWQ != 0 {
		rights += "Q"
	}
	if p.castling&CastleBK != 0 {
		rights += "k"
	}
	if p.castling&CastleBQ != 0 {
		rights += "q"
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)
	sb.WriteByte(' ')

	if p.epTarget == 0 {
		sb.WriteString("-")
	} else {
		sb.WriteString(p.epTarget.LSB().String())
	}

	sb.WriteString(fmt.Sprintf(" %d %d", p.NoCaptureOrPush, p.FullMoveNumber))
	return sb.String()
}

// String pretty-prints the board for the UCI "d" debug command.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d  ", rank+1))
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(NewSquare(file, rank))
			sb.WriteString(pc.String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")
	sb.WriteString("FEN: " + p.FEN() + "\n")
	return sb.String()
}
