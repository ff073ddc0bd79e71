package board

import (
	"fmt"
	"strconv"
	"strings"
)

// SetFEN parses fen (Forsyth-Edwards Notation extended with a "(XY)" stack
// token, bottom piece first) and overwrites the board's state. Fields beyond
// the first four (halfmove clock, fullmove number) are optional and default
// to 0 and 1 respectively, matching how engines tolerate truncated FEN.
func (b *Board) SetFEN(fen string) error {
	b.Clear()

	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return fmt.Errorf("board: FEN needs at least 4 fields, got %d", len(parts))
	}

	if err := b.parseBoardField(parts[0]); err != nil {
		return err
	}

	if parts[1] == "w" {
		b.Turn = White
	} else {
		b.Turn = Black
	}

	b.Castling = 0
	if strings.Contains(parts[2], "K") {
		b.Castling |= CastleWK
	}
	if strings.Contains(parts[2], "Q") {
		b.Castling |= CastleWQ
	}
	if strings.Contains(parts[2], "k") {
		b.Castling |= CastleBK
	}
	if strings.Contains(parts[2], "q") {
		b.Castling |= CastleBQ
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return fmt.Errorf("board: bad en passant square: %w", err)
		}
		b.EPSquare = sq
	}

	if len(parts) > 4 {
		if v, err := strconv.Atoi(parts[4]); err == nil {
			b.HalfmoveClock = uint16(v)
		}
	}
	if len(parts) > 5 {
		if v, err := strconv.Atoi(parts[5]); err == nil {
			b.Fullmove = uint16(v)
		}
	}

	b.deriveUnmovedPawns()
	b.Hash = ComputeZobrist(b)
	return nil
}

func (b *Board) parseBoardField(field string) error {
	rank := 7
	file := 0
	bytes := []byte(field)

	for i := 0; i < len(bytes); i++ {
		c := bytes[i]
		switch {
		case c == '/':
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		case c == '(':
			i++
			sq := NewSquare(file, rank)
			b.Squares[sq] = SquareStack{}
			for i < len(bytes) && bytes[i] != ')' {
				if p, ok := PieceFromLetter(bytes[i]); ok {
					b.Squares[sq].Add(p)
					if PieceTypeOf(p) == King {
						b.KingSq[PieceColor(p)] = sq
					}
				}
				i++
			}
			if i >= len(bytes) {
				return fmt.Errorf("board: unterminated stack notation in FEN")
			}
			file++
		default:
			p, ok := PieceFromLetter(c)
			if !ok {
				return fmt.Errorf("board: invalid FEN character %q", c)
			}
			if file > 7 || rank < 0 {
				return fmt.Errorf("board: FEN board field overruns the board")
			}
			b.PutPiece(NewSquare(file, rank), p)
			file++
		}
	}
	return nil
}

// deriveUnmovedPawns reconstructs the per-color, per-file "still on its
// home rank" mask from the current piece placement. This mask is not part
// of FEN: a position loaded from FEN is conservatively treated as if any
// pawn sitting on its home rank has never moved, which only affects the
// 2-square pawn push and double-push-adjacent en passant edge cases.
func (b *Board) deriveUnmovedPawns() {
	b.UnmovedPawns[White] = 0
	b.UnmovedPawns[Black] = 0

	for f := 0; f < 8; f++ {
		whiteHome := NewSquare(f, 1)
		stack := b.Squares[whiteHome]
		for i := uint8(0); i < stack.Count; i++ {
			if stack.Pieces[i] == WhitePawn {
				b.UnmovedPawns[White] |= 1 << uint(f)
				break
			}
		}

		blackHome := NewSquare(f, 6)
		stack = b.Squares[blackHome]
		for i := uint8(0); i < stack.Count; i++ {
			if stack.Pieces[i] == BlackPawn {
				b.UnmovedPawns[Black] |= 1 << uint(f)
				break
			}
		}
	}
}

// FEN renders the board back into extended Forsyth-Edwards Notation.
func (b *Board) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			stack := b.Squares[sq]

			if stack.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			if stack.Double() {
				sb.WriteByte('(')
				sb.WriteByte(stack.Pieces[0].Letter())
				sb.WriteByte(stack.Pieces[1].Letter())
				sb.WriteByte(')')
			} else {
				sb.WriteByte(stack.Top().Letter())
			}
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.Turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	castling := ""
	if b.Castling&CastleWK != 0 {
		castling += "K"
	}
	if b.Castling&CastleWQ != 0 {
		castling += "Q"
	}
	if b.Castling&CastleBK != 0 {
		castling += "k"
	}
	if b.Castling&CastleBQ != 0 {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	sb.WriteByte(' ')
	if b.EPSquare.IsValid() {
		sb.WriteString(b.EPSquare.String())
	} else {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %d %d", b.HalfmoveClock, b.Fullmove)
	return sb.String()
}

// String renders a human-readable board diagram followed by its FEN, for
// debugging and log output.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  +-----------------+\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d | ", rank+1)
		for file := 0; file < 8; file++ {
			stack := b.Squares[NewSquare(file, rank)]
			switch {
			case stack.Empty():
				sb.WriteString(". ")
			case stack.Double():
				sb.WriteByte(stack.Bottom().Letter())
				top := stack.Top().Letter()
				if top >= 'A' && top <= 'Z' {
					top += 'a' - 'A'
				}
				sb.WriteByte(top)
			default:
				sb.WriteByte(stack.Top().Letter())
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("  +-----------------+\n")
	sb.WriteString("    a b c d e f g h\n")
	turn := "White"
	if b.Turn == Black {
		turn = "Black"
	}
	fmt.Fprintf(&sb, "\nTurn: %s\nFEN: %s", turn, b.FEN())
	return sb.String()
}
