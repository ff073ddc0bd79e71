package board

// StartFEN is the standard Klikschaak starting position (identical to
// orthodox chess; the stacking mechanic activates only once klik moves are
// played).
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Castling rights bitmask values.
const (
	CastleWK uint8 = 1 << iota
	CastleWQ
	CastleBK
	CastleBQ
)

const CastleAll = CastleWK | CastleWQ | CastleBK | CastleBQ

// PieceValue gives the classical material value of each piece type, indexed
// by PieceType.
var PieceValue = [7]int32{0, 100, 320, 330, 500, 900, 20000}

// Board is the full Klikschaak position: 64 stacked squares plus the scalar
// state needed to make and unmake moves without recomputing from scratch.
type Board struct {
	Squares       [64]SquareStack
	Turn          Color
	Castling      uint8
	EPSquare      Square // NoSquare if unset
	HalfmoveClock uint16
	Fullmove      uint16
	KingSq        [2]Square // indexed by Color
	UnmovedPawns  [2]uint8  // per-file bitmask, indexed by Color
	Hash          uint64
}

// New returns an empty board with default scalar state (no pieces placed).
func New() *Board {
	b := &Board{
		Turn:     White,
		Castling: CastleAll,
		EPSquare: NoSquare,
		Fullmove: 1,
		KingSq:   [2]Square{E1, E8},
	}
	b.UnmovedPawns[White] = 0xFF
	b.UnmovedPawns[Black] = 0xFF
	return b
}

// NewFromFEN parses fen into a new Board. See ParseFEN for the accepted
// syntax, including the stack-notation extension.
func NewFromFEN(fen string) (*Board, error) {
	b := New()
	if err := b.SetFEN(fen); err != nil {
		return nil, err
	}
	return b, nil
}

// StartPos returns a board set to the initial Klikschaak position.
func StartPos() *Board {
	b, err := NewFromFEN(StartFEN)
	if err != nil {
		panic("board: invalid built-in starting FEN: " + err.Error())
	}
	return b
}

// Clear resets the board to an empty position with no pieces and no rights.
func (b *Board) Clear() {
	for i := range b.Squares {
		b.Squares[i] = SquareStack{}
	}
	b.Turn = White
	b.Castling = 0
	b.EPSquare = NoSquare
	b.HalfmoveClock = 0
	b.Fullmove = 1
	b.KingSq = [2]Square{NoSquare, NoSquare}
	b.UnmovedPawns = [2]uint8{}
	b.Hash = 0
}

// PieceAt returns the top piece occupying sq, or NoPiece if the square is empty.
func (b *Board) PieceAt(sq Square) Piece {
	return b.Squares[sq].Top()
}

// StackAt returns the full stack occupying sq.
func (b *Board) StackAt(sq Square) SquareStack {
	return b.Squares[sq]
}

// IsEmpty reports whether sq holds no pieces.
func (b *Board) IsEmpty(sq Square) bool {
	return b.Squares[sq].Empty()
}

// HasStack reports whether sq holds a klik'd pair of pieces.
func (b *Board) HasStack(sq Square) bool {
	return b.Squares[sq].Double()
}

// PutPiece places a single piece on an empty square, updating the king
// cache when it is a king. Callers must not use this to build stacks; it
// overwrites whatever was on sq.
func (b *Board) PutPiece(sq Square, p Piece) {
	b.Squares[sq] = SquareStack{Pieces: [2]Piece{p, NoPiece}, Count: 1}
	if PieceTypeOf(p) == King {
		b.KingSq[PieceColor(p)] = sq
	}
}

// InCheck reports whether the given color's king is currently attacked.
func (b *Board) InCheck(c Color) bool {
	return IsAttacked(b, b.KingSq[c], c.Opposite())
}
