package board

import "strings"

// MoveType classifies what a Move does to the board beyond piece relocation.
type MoveType uint8

const (
	Normal MoveType = iota
	Capture
	Klik          // merge the moving piece onto a friendly piece at the destination
	Unklik        // split a stack, moving one member off the square
	UnklikKlik    // split a stack then immediately reform it elsewhere
	EnPassant
	CastleK
	CastleQ
	CastleKKlik // kingside castle where the rook klik's onto a friendly non-king piece on the f-file
	CastleQKlik // queenside castle where the rook klik's onto a friendly non-king piece on the d-file
	Promotion
	PromotionCapture
	// PromotionKlik is reserved for a pawn promotion that simultaneously
	// klik's onto an occupied destination. No generator currently emits it;
	// kept so future move generation work has a stable value to target.
	PromotionKlik
)

// UnklikIndex values. Combined moves of a whole stack use NoUnklikIndex;
// single-piece moves and castling carry 0, the index of the lone mover.
const NoUnklikIndex int8 = -1

var moveTypeNames = [...]string{
	Normal:           "NORMAL",
	Capture:          "CAPTURE",
	Klik:             "KLIK",
	Unklik:           "UNKLIK",
	UnklikKlik:       "UNKLIK_KLIK",
	EnPassant:        "EN_PASSANT",
	CastleK:          "CASTLE_K",
	CastleQ:          "CASTLE_Q",
	CastleKKlik:      "CASTLE_K_KLIK",
	CastleQKlik:      "CASTLE_Q_KLIK",
	Promotion:        "PROMOTION",
	PromotionCapture: "PROMOTION_CAPTURE",
	PromotionKlik:    "PROMOTION_KLIK",
}

// String returns the move type's front-end-facing name, matching the set
// the legal-moves endpoint reports (e.g. "UNKLIK_KLIK").
func (mt MoveType) String() string {
	if int(mt) < len(moveTypeNames) {
		return moveTypeNames[mt]
	}
	return "NORMAL"
}

// Move encodes a single pseudo-legal or legal move.
type Move struct {
	From        Square
	To          Square
	Type        MoveType
	UnklikIndex int8      // which stack member moves; NoUnklikIndex for a combined stack move
	Promotion   PieceType // promotion target for Promotion/PromotionCapture
}

// IsCapture returns true if the move removes an enemy piece from the board.
func (m Move) IsCapture() bool {
	switch m.Type {
	case Capture, EnPassant, PromotionCapture:
		return true
	default:
		return false
	}
}

// IsPromotion returns true if the move promotes a pawn.
func (m Move) IsPromotion() bool {
	switch m.Type {
	case Promotion, PromotionCapture, PromotionKlik:
		return true
	default:
		return false
	}
}

// IsCastle returns true if the move is any castling variant.
func (m Move) IsCastle() bool {
	switch m.Type {
	case CastleK, CastleQ, CastleKKlik, CastleQKlik:
		return true
	default:
		return false
	}
}

var promoLetters = map[PieceType]byte{
	Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q',
}

// UCI returns the move encoded the way the engine's move list API reports
// it: standard four/five character UCI, with a "k" suffix for a klik and a
// "u" + index suffix for an unklik.
func (m Move) UCI() string {
	var b strings.Builder
	b.WriteString(m.From.String())
	b.WriteString(m.To.String())
	if m.IsPromotion() {
		b.WriteByte(promoLetters[m.Promotion])
	}
	switch m.Type {
	case Klik, CastleKKlik, CastleQKlik:
		b.WriteByte('k')
	case Unklik, UnklikKlik:
		b.WriteByte('u')
		if m.UnklikIndex >= 0 {
			b.WriteByte('0' + byte(m.UnklikIndex))
		}
	}
	return b.String()
}

// MoveList is a growable collection of moves reused across search nodes to
// avoid per-node allocation.
type MoveList struct {
	moves []Move
}

// NewMoveList returns an empty list with room for a typical move count.
func NewMoveList() *MoveList {
	return &MoveList{moves: make([]Move, 0, 64)}
}

// Add appends a move.
func (l *MoveList) Add(m Move) {
	l.moves = append(l.moves, m)
}

// Len returns the number of moves currently stored.
func (l *MoveList) Len() int {
	return len(l.moves)
}

// Get returns the move at index i.
func (l *MoveList) Get(i int) Move {
	return l.moves[i]
}

// Set overwrites the move at index i, used by move ordering to sort in place.
func (l *MoveList) Set(i int, m Move) {
	l.moves[i] = m
}

// Reset clears the list for reuse without releasing its backing array.
func (l *MoveList) Reset() {
	l.moves = l.moves[:0]
}

// Slice returns the underlying moves. Callers must not retain it past reuse.
func (l *MoveList) Slice() []Move {
	return l.moves
}
