package board

// SquareStack holds up to two pieces occupying a single square. Index 0 is
// the bottom piece, index 1 is the top piece klik'd onto it. A square is
// empty when Count is 0.
type SquareStack struct {
	Pieces [2]Piece
	Count  uint8
}

// Empty returns true if the square holds no pieces.
func (s SquareStack) Empty() bool {
	return s.Count == 0
}

// Single returns true if the square holds exactly one piece.
func (s SquareStack) Single() bool {
	return s.Count == 1
}

// Double returns true if the square holds a klik'd stack of two pieces.
func (s SquareStack) Double() bool {
	return s.Count == 2
}

// Top returns the uppermost piece, or NoPiece if the square is empty.
func (s SquareStack) Top() Piece {
	if s.Count == 0 {
		return NoPiece
	}
	return s.Pieces[s.Count-1]
}

// Bottom returns the bottom piece, or NoPiece if the square is empty.
func (s SquareStack) Bottom() Piece {
	if s.Count == 0 {
		return NoPiece
	}
	return s.Pieces[0]
}

// Add pushes a piece onto the stack. The caller must ensure Count < 2.
func (s *SquareStack) Add(p Piece) {
	s.Pieces[s.Count] = p
	s.Count++
}

// RemoveAt removes the piece at the given stack index (0 or 1), shifting
// any remaining piece down to index 0. Returns the removed piece.
func (s *SquareStack) RemoveAt(index int) Piece {
	removed := s.Pieces[index]
	if index == 0 && s.Count == 2 {
		s.Pieces[0] = s.Pieces[1]
	}
	s.Count--
	s.Pieces[s.Count] = NoPiece
	return removed
}

// Clear empties the square.
func (s *SquareStack) Clear() {
	s.Pieces[0] = NoPiece
	s.Pieces[1] = NoPiece
	s.Count = 0
}

// HasColor returns true if any piece in the stack belongs to c.
func (s SquareStack) HasColor(c Color) bool {
	for i := uint8(0); i < s.Count; i++ {
		if PieceColor(s.Pieces[i]) == c {
			return true
		}
	}
	return false
}

// IndexOfColor returns the stack index of the first piece belonging to c,
// or -1 if none.
func (s SquareStack) IndexOfColor(c Color) int {
	for i := uint8(0); i < s.Count; i++ {
		if PieceColor(s.Pieces[i]) == c {
			return int(i)
		}
	}
	return -1
}
