package board

// IsAttacked reports whether sq is attacked by any piece of byColor, for
// the current position. Used both for check detection and for castling's
// "king does not pass through check" rule.
func IsAttacked(b *Board, sq Square, byColor Color) bool {
	squares := &b.Squares

	for _, from := range knightTargets(sq) {
		stack := squares[from]
		for i := uint8(0); i < stack.Count; i++ {
			p := stack.Pieces[i]
			if PieceColor(p) == byColor && PieceTypeOf(p) == Knight {
				return true
			}
		}
	}

	for _, from := range kingTargets(sq) {
		stack := squares[from]
		for i := uint8(0); i < stack.Count; i++ {
			p := stack.Pieces[i]
			if PieceColor(p) == byColor && PieceTypeOf(p) == King {
				return true
			}
		}
	}

	if rayAttacked(b, sq, byColor, bishopDirections, Bishop) {
		return true
	}
	if rayAttacked(b, sq, byColor, rookDirections, Rook) {
		return true
	}

	pawnDir := 1
	if byColor == Black {
		pawnDir = -1
	}
	enemyPawn := MakePiece(byColor, Pawn)
	sqFile := sq.File()

	for _, df := range [2]int{-1, 1} {
		attackerSq := int(sq) - 8*pawnDir + df
		if attackerSq < 0 || attackerSq >= 64 {
			continue
		}
		if abs((attackerSq&7)-sqFile) != 1 {
			continue
		}
		stack := squares[attackerSq]
		for i := uint8(0); i < stack.Count; i++ {
			if stack.Pieces[i] == enemyPawn {
				return true
			}
		}
	}

	return false
}

func rayAttacked(b *Board, sq Square, byColor Color, directions [4]int, slider PieceType) bool {
	for _, dir := range directions {
		current := int(sq)
		for {
			prev := current
			current += dir
			if current < 0 || current >= 64 {
				break
			}
			if abs((current&7)-(prev&7)) > 1 {
				break
			}
			stack := b.Squares[current]
			if stack.Count > 0 {
				for i := uint8(0); i < stack.Count; i++ {
					p := stack.Pieces[i]
					if PieceColor(p) == byColor {
						pt := PieceTypeOf(p)
						if pt == slider || pt == Queen {
							return true
						}
					}
				}
				break
			}
		}
	}
	return false
}

// IsInCheck reports whether c's king is attacked. Equivalent to
// b.InCheck(c); kept as a free function to mirror is_attacked/is_in_check
// pairing used throughout move generation and search.
func IsInCheck(b *Board, c Color) bool {
	king := b.KingSq[c]
	if !king.IsValid() {
		return false
	}
	return IsAttacked(b, king, c.Opposite())
}
