package board

var promotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}

// GenerateLegalMoves returns every move that does not leave the mover's own
// king in check.
func (b *Board) GenerateLegalMoves() *MoveList {
	ml := b.GeneratePseudoLegalMoves()
	return b.filterLegal(ml)
}

// GeneratePseudoLegalMoves returns every move the rules allow without
// checking whether it leaves the mover's own king in check.
func (b *Board) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	b.generateAll(ml, false)
	return ml
}

// GenerateCaptures returns only legal capturing moves, for use in
// quiescence search.
func (b *Board) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	b.generateAll(ml, true)
	return b.filterLegal(ml)
}

// IsLegal reports whether mv, played from the current position, leaves the
// mover's own king safe.
func (b *Board) IsLegal(mv Move) bool {
	undo := b.MakeMove(mv)
	opponentJustMoved := b.Turn.Opposite()
	legal := !IsInCheck(b, opponentJustMoved)
	b.UnmakeMove(undo)
	return legal
}

func (b *Board) filterLegal(ml *MoveList) *MoveList {
	out := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		mv := ml.Get(i)
		if b.IsLegal(mv) {
			out.Add(mv)
		}
	}
	return out
}

func (b *Board) generateAll(ml *MoveList, capturesOnly bool) {
	color := b.Turn

	for sq := Square(0); sq < 64; sq++ {
		stack := b.Squares[sq]
		if stack.Empty() {
			continue
		}

		if stack.Double() {
			var friendlyIdx [2]int
			var friendlyPieces [2]Piece
			n := 0
			for i := uint8(0); i < stack.Count; i++ {
				p := stack.Pieces[i]
				if PieceColor(p) == color {
					friendlyIdx[n] = int(i)
					friendlyPieces[n] = p
					n++
				}
			}

			for k := 0; k < n; k++ {
				b.generateUnklikMoves(ml, sq, friendlyIdx[k], friendlyPieces[k], capturesOnly)
			}
			if n == 2 {
				b.generateCombinedMoves(ml, sq, friendlyPieces, capturesOnly)
			}
		} else {
			p := stack.Pieces[0]
			if PieceColor(p) == color {
				b.generatePieceMoves(ml, sq, p, capturesOnly)
			}
		}
	}

	if !capturesOnly {
		b.generateCastlingMoves(ml)
	}
}

// pawnTarget is a destination square paired with the base move type before
// any promotion or klik refinement is layered on.
type pawnTarget struct {
	to Square
	mt MoveType
}

func (b *Board) pawnTargets(sq Square, color Color, capturesOnly, includeKlik bool) []pawnTarget {
	targets := make([]pawnTarget, 0, 8)
	direction := 1
	startRank, promoRank := 1, 7
	if color == Black {
		direction = -1
		startRank, promoRank = 6, 0
	}
	rank, file := sq.Rank(), sq.File()

	if !capturesOnly {
		oneFwd := int(sq) + 8*direction
		if oneFwd >= 0 && oneFwd < 64 {
			fwdSq := Square(oneFwd)
			fwdStack := b.Squares[fwdSq]
			if fwdStack.Empty() {
				if fwdSq.Rank() == promoRank {
					targets = append(targets, pawnTarget{fwdSq, Promotion})
				} else {
					targets = append(targets, pawnTarget{fwdSq, Normal})

					if rank == startRank && b.UnmovedPawns[color]&(1<<uint(file)) != 0 {
						twoFwd := int(sq) + 16*direction
						if twoFwd >= 0 && twoFwd < 64 {
							twoSq := Square(twoFwd)
							twoStack := b.Squares[twoSq]
							if twoStack.Empty() {
								targets = append(targets, pawnTarget{twoSq, Normal})
							} else if includeKlik && twoStack.Count < 2 &&
								PieceColor(twoStack.Top()) == color && PieceTypeOf(twoStack.Top()) != King {
								targets = append(targets, pawnTarget{twoSq, Klik})
							}
						}
					}
				}
			} else if includeKlik && fwdStack.Count < 2 &&
				PieceColor(fwdStack.Top()) == color && PieceTypeOf(fwdStack.Top()) != King {
				if fwdSq.Rank() != promoRank {
					targets = append(targets, pawnTarget{fwdSq, Klik})
				}
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		toFile := file + df
		if toFile < 0 || toFile > 7 {
			continue
		}
		toIdx := int(sq) + 8*direction + df
		if toIdx < 0 || toIdx >= 64 {
			continue
		}
		to := Square(toIdx)
		targetStack := b.Squares[to]
		if targetStack.Count > 0 && PieceColor(targetStack.Top()) != color {
			if to.Rank() == promoRank {
				targets = append(targets, pawnTarget{to, PromotionCapture})
			} else {
				targets = append(targets, pawnTarget{to, Capture})
			}
		}
		if to == b.EPSquare {
			targets = append(targets, pawnTarget{to, EnPassant})
		}
	}

	return targets
}

func (b *Board) generatePieceMoves(ml *MoveList, sq Square, p Piece, capturesOnly bool) {
	color := PieceColor(p)
	pt := PieceTypeOf(p)

	if pt == Pawn {
		for _, t := range b.pawnTargets(sq, color, capturesOnly, true) {
			if t.mt == Promotion || t.mt == PromotionCapture {
				for _, promo := range promotionPieces {
					ml.Add(Move{From: sq, To: t.to, Type: t.mt, UnklikIndex: 0, Promotion: promo})
				}
			} else {
				ml.Add(Move{From: sq, To: t.to, Type: t.mt})
			}
		}
		return
	}

	for _, to := range b.pieceTargets(sq, pt) {
		targetStack := b.Squares[to]
		switch {
		case targetStack.Empty():
			if !capturesOnly {
				ml.Add(Move{From: sq, To: to, Type: Normal})
			}
		case PieceColor(targetStack.Top()) != color:
			ml.Add(Move{From: sq, To: to, Type: Capture})
		case !capturesOnly && targetStack.Count < 2:
			if pt != King && PieceTypeOf(targetStack.Top()) != King {
				ml.Add(Move{From: sq, To: to, Type: Klik})
			}
		}
	}
}

func (b *Board) pieceTargets(sq Square, pt PieceType) []Square {
	switch pt {
	case Knight:
		return knightTargets(sq)
	case Bishop:
		return slidingTargets(b, sq, bishopDirections)
	case Rook:
		return slidingTargets(b, sq, rookDirections)
	case Queen:
		t := slidingTargets(b, sq, bishopDirections)
		return append(t, slidingTargets(b, sq, rookDirections)...)
	case King:
		return kingTargets(sq)
	default:
		return nil
	}
}

func (b *Board) generateUnklikMoves(ml *MoveList, sq Square, pieceIdx int, p Piece, capturesOnly bool) {
	color := PieceColor(p)
	pt := PieceTypeOf(p)
	idx := int8(pieceIdx)

	if pt == Pawn {
		for _, t := range b.pawnTargets(sq, color, capturesOnly, true) {
			targetStack := b.Squares[t.to]
			switch {
			case t.mt == EnPassant:
				ml.Add(Move{From: sq, To: t.to, Type: EnPassant, UnklikIndex: idx})
			case t.mt == Promotion || t.mt == PromotionCapture:
				mt := Promotion
				if targetStack.Count > 0 && PieceColor(targetStack.Top()) != color {
					mt = PromotionCapture
				}
				for _, promo := range promotionPieces {
					ml.Add(Move{From: sq, To: t.to, Type: mt, UnklikIndex: idx, Promotion: promo})
				}
			case targetStack.Empty():
				if !capturesOnly {
					ml.Add(Move{From: sq, To: t.to, Type: Unklik, UnklikIndex: idx})
				}
			case PieceColor(targetStack.Top()) != color:
				ml.Add(Move{From: sq, To: t.to, Type: Unklik, UnklikIndex: idx})
			case !capturesOnly && targetStack.Count < 2 && PieceTypeOf(targetStack.Top()) != King:
				promoRank := 7
				if color == Black {
					promoRank = 0
				}
				if t.to.Rank() != promoRank {
					ml.Add(Move{From: sq, To: t.to, Type: UnklikKlik, UnklikIndex: idx})
				}
			}
		}
		return
	}

	for _, to := range b.pieceTargets(sq, pt) {
		targetStack := b.Squares[to]
		switch {
		case targetStack.Empty():
			if !capturesOnly {
				ml.Add(Move{From: sq, To: to, Type: Unklik, UnklikIndex: idx})
			}
		case PieceColor(targetStack.Top()) != color:
			ml.Add(Move{From: sq, To: to, Type: Unklik, UnklikIndex: idx})
		case !capturesOnly && targetStack.Count < 2:
			if pt != King && PieceTypeOf(targetStack.Top()) != King {
				ml.Add(Move{From: sq, To: to, Type: UnklikKlik, UnklikIndex: idx})
			}
		}
	}
}

// generateCombinedMoves generates moves where both stacked pieces travel
// together onto an overlapping target square. The set of reachable squares
// is the union of each piece's individual reach; a pawn's presence in the
// pair restricts landing on the back rank and gates promotion/en passant to
// squares the pawn itself could reach.
func (b *Board) generateCombinedMoves(ml *MoveList, sq Square, pieces [2]Piece, capturesOnly bool) {
	color := PieceColor(pieces[0])

	hasPawn := false
	for _, p := range pieces {
		if PieceTypeOf(p) == Pawn {
			hasPawn = true
			break
		}
	}

	backRank, promoRank := 0, 7
	if color == Black {
		backRank, promoRank = 7, 0
	}

	allTargets := make(map[Square]bool)
	pawnTargetSet := make(map[Square]bool)

	for _, p := range pieces {
		pt := PieceTypeOf(p)
		if pt == Pawn {
			direction := 1
			startRank := 1
			if color == Black {
				direction = -1
				startRank = 6
			}
			rank, file := sq.Rank(), sq.File()

			if !capturesOnly {
				oneFwd := int(sq) + 8*direction
				if oneFwd >= 0 && oneFwd < 64 {
					fwdSq := Square(oneFwd)
					if b.Squares[fwdSq].Empty() {
						pawnTargetSet[fwdSq] = true
						allTargets[fwdSq] = true

						if rank == startRank && b.UnmovedPawns[color]&(1<<uint(file)) != 0 {
							twoFwd := int(sq) + 16*direction
							if twoFwd >= 0 && twoFwd < 64 {
								twoSq := Square(twoFwd)
								if b.Squares[twoSq].Empty() {
									pawnTargetSet[twoSq] = true
									allTargets[twoSq] = true
								}
							}
						}
					}
				}
			}

			for _, df := range [2]int{-1, 1} {
				toFile := file + df
				if toFile < 0 || toFile > 7 {
					continue
				}
				toIdx := int(sq) + 8*direction + df
				if toIdx < 0 || toIdx >= 64 {
					continue
				}
				to := Square(toIdx)
				targetStack := b.Squares[to]
				if targetStack.Count > 0 && PieceColor(targetStack.Top()) != color {
					pawnTargetSet[to] = true
					allTargets[to] = true
				}
				if to == b.EPSquare {
					pawnTargetSet[to] = true
					allTargets[to] = true
				}
			}
		} else {
			for _, to := range b.pieceTargets(sq, pt) {
				allTargets[to] = true
			}
		}
	}

	for to := range allTargets {
		toRank := to.Rank()
		targetStack := b.Squares[to]

		if hasPawn && toRank == backRank {
			continue
		}

		if hasPawn && toRank == promoRank {
			if !pawnTargetSet[to] {
				continue
			}
			switch {
			case targetStack.Empty():
				for _, promo := range promotionPieces {
					ml.Add(Move{From: sq, To: to, Type: Promotion, UnklikIndex: NoUnklikIndex, Promotion: promo})
				}
			case PieceColor(targetStack.Top()) != color:
				for _, promo := range promotionPieces {
					ml.Add(Move{From: sq, To: to, Type: PromotionCapture, UnklikIndex: NoUnklikIndex, Promotion: promo})
				}
			}
			continue
		}

		if to == b.EPSquare && pawnTargetSet[to] {
			ml.Add(Move{From: sq, To: to, Type: EnPassant, UnklikIndex: NoUnklikIndex})
			continue
		}

		switch {
		case targetStack.Empty():
			if !capturesOnly {
				ml.Add(Move{From: sq, To: to, Type: Normal, UnklikIndex: NoUnklikIndex})
			}
		case PieceColor(targetStack.Top()) != color:
			ml.Add(Move{From: sq, To: to, Type: Capture, UnklikIndex: NoUnklikIndex})
		}
		// A friendly occupant can't be klik'd onto as a combined move: that
		// would exceed the two-piece stack limit.
	}
}

func (b *Board) generateCastlingMoves(ml *MoveList) {
	color := b.Turn
	enemy := color.Opposite()

	kingSq, rookPiece, base := E1, WhiteRook, 0
	if color == Black {
		kingSq, rookPiece, base = E8, BlackRook, 56
	}

	kingStack := b.Squares[kingSq]
	if kingStack.Empty() || kingStack.Top() != MakePiece(color, King) || kingStack.Count > 1 {
		return
	}
	if IsAttacked(b, kingSq, enemy) {
		return
	}

	rookSqK := Square(base + 7)
	rookSqQ := Square(base)
	fSq := Square(base + 5)
	gSq := Square(base + 6)
	dSq := Square(base + 3)
	cSq := Square(base + 2)
	bSq := Square(base + 1)

	ksRights, qsRights := CastleWK, CastleWQ
	if color == Black {
		ksRights, qsRights = CastleBK, CastleBQ
	}

	if b.Castling&ksRights != 0 {
		rookStack := b.Squares[rookSqK]
		if hasRook(rookStack, rookPiece) && b.Squares[gSq].Empty() && !IsAttacked(b, fSq, enemy) {
			fStack := b.Squares[fSq]
			switch {
			case fStack.Empty():
				ml.Add(Move{From: kingSq, To: gSq, Type: CastleK, UnklikIndex: 0})
			case fStack.Count == 1 && PieceColor(fStack.Pieces[0]) == color && PieceTypeOf(fStack.Pieces[0]) != King:
				ml.Add(Move{From: kingSq, To: gSq, Type: CastleKKlik, UnklikIndex: 0})
			}
		}
	}

	if b.Castling&qsRights != 0 {
		rookStack := b.Squares[rookSqQ]
		if hasRook(rookStack, rookPiece) && b.Squares[cSq].Empty() && b.Squares[bSq].Empty() && !IsAttacked(b, dSq, enemy) {
			dStack := b.Squares[dSq]
			switch {
			case dStack.Empty():
				ml.Add(Move{From: kingSq, To: cSq, Type: CastleQ, UnklikIndex: 0})
			case dStack.Count == 1 && PieceColor(dStack.Pieces[0]) == color && PieceTypeOf(dStack.Pieces[0]) != King:
				ml.Add(Move{From: kingSq, To: cSq, Type: CastleQKlik, UnklikIndex: 0})
			}
		}
	}
}

func hasRook(stack SquareStack, rookPiece Piece) bool {
	for i := uint8(0); i < stack.Count; i++ {
		if stack.Pieces[i] == rookPiece {
			return true
		}
	}
	return false
}
