package board

// modifiedSquare records a square's stack contents before a move touched
// it, so UnmakeMove can restore it verbatim.
type modifiedSquare struct {
	sq    Square
	stack SquareStack
}

// Undo captures everything MakeMove changes, so UnmakeMove can restore the
// board to its exact prior state, including the incrementally maintained
// Zobrist hash.
type Undo struct {
	modified      []modifiedSquare
	castling      uint8
	epSquare      Square
	halfmoveClock uint16
	kingSq        [2]Square
	fullmove      uint16
	unmovedPawns  [2]uint8
	hash          uint64
}

func (b *Board) snapshot(u *Undo) {
	u.modified = u.modified[:0]
	u.castling = b.Castling
	u.epSquare = b.EPSquare
	u.halfmoveClock = b.HalfmoveClock
	u.kingSq = b.KingSq
	u.fullmove = b.Fullmove
	u.unmovedPawns = b.UnmovedPawns
	u.hash = b.Hash
}

func (b *Board) record(u *Undo, sq Square) {
	u.modified = append(u.modified, modifiedSquare{sq: sq, stack: b.Squares[sq]})
}

// MakeMove applies mv to the board, mutating it in place, and returns an
// Undo that UnmakeMove can later use to reverse it. mv is assumed to be at
// least pseudo-legal; callers check legality separately via IsInCheck after
// playing the move (see the movegen package).
func (b *Board) MakeMove(mv Move) Undo {
	var undo Undo
	b.snapshot(&undo)

	from, to := mv.From, mv.To
	b.record(&undo, from)
	b.record(&undo, to)

	fromStack := b.Squares[from]
	movingType := b.movingPieceType(fromStack, mv)

	switch mv.Type {
	case CastleK, CastleQ, CastleKKlik, CastleQKlik:
		b.makeCastle(&undo, mv)
	case Unklik, UnklikKlik:
		b.makeUnklik(mv)
	case Klik:
		b.makeKlik(from, to)
	case EnPassant:
		b.makeEnPassant(&undo, from, to)
	case Promotion, PromotionCapture:
		b.makePromotion(mv, fromStack)
	default:
		b.makeNormal(from, to)
	}

	b.updateCastlingRights(from, to)
	b.updateHalfmoveClock(movingType, mv)
	b.updateEnPassant(from, to, movingType)
	b.updateUnmovedPawns(from, mv.Type, movingType)

	b.Turn = b.Turn.Opposite()
	if b.Turn == White {
		b.Fullmove++
	}

	b.Hash = b.incrementalHash(&undo)
	return undo
}

// movingPieceType identifies the type of piece that is relocating, before
// any square is mutated. For a combined move (UnklikIndex == -1 and the
// square holds two friendly pieces) it is defined as the pawn in the stack
// if one is present, matching how combined-move promotion/ep detection works.
func (b *Board) movingPieceType(fromStack SquareStack, mv Move) PieceType {
	switch mv.Type {
	case Unklik, UnklikKlik:
		if mv.UnklikIndex >= 0 && uint8(mv.UnklikIndex) < fromStack.Count {
			return PieceTypeOf(fromStack.Pieces[mv.UnklikIndex])
		}
		return NoPieceType
	}
	if mv.UnklikIndex == NoUnklikIndex && fromStack.Count == 2 {
		for i := uint8(0); i < fromStack.Count; i++ {
			if PieceTypeOf(fromStack.Pieces[i]) == Pawn {
				return Pawn
			}
		}
		return NoPieceType
	}
	if fromStack.Count > 0 {
		return PieceTypeOf(fromStack.Top())
	}
	return NoPieceType
}

func (b *Board) makeCastle(undo *Undo, mv Move) {
	isKingside := mv.Type == CastleK || mv.Type == CastleKKlik
	isKlik := mv.Type == CastleKKlik || mv.Type == CastleQKlik
	rank := 0
	if b.Turn == Black {
		rank = 7
	}
	rookFromFile := 0
	if isKingside {
		rookFromFile = 7
	}
	rookToFile := 3
	if isKingside {
		rookToFile = 5
	}
	rookFrom := NewSquare(rookFromFile, rank)
	rookTo := NewSquare(rookToFile, rank)
	rookPiece := MakePiece(b.Turn, Rook)

	b.record(undo, rookFrom)
	b.record(undo, rookTo)

	king := b.Squares[mv.From].Top()

	rookStack := &b.Squares[rookFrom]
	rook := rookPiece
	for i := uint8(0); i < rookStack.Count; i++ {
		if rookStack.Pieces[i] == rookPiece {
			rook = rookStack.RemoveAt(int(i))
			break
		}
	}

	b.Squares[mv.From].Clear()
	b.Squares[mv.To] = SquareStack{Pieces: [2]Piece{king, NoPiece}, Count: 1}

	if isKlik {
		b.Squares[rookTo].Add(rook)
	} else {
		b.Squares[rookTo] = SquareStack{Pieces: [2]Piece{rook, NoPiece}, Count: 1}
	}

	b.KingSq[b.Turn] = mv.To
}

func (b *Board) makeUnklik(mv Move) {
	moving := b.Squares[mv.From].RemoveAt(int(mv.UnklikIndex))
	if mv.Type == UnklikKlik {
		b.Squares[mv.To].Add(moving)
	} else {
		b.Squares[mv.To] = SquareStack{Pieces: [2]Piece{moving, NoPiece}, Count: 1}
	}
	if PieceTypeOf(moving) == King {
		b.KingSq[b.Turn] = mv.To
	}
}

func (b *Board) makeKlik(from, to Square) {
	old := b.Squares[from]
	b.Squares[from].Clear()
	for i := uint8(0); i < old.Count; i++ {
		p := old.Pieces[i]
		b.Squares[to].Add(p)
		if PieceTypeOf(p) == King {
			b.KingSq[b.Turn] = to
		}
	}
}

func (b *Board) makeEnPassant(undo *Undo, from, to Square) {
	capturedSq := to - 8
	if b.Turn == Black {
		capturedSq = to + 8
	}
	b.record(undo, capturedSq)

	old := b.Squares[from]
	b.Squares[from].Clear()
	b.Squares[capturedSq].Clear()
	b.Squares[to] = old
}

func (b *Board) makePromotion(mv Move, fromStack SquareStack) {
	promoted := MakePiece(b.Turn, mv.Promotion)

	switch {
	case mv.UnklikIndex == NoUnklikIndex && fromStack.Count == 2:
		// Combined promotion: carry the non-pawn companion along as a klik.
		var companion Piece = NoPiece
		for i := uint8(0); i < fromStack.Count; i++ {
			if PieceTypeOf(fromStack.Pieces[i]) != Pawn {
				companion = fromStack.Pieces[i]
				break
			}
		}
		b.Squares[mv.From].Clear()
		if companion != NoPiece {
			b.Squares[mv.To] = SquareStack{Pieces: [2]Piece{companion, promoted}, Count: 2}
		} else {
			b.Squares[mv.To] = SquareStack{Pieces: [2]Piece{promoted, NoPiece}, Count: 1}
		}
	case mv.UnklikIndex > 0 || fromStack.Count >= 2:
		b.Squares[mv.From].RemoveAt(int(mv.UnklikIndex))
		b.Squares[mv.To] = SquareStack{Pieces: [2]Piece{promoted, NoPiece}, Count: 1}
	default:
		b.Squares[mv.From].Clear()
		b.Squares[mv.To] = SquareStack{Pieces: [2]Piece{promoted, NoPiece}, Count: 1}
	}
}

func (b *Board) makeNormal(from, to Square) {
	old := b.Squares[from]
	b.Squares[from].Clear()
	b.Squares[to].Clear()
	for i := uint8(0); i < old.Count; i++ {
		p := old.Pieces[i]
		b.Squares[to].Add(p)
		if PieceTypeOf(p) == King {
			b.KingSq[b.Turn] = to
		}
	}
}

func (b *Board) updateCastlingRights(from, to Square) {
	if from == E1 || to == E1 {
		b.Castling &^= CastleWK | CastleWQ
	}
	if from == E8 || to == E8 {
		b.Castling &^= CastleBK | CastleBQ
	}
	if from == A1 || to == A1 {
		b.Castling &^= CastleWQ
	}
	if from == H1 || to == H1 {
		b.Castling &^= CastleWK
	}
	if from == A8 || to == A8 {
		b.Castling &^= CastleBQ
	}
	if from == H8 || to == H8 {
		b.Castling &^= CastleBK
	}
}

func (b *Board) updateHalfmoveClock(movingType PieceType, mv Move) {
	isCapture := mv.Type == Capture || mv.Type == EnPassant || mv.Type == PromotionCapture
	if movingType == Pawn || isCapture {
		b.HalfmoveClock = 0
	} else {
		b.HalfmoveClock++
	}
}

func (b *Board) updateEnPassant(from, to Square, movingType PieceType) {
	b.EPSquare = NoSquare
	if movingType != Pawn {
		return
	}
	fromRank, toRank := from.Rank(), to.Rank()
	diff := toRank - fromRank
	if diff == 2 || diff == -2 {
		b.EPSquare = Square((int(from) + int(to)) / 2)
	}
}

func (b *Board) updateUnmovedPawns(from Square, mt MoveType, movingType PieceType) {
	moved := b.Turn
	fromRank, fromFile := from.Rank(), from.File()

	relevant := movingType == Pawn || mt == Normal || mt == Capture || mt == Klik
	if !relevant {
		return
	}
	if moved == White && fromRank == 1 {
		b.UnmovedPawns[White] &^= 1 << uint(fromFile)
	} else if moved == Black && fromRank == 6 {
		b.UnmovedPawns[Black] &^= 1 << uint(fromFile)
	}
}

func (b *Board) incrementalHash(undo *Undo) uint64 {
	z := zobristOnce()
	h := undo.hash

	for _, m := range undo.modified {
		old := m.stack
		for i := uint8(0); i < old.Count; i++ {
			h ^= z.piece[old.Pieces[i]][i][m.sq]
		}
		cur := b.Squares[m.sq]
		for i := uint8(0); i < cur.Count; i++ {
			h ^= z.piece[cur.Pieces[i]][i][m.sq]
		}
	}

	h ^= z.castling[undo.castling] ^ z.castling[b.Castling]

	if undo.epSquare.IsValid() {
		h ^= z.enPassant[undo.epSquare.File()]
	}
	if b.EPSquare.IsValid() {
		h ^= z.enPassant[b.EPSquare.File()]
	}

	h ^= z.turn
	return h
}

// UnmakeMove reverses a move previously applied with MakeMove, restoring
// the board to exactly the state undo was captured from.
func (b *Board) UnmakeMove(undo Undo) {
	for _, m := range undo.modified {
		b.Squares[m.sq] = m.stack
	}
	b.Castling = undo.castling
	b.EPSquare = undo.epSquare
	b.HalfmoveClock = undo.halfmoveClock
	b.KingSq = undo.kingSq
	b.Fullmove = undo.fullmove
	b.UnmovedPawns = undo.unmovedPawns
	b.Hash = undo.hash
	b.Turn = b.Turn.Opposite()
}
