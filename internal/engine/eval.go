// Package engine implements position evaluation and alpha-beta search for
// Klikschaak positions.
package engine

import "github.com/klikschaak/engine/internal/board"

// CheckmateScore is returned (adjusted by ply-to-mate) when one side has no
// legal replies while in check.
const CheckmateScore int32 = 100000

// DrawScore is the evaluation assigned to stalemate and other forced draws.
const DrawScore int32 = 0

var pawnTable = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = [64]int32{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopTable = [64]int32{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookTable = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenTable = [64]int32{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMiddlegameTable = [64]int32{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var kingEndgameTable = [64]int32{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

// passedPawnBonus is indexed by ranks advanced past the 2nd/7th rank (0-6).
var passedPawnBonus = [7]int32{0, 10, 15, 25, 45, 75, 120}

func pstValue(pt board.PieceType, sq board.Square) int32 {
	switch pt {
	case board.Pawn:
		return pawnTable[sq]
	case board.Knight:
		return knightTable[sq]
	case board.Bishop:
		return bishopTable[sq]
	case board.Rook:
		return rookTable[sq]
	case board.Queen:
		return queenTable[sq]
	default:
		return 0
	}
}

// Evaluate scores the position from White's perspective: positive favors
// White, negative favors Black. Callers in negamax search negate it when
// Black is to move.
func Evaluate(b *board.Board) int32 {
	var score int32
	var queens, minors uint32
	var kingSqW, kingSqB board.Square

	var wPawnFiles, bPawnFiles [8]uint8
	wPawnSqs := make([]board.Square, 0, 8)
	bPawnSqs := make([]board.Square, 0, 8)

	for sq := board.Square(0); sq < 64; sq++ {
		stack := b.Squares[sq]
		if stack.Empty() {
			continue
		}

		for i := uint8(0); i < stack.Count; i++ {
			piece := stack.Pieces[i]
			isWhite := board.PieceColor(piece) == board.White
			pt := board.PieceTypeOf(piece)

			value := board.PieceValue[pt]
			if isWhite {
				score += value
			} else {
				score -= value
			}

			if pt == board.King {
				if isWhite {
					kingSqW = sq
				} else {
					kingSqB = sq
				}
			} else if pt >= board.Pawn && pt <= board.Queen {
				tableSq := sq
				if !isWhite {
					tableSq = sq.Mirror()
				}
				pst := pstValue(pt, tableSq)
				if isWhite {
					score += pst
				} else {
					score -= pst
				}
			}

			switch pt {
			case board.Queen:
				queens++
			case board.Knight, board.Bishop:
				minors++
			}

			if pt == board.Pawn {
				f := sq.File()
				r := sq.Rank()
				if isWhite {
					wPawnFiles[f] |= 1 << uint(r)
					wPawnSqs = append(wPawnSqs, sq)
				} else {
					bPawnFiles[f] |= 1 << uint(r)
					bPawnSqs = append(bPawnSqs, sq)
				}
			}
		}

		if stack.Double() {
			score += stackBonus(stack)
		}
	}

	endgame := queens == 0 || (queens == 1 && minors <= 1)
	kingTable := &kingMiddlegameTable
	if endgame {
		kingTable = &kingEndgameTable
	}
	score += kingTable[kingSqW]
	score -= kingTable[kingSqB.Mirror()]

	score += evaluateKingSafety(b)

	for _, sq := range wPawnSqs {
		score += passedPawnScore(b, sq, sq.File(), sq.Rank(), bPawnFiles[:], true)
	}
	for _, sq := range bPawnSqs {
		score -= passedPawnScore(b, sq, sq.File(), sq.Rank(), wPawnFiles[:], false)
	}

	if board.IsInCheck(b, board.Black) {
		score += 50
	}
	if board.IsInCheck(b, board.White) {
		score -= 50
	}

	return score
}

// stackBonus rewards useful same-color klik pairings: a pawn carrying a
// minor toward promotion, two minors combined, or a minor reinforcing a
// rook. It only applies when both stack members share a color; mixed-color
// stacks cannot occur under the rules, but the check mirrors the ground
// truth implementation's defensive symmetry.
func stackBonus(stack board.SquareStack) int32 {
	bottom, top := stack.Pieces[0], stack.Pieces[1]
	bColor, tColor := board.PieceColor(bottom), board.PieceColor(top)
	if bColor != tColor {
		return 0
	}

	bottomPt, topPt := board.PieceTypeOf(bottom), board.PieceTypeOf(top)
	var value int32

	isMinor := func(pt board.PieceType) bool { return pt == board.Knight || pt == board.Bishop }

	if isMinor(bottomPt) && isMinor(topPt) {
		value += 15
	}
	if isMinor(bottomPt) && topPt == board.Rook {
		value += 20
	}
	if topPt == board.Queen || bottomPt == board.Queen {
		value += 5
	}
	if bottomPt == board.Pawn {
		value += 10
	}
	if topPt != board.Pawn && bottomPt == board.Pawn {
		value -= 5
	}

	if bColor == board.Black {
		value = -value
	}
	return value
}

func passedPawnScore(b *board.Board, sq board.Square, file, rank int, enemyFiles []uint8, white bool) int32 {
	var aheadMask uint8
	var advancement int
	if white {
		aheadMask = ^uint8(0) << uint(rank+1)
		advancement = rank - 1
	} else {
		aheadMask = (uint8(1) << uint(rank)) - 1
		advancement = 6 - rank
	}

	lo := file - 1
	if lo < 0 {
		lo = 0
	}
	hi := file + 1
	if hi > 7 {
		hi = 7
	}
	for f := lo; f <= hi; f++ {
		if enemyFiles[f]&aheadMask != 0 {
			return 0
		}
	}

	if advancement < 0 {
		return 0
	}
	if advancement > 6 {
		advancement = 6
	}
	bonus := passedPawnBonus[advancement]
	if b.Squares[sq].Count >= 2 {
		bonus += 15
	}
	return bonus
}

func evaluateKingSafety(b *board.Board) int32 {
	var score int32

	for _, color := range [2]board.Color{board.White, board.Black} {
		kingSq := b.KingSq[color]
		if !kingSq.IsValid() {
			continue
		}

		kingFile, kingRank := kingSq.File(), kingSq.Rank()
		var safety int32

		if color == board.White {
			switch kingSq {
			case board.G1, board.C1:
				safety += 30
			case board.E1:
				safety -= 20
			}
		} else {
			switch kingSq {
			case board.G8, board.C8:
				safety += 30
			case board.E8:
				safety -= 20
			}
		}

		pawn := board.MakePiece(color, board.Pawn)
		shieldRank := kingRank + 1
		if color == board.Black {
			shieldRank = kingRank - 1
		}

		if shieldRank >= 0 && shieldRank < 8 {
			for df := -1; df <= 1; df++ {
				f := kingFile + df
				if f < 0 || f > 7 {
					continue
				}
				stack := b.Squares[board.NewSquare(f, shieldRank)]
				for i := uint8(0); i < stack.Count; i++ {
					if stack.Pieces[i] == pawn {
						safety += 10
						break
					}
				}
			}
		}

		if b.HasStack(kingSq) {
			safety -= 40
		}

		if color == board.White {
			score += safety
		} else {
			score -= safety
		}
	}

	return score
}
