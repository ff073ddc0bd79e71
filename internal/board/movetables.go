package board

// Precomputed knight and king jump targets, indexed by origin square. Built
// once at package init instead of re-deriving offsets on every call.

var (
	knightTable [64][]Square
	kingTable   [64][]Square
)

var knightOffsets = [8]int{-17, -15, -10, -6, 6, 10, 15, 17}
var kingOffsets = [8]int{-9, -8, -7, -1, 1, 7, 8, 9}

var bishopDirections = [4]int{-9, -7, 7, 9}
var rookDirections = [4]int{-8, -1, 1, 8}

func init() {
	for sq := 0; sq < 64; sq++ {
		f := sq & 7
		r := sq >> 3

		for _, off := range knightOffsets {
			to := sq + off
			if to < 0 || to >= 64 {
				continue
			}
			tf, tr := to&7, to>>3
			if abs(f-tf) <= 2 && abs(r-tr) <= 2 {
				knightTable[sq] = append(knightTable[sq], Square(to))
			}
		}

		for _, off := range kingOffsets {
			to := sq + off
			if to < 0 || to >= 64 {
				continue
			}
			tf, tr := to&7, to>>3
			if abs(f-tf) <= 1 && abs(r-tr) <= 1 {
				kingTable[sq] = append(kingTable[sq], Square(to))
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func knightTargets(sq Square) []Square {
	return knightTable[sq]
}

func kingTargets(sq Square) []Square {
	return kingTable[sq]
}

// slidingTargets walks each direction from sq until it runs off the board,
// wraps a file edge, or hits an occupied square (which it includes before
// stopping, so captures are represented).
func slidingTargets(b *Board, sq Square, directions [4]int) []Square {
	targets := make([]Square, 0, 14)
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
			targets = append(targets, Square(current))
			if b.Squares[current].Count > 0 {
				break
			}
		}
	}
	return targets
}
