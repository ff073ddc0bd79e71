package engine

import "github.com/klikschaak/engine/internal/board"

// Move ordering priorities. Higher scores are searched first.
const (
	ttMoveScore      = 10000000
	goodCaptureBase  = 1000000
	killerScore1     = 900000
	killerScore2     = 800000
	counterMoveScore = 700000
)

// maxPly bounds the killer-move table; no Klikschaak search goes this deep.
const maxPly = 128

var noMove = board.Move{From: board.NoSquare, To: board.NoSquare}

// moveOrderer tracks the heuristics used to sort moves at each node:
// killer quiets, a from/to history table, and a per-square countermove
// table keyed on the opponent's last move.
type moveOrderer struct {
	killers     [maxPly][2]board.Move
	history     [64][64]int
	counterMove [64][64]board.Move
}

func newMoveOrderer() *moveOrderer {
	mo := &moveOrderer{}
	mo.reset()
	return mo
}

func (mo *moveOrderer) reset() {
	for i := range mo.killers {
		mo.killers[i][0] = noMove
		mo.killers[i][1] = noMove
	}
	for f := range mo.counterMove {
		for t := range mo.counterMove[f] {
			mo.counterMove[f][t] = noMove
		}
	}
}

// decayHistory halves every history score between iterative-deepening
// iterations so scores from shallow, less reliable iterations fade.
func (mo *moveOrderer) decayHistory() {
	for f := range mo.history {
		for t := range mo.history[f] {
			mo.history[f][t] >>= 1
		}
	}
}

// isCaptureOn reports whether m removes an enemy piece, for board states
// where the move's own Type tag might predate a klik/unklik refinement.
func isCaptureOn(b *board.Board, m board.Move) bool {
	if m.IsCapture() {
		return true
	}
	target := b.Squares[m.To]
	if target.Count > 0 {
		return board.PieceColor(target.Top()) != b.Turn
	}
	return false
}

// mvvLvaScore ranks a capture by (10x total victim material) minus the
// attacking piece's value, so equal captures still prefer giving up less.
func mvvLvaScore(b *board.Board, m board.Move) int {
	target := b.Squares[m.To]
	var victimValue int32
	if target.Count == 0 {
		victimValue = 100 // en passant: the captured pawn isn't on the destination square
	} else {
		for i := uint8(0); i < target.Count; i++ {
			p := target.Pieces[i]
			if board.PieceColor(p) != b.Turn {
				victimValue += board.PieceValue[board.PieceTypeOf(p)]
			}
		}
	}

	fromStack := b.Squares[m.From]
	var attacker board.Piece
	if m.UnklikIndex >= 0 && uint8(m.UnklikIndex) < fromStack.Count {
		attacker = fromStack.Pieces[m.UnklikIndex]
	} else if fromStack.Count > 0 {
		attacker = fromStack.Top()
	}

	var attackerValue int32
	if attacker != board.NoPiece {
		attackerValue = board.PieceValue[board.PieceTypeOf(attacker)]
	}

	return int(victimValue*10 - attackerValue)
}

func (mo *moveOrderer) scoreMove(b *board.Board, m board.Move, ply int, ttMove, prevMove board.Move) int {
	switch {
	case m == ttMove:
		return ttMoveScore
	case isCaptureOn(b, m):
		return goodCaptureBase + mvvLvaScore(b, m)
	case ply < maxPly && mo.killers[ply][0] == m:
		return killerScore1
	case ply < maxPly && mo.killers[ply][1] == m:
		return killerScore2
	case prevMove != noMove && mo.counterMove[prevMove.From][prevMove.To] == m:
		return counterMoveScore
	default:
		return mo.history[m.From][m.To]
	}
}

// orderMoves scores every move in ml and sorts it highest-first in place.
func (mo *moveOrderer) orderMoves(b *board.Board, ml *board.MoveList, ply int, ttMove, prevMove board.Move) {
	n := ml.Len()
	scores := make([]int, n)
	for i := 0; i < n; i++ {
		scores[i] = mo.scoreMove(b, ml.Get(i), ply, ttMove, prevMove)
	}

	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			mi, mj := ml.Get(i), ml.Get(best)
			ml.Set(i, mj)
			ml.Set(best, mi)
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}

// orderCapturesByMVVLVA sorts a capture-only list for quiescence search,
// where killer/history context does not apply.
func orderCapturesByMVVLVA(b *board.Board, ml *board.MoveList) {
	n := ml.Len()
	scores := make([]int, n)
	for i := 0; i < n; i++ {
		scores[i] = mvvLvaScore(b, ml.Get(i))
	}
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			mi, mj := ml.Get(i), ml.Get(best)
			ml.Set(i, mj)
			ml.Set(best, mi)
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}

func (mo *moveOrderer) updateKillers(m board.Move, ply int) {
	if ply >= maxPly || mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

func (mo *moveOrderer) updateHistory(m board.Move, depth int) {
	mo.history[m.From][m.To] += depth * depth
}

func (mo *moveOrderer) updateCounterMove(prevMove, counter board.Move) {
	if prevMove == noMove {
		return
	}
	mo.counterMove[prevMove.From][prevMove.To] = counter
}
