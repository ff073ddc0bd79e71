package engine

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/klikschaak/engine/internal/board"
)

// MaxDepth is the largest depth callers should request from Search; it
// also sets the "near mate" score threshold used to decide between cp and
// mate display.
const MaxDepth = 64

// Infinity is used as the initial alpha/beta window; wide enough that no
// real evaluation or mate score can reach it.
const Infinity int32 = 1000000

const aspirationWindow int32 = 50

var futilityMargins = [3]int32{0, 100, 300}

// Info reports the result of one completed iterative-deepening iteration.
type Info struct {
	Depth int
	Score int32 // centipawns from White's perspective (positive favors White)
	Nodes uint64
	Time  time.Duration
	PV    []board.Move
}

// SearchEngine runs alpha-beta search against a single Board. It keeps no
// state shared with other instances: running two searches concurrently
// means constructing two SearchEngines, each with its own table and
// history, never sharing one across goroutines.
type SearchEngine struct {
	tt       *TranspositionTable
	order    *moveOrderer
	log      *zap.Logger
	onInfo   func(Info)

	nodes      uint64
	startTime  time.Time
	maxTime    time.Duration
	stopSearch bool
}

// NewSearchEngine builds a search engine with its own transposition table
// and move-ordering state. logger may be nil, in which case search runs
// silently; pass zap.NewNop() explicitly if that's the intent.
func NewSearchEngine(logger *zap.Logger) *SearchEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchEngine{
		tt:    NewTranspositionTable(defaultTTEntries),
		order: newMoveOrderer(),
		log:   logger,
	}
}

// OnInfo registers a callback invoked after each completed iterative
// deepening iteration, mirroring a UCI "info" line. Used by the HTTP
// front-end to stream search progress over a websocket.
func (s *SearchEngine) OnInfo(fn func(Info)) {
	s.onInfo = fn
}

// Search runs iterative deepening up to maxDepth or until timeLimit
// elapses (zero means no time limit), and returns the best move found
// along with the final iteration's info. If no move is found in time, it
// falls back to the first legal move so callers always get something to
// play.
func (s *SearchEngine) Search(b *board.Board, maxDepth int, timeLimit time.Duration) (board.Move, Info) {
	s.nodes = 0
	s.startTime = time.Now()
	s.maxTime = timeLimit
	if s.maxTime <= 0 {
		s.maxTime = time.Hour
	}
	s.stopSearch = false

	var info Info
	var bestMove board.Move
	haveMove := false
	var prevScore int32

	for d := 1; d <= maxDepth; d++ {
		if s.stopSearch {
			break
		}

		s.order.decayHistory()

		var score int32
		var pv []board.Move

		if d <= 1 {
			score, pv = s.alphaBeta(b, d, -Infinity, Infinity, 0, noMove)
		} else {
			alphaW := prevScore - aspirationWindow
			betaW := prevScore + aspirationWindow
			score, pv = s.alphaBeta(b, d, alphaW, betaW, 0, noMove)
			if !s.stopSearch && (score <= alphaW || score >= betaW) {
				score, pv = s.alphaBeta(b, d, -Infinity, Infinity, 0, noMove)
			}
		}

		if s.stopSearch {
			break
		}

		prevScore = score
		info.Depth = d
		reportScore := score
		if b.Turn == board.Black {
			reportScore = -score
		}
		info.Score = reportScore
		info.PV = pv
		info.Nodes = s.nodes
		info.Time = time.Since(s.startTime)

		if len(pv) > 0 {
			bestMove = pv[0]
			haveMove = true
		}

		s.logInfo(info)
		if s.onInfo != nil {
			s.onInfo(info)
		}
	}

	if !haveMove {
		ml := b.GenerateLegalMoves()
		if ml.Len() > 0 {
			bestMove = ml.Get(0)
		}
	}

	return bestMove, info
}

func (s *SearchEngine) logInfo(info Info) {
	pvStrs := make([]string, len(info.PV))
	for i, m := range info.PV {
		pvStrs[i] = m.UCI()
	}
	s.log.Debug("search info",
		zap.Int("depth", info.Depth),
		zap.Int32("score_cp", info.Score),
		zap.Uint64("nodes", info.Nodes),
		zap.Duration("time", info.Time),
		zap.String("pv", strings.Join(pvStrs, " ")),
	)
}

// String renders Info the way a UCI "info" line would, for CLI output.
func (info Info) String() string {
	pvStrs := make([]string, len(info.PV))
	for i, m := range info.PV {
		pvStrs[i] = m.UCI()
	}
	nps := uint64(0)
	if ms := info.Time.Milliseconds(); ms > 0 {
		nps = info.Nodes * 1000 / uint64(ms)
	}
	return fmt.Sprintf("info depth %d score cp %d nodes %d nps %d time %d pv %s",
		info.Depth, info.Score, info.Nodes, nps, info.Time.Milliseconds(), strings.Join(pvStrs, " "))
}

func isCaptureType(mt board.MoveType) bool {
	return mt == board.Capture || mt == board.EnPassant || mt == board.PromotionCapture
}

func (s *SearchEngine) alphaBeta(b *board.Board, depth int, alpha, beta int32, ply int, prevMove board.Move) (int32, []board.Move) {
	s.nodes++

	if s.nodes%4096 == 0 {
		if time.Since(s.startTime) >= s.maxTime {
			s.stopSearch = true
			return 0, nil
		}
	}
	if s.stopSearch {
		return 0, nil
	}

	if depth <= 0 {
		return s.quiescence(b, alpha, beta, 0), nil
	}

	ttKey := b.Hash
	var ttMove board.Move = noMove
	if entry, ok := s.tt.Probe(ttKey); ok {
		if int(entry.Depth) >= depth {
			switch entry.Flag {
			case TTExact:
				score := adjustScoreFromTT(entry.Score, ply)
				pv := []board.Move{}
				if entry.BestMove != noMove {
					pv = []board.Move{entry.BestMove}
				}
				return score, pv
			case TTAlpha:
				if entry.Score <= alpha {
					return alpha, nil
				}
			case TTBeta:
				if entry.Score >= beta {
					return beta, nil
				}
			}
		}
		ttMove = entry.BestMove
	}

	inCheck := board.IsInCheck(b, b.Turn)

	futile := false
	if !inCheck && depth <= 2 {
		staticEval := Evaluate(b)
		if b.Turn == board.Black {
			staticEval = -staticEval
		}
		if staticEval+futilityMargins[depth] <= alpha {
			futile = true
		}
	}

	moves := b.GeneratePseudoLegalMoves()
	if moves.Len() == 0 {
		if inCheck {
			return -CheckmateScore + int32(ply), nil
		}
		return DrawScore, nil
	}

	s.order.orderMoves(b, moves, ply, ttMove, prevMove)

	originalAlpha := alpha
	bestScore := -Infinity
	bestMove := noMove
	var bestPV []board.Move
	legalCount := 0

	for i := 0; i < moves.Len(); i++ {
		mv := moves.Get(i)
		isCap := isCaptureType(mv.Type) || isCaptureOn(b, mv)

		if futile && !isCap && !inCheck && legalCount > 0 {
			continue
		}

		undo := b.MakeMove(mv)
		if board.IsInCheck(b, b.Turn.Opposite()) {
			b.UnmakeMove(undo)
			continue
		}

		legalCount++
		givesCheck := board.IsInCheck(b, b.Turn)

		var score int32
		var childPV []board.Move

		if legalCount == 1 {
			sc, pv := s.alphaBeta(b, depth-1, -beta, -alpha, ply+1, mv)
			score, childPV = -sc, pv
		} else {
			reduction := 0
			if depth >= 3 && legalCount > 3 && !isCap && !inCheck && !givesCheck {
				reduction = 1
			}

			sc, _ := s.alphaBeta(b, depth-1-reduction, -alpha-1, -alpha, ply+1, mv)
			score = -sc

			if reduction > 0 && score > alpha {
				sc, _ = s.alphaBeta(b, depth-1, -alpha-1, -alpha, ply+1, mv)
				score = -sc
			}

			if alpha < score && score < beta {
				sc, pv := s.alphaBeta(b, depth-1, -beta, -score, ply+1, mv)
				score, childPV = -sc, pv
			}
		}

		b.UnmakeMove(undo)

		if s.stopSearch {
			return 0, nil
		}

		if score > bestScore {
			bestScore = score
			bestMove = mv
			bestPV = append([]board.Move{mv}, childPV...)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !isCap {
				s.order.updateKillers(mv, ply)
				s.order.updateHistory(mv, depth)
				if prevMove != noMove {
					s.order.updateCounterMove(prevMove, mv)
				}
			}
			break
		}
	}

	if legalCount == 0 {
		if inCheck {
			return -CheckmateScore + int32(ply), nil
		}
		return DrawScore, nil
	}

	flag := TTExact
	if bestScore <= originalAlpha {
		flag = TTAlpha
	} else if bestScore >= beta {
		flag = TTBeta
	}
	s.tt.Store(ttKey, depth, adjustScoreToTT(bestScore, ply), flag, bestMove)

	return bestScore, bestPV
}

func (s *SearchEngine) quiescence(b *board.Board, alpha, beta int32, qdepth int) int32 {
	s.nodes++

	standPat := Evaluate(b)
	if b.Turn == board.Black {
		standPat = -standPat
	}

	if standPat >= beta {
		return beta
	}
	if alpha < standPat {
		alpha = standPat
	}
	if qdepth >= 10 {
		return alpha
	}

	captures := b.GeneratePseudoLegalMoves()
	capList := board.NewMoveList()
	for i := 0; i < captures.Len(); i++ {
		mv := captures.Get(i)
		if isCaptureType(mv.Type) || isCaptureOn(b, mv) {
			capList.Add(mv)
		}
	}
	orderCapturesByMVVLVA(b, capList)

	for i := 0; i < capList.Len(); i++ {
		mv := capList.Get(i)
		undo := b.MakeMove(mv)
		if board.IsInCheck(b, b.Turn.Opposite()) {
			b.UnmakeMove(undo)
			continue
		}

		score := -s.quiescence(b, -beta, -alpha, qdepth+1)
		b.UnmakeMove(undo)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// ClearTables resets the transposition table and move-ordering heuristics,
// used between searches on unrelated positions.
func (s *SearchEngine) ClearTables() {
	s.tt.Clear()
	s.order.reset()
}
