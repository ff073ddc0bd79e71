package httpapi

import (
	"time"

	"github.com/klikschaak/engine/internal/board"
	"github.com/klikschaak/engine/internal/engine"
)

const defaultEvaluateDepth = 4
const maxEvaluateDepth = 20

// mateThreshold marks scores close enough to CheckmateScore that they
// represent a forced mate rather than a material evaluation.
const mateThreshold = engine.CheckmateScore - int32(engine.MaxDepth)

func clampDepth(depth int) int {
	if depth <= 0 {
		return defaultEvaluateDepth
	}
	if depth > maxEvaluateDepth {
		return maxEvaluateDepth
	}
	return depth
}

func uciList(moves []board.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.UCI()
	}
	return out
}

// scoreToResponse converts a raw, White-perspective centipawn score into
// the score/scoreType pair the evaluate endpoint reports, per spec §4.7's
// mate-distance formula.
func scoreToResponse(score int32) (int32, string) {
	abs := score
	if abs < 0 {
		abs = -abs
	}
	if abs < mateThreshold {
		return score, "cp"
	}
	mateIn := ((engine.CheckmateScore - abs) + 1) / 2
	if score < 0 {
		mateIn = -mateIn
	}
	return mateIn, "mate"
}

func runEvaluate(b *board.Board, req EvaluateRequest, onInfo func(InfoFrame)) EvaluateResponse {
	depth := clampDepth(req.Depth)

	se := engine.NewSearchEngine(nil)
	if onInfo != nil {
		se.OnInfo(func(info engine.Info) {
			nps := uint64(0)
			if ms := info.Time.Milliseconds(); ms > 0 {
				nps = info.Nodes * 1000 / uint64(ms)
			}
			onInfo(InfoFrame{
				Depth:  info.Depth,
				Score:  info.Score,
				Nodes:  info.Nodes,
				NPS:    nps,
				TimeMs: info.Time.Milliseconds(),
				PV:     uciList(info.PV),
			})
		})
	}

	best, info := se.Search(b, depth, 15*time.Second)

	score, scoreType := scoreToResponse(info.Score)
	resp := EvaluateResponse{
		Score:     score,
		ScoreType: scoreType,
		PV:        uciList(info.PV),
		Depth:     info.Depth,
		Nodes:     info.Nodes,
		TimeMs:    info.Time.Milliseconds(),
	}
	if info.Time.Milliseconds() > 0 {
		resp.NPS = info.Nodes * 1000 / uint64(info.Time.Milliseconds())
	}
	if len(info.PV) > 0 {
		resp.BestMove = best.UCI()
	}
	return resp
}
