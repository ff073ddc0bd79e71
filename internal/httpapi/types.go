package httpapi

// LegalMovesRequest is the body of POST /api/legal-moves.
type LegalMovesRequest struct {
	FEN string `json:"fen"`
}

// MoveDescriptor is one entry of a legal-moves response.
type MoveDescriptor struct {
	UCI  string `json:"uci"`
	Type string `json:"type"`
}

// LegalMovesResponse is the body of a legal-moves response.
type LegalMovesResponse struct {
	Count int              `json:"count"`
	Moves []MoveDescriptor `json:"moves"`
	Error string           `json:"error,omitempty"`
}

// EvaluateRequest is the body of POST /api/evaluate.
type EvaluateRequest struct {
	FEN   string `json:"fen"`
	Depth int    `json:"depth"`
}

// EvaluateResponse is the body of an evaluate response, and also the
// payload of the final frame on the websocket streaming endpoint.
type EvaluateResponse struct {
	Score     int32    `json:"score"`
	ScoreType string   `json:"scoreType"` // "cp" or "mate"
	BestMove  string   `json:"bestMove,omitempty"`
	PV        []string `json:"pv"`
	Depth     int      `json:"depth"`
	Nodes     uint64   `json:"nodes"`
	NPS       uint64   `json:"nps"`
	TimeMs    int64    `json:"time_ms"`
	Error     string   `json:"error,omitempty"`
}

// InfoFrame is one iterative-deepening progress frame sent over the
// websocket streaming endpoint, mirroring spec §6.4's info line.
type InfoFrame struct {
	Depth  int      `json:"depth"`
	Score  int32    `json:"score"`
	Nodes  uint64   `json:"nodes"`
	NPS    uint64   `json:"nps"`
	TimeMs int64    `json:"time_ms"`
	PV     []string `json:"pv"`
}
