package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/klikschaak/engine/internal/board"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The engine is consumed by trusted first-party front-ends; this is
	// not a public browser-facing API, so any origin is accepted.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleEvaluateStream upgrades the connection and streams one InfoFrame
// per completed iterative-deepening iteration, followed by a final
// EvaluateResponse frame, then closes. The client sends a single
// EvaluateRequest as the first text message.
func (s *Server) handleEvaluateStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var req EvaluateRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.log.Warn("websocket read failed", zap.Error(err))
		return
	}

	b, err := board.NewFromFEN(req.FEN)
	if err != nil {
		conn.WriteJSON(EvaluateResponse{Error: err.Error()})
		return
	}

	resp := runEvaluate(b, req, func(frame InfoFrame) {
		if err := conn.WriteJSON(frame); err != nil {
			s.log.Warn("websocket write failed", zap.Error(err))
		}
	})

	if err := conn.WriteJSON(resp); err != nil {
		s.log.Warn("websocket final write failed", zap.Error(err))
	}
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
