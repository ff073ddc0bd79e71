package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/klikschaak/engine/internal/board"
)

// Server holds the dependencies HTTP handlers need: a logger, an analysis
// cache, and nothing from any single request — every handler builds its
// own Board and SearchEngine so concurrent requests never share mutable
// engine state.
type Server struct {
	log   *zap.Logger
	cache evaluateCache
}

// evaluateCache is the subset of analysiscache.Cache the handlers use,
// narrowed so tests can substitute an in-memory fake instead of opening a
// real Badger database.
type evaluateCache interface {
	Get(fen string, depth int, v any) bool
	Put(fen string, depth int, v any)
}

// NewServer builds a Server. logger and cache may both be nil; a nil
// cache disables memoization and every evaluate request searches fresh.
func NewServer(logger *zap.Logger, cache evaluateCache) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{log: logger, cache: cache}
}

// Router builds the gin engine with every route registered, wrapped in
// request logging and panic recovery so a defect in the core never takes
// the process down.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(s.loggingMiddleware(), gin.CustomRecoveryWithWriter(nil, s.recoverPanic))

	api := r.Group("/api")
	api.POST("/legal-moves", s.handleLegalMoves)
	api.POST("/evaluate", s.handleEvaluate)
	api.GET("/evaluate/stream", s.handleEvaluateStream)

	return r
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func (s *Server) recoverPanic(c *gin.Context, err any) {
	s.log.Error("recovered panic", zap.Any("error", err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func (s *Server) handleLegalMoves(c *gin.Context) {
	var req LegalMovesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, LegalMovesResponse{Error: err.Error()})
		return
	}

	b, err := board.NewFromFEN(req.FEN)
	if err != nil {
		c.JSON(http.StatusBadRequest, LegalMovesResponse{Error: err.Error()})
		return
	}

	ml := b.GenerateLegalMoves()
	moves := make([]MoveDescriptor, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		mv := ml.Get(i)
		moves[i] = MoveDescriptor{UCI: mv.UCI(), Type: mv.Type.String()}
	}

	c.JSON(http.StatusOK, LegalMovesResponse{Count: len(moves), Moves: moves})
}

func (s *Server) handleEvaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, EvaluateResponse{Error: err.Error()})
		return
	}

	b, err := board.NewFromFEN(req.FEN)
	if err != nil {
		c.JSON(http.StatusBadRequest, EvaluateResponse{Error: err.Error()})
		return
	}

	depth := clampDepth(req.Depth)
	if s.cache != nil {
		var cached EvaluateResponse
		if s.cache.Get(req.FEN, depth, &cached) {
			s.log.Info("evaluate served from analysis cache",
				zap.String("fen", req.FEN), zap.Int("depth", depth))
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	resp := runEvaluate(b, req, nil)
	if s.cache != nil && resp.Error == "" {
		s.cache.Put(req.FEN, depth, resp)
	}
	c.JSON(http.StatusOK, resp)
}
