package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klikschaak/engine/internal/board"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLegalMovesStartPositionCountsThirtyFour(t *testing.T) {
	srv := NewServer(nil, nil)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/legal-moves", LegalMovesRequest{FEN: board.StartFEN})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LegalMovesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 34, resp.Count)
	assert.Len(t, resp.Moves, 34)
	assert.Empty(t, resp.Error)
}

func TestLegalMovesInvalidFENReturnsBadRequest(t *testing.T) {
	srv := NewServer(nil, nil)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/legal-moves", LegalMovesRequest{FEN: "not a fen"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp LegalMovesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestEvaluateStalematePositionReturnsDrawScore(t *testing.T) {
	srv := NewServer(nil, nil)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/evaluate",
		EvaluateRequest{FEN: "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Depth: 2})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EvaluateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cp", resp.ScoreType)
	assert.Equal(t, int32(0), resp.Score)
	assert.Empty(t, resp.BestMove)
}

func TestEvaluateMateInOneReportsMateScore(t *testing.T) {
	srv := NewServer(nil, nil)
	router := srv.Router()

	// Black king boxed in on g8 by its own pawns; Ra1-a8 is a back-rank mate.
	rec := doJSON(t, router, http.MethodPost, "/api/evaluate",
		EvaluateRequest{FEN: "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", Depth: 2})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EvaluateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "mate", resp.ScoreType)
	assert.Equal(t, int32(1), resp.Score)
	assert.Equal(t, "a1a8", resp.BestMove)
}

type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string][]byte{}} }

func fakeCacheKey(fen string, depth int) string {
	return fmt.Sprintf("%s|%d", fen, depth)
}

func (f *fakeCache) Get(fen string, depth int, v any) bool {
	raw, ok := f.store[fakeCacheKey(fen, depth)]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func (f *fakeCache) Put(fen string, depth int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	f.store[fakeCacheKey(fen, depth)] = data
}

func TestEvaluateUsesCacheOnSecondRequest(t *testing.T) {
	cache := newFakeCache()
	srv := NewServer(nil, cache)
	router := srv.Router()

	first := doJSON(t, router, http.MethodPost, "/api/evaluate",
		EvaluateRequest{FEN: board.StartFEN, Depth: 1})
	require.Equal(t, http.StatusOK, first.Code)
	assert.Len(t, cache.store, 1)

	var firstResp EvaluateResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp))

	second := doJSON(t, router, http.MethodPost, "/api/evaluate",
		EvaluateRequest{FEN: board.StartFEN, Depth: 1})
	require.Equal(t, http.StatusOK, second.Code)

	var secondResp EvaluateResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondResp))
	assert.Equal(t, firstResp, secondResp)
}
