package analysiscache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Score int32  `json:"score"`
	Best  string `json:"best"`
}

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	dir := t.TempDir()
	c, err := Open(dir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPutThenGetRoundTrips(t *testing.T) {
	c := openTestCache(t)

	want := record{Score: 42, Best: "e2e4"}
	c.Put("startpos", 4, want)

	var got record
	found := c.Get("startpos", 4, &got)
	require.True(t, found)
	assert.Equal(t, want, got)
}

func TestGetMissReturnsFalse(t *testing.T) {
	c := openTestCache(t)

	var got record
	found := c.Get("nonexistent", 4, &got)
	assert.False(t, found)
}

func TestDifferentDepthsAreDistinctKeys(t *testing.T) {
	c := openTestCache(t)

	c.Put("fen", 4, record{Score: 1})
	c.Put("fen", 6, record{Score: 2})

	var atFour, atSix record
	require.True(t, c.Get("fen", 4, &atFour))
	require.True(t, c.Get("fen", 6, &atSix))
	assert.Equal(t, int32(1), atFour.Score)
	assert.Equal(t, int32(2), atSix.Score)
}
