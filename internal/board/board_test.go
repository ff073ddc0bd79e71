package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPosFEN(t *testing.T) {
	b := StartPos()
	assert.Equal(t, StartFEN, b.FEN())
	assert.Equal(t, White, b.Turn)
	assert.Equal(t, CastleAll, b.Castling)
	assert.False(t, b.EPSquare.IsValid())
	assert.Equal(t, E1, b.KingSq[White])
	assert.Equal(t, E8, b.KingSq[Black])
}

func TestFENRoundTripStackNotation(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/(RQ)3K2R w KQkq - 3 12"
	b, err := NewFromFEN(fen)
	require.NoError(t, err)

	stack := b.StackAt(A1)
	require.True(t, stack.Double())
	assert.Equal(t, WhiteRook, stack.Bottom())
	assert.Equal(t, WhiteQueen, stack.Top())

	assert.Equal(t, fen, b.FEN())
}

func TestUnmovedPawnsDerivedFromHomeRank(t *testing.T) {
	b := StartPos()
	assert.Equal(t, uint8(0xFF), b.UnmovedPawns[White])
	assert.Equal(t, uint8(0xFF), b.UnmovedPawns[Black])

	b, err := NewFromFEN("rnbqkbnr/pp1ppppp/8/2p5/8/8/PPPPPPPP/RNBQKBNR w KQkq c6 0 2")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFF), b.UnmovedPawns[White])
	assert.Equal(t, uint8(0xFF)&^(1<<2), b.UnmovedPawns[Black])
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	b := StartPos()
	originalFEN := b.FEN()
	originalHash := b.Hash
	originalPawns := b.UnmovedPawns
	require.Equal(t, ComputeZobrist(b), originalHash)

	ml := b.GenerateLegalMoves()
	require.Greater(t, ml.Len(), 0)

	for i := 0; i < ml.Len(); i++ {
		mv := ml.Get(i)
		undo := b.MakeMove(mv)

		assert.Equal(t, ComputeZobrist(b), b.Hash, "incremental hash drifted after %s", mv.UCI())

		b.UnmakeMove(undo)
		assert.Equal(t, originalFEN, b.FEN(), "FEN did not round-trip after %s", mv.UCI())
		assert.Equal(t, originalHash, b.Hash, "hash did not round-trip after %s", mv.UCI())
		assert.Equal(t, originalPawns, b.UnmovedPawns, "unmoved-pawn mask did not round-trip after %s", mv.UCI())
	}
}

func TestNoSquareExceedsTwoPieces(t *testing.T) {
	b := StartPos()
	var walk func(depth int)
	walk = func(depth int) {
		if depth == 0 {
			return
		}
		ml := b.GenerateLegalMoves()
		for i := 0; i < ml.Len(); i++ {
			mv := ml.Get(i)
			undo := b.MakeMove(mv)
			for _, sq := range b.Squares {
				if sq.Count > 2 {
					t.Fatalf("square exceeded 2 pieces after %s", mv.UCI())
				}
			}
			walk(depth - 1)
			b.UnmakeMove(undo)
		}
	}
	walk(2)
}

func TestIsInCheckMatchesIsAttacked(t *testing.T) {
	b, err := NewFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	assert.True(t, IsInCheck(b, White))
	assert.Equal(t, IsAttacked(b, b.KingSq[White], Black), IsInCheck(b, White))
}

func TestStalematePositionHasNoLegalMoves(t *testing.T) {
	// Classic stalemate: black king boxed in with no legal replies, black to move.
	b, err := NewFromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	ml := b.GenerateLegalMoves()
	assert.Equal(t, 0, ml.Len())
	assert.False(t, IsInCheck(b, Black))
}

func TestKlikOntoAdjacentPawnFromStartingPosition(t *testing.T) {
	b := StartPos()
	ml := b.GenerateLegalMoves()

	found := false
	for i := 0; i < ml.Len(); i++ {
		mv := ml.Get(i)
		if mv.From == B1 && mv.To == D2 && mv.Type == Klik {
			found = true
		}
	}
	assert.True(t, found, "knight on b1 should be able to klik onto the d2 pawn")
}

func TestCastlingKingsideOnOpenBackRank(t *testing.T) {
	b, err := NewFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	ml := b.GenerateLegalMoves()

	hasPlainCastle := false
	for i := 0; i < ml.Len(); i++ {
		mv := ml.Get(i)
		if mv.From == E1 && mv.To == G1 && mv.Type == CastleK {
			hasPlainCastle = true
		}
	}
	assert.True(t, hasPlainCastle)
}
