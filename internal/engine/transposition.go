package engine

import "github.com/klikschaak/engine/internal/board"

// TTFlag records which kind of bound a stored score represents.
type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTAlpha        // upper bound: real score <= stored score
	TTBeta         // lower bound: real score >= stored score
)

// TTEntry is one slot of the transposition table.
type TTEntry struct {
	Key      uint32
	BestMove board.Move
	Score    int32
	Depth    int8
	Flag     TTFlag
}

// TranspositionTable caches search results keyed by Zobrist hash. It is
// sized to a power of two so lookups use a bitmask instead of a modulo, and
// uses an always-replace strategy: a fresh search repeatedly explores the
// same positions at increasing depth, so the newest result is nearly
// always the most useful one to keep.
type TranspositionTable struct {
	entries []TTEntry
	mask    uint64
}

// defaultTTEntries matches roughly 1M entries, the size used throughout
// development and tuning of the evaluation and search parameters above.
const defaultTTEntries = 1 << 20

// NewTranspositionTable allocates a table with the given entry count,
// rounded down to a power of two.
func NewTranspositionTable(entries int) *TranspositionTable {
	if entries <= 0 {
		entries = defaultTTEntries
	}
	n := roundDownToPowerOf2(uint64(entries))
	return &TranspositionTable{
		entries: make([]TTEntry, n),
		mask:    n - 1,
	}
}

func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up hash and reports whether a usable entry was found.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	idx := hash & tt.mask
	entry := tt.entries[idx]
	if entry.Key == uint32(hash>>32) && entry.Depth > 0 {
		return entry, true
	}
	return TTEntry{}, false
}

// Store records a result, always overwriting whatever occupied the slot.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int32, flag TTFlag, best board.Move) {
	idx := hash & tt.mask
	tt.entries[idx] = TTEntry{
		Key:      uint32(hash >> 32),
		BestMove: best,
		Score:    score,
		Depth:    int8(depth),
		Flag:     flag,
	}
}

// Clear empties every slot, used between unrelated searches so stale
// entries from a previous position never leak into a new one.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

// Len returns the number of slots in the table.
func (tt *TranspositionTable) Len() int {
	return len(tt.entries)
}

// adjustScoreFromTT converts a mate score stored relative to the node it
// was found at into one relative to the root, by adding back the ply
// distance the stored search had already spent.
func adjustScoreFromTT(score int32, ply int) int32 {
	if score > CheckmateScore-maxPly {
		return score - int32(ply)
	}
	if score < -CheckmateScore+maxPly {
		return score + int32(ply)
	}
	return score
}

// adjustScoreToTT is the inverse of adjustScoreFromTT, applied before a
// mate score is stored so it is meaningful regardless of which node it is
// later probed from.
func adjustScoreToTT(score int32, ply int) int32 {
	if score > CheckmateScore-maxPly {
		return score + int32(ply)
	}
	if score < -CheckmateScore+maxPly {
		return score - int32(ply)
	}
	return score
}
