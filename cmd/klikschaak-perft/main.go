// Command klikschaak-perft walks the legal move tree from a FEN position
// to a fixed depth and reports the node count and timing, for validating
// and benchmarking the move generator.
package main

import (
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/klikschaak/engine/internal/board"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "position to start from")
	depth := flag.Int("depth", 4, "perft depth")
	divide := flag.Bool("divide", false, "print a per-root-move node count breakdown")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	b, err := board.NewFromFEN(*fen)
	if err != nil {
		logger.Fatal("invalid FEN", zap.String("fen", *fen), zap.Error(err))
	}
	if *depth < 1 {
		logger.Fatal("depth must be >= 1", zap.Int("depth", *depth))
	}

	start := time.Now()
	if *divide {
		total := uint64(0)
		ml := b.GenerateLegalMoves()
		for i := 0; i < ml.Len(); i++ {
			mv := ml.Get(i)
			undo := b.MakeMove(mv)
			n := perft(b, *depth-1)
			b.UnmakeMove(undo)
			total += n
			fmt.Printf("%s: %d\n", mv.UCI(), n)
		}
		elapsed := time.Since(start)
		fmt.Printf("\nnodes %d time %s\n", total, elapsed)
		return
	}

	nodes := perft(b, *depth)
	elapsed := time.Since(start)
	nps := uint64(0)
	if elapsed > 0 {
		nps = uint64(float64(nodes) / elapsed.Seconds())
	}
	fmt.Printf("nodes %d time %s nps %d\n", nodes, elapsed, nps)
}

// perft counts the leaf nodes of the legal move tree rooted at b, to the
// given depth, mutating and restoring b in place via make/unmake.
func perft(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	ml := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(ml.Len())
	}

	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		undo := b.MakeMove(ml.Get(i))
		nodes += perft(b, depth-1)
		b.UnmakeMove(undo)
	}
	return nodes
}
