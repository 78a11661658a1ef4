// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/cotulenh-dev/cotulenh-engine/pkg/board"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/board/fen"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/movegen"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *position == "" {
		*position = fen.Initial
	}

	s, err := fen.Decode(*position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := search(s, i, *divide && i == *depth)
		duration := time.Since(start)

		println(fmt.Sprintf("perft,%v,%v,%v,%v", *position, i, nodes, duration.Microseconds()))
	}
}

// search walks s's legal-move tree depth plies deep, executing and undoing
// each candidate in place rather than cloning (spec.md's GameState has no
// cheap copy-on-move the way the teacher's Position did).
func search(s *board.GameState, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, m := range movegen.LegalMoves(s, s.Turn) {
		mv := m
		if err := s.Execute(&mv); err != nil {
			continue
		}
		count := search(s, depth-1, false)
		if d {
			println(fmt.Sprintf("%v: %v", mv, count))
		}
		nodes += count
		if err := s.Undo(&mv); err != nil {
			logw.Exitf(context.Background(), "perft undo invariant violated for %v: %v", mv, err)
		}
	}
	return nodes
}
