// cotulenh-cli is a line-oriented REPL over pkg/engine, grounded on the
// teacher's pkg/engine/console driver but without any search/analyze
// commands -- this engine has no search of its own (spec.md Non-goals).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cotulenh-dev/cotulenh-engine/pkg/board"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/board/fen"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/engine"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/errs"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Exit codes per spec.md §6.
const (
	exitOK                 = 0
	exitInvalidFEN         = 1
	exitIllegalMove        = 2
	exitAmbiguousMove      = 3
	exitInvariantViolation = 4
)

var position = flag.String("fen", "", "Start position (default to standard)")

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: cotulenh-cli [options]

cotulenh-cli is an interactive rules-engine shell for CoTuLenh.
Commands:
  reset|r [fen]               load a position (default standard)
  move|m <san or from to>     play a move
  deploy|d <from> <role> <to> step a piece out of a stack (use 'stay' for to)
  commit|c                    finalize the active deploy session
  undo|u                      undo the last mutation
  print|p                     print the board
  fen|f                       print the current FEN
  moves|l [square] [role]     list legal moves, optionally filtered
  history|h                   print move history
  quit|q                      exit

Options:
`)
		flag.PrintDefaults()
	}
}

// shell is the REPL driver, grounded on the teacher's console.Driver:
// an AsyncCloser so the read loop and main goroutine shut down together
// on "quit" or stdin EOF.
type shell struct {
	iox.AsyncCloser

	e    *engine.Engine
	out  chan<- string
	code int
}

func newShell(e *engine.Engine, out chan<- string) *shell {
	return &shell{AsyncCloser: iox.NewAsyncCloser(), e: e, out: out}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e, err := engine.New(ctx, *position)
	if err != nil {
		logw.Errorf(ctx, "Invalid position: %v", err)
		os.Exit(exitInvalidFEN)
	}

	in := engine.ReadStdinLines(ctx)
	out := make(chan string, 100)
	go engine.WriteStdoutLines(ctx, out)

	sh := newShell(e, out)
	go sh.process(ctx, in)

	<-sh.Closed()
	os.Exit(sh.code)
}

func (sh *shell) process(ctx context.Context, in <-chan string) {
	defer sh.Close()
	defer close(sh.out)

	sh.out <- fmt.Sprintf("engine %v (%v)", sh.e.Name(), sh.e.Author())
	sh.printBoard(ctx)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				return
			}
			sh.dispatch(ctx, line)

		case <-sh.Closed():
			return
		}
	}
}

func (sh *shell) dispatch(ctx context.Context, line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "reset", "r":
		pos := fen.Initial
		if len(args) > 0 {
			pos = strings.Join(args, " ")
		}
		if err := sh.e.Load(ctx, pos); err != nil {
			sh.out <- fmt.Sprintf("invalid position: %v", err)
			sh.code = exitCodeFor(err)
			return
		}
		sh.printBoard(ctx)

	case "move", "m":
		if len(args) == 0 {
			sh.out <- "usage: move <san or from to [role] [combine]>"
			return
		}
		sh.runMove(ctx, args)

	case "deploy", "d":
		if len(args) < 2 {
			sh.out <- "usage: deploy <from> <role> <to|stay>"
			return
		}
		spec := engine.DeployStepSpec{From: args[0], Role: args[1]}
		if len(args) >= 3 && strings.EqualFold(args[2], "stay") {
			spec.Stay = true
		} else if len(args) >= 3 {
			spec.To = args[2]
		}
		if _, err := sh.e.DeployStep(ctx, spec); err != nil {
			sh.out <- fmt.Sprintf("illegal deploy step: %v", err)
			sh.code = exitCodeFor(err)
			return
		}
		sh.printBoard(ctx)

	case "commit", "c":
		if err := sh.e.CommitDeploy(ctx); err != nil {
			sh.out <- fmt.Sprintf("cannot commit deploy: %v", err)
			sh.code = exitCodeFor(err)
			return
		}
		sh.printBoard(ctx)

	case "undo", "u":
		if err := sh.e.Undo(ctx); err != nil {
			sh.out <- fmt.Sprintf("nothing to undo: %v", err)
			return
		}
		sh.printBoard(ctx)

	case "print", "p":
		sh.printBoard(ctx)

	case "fen", "f":
		sh.out <- sh.e.Fen(ctx)

	case "moves", "l":
		filter := engine.MoveFilter{Verbose: false}
		if len(args) > 0 {
			filter.Square = args[0]
		}
		if len(args) > 1 {
			filter.Role = args[1]
		}
		results, err := sh.e.Moves(ctx, filter)
		if err != nil {
			sh.out <- fmt.Sprintf("invalid filter: %v", err)
			return
		}
		for _, r := range results {
			sh.out <- r.SAN
		}

	case "history", "h":
		for i, r := range sh.e.History(ctx, false) {
			sh.out <- fmt.Sprintf("%d. %v", i+1, r.SAN)
		}

	case "quit", "exit", "q":
		sh.Close()

	default:
		sh.runMove(ctx, parts)
	}
}

// runMove accepts either a single SAN token or a "from to [role] [combine]"
// structured triple, mirroring spec.md §4.12 `move`'s dual input form.
func (sh *shell) runMove(ctx context.Context, args []string) {
	var (
		mv  board.Move
		err error
	)
	if len(args) == 1 {
		mv, err = sh.e.Move(ctx, args[0])
	} else {
		spec := engine.MoveSpec{From: args[0], To: args[1]}
		for _, a := range args[2:] {
			if strings.EqualFold(a, "combine") {
				spec.Combine = true
			} else {
				spec.Role = a
			}
		}
		mv, err = sh.e.MoveWithSpec(ctx, spec)
	}
	if err != nil {
		sh.out <- fmt.Sprintf("illegal move: %v", err)
		sh.code = exitCodeFor(err)
		return
	}
	sh.out <- mv.String()
	sh.printBoard(ctx)
}

func exitCodeFor(err error) int {
	switch err.(type) {
	case *errs.InvalidFEN:
		return exitInvalidFEN
	case *errs.AmbiguousMove:
		return exitAmbiguousMove
	case *errs.InvariantViolation:
		return exitInvariantViolation
	case *errs.IllegalMove, *errs.IllegalPlacement, *errs.StackError, *errs.DeployError:
		return exitIllegalMove
	default:
		return exitIllegalMove
	}
}

const (
	files      = "    a   b   c   d   e   f   g   h   i   j   k"
	horizontal = "  --------------------------------------------"
	vertical   = " | "
)

// printBoard renders the board top rank (12) to bottom (1), grounded on
// the teacher's console.printBoard but walking board.Square by file/rank
// instead of an 8x8 0x88 sweep.
func (sh *shell) printBoard(ctx context.Context) {
	sh.out <- ""
	sh.out <- files
	sh.out <- horizontal
	for rank := 0; rank < board.NumRanks; rank++ {
		var sb strings.Builder
		sb.WriteString(strconv.Itoa(board.NumRanks - rank))
		if board.NumRanks-rank < 10 {
			sb.WriteString(" ")
		}
		sb.WriteString(vertical)
		for file := 0; file < board.NumFiles; file++ {
			sq := board.NewSquare(file, rank)
			p, err := sh.e.Get(ctx, sq.String(), "")
			if err != nil || p.IsZero() {
				sb.WriteString("  ")
			} else {
				sb.WriteString(printPiece(p))
			}
			sb.WriteString(vertical)
		}
		sh.out <- sb.String()
		sh.out <- horizontal
	}
	sh.out <- files
	sh.out <- ""
	sh.out <- fmt.Sprintf("fen:    %v", sh.e.Fen(ctx))
	sh.out <- fmt.Sprintf("turn:   %v, check: %v, gameOver: %v", sh.e.Turn(ctx), sh.e.IsCheck(ctx), sh.e.IsGameOver(ctx))
	sh.out <- ""
}

func printPiece(p board.Piece) string {
	s := p.String()
	if len(s) == 1 {
		return s + " "
	}
	return s
}
