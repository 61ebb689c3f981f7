// Command play runs a hot-seat game of Connect Four in the terminal.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/pkg"
	"github.com/rocketscienceinc/connectfour-backend/internal/render"
)

func main() {
	first := flag.String("p1", "red", "color of the first player")
	second := flag.String("p2", "yellow", "color of the second player")
	height := flag.Int("height", entity.DefaultHeight, "board height")
	width := flag.Int("width", entity.DefaultWidth, "board width")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	engine, err := connectfour.NewGame(
		pkg.GenerateGameID(),
		entity.Participant{Color: *first},
		entity.Participant{Color: *second},
		*height,
		*width,
	)
	if err != nil {
		logger.Error("failed to create game", "error", err)
		os.Exit(1)
	}

	if err = play(engine, os.Stdin, os.Stdout); err != nil {
		logger.Error("game aborted", "error", err)
		os.Exit(1)
	}
}

// play reads one column per line until the game reaches a terminal state.
func play(engine *connectfour.Engine, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	width := engine.Game().Board.Width

	for !engine.State().IsTerminal() {
		fmt.Fprint(out, render.Game(engine.Game()))
		fmt.Fprintf(out, "Column (0-%d): ", width-1)

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read move: %w", err)
			}
			return io.ErrUnexpectedEOF
		}

		var column int
		if _, err := fmt.Sscan(scanner.Text(), &column); err != nil {
			fmt.Fprintln(out, "Please enter a column number.")
			continue
		}

		if result := engine.ApplyMove(column); result.IsRejected() {
			fmt.Fprintf(out, "Move rejected: %v\n", result.Err())
		}
	}

	fmt.Fprint(out, render.Game(engine.Game()))

	return nil
}
