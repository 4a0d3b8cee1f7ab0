package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"reverse-chess/internal/config"
	"reverse-chess/internal/game"
	"reverse-chess/internal/view"
)

const help = "Enter: <row> <col> to place (1-based), u undo, n new game, s same-block reset, q quit"

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for the blocked cell")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var opts []game.Option
	if cfg.ExcludeCenter {
		opts = append(opts, game.WithExcludeCenter())
	}

	s := game.NewSession(rand.New(rand.NewSource(*seed)), opts...)
	play(s, os.Stdin, os.Stdout)
}

func play(s *game.Session, in io.Reader, out io.Writer) {
	reader := bufio.NewReader(in)
	fmt.Fprintln(out, help)
	for {
		fmt.Fprintln(out)
		fmt.Fprintln(out, view.Render(view.Build(s.State())))
		fmt.Fprint(out, "> ")

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		switch cmd := strings.Fields(line); {
		case len(cmd) == 0:
			fmt.Fprintln(out, help)
		case cmd[0] == "q":
			return
		case cmd[0] == "u":
			if errors.Is(s.Undo(), game.ErrNothingToUndo) {
				fmt.Fprintln(out, "Nothing to undo.")
			}
		case cmd[0] == "n":
			s.NewGame()
		case cmd[0] == "s":
			s.ResetSameBlock()
		case len(cmd) == 2:
			r, errR := strconv.Atoi(cmd[0])
			c, errC := strconv.Atoi(cmd[1])
			if errR != nil || errC != nil {
				fmt.Fprintln(out, "Bad coordinates.", help)
				continue
			}
			if err := s.Place(game.Pos{Row: r - 1, Col: c - 1}); err != nil {
				fmt.Fprintln(out, "Cannot place there:", err)
			}
		default:
			fmt.Fprintln(out, help)
		}
	}
}
