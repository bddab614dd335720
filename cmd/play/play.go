package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"spacefun/internal/game"
	"spacefun/internal/words"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Play the word of the day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame(cmd, words.ModeDaily, "")
	},
}

var gradeCmd = &cobra.Command{
	Use:       "grade <label>",
	Short:     "Play random words for a grade",
	Args:      cobra.ExactArgs(1),
	ValidArgs: words.GradeLabels(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame(cmd, words.ModeGrade, args[0])
	},
}

const keyHelp = "Keys: tile numbers to place letters, r replay, s submit, h hint, n new word, q quit"

func runGame(cmd *cobra.Command, mode words.Mode, grade string) error {
	out := cmd.OutOrStdout()
	if u := current.app.CurrentUser(); u != nil {
		fmt.Fprintf(out, "Playing as %s (score %d)\n", u.ChildName, u.Score)
	} else {
		fmt.Fprintln(out, "Playing as a guest. Log in to save your score.")
	}
	fmt.Fprintln(out, keyHelp)

	ctrl := current.app.NewGame(mode, grade)
	defer ctrl.Close()

	p := newPrinter(out)
	ctrl.OnChange(p.render)
	if err := ctrl.StartGame(cmd.Context()); err != nil {
		p.printf("Could not load a word: %v\n", err)
	}
	return playLoop(cmd.Context(), ctrl, cmd.InOrStdin(), p)
}

// printer serialises output from the input loop and timer callbacks.
type printer struct {
	mu  sync.Mutex
	out io.Writer
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out}
}

func (p *printer) printf(format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *printer) render(v game.View) {
	p.mu.Lock()
	defer p.mu.Unlock()
	writeView(p.out, v)
}

func writeView(w io.Writer, v game.View) {
	if v.State == game.StateLoading {
		fmt.Fprintln(w, "🚀 Loading a new word...")
		return
	}
	if len(v.Tiles) == 0 {
		if v.Feedback != "" {
			fmt.Fprintf(w, "%s\n", v.Feedback)
		}
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nLevel %s   Score %d\n", v.Level, v.Score)
	if v.ShowHint {
		fmt.Fprintf(&b, "Hint: %s\n", v.Hint)
	}
	b.WriteString("Answer: ")
	for _, letter := range v.Answer {
		if letter == "" {
			letter = "_"
		}
		fmt.Fprintf(&b, "[%s] ", letter)
	}
	b.WriteString("\nTiles:  ")
	for i, t := range v.Tiles {
		letter := t.Letter
		if t.Used {
			letter = "·"
		}
		fmt.Fprintf(&b, "%d:%s  ", i+1, letter)
	}
	b.WriteString("\n")
	if v.Feedback != "" {
		fmt.Fprintf(&b, "%s\n", v.Feedback)
	}
	io.WriteString(w, b.String())
}

// playLoop reads commands until q or end of input. Several tile numbers may
// share one line.
func playLoop(ctx context.Context, ctrl *game.Controller, in io.Reader, p *printer) error {
	scanner := bufio.NewScanner(in)
	for {
		p.printf("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		for _, tok := range strings.Fields(strings.ToLower(scanner.Text())) {
			if quit := handleKey(ctx, ctrl, tok, p); quit {
				return nil
			}
		}
	}
}

func handleKey(ctx context.Context, ctrl *game.Controller, key string, p *printer) bool {
	switch key {
	case "q":
		return true
	case "r":
		if !ctrl.Replay() {
			p.printf("Nothing to replay right now.\n")
		}
	case "h":
		ctrl.ToggleHint()
	case "n":
		if err := ctrl.StartGame(ctx); err != nil && !errors.Is(err, game.ErrSuperseded) {
			p.printf("Could not load a word: %v\n", err)
		}
	case "s":
		res, err := ctrl.Submit(ctx)
		switch {
		case errors.Is(err, game.ErrTransitionPending):
			p.printf("Hold on...\n")
		case errors.Is(err, game.ErrNotActive):
			p.printf("No puzzle yet. Press n for a word.\n")
		case err != nil:
			p.printf("Submit failed: %v\n", err)
		case res.Correct:
			p.printf("⭐ Score: %d\n", res.Score)
			for _, a := range res.NewAchievements {
				p.printf("%s Achievement unlocked: %s!\n", a.Icon, a.Title)
			}
		}
	default:
		n, err := strconv.Atoi(key)
		if err != nil {
			p.printf("%s\n", keyHelp)
			return false
		}
		ctrl.SelectTile(n - 1)
	}
	return false
}
