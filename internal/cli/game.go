package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fair_rps/internal/fairness"
	"fair_rps/internal/game"
)

const (
	optExit = "0"
	optHelp = "?"
)

// Run plays one committed round on a terminal. It returns nil when the round
// was played, the player chose exit, or input ended.
func Run(in io.Reader, out io.Writer, engine *game.RuleEngine, c *fairness.Commitment) error {
	if c.State() != fairness.StateCommitted {
		return fairness.ErrAlreadyRevealed
	}

	w := bufio.NewWriter(out)
	defer w.Flush()

	fmt.Fprintf(w, "HMAC: %s\n", c.Digest())

	scanner := bufio.NewScanner(in)
	names := engine.Moves().Names()
	for {
		printMenu(w, names)
		fmt.Fprint(w, "Enter the number of your move: ")
		if err := w.Flush(); err != nil {
			return err
		}

		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())

		switch input {
		case optExit:
			fmt.Fprintln(w, "Exiting...")
			return nil
		case optHelp:
			if err := game.RenderTable(w, game.HelpTable(engine)); err != nil {
				return err
			}
			continue
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(names) {
			fmt.Fprintln(w, "Invalid input. Please try again.")
			continue
		}
		return play(w, engine, c, names[n-1])
	}
}

func printMenu(w io.Writer, names []string) {
	fmt.Fprintln(w, "Available moves:")
	for i, name := range names {
		fmt.Fprintf(w, "%d - %s\n", i+1, name)
	}
	fmt.Fprintf(w, "%s - exit\n", optExit)
	fmt.Fprintf(w, "%s - help\n", optHelp)
}

func play(w io.Writer, engine *game.RuleEngine, c *fairness.Commitment, move string) error {
	opening, err := c.Reveal()
	if err != nil {
		return err
	}
	outcome, err := engine.Resolve(move, opening.Move)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Your move: %s\n", move)
	fmt.Fprintf(w, "Computer move: %s\n", opening.Move)
	fmt.Fprintln(w, outcomeLine(outcome))
	fmt.Fprintf(w, "HMAC key: %s\n", opening.Key)
	fmt.Fprintf(w, "Check it: verify -key %s -move %s -hmac %s\n", opening.Key, shellQuote(opening.Move), c.Digest())
	return nil
}

// shellQuote returns s unchanged when it is safe to paste into a POSIX shell
// and single-quoted otherwise.
func shellQuote(s string) string {
	safe := s != ""
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_.,:/@+=", r)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func outcomeLine(o game.Outcome) string {
	switch o {
	case game.OutcomeWin:
		return "You win!"
	case game.OutcomeLose:
		return "You lose!"
	default:
		return "Draw!"
	}
}
