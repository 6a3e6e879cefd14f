package cli

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"fair_rps/internal/fairness"
	"fair_rps/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commitTo returns a commitment to moves[draw] under a fixed key.
func commitTo(t *testing.T, engine *game.RuleEngine, draw byte) *fairness.Commitment {
	t.Helper()
	random := append(bytes.Repeat([]byte{0x11}, fairness.MinKeyBytes), 0, 0, 0, 0, 0, 0, 0, draw)
	c, err := fairness.Commit(bytes.NewReader(random), engine.Moves(), fairness.MinKeyBytes)
	require.NoError(t, err)
	return c
}

func classic(t *testing.T) *game.RuleEngine {
	t.Helper()
	e, err := game.NewEngine([]string{"rock", "paper", "scissors"})
	require.NoError(t, err)
	return e
}

func TestRunPlaysRound(t *testing.T) {
	engine := classic(t)
	c := commitTo(t, engine, 2) // scissors
	digest := c.Digest()

	var out bytes.Buffer
	require.NoError(t, Run(strings.NewReader("1\n"), &out, engine, c))

	key := hex.EncodeToString(bytes.Repeat([]byte{0x11}, fairness.MinKeyBytes))
	got := out.String()
	assert.True(t, strings.HasPrefix(got, "HMAC: "+digest+"\n"), got)
	assert.Contains(t, got, "Available moves:\n1 - rock\n2 - paper\n3 - scissors\n0 - exit\n? - help\n")
	assert.Contains(t, got, "Your move: rock\nComputer move: scissors\nYou win!\nHMAC key: "+key+"\n")
	assert.Contains(t, got, "verify -key "+key+" -move scissors -hmac "+digest)
	assert.Equal(t, fairness.StateRevealed, c.State())

	// a revealed commitment cannot be played again
	assert.ErrorIs(t, Run(strings.NewReader("1\n"), &out, engine, c), fairness.ErrAlreadyRevealed)
}

func TestRunOutcomes(t *testing.T) {
	cases := map[string]struct {
		input string
		want  string
	}{
		"lose": {"2\n", "You lose!"},
		"draw": {"3\n", "Draw!"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			engine := classic(t)
			var out bytes.Buffer
			require.NoError(t, Run(strings.NewReader(tc.input), &out, engine, commitTo(t, engine, 2)))
			assert.Contains(t, out.String(), "\n"+tc.want+"\n")
		})
	}
}

func TestRunInvalidInputThenHelpThenMove(t *testing.T) {
	engine := classic(t)
	c := commitTo(t, engine, 0)

	var out bytes.Buffer
	require.NoError(t, Run(strings.NewReader("rock\n4\n\n?\n2\n"), &out, engine, c))

	got := out.String()
	assert.Equal(t, 3, strings.Count(got, "Invalid input. Please try again.\n"))
	assert.Contains(t, got, "| v PC/User > | rock | paper | scissors |")
	assert.Contains(t, got, "Your move: paper\nComputer move: rock\nYou win!\n")
	assert.Equal(t, 5, strings.Count(got, "Enter the number of your move: "))
}

func TestRunExitKeepsCommitment(t *testing.T) {
	engine := classic(t)

	for _, input := range []string{"0\n", ""} {
		c := commitTo(t, engine, 1)
		var out bytes.Buffer
		require.NoError(t, Run(strings.NewReader(input), &out, engine, c))
		assert.NotContains(t, out.String(), "HMAC key:")
		assert.Equal(t, fairness.StateCommitted, c.State())
	}
}

func TestRunQuotesMoveInHint(t *testing.T) {
	engine, err := game.NewEngine([]string{"big rock", "paper", "it's scissors"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Run(strings.NewReader("2\n"), &out, engine, commitTo(t, engine, 0)))
	assert.Contains(t, out.String(), "-move 'big rock' -hmac ")

	out.Reset()
	require.NoError(t, Run(strings.NewReader("1\n"), &out, engine, commitTo(t, engine, 2)))
	assert.Contains(t, out.String(), `-move 'it'\''s scissors' -hmac `)
}

func TestShellQuote(t *testing.T) {
	cases := map[string]string{
		"rock":      "rock",
		"spock-2":   "spock-2",
		"":          "''",
		"a b":       "'a b'",
		"$(rm -rf)": "'$(rm -rf)'",
		"don't":     `'don'\''t'`,
	}
	for in, want := range cases {
		assert.Equal(t, want, shellQuote(in), in)
	}
}
