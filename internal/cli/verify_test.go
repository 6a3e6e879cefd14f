package cli

import (
	"bytes"
	"flag"
	"io"
	"strings"
	"testing"

	"fair_rps/internal/fairness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerifyConfig(t *testing.T) {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	cfg, err := ParseVerifyConfig(fs, []string{"-key", "abcd", "-move", "rock", "-hmac", "ff"})
	require.NoError(t, err)
	assert.Equal(t, VerifyConfig{Key: "abcd", Move: "rock", HMAC: "ff"}, cfg)
}

func TestParseVerifyConfigRequiresAll(t *testing.T) {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	_, err := ParseVerifyConfig(fs, []string{"-key", "abcd"})
	assert.Error(t, err)
}

func TestRunVerify(t *testing.T) {
	key := strings.Repeat("ab", fairness.MinKeyBytes)
	digest := fairness.Sign(key, "lizard")

	var out bytes.Buffer
	require.NoError(t, RunVerify(VerifyConfig{Key: key, Move: "lizard", HMAC: digest}, &out))
	assert.Equal(t, "OK: HMAC matches\n", out.String())

	out.Reset()
	err := RunVerify(VerifyConfig{Key: key, Move: "spock", HMAC: digest}, &out)
	assert.ErrorIs(t, err, ErrMismatch)
	assert.True(t, strings.HasPrefix(out.String(), "MISMATCH: "), out.String())

	assert.Error(t, RunVerify(VerifyConfig{Key: key, Move: "spock", HMAC: digest}, nil))
}
