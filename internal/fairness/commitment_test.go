package fairness

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fair_rps/internal/game"
)

func classicMoves(t *testing.T) *game.MoveSet {
	t.Helper()
	m, err := game.NewMoveSet([]string{"rock", "paper", "scissors"})
	require.NoError(t, err)
	return m
}

// fixture returns 32 key bytes followed by the given 8-byte draws.
func fixture(draws ...uint64) []byte {
	buf := bytes.Repeat([]byte{0xab}, MinKeyBytes)
	for _, d := range draws {
		var b [8]byte
		for i := 7; i >= 0; i-- {
			b[i] = byte(d)
			d >>= 8
		}
		buf = append(buf, b[:]...)
	}
	return buf
}

func TestCommitDeterministicFixture(t *testing.T) {
	c, err := Commit(bytes.NewReader(fixture(5)), classicMoves(t), MinKeyBytes)
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, c.State())

	digest := c.Digest()
	open, err := c.Reveal()
	require.NoError(t, err)
	assert.Equal(t, StateRevealed, c.State())

	assert.Equal(t, hex.EncodeToString(bytes.Repeat([]byte{0xab}, MinKeyBytes)), open.Key)
	assert.Equal(t, "scissors", open.Move)

	mac := hmac.New(sha256.New, []byte(open.Key))
	mac.Write([]byte(open.Move))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), digest)
	assert.True(t, Verify(open.Key, open.Move, digest))
}

func TestCommitRejectsBiasedSample(t *testing.T) {
	// 2^64 mod 3 == 1, so the largest value is rejected and the next draw used.
	c, err := Commit(bytes.NewReader(fixture(^uint64(0), 1)), classicMoves(t), MinKeyBytes)
	require.NoError(t, err)

	open, err := c.Reveal()
	require.NoError(t, err)
	assert.Equal(t, "paper", open.Move)
}

func TestRevealOnce(t *testing.T) {
	c, err := Commit(nil, classicMoves(t), MinKeyBytes)
	require.NoError(t, err)

	_, err = c.Reveal()
	require.NoError(t, err)

	_, err = c.Reveal()
	assert.True(t, errors.Is(err, ErrAlreadyRevealed))
}

func TestCommitInsufficientEntropy(t *testing.T) {
	moves := classicMoves(t)

	cases := map[string][]byte{
		"empty":        nil,
		"short key":    make([]byte, 10),
		"no move draw": make([]byte, MinKeyBytes),
		"partial draw": make([]byte, MinKeyBytes+4),
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Commit(bytes.NewReader(src), moves, MinKeyBytes)
			assert.True(t, errors.Is(err, ErrInsufficientEntropy), "got %v", err)
		})
	}

	_, err := Commit(errReader{}, moves, MinKeyBytes)
	assert.True(t, errors.Is(err, ErrInsufficientEntropy))
}

func TestCommitWeakKey(t *testing.T) {
	_, err := Commit(nil, classicMoves(t), 16)
	assert.True(t, errors.Is(err, ErrWeakKey))
}

func TestCommitKeyFreshness(t *testing.T) {
	moves := classicMoves(t)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		c, err := Commit(nil, moves, MinKeyBytes)
		require.NoError(t, err)
		open, err := c.Reveal()
		require.NoError(t, err)
		assert.Len(t, open.Key, 2*MinKeyBytes)
		assert.False(t, seen[open.Key], "key repeated")
		seen[open.Key] = true
	}
}

func TestCommitUniformDraw(t *testing.T) {
	moves := classicMoves(t)
	counts := make(map[string]int)
	const rounds = 3000
	for i := 0; i < rounds; i++ {
		c, err := Commit(nil, moves, MinKeyBytes)
		require.NoError(t, err)
		open, err := c.Reveal()
		require.NoError(t, err)
		counts[open.Move]++
	}
	for _, name := range moves.Names() {
		assert.Greater(t, counts[name], 800, "move %s drawn %d times", name, counts[name])
	}
}

func TestVerify(t *testing.T) {
	key := hex.EncodeToString(bytes.Repeat([]byte{0x01}, MinKeyBytes))
	digest := Sign(key, "rock")

	assert.True(t, Verify(key, "rock", digest))
	assert.True(t, Verify(" "+key+" ", "rock", "  "+digest))
	assert.False(t, Verify(key, "paper", digest))
	assert.False(t, Verify(key, "Rock", digest))
	assert.False(t, Verify(key[:len(key)-2]+"00", "rock", digest))
	assert.False(t, Verify(key, "rock", ""))
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("read error") }
