package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"fair_rps/internal/fairness"
)

var ErrMismatch = errors.New("hmac mismatch")

// VerifyConfig holds the values revealed after a round.
type VerifyConfig struct {
	Key  string
	Move string
	HMAC string
}

// ParseVerifyConfig parses flags into a VerifyConfig.
func ParseVerifyConfig(fs *flag.FlagSet, args []string) (VerifyConfig, error) {
	var cfg VerifyConfig
	fs.StringVar(&cfg.Key, "key", "", "revealed HMAC key (hex)")
	fs.StringVar(&cfg.Move, "move", "", "revealed computer move")
	fs.StringVar(&cfg.HMAC, "hmac", "", "HMAC shown before the move")
	if err := fs.Parse(args); err != nil {
		return VerifyConfig{}, err
	}
	if cfg.Key == "" || cfg.Move == "" || cfg.HMAC == "" {
		return VerifyConfig{}, errors.New("-key, -move and -hmac are required")
	}
	return cfg, nil
}

// RunVerify writes the verdict to out and returns ErrMismatch when the HMAC
// does not match.
func RunVerify(cfg VerifyConfig, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	if !fairness.Verify(cfg.Key, cfg.Move, cfg.HMAC) {
		fmt.Fprintf(out, "MISMATCH: HMAC(%s, %q) = %s\n", cfg.Key, cfg.Move, fairness.Sign(cfg.Key, cfg.Move))
		return ErrMismatch
	}
	_, err := fmt.Fprintln(out, "OK: HMAC matches")
	return err
}
