package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"fair_rps/internal/cli"
)

func main() {
	cfg, err := cli.ParseVerifyConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cli.RunVerify(cfg, os.Stdout); err != nil {
		if !errors.Is(err, cli.ErrMismatch) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
