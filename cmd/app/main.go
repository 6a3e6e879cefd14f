package main

import (
	"fmt"
	"os"

	"fair_rps/internal/cli"
	"fair_rps/internal/fairness"
	"fair_rps/internal/game"
	"fair_rps/internal/logger"
)

func main() {
	// stdout belongs to the game
	logger.Init(os.Stderr, os.Getenv("LOG_LEVEL"), false)

	engine, err := game.NewEngine(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Example: app rock paper scissors")
		os.Exit(1)
	}

	c, err := fairness.Commit(nil, engine.Moves(), fairness.MinKeyBytes)
	if err != nil {
		logger.Fatal("commit computer move", "error", err)
	}
	logger.Debug("computer move committed", "moves", engine.Moves().Len())

	if err := cli.Run(os.Stdin, os.Stdout, engine, c); err != nil {
		logger.Fatal("game failed", "error", err)
	}
}
