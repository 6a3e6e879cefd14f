package ws

import "fair_rps/internal/service"

// server - client
type CommitPayload = service.StartedRound

type ResultPayload = service.RoundResult

type ErrorPayload struct {
	Message string `json:"message"`
}
