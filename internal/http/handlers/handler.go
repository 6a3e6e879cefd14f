package handlers

import (
	"fair_rps/internal/service"
)

type Handler struct {
	Rounds *service.RoundService
}

func NewHandler(rounds *service.RoundService) *Handler {
	return &Handler{Rounds: rounds}
}
