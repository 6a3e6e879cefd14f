package handlers

import (
	"errors"
	"io"
	"net/http"

	"fair_rps/internal/fairness"
	"fair_rps/internal/game"
	"fair_rps/internal/logger"
	"fair_rps/internal/service"

	"github.com/gin-gonic/gin"
)

// StartRoundRequest is optional; an empty body uses the configured moves.
type StartRoundRequest struct {
	Moves []string `json:"moves"`
}

type MoveRequest struct {
	Move string `json:"move" binding:"required"`
}

type VerifyRequest struct {
	Key  string `json:"key" binding:"required"`
	Move string `json:"move" binding:"required"`
	HMAC string `json:"hmac" binding:"required"`
}

// StartRound handles POST /rounds.
func (h *Handler) StartRound(c *gin.Context) {
	var req StartRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	round, err := h.Rounds.Start(c.Request.Context(), req.Moves)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, round)
}

// PlayRound handles POST /rounds/:id/move.
func (h *Handler) PlayRound(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	res, err := h.Rounds.Play(c.Request.Context(), c.Param("id"), req.Move)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Verify handles POST /verify. It works for rounds played anywhere, not only
// on this server.
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": h.Rounds.Verify(req.Key, req.Move, req.HMAC)})
}

// Rules handles GET /rules?moves=a,b,c.
func (h *Handler) Rules(c *gin.Context) {
	var names []string
	if list := c.Query("moves"); list != "" {
		var err error
		if names, err = game.SplitMoves(list, h.Rounds.MaxMoves()); err != nil {
			writeError(c, err)
			return
		}
	}

	rules, err := h.Rounds.Rules(names)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rules)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidConfiguration), errors.Is(err, game.ErrUnknownMove):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRoundNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
	case errors.Is(err, fairness.ErrTampered):
		logger.Error("stored round failed verification", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "round is corrupted"})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
