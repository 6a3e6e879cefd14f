package ws

import (
	"net/http"

	"fair_rps/internal/game"
	"fair_rps/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// HandleWS upgrades GET /ws?moves=a,b,c and plays one round. An empty
// allowedOrigin accepts any origin.
func HandleWS(rounds RoundPlayer, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		var names []string
		if list := c.Query("moves"); list != "" {
			var err error
			if names, err = game.SplitMoves(list, rounds.MaxMoves()); err == nil {
				_, err = game.NewMoveSet(names)
			}
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade error", "error", err)
			return
		}

		// the request context ends when the handler returns
		NewSession(conn, rounds, names).Run(c.Request.Context())
	}
}
