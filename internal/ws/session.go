package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fair_rps/internal/game"
	"fair_rps/internal/logger"
	"fair_rps/internal/service"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second

	maxMessageSize = 4096
)

// RoundPlayer is the part of the round service a session needs.
type RoundPlayer interface {
	Start(ctx context.Context, names []string) (*service.StartedRound, error)
	Play(ctx context.Context, id, move string) (*service.RoundResult, error)
	MaxMoves() int
}

// Session plays exactly one round over a websocket connection: commit,
// move, result, close.
type Session struct {
	conn   *websocket.Conn
	rounds RoundPlayer
	moves  []string
	send   chan []byte
}

func NewSession(conn *websocket.Conn, rounds RoundPlayer, moves []string) *Session {
	return &Session{
		conn:   conn,
		rounds: rounds,
		moves:  moves,
		send:   make(chan []byte, 16),
	}
}

// Run blocks until the round is over or the client goes away.
func (s *Session) Run(ctx context.Context) {
	defer s.conn.Close()

	written := make(chan struct{})
	go func() {
		s.writePump()
		close(written)
	}()

	round, err := s.rounds.Start(ctx, s.moves)
	if err != nil {
		logger.Error("ws: start round", "error", err)
		s.queue(Message{Type: MsgError, Payload: ErrorPayload{Message: err.Error()}})
	} else {
		ctx = logger.NewContext(ctx, logger.With("round_id", round.ID))
		logger.WithContext(ctx).Debug("ws: round committed")
		s.queue(Message{Type: MsgCommit, Payload: round})
		s.readPump(ctx, round.ID)
	}

	close(s.send)
	<-written
}

// readPump returns after a result was queued or the connection failed.
func (s *Session) readPump(ctx context.Context, roundID string) {
	log := logger.WithContext(ctx)
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("ws: read", "error", err)
			}
			return
		}

		var msg Inbound
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Type != MsgMove {
			s.queue(Message{Type: MsgError, Payload: ErrorPayload{Message: "expected {\"type\":\"move\",\"value\":<move>}"}})
			continue
		}

		res, err := s.rounds.Play(ctx, roundID, msg.Value)
		if errors.Is(err, game.ErrUnknownMove) {
			s.queue(Message{Type: MsgError, Payload: ErrorPayload{Message: err.Error()}})
			continue
		}
		if err != nil {
			log.Error("ws: play round", "error", err)
			s.queue(Message{Type: MsgError, Payload: ErrorPayload{Message: err.Error()}})
			return
		}

		log.Debug("ws: round played", "result", res.Result)
		s.queue(Message{Type: MsgResult, Payload: res})
		return
	}
}

// writePump owns all writes. It sends a close frame once send is closed.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Warn("ws: write", "error", err)
				s.drain()
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.drain()
				return
			}
		}
	}
}

// drain discards queued messages so senders never block after a write failure.
func (s *Session) drain() {
	go func() {
		for range s.send {
		}
	}()
}

func (s *Session) queue(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("ws: marshal", "type", msg.Type, "error", err)
		return
	}
	s.send <- data
}
