package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"fair_rps/internal/fairness"
	"fair_rps/internal/ws"
)

// ws_smoke plays one round against a running server and checks the reveal.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	addr := flag.String("addr", "127.0.0.1:"+port, "server host:port")
	moves := flag.String("moves", "", "comma separated moves, empty for the server default")
	flag.Parse()

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	if *moves != "" {
		u.RawQuery = url.Values{"moves": []string{*moves}}.Encode()
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var commit struct {
		Type    string           `json:"type"`
		Payload ws.CommitPayload `json:"payload"`
	}
	readJSON(conn, &commit)
	if commit.Type != ws.MsgCommit {
		log.Fatalf("expected commit, got %s", commit.Type)
	}
	fmt.Printf("round %s HMAC: %s\n", commit.Payload.ID, commit.Payload.HMAC)

	move := commit.Payload.Moves[rand.Intn(len(commit.Payload.Moves))]
	if err := conn.WriteJSON(ws.Inbound{Type: ws.MsgMove, Value: move}); err != nil {
		log.Fatalf("send move: %v", err)
	}

	var result struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	readJSON(conn, &result)
	if result.Type != ws.MsgResult {
		log.Fatalf("expected result, got %s: %s", result.Type, result.Payload)
	}
	var res ws.ResultPayload
	if err := json.Unmarshal(result.Payload, &res); err != nil {
		log.Fatalf("decode result: %v", err)
	}

	fmt.Printf("your move: %s, computer move: %s, result: %s\n", res.YourMove, res.ComputerMove, res.Result)
	if !fairness.Verify(res.Key, res.ComputerMove, commit.Payload.HMAC) {
		log.Fatalf("HMAC mismatch for key %s", res.Key)
	}
	fmt.Println("HMAC verified")
}

func readJSON(conn *websocket.Conn, v any) {
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	if err := conn.ReadJSON(v); err != nil {
		log.Fatalf("read: %v", err)
	}
}
