package ws

const (
	// client - server
	MsgMove = "move"

	// server - client
	MsgCommit = "commit"
	MsgResult = "result"
	MsgError  = "error"
)

// Message is the server - client envelope.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Inbound is the client - server envelope: {"type":"move","value":"rock"}.
type Inbound struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
