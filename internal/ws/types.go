package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeUndo      MessageType = "undo"
	MessageTypeReset     MessageType = "reset"
	MessageTypeAIMove    MessageType = "aiMove"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload is the payload of a move message. Coordinates are zero based,
// rank first.
type MovePayload struct {
	StartRank      int    `json:"startRank"`
	StartFile      int    `json:"startFile"`
	EndRank        int    `json:"endRank"`
	EndFile        int    `json:"endFile"`
	PromotionPiece string `json:"promotionPiece"`
}

// AIMovePayload asks the server to play a move for the side to move.
type AIMovePayload struct {
	Difficulty string `json:"difficulty"`
}

// ErrorPayload carries a human readable error back to the client.
type ErrorPayload struct {
	Error string `json:"error"`
}
