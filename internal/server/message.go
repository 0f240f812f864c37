package server

import (
	"encoding/json"
	"time"
)

// MessageType identifies a websocket message.
type MessageType string

const (
	// Client -> server
	MessageAction MessageType = "action"

	// Server -> client
	MessageWelcome MessageType = "welcome"
	MessageState   MessageType = "state"
	MessageError   MessageType = "error"
)

// Message is the base websocket message structure.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// WelcomeData is sent on connect. Exactly one connection per round holds
// the writer claim; everyone else observes.
type WelcomeData struct {
	RoundID string `json:"roundId"`
	Writer  bool   `json:"writer"`
}

// ErrorData carries a rejected action's error back to the client.
type ErrorData struct {
	Message string `json:"message"`
}
