package messages

import (
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/simon/pkg/game/types"
)

const (
	// MessageBufferSize represents the maximum size of a serialized message
	MessageBufferSize = 4096
)

type MessageType string

// Client message types
const (
	MessageTypeClientStart      MessageType = "start"
	MessageTypeClientPress      MessageType = "press"
	MessageTypeClientSkillLevel MessageType = "level"
	MessageTypeClientPing       MessageType = "ping"
)

// Server message types
const (
	MessageTypeServerHello       MessageType = "hello"
	MessageTypeServerPong        MessageType = "pong"
	MessageTypeServerText        MessageType = "text"
	MessageTypeServerVisibility  MessageType = "visibility"
	MessageTypeServerInteractive MessageType = "interactive"
	MessageTypeServerPulse       MessageType = "pulse"
	MessageTypeServerNotify      MessageType = "notify"
	MessageTypeServerSkillLevel  MessageType = "level"
	MessageTypeServerResult      MessageType = "result"
	MessageTypeServerError       MessageType = "error"
)

// Message represents a generic message for serialization/deserialization
type Message struct {
	SessionID string          `json:"sessionID"`
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
}

// NewMessage builds a message with a JSON encoded payload.
// A nil payload produces a message without one.
func NewMessage(sessionID string, messageType MessageType, payload interface{}) (*Message, error) {
	msg := &Message{
		SessionID: sessionID,
		Type:      messageType,
	}
	if payload == nil {
		return msg, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %v", messageType, err)
	}
	msg.Payload = b
	return msg, nil
}

// DecodePayload unmarshals the message payload into v.
func (m *Message) DecodePayload(v interface{}) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("message of type %s has no payload", m.Type)
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %v", m.Type, err)
	}
	return nil
}

type ClientPress struct {
	Color string `json:"color"`
}

type ClientSkillLevel struct {
	Value string `json:"value"`
}

type ClientPing struct {
	Timestamp int64 `json:"timestamp"`
}

type ServerHello struct {
	SessionID     string      `json:"sessionID"`
	Pads          []types.Pad `json:"pads"`
	MaxRoundCount int         `json:"maxRoundCount"`
}

type ServerPong struct {
	ClientTimestamp int64 `json:"clientTimestamp"`
}

type ServerText struct {
	Target types.Target `json:"target"`
	Text   string       `json:"text"`
}

type ServerVisibility struct {
	Target  types.Target `json:"target"`
	Visible bool         `json:"visible"`
}

type ServerInteractive struct {
	Enabled bool `json:"enabled"`
}

type ServerPulse struct {
	Color      types.Color `json:"color"`
	DurationMs int64       `json:"durationMs"`
}

type ServerNotify struct {
	Message string `json:"message"`
}

type ServerSkillLevel struct {
	Value         string `json:"value"`
	MaxRoundCount int    `json:"maxRoundCount,omitempty"`
	Error         string `json:"error,omitempty"`
}

type ServerError struct {
	Reason string `json:"reason"`
}
