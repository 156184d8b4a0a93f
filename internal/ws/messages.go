package ws

import (
	"encoding/json"
	"time"

	"wordduel/internal/model"
)

// MessageType identifies a protocol message
type MessageType string

// Client -> server commands
const (
	MsgCreateMatch    MessageType = "create_match"
	MsgJoinMatch      MessageType = "join_match"
	MsgGetOpenMatches MessageType = "get_open_matches"
	MsgSetSecret      MessageType = "set_secret"
	MsgSubmitGuess    MessageType = "submit_guess"
	MsgPing           MessageType = "ping"
)

// Server -> client events
const (
	MsgMatchCreated    MessageType = "match_created"
	MsgRoleAssigned    MessageType = "role_assigned"
	MsgMatchState      MessageType = "match_state"
	MsgOpenMatches     MessageType = "open_matches"
	MsgCommandRejected MessageType = "command_rejected"
	MsgPong            MessageType = "pong"
)

// ClientMessage is the envelope for commands. Payloads are decoded into
// their typed structs per command; unknown types and malformed payloads
// are rejected before reaching match logic.
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage is the envelope for events
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   any         `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a server message stamped with the current time
func NewServerMessage(msgType MessageType, payload any) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Command payloads

// JoinMatchPayload carries the identifier of the match to join
type JoinMatchPayload struct {
	MatchID string `json:"matchId"`
}

// WordPayload carries a secret or guess word
type WordPayload struct {
	Word string `json:"word"`
}

// Event payloads

// MatchCreatedPayload acknowledges match creation
type MatchCreatedPayload struct {
	MatchID model.MatchID `json:"matchId"`
}

// RoleAssignedPayload informs a connection of its role
type RoleAssignedPayload struct {
	Role model.Role `json:"role"`
}

// OpenMatchesPayload lists matches awaiting a second participant
type OpenMatchesPayload struct {
	Matches []model.OpenMatch `json:"matches"`
}

// RejectedPayload explains why a command was refused
type RejectedPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
