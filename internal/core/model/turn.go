package model

import "time"

// Turn is one inbound message event.
type Turn struct {
	ConversationID string    `json:"conversation_id"`
	ChannelID      string    `json:"channel_id,omitempty"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name,omitempty"`
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`
}

// Session is the per-conversation state the host persists between turns.
// The processor mutates it in place; it holds no other state across turns.
type Session struct {
	DidWelcome      bool   `json:"did_welcome"`
	PromptedForName bool   `json:"prompted_for_name"`
	Name            string `json:"name,omitempty"`
	ChannelID       string `json:"channel_id,omitempty"`
	LastSeen        string `json:"last_seen,omitempty"`
}
