package models

import "time"

type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"senderId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation with one participant. LastMessage/LastMessageTime are
// denormalized from Messages (or a system line such as "Connection accepted!").
type Conversation struct {
	ID                  string    `json:"id"`
	ParticipantID       string    `json:"participantId"`
	ParticipantGamertag string    `json:"participantGamertag"`
	ParticipantAvatar   string    `json:"participantAvatar"`
	Messages            []Message `json:"messages"`
	LastMessage         string    `json:"lastMessage"`
	LastMessageTime     time.Time `json:"lastMessageTime"`
	UnreadCount         int       `json:"unreadCount"`
}

// Clone copies the message slice as well.
func (c Conversation) Clone() Conversation {
	c.Messages = append([]Message{}, c.Messages...)
	return c
}
