package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"nexusmatch/models"
)

// Conversations returns every conversation, newest first.
func (s *Store) Conversations() []models.Conversation {
	s.conversations.mu.Lock()
	defer s.conversations.mu.Unlock()

	out := make([]models.Conversation, len(s.conversations.value))
	for i, c := range s.conversations.value {
		out[i] = c.Clone()
	}
	return out
}

func (s *Store) Conversation(id string) (models.Conversation, bool) {
	s.conversations.mu.Lock()
	defer s.conversations.mu.Unlock()

	for _, c := range s.conversations.value {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return models.Conversation{}, false
}

func (s *Store) conversationIndex(id string) int {
	for i, c := range s.conversations.value {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// SendMessage appends a message from the local profile. An unknown
// conversation is a no-op reported as false.
func (s *Store) SendMessage(ctx context.Context, conversationID, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, fmt.Errorf("%w: message text is empty", ErrValidation)
	}

	s.conversations.mu.Lock()
	defer s.conversations.mu.Unlock()

	sender := s.Profile()
	if sender == nil {
		return false, ErrNotOnboarded
	}

	idx := s.conversationIndex(conversationID)
	if idx < 0 {
		return false, nil
	}

	msg := models.Message{
		ID:        uuid.NewString(),
		SenderID:  sender.ID,
		Text:      text,
		Timestamp: s.now(),
	}
	next := append([]models.Conversation{}, s.conversations.value...)
	conv := next[idx].Clone()
	conv.Messages = append(conv.Messages, msg)
	conv.LastMessage = msg.Text
	conv.LastMessageTime = msg.Timestamp
	next[idx] = conv

	if err := commit(ctx, s, &s.conversations, next); err != nil {
		return false, err
	}

	s.grantXP(ctx, s.weights.SendMessage)
	return true, nil
}

// MarkConversationRead clears the unread counter.
func (s *Store) MarkConversationRead(ctx context.Context, id string) (bool, error) {
	s.conversations.mu.Lock()
	defer s.conversations.mu.Unlock()

	idx := s.conversationIndex(id)
	if idx < 0 {
		return false, nil
	}
	if s.conversations.value[idx].UnreadCount == 0 {
		return true, nil
	}

	next := append([]models.Conversation{}, s.conversations.value...)
	next[idx].UnreadCount = 0
	if err := commit(ctx, s, &s.conversations, next); err != nil {
		return false, err
	}
	return true, nil
}
