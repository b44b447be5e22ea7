package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"nexusmatch/models"
)

// AcceptedConversationLine is the system line opening a new conversation.
const AcceptedConversationLine = "Connection accepted!"

// ConnectionInput describes the gamer a request is sent to.
type ConnectionInput struct {
	UserID   string   `json:"userId"`
	Gamertag string   `json:"gamertag"`
	Avatar   string   `json:"avatar"`
	Games    []string `json:"games"`
	Level    int      `json:"level"`
}

// Connections returns every connection, newest first.
func (s *Store) Connections() []models.Connection {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	out := make([]models.Connection, len(s.connections.value))
	for i, c := range s.connections.value {
		c.Games = append([]string{}, c.Games...)
		out[i] = c
	}
	return out
}

// SendConnectionRequest adds a pending connection. A second request to the
// same user id, in any status, is a no-op reported as false.
func (s *Store) SendConnectionRequest(ctx context.Context, in ConnectionInput) (bool, error) {
	userID := strings.TrimSpace(in.UserID)
	tag := strings.TrimSpace(in.Gamertag)
	if userID == "" || tag == "" {
		return false, fmt.Errorf("%w: userId and gamertag are required", ErrValidation)
	}
	avatar := in.Avatar
	if avatar == "" {
		avatar = models.AvatarFor(tag)
	}

	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	for _, c := range s.connections.value {
		if c.UserID == userID {
			return false, nil
		}
	}

	conn := models.Connection{
		ID:        uuid.NewString(),
		UserID:    userID,
		Gamertag:  tag,
		Avatar:    avatar,
		Status:    models.ConnectionPending,
		Games:     append([]string{}, in.Games...),
		Level:     in.Level,
		CreatedAt: s.now(),
	}
	next := make([]models.Connection, 0, len(s.connections.value)+1)
	next = append(next, conn)
	next = append(next, s.connections.value...)
	if err := commit(ctx, s, &s.connections, next); err != nil {
		return false, err
	}

	s.grantXP(ctx, s.weights.ConnectionRequest)
	return true, nil
}

// AcceptConnection marks the connection accepted and opens a conversation
// with that gamer, returning the new conversation. Both collections are
// locked for the whole operation so the pair is never observed
// half-applied. Unknown or already accepted connections are a no-op.
func (s *Store) AcceptConnection(ctx context.Context, id string) (models.Conversation, bool, error) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	s.conversations.mu.Lock()
	defer s.conversations.mu.Unlock()

	idx := -1
	for i, c := range s.connections.value {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || s.connections.value[idx].Status == models.ConnectionAccepted {
		return models.Conversation{}, false, nil
	}

	prev := s.connections.value
	conns := append([]models.Connection{}, prev...)
	conns[idx].Status = models.ConnectionAccepted
	conn := conns[idx]

	conv := models.Conversation{
		ID:                  uuid.NewString(),
		ParticipantID:       conn.UserID,
		ParticipantGamertag: conn.Gamertag,
		ParticipantAvatar:   conn.Avatar,
		Messages:            []models.Message{},
		LastMessage:         AcceptedConversationLine,
		LastMessageTime:     s.now(),
		UnreadCount:         0,
	}
	convs := make([]models.Conversation, 0, len(s.conversations.value)+1)
	convs = append(convs, conv)
	convs = append(convs, s.conversations.value...)

	if err := commit(ctx, s, &s.connections, conns); err != nil {
		return models.Conversation{}, false, err
	}
	if err := commit(ctx, s, &s.conversations, convs); err != nil {
		if rbErr := commit(ctx, s, &s.connections, prev); rbErr != nil {
			// The blob still says accepted; restore memory and let Flush
			// write the pending status back.
			log.Printf("[STORE] ❌ Rollback of connection %s failed, left for flush: %v", id, rbErr)
			s.connections.value = prev
			s.connections.dirty = true
		}
		return models.Conversation{}, false, err
	}

	s.grantXP(ctx, s.weights.AcceptConnection)
	log.Printf("[STORE] 🤝 Connection accepted: %s", conn.Gamertag)
	return conv.Clone(), true, nil
}

// RejectConnection removes the connection entirely.
func (s *Store) RejectConnection(ctx context.Context, id string) (bool, error) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	next := make([]models.Connection, 0, len(s.connections.value))
	for _, c := range s.connections.value {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(s.connections.value) {
		return false, nil
	}
	if err := commit(ctx, s, &s.connections, next); err != nil {
		return false, err
	}
	return true, nil
}
