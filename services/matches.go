package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"nexusmatch/models"
)

// Defaults for fields a match request leaves empty.
const (
	DefaultMatchGame        = "Valorant"
	DefaultMatchMode        = "Competitive"
	DefaultMatchRegion      = "NA East"
	DefaultMatchSkill       = "Gold"
	DefaultMatchDescription = "Looking for players"
	DefaultPlayersNeeded    = 1
)

// MatchInput is a "looking for group" post. Zero values fall back to the
// defaults above.
type MatchInput struct {
	GameName      string `json:"gameName"`
	GameMode      string `json:"gameMode"`
	Region        string `json:"region"`
	SkillLevel    string `json:"skillLevel"`
	Description   string `json:"description"`
	PlayersNeeded int    `json:"playersNeeded"`
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func (in MatchInput) withDefaults() (MatchInput, error) {
	out := MatchInput{
		GameName:      orDefault(in.GameName, DefaultMatchGame),
		GameMode:      orDefault(in.GameMode, DefaultMatchMode),
		Region:        orDefault(in.Region, DefaultMatchRegion),
		SkillLevel:    orDefault(in.SkillLevel, DefaultMatchSkill),
		Description:   orDefault(in.Description, DefaultMatchDescription),
		PlayersNeeded: in.PlayersNeeded,
	}
	if out.PlayersNeeded == 0 {
		out.PlayersNeeded = DefaultPlayersNeeded
	}
	if out.PlayersNeeded < MinPlayersNeeded || out.PlayersNeeded > MaxPlayersNeeded {
		return out, fmt.Errorf("%w: playersNeeded must be %d-%d", ErrValidation, MinPlayersNeeded, MaxPlayersNeeded)
	}
	return out, nil
}

// Matches returns the match board, newest first.
func (s *Store) Matches() []models.MatchRequest {
	s.matches.mu.Lock()
	defer s.matches.mu.Unlock()
	return append([]models.MatchRequest{}, s.matches.value...)
}

// Match looks up one request by id.
func (s *Store) Match(id string) (models.MatchRequest, bool) {
	s.matches.mu.Lock()
	defer s.matches.mu.Unlock()
	for _, m := range s.matches.value {
		if m.ID == id {
			return m, true
		}
	}
	return models.MatchRequest{}, false
}

// CreateMatch posts a request owned by the local profile and prepends it.
func (s *Store) CreateMatch(ctx context.Context, in MatchInput) (models.MatchRequest, error) {
	in, err := in.withDefaults()
	if err != nil {
		return models.MatchRequest{}, err
	}

	s.matches.mu.Lock()
	defer s.matches.mu.Unlock()

	owner := s.Profile()
	if owner == nil {
		return models.MatchRequest{}, ErrNotOnboarded
	}

	m := models.MatchRequest{
		ID:            uuid.NewString(),
		UserID:        owner.ID,
		Gamertag:      owner.Gamertag,
		Avatar:        owner.Avatar,
		GameName:      in.GameName,
		GameMode:      in.GameMode,
		Region:        in.Region,
		SkillLevel:    in.SkillLevel,
		Description:   in.Description,
		Status:        models.MatchStatusOpen,
		PlayersNeeded: in.PlayersNeeded,
		PlayersJoined: 0,
		CreatedAt:     s.now(),
		Level:         owner.Level,
	}

	next := make([]models.MatchRequest, 0, len(s.matches.value)+1)
	next = append(next, m)
	next = append(next, s.matches.value...)
	if err := commit(ctx, s, &s.matches, next); err != nil {
		return models.MatchRequest{}, err
	}

	s.grantXP(ctx, s.weights.CreateMatch)
	log.Printf("[STORE] 🎮 Match posted: %s %s (%s)", m.GameName, m.GameMode, m.ID)
	return m, nil
}

// HostMatch charges the hosting fee and then posts the match. The fee is
// refunded if the post cannot be saved.
func (s *Store) HostMatch(ctx context.Context, in MatchInput) (models.MatchRequest, error) {
	if _, err := in.withDefaults(); err != nil {
		return models.MatchRequest{}, err
	}

	ok, err := s.SpendCoins(ctx, MatchHostingCost)
	if err != nil {
		return models.MatchRequest{}, err
	}
	if !ok {
		return models.MatchRequest{}, ErrInsufficientCoins
	}

	m, err := s.CreateMatch(ctx, in)
	if err != nil {
		s.refund(ctx, MatchHostingCost)
		return models.MatchRequest{}, err
	}
	return m, nil
}

// JoinMatch takes one seat. Unknown, full or closed matches are a silent
// no-op reported as false.
func (s *Store) JoinMatch(ctx context.Context, id string) (bool, error) {
	s.matches.mu.Lock()
	defer s.matches.mu.Unlock()

	idx := -1
	for i, m := range s.matches.value {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || s.matches.value[idx].IsFull() || s.matches.value[idx].Status == models.MatchStatusClosed {
		return false, nil
	}

	next := append([]models.MatchRequest{}, s.matches.value...)
	m := &next[idx]
	m.PlayersJoined++
	if m.IsFull() {
		m.Status = models.MatchStatusFilled
	}
	if err := commit(ctx, s, &s.matches, next); err != nil {
		return false, err
	}

	// Joiner XP goes to the local profile whoever owns the match.
	s.grantXP(ctx, s.weights.JoinMatch)
	return true, nil
}
