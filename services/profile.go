package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"nexusmatch/models"
)

// DailyRewardWindow must have fully elapsed since the last claim.
const DailyRewardWindow = 24 * time.Hour

// ProfileInput is what onboarding collects.
type ProfileInput struct {
	Gamertag       string            `json:"gamertag"`
	Bio            string            `json:"bio"`
	Location       string            `json:"location"`
	PreferredGames []string          `json:"preferredGames"`
	SkillLevels    map[string]string `json:"skillLevels"`
}

// ProfileUpdate carries the editable fields only. Nil or blank fields keep
// the current value; coins, XP and level are not reachable from here.
type ProfileUpdate struct {
	Gamertag       string            `json:"gamertag"`
	Bio            *string           `json:"bio"`
	Location       *string           `json:"location"`
	PreferredGames []string          `json:"preferredGames"`
	SkillLevels    map[string]string `json:"skillLevels"`
	Avatar         string            `json:"avatar"`
}

func validateGamertag(raw string) (string, error) {
	tag := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(tag)
	if n < MinGamertagLength || n > MaxGamertagLength {
		return "", fmt.Errorf("%w: gamertag must be %d-%d characters", ErrValidation, MinGamertagLength, MaxGamertagLength)
	}
	return tag, nil
}

func validateGames(games []string) error {
	for _, g := range games {
		if !models.Contains(models.Games, g) {
			return fmt.Errorf("%w: unknown game %q", ErrValidation, g)
		}
	}
	return nil
}

func validateSkillLevels(levels map[string]string) error {
	for game, tier := range levels {
		if !models.Contains(models.Games, game) {
			return fmt.Errorf("%w: unknown game %q", ErrValidation, game)
		}
		if !models.Contains(models.SkillLevels, tier) {
			return fmt.Errorf("%w: unknown skill level %q", ErrValidation, tier)
		}
	}
	return nil
}

// Profile returns a copy of the local profile, or nil before onboarding.
func (s *Store) Profile() *models.Profile {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()
	return s.profile.value.Clone()
}

func (s *Store) IsOnboarded() bool {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()
	return s.profile.value != nil
}

// CreateProfile onboards the local user with the starting economy.
func (s *Store) CreateProfile(ctx context.Context, in ProfileInput) (*models.Profile, error) {
	tag, err := validateGamertag(in.Gamertag)
	if err != nil {
		return nil, err
	}
	if err := validateGames(in.PreferredGames); err != nil {
		return nil, err
	}
	if err := validateSkillLevels(in.SkillLevels); err != nil {
		return nil, err
	}

	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	if s.profile.value != nil {
		return nil, ErrAlreadyOnboarded
	}

	p := &models.Profile{
		ID:             uuid.NewString(),
		Gamertag:       tag,
		Bio:            strings.TrimSpace(in.Bio),
		Location:       strings.TrimSpace(in.Location),
		PreferredGames: append([]string{}, in.PreferredGames...),
		SkillLevels:    map[string]string{},
		Coins:          StartingCoins,
		XP:             0,
		Level:          StartingLevel,
		Avatar:         models.DefaultAvatar,
		CreatedAt:      s.now(),
	}
	for game, tier := range in.SkillLevels {
		p.SkillLevels[game] = tier
	}

	if err := commit(ctx, s, &s.profile, p); err != nil {
		return nil, err
	}
	log.Printf("[STORE] 👤 Profile created: %s", p.Gamertag)
	return p.Clone(), nil
}

// UpdateProfile merges the editable fields into the profile.
func (s *Store) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.Profile, error) {
	if err := validateGames(upd.PreferredGames); err != nil {
		return nil, err
	}
	if err := validateSkillLevels(upd.SkillLevels); err != nil {
		return nil, err
	}
	if upd.Avatar != "" && !models.Contains(models.AvatarColors, upd.Avatar) {
		return nil, fmt.Errorf("%w: unknown avatar %q", ErrValidation, upd.Avatar)
	}

	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	if s.profile.value == nil {
		return nil, ErrNotOnboarded
	}
	next := s.profile.value.Clone()

	if strings.TrimSpace(upd.Gamertag) != "" {
		tag, err := validateGamertag(upd.Gamertag)
		if err != nil {
			return nil, err
		}
		next.Gamertag = tag
	}
	if upd.Bio != nil {
		next.Bio = strings.TrimSpace(*upd.Bio)
	}
	if upd.Location != nil {
		next.Location = strings.TrimSpace(*upd.Location)
	}
	if upd.PreferredGames != nil {
		next.PreferredGames = append([]string{}, upd.PreferredGames...)
	}
	if upd.SkillLevels != nil {
		next.SkillLevels = make(map[string]string, len(upd.SkillLevels))
		for game, tier := range upd.SkillLevels {
			next.SkillLevels[game] = tier
		}
	}
	if upd.Avatar != "" {
		next.Avatar = upd.Avatar
	}

	if err := commit(ctx, s, &s.profile, next); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

// AddXP credits XP and recomputes the level. Negative amounts are rejected.
func (s *Store) AddXP(ctx context.Context, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: xp amount must not be negative", ErrValidation)
	}
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	if s.profile.value == nil {
		return ErrNotOnboarded
	}
	return s.addXPLocked(ctx, amount)
}

// addXPLocked expects the profile lock held and a profile present.
func (s *Store) addXPLocked(ctx context.Context, amount int64) error {
	next := s.profile.value.Clone()
	before := next.Level
	next.XP += amount
	next.Level = CalculateLevel(next.XP)
	if err := commit(ctx, s, &s.profile, next); err != nil {
		return err
	}
	if next.Level > before {
		log.Printf("[STORE] ⬆️ Level up: %d -> %d", before, next.Level)
	}
	return nil
}

// grantXP is the side-effect award of other mutations. It is skipped without
// a profile, and a failed write is logged rather than returned because the
// primary change already committed.
func (s *Store) grantXP(ctx context.Context, amount int64) {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	if s.profile.value == nil || amount <= 0 {
		return
	}
	if err := s.addXPLocked(ctx, amount); err != nil {
		log.Printf("[STORE] ⚠️ XP award of %d not saved: %v", amount, err)
	}
}

// SpendCoins debits amount if the balance covers it. It reports false,
// without changing anything, when the balance is short.
func (s *Store) SpendCoins(ctx context.Context, amount int64) (bool, error) {
	if amount < 0 {
		return false, fmt.Errorf("%w: coin amount must not be negative", ErrValidation)
	}
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	if s.profile.value == nil {
		return false, ErrNotOnboarded
	}
	if s.profile.value.Coins < amount {
		return false, nil
	}
	if amount == 0 {
		return true, nil
	}

	next := s.profile.value.Clone()
	next.Coins -= amount
	if err := commit(ctx, s, &s.profile, next); err != nil {
		return false, err
	}
	return true, nil
}

// refund puts coins back after a paid flow failed past its spend.
func (s *Store) refund(ctx context.Context, amount int64) {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	if s.profile.value == nil {
		return
	}
	next := s.profile.value.Clone()
	next.Coins += amount
	if err := commit(ctx, s, &s.profile, next); err != nil {
		log.Printf("[STORE] ❌ Refund of %d coins not saved: %v", amount, err)
	}
}

// CanClaimDaily is true without a prior claim or once the window has passed.
func (s *Store) CanClaimDaily() bool {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()
	return s.canClaimLocked()
}

func (s *Store) canClaimLocked() bool {
	p := s.profile.value
	if p == nil {
		return false
	}
	if p.LastDailyClaim == nil {
		return true
	}
	return s.now().Sub(*p.LastDailyClaim) > DailyRewardWindow
}

// ClaimDailyReward grants the daily coins and XP in one write.
func (s *Store) ClaimDailyReward(ctx context.Context) (bool, error) {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	if s.profile.value == nil {
		return false, ErrNotOnboarded
	}
	if !s.canClaimLocked() {
		return false, nil
	}

	now := s.now()
	next := s.profile.value.Clone()
	next.Coins += DailyRewardCoins
	next.XP += s.weights.DailyReward
	next.Level = CalculateLevel(next.XP)
	next.LastDailyClaim = &now

	if err := commit(ctx, s, &s.profile, next); err != nil {
		return false, err
	}
	log.Printf("[STORE] 🎁 Daily reward claimed: +%d coins, +%d XP", DailyRewardCoins, s.weights.DailyReward)
	return true, nil
}
