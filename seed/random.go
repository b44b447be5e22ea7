package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"nexusmatch/models"
)

const (
	mockMatchCount        = 15
	mockConnectionCount   = 8
	mockAcceptedCount     = 5 // the first N connections are accepted and have a conversation
	recentWindow          = time.Hour
	connectionWindow      = 7 * 24 * time.Hour
	maxMockLevel          = 50
	maxMockPlayersNeeded  = 4
	maxMockPlayersJoined  = 2
	maxMockUnreadMessages = 3
)

// Random is the mock generator: fixed candidate lists combined with random
// picks and timestamps inside a recent window.
type Random struct {
	Catalog *Catalog
	Now     func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom seeds from the wall clock. Pass a nil catalog for the defaults.
func NewRandom(catalog *Catalog) *Random {
	seed := uint64(time.Now().UnixNano())
	return NewRandomWithSeed(catalog, seed)
}

// NewRandomWithSeed is deterministic for a given seed and clock.
func NewRandomWithSeed(catalog *Catalog, seed uint64) *Random {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Random{
		Catalog: catalog,
		Now:     time.Now,
		rng:     rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

func (g *Random) intN(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

func (g *Random) pick(values []string) string {
	return values[g.intN(len(values))]
}

func (g *Random) ago(window time.Duration) time.Time {
	return g.Now().Add(-time.Duration(g.intN(int(window / time.Millisecond))) * time.Millisecond)
}

func (g *Random) description(game string) string {
	if opts := g.Catalog.Descriptions[game]; len(opts) > 0 {
		return g.pick(opts)
	}
	return "Looking for players"
}

func (g *Random) Matches(_ context.Context) ([]models.MatchRequest, error) {
	tags := g.Catalog.Gamertags
	matches := make([]models.MatchRequest, 0, mockMatchCount)
	for i := 0; i < mockMatchCount; i++ {
		gamertag := tags[i%len(tags)]
		game := g.pick(g.Catalog.Games)
		needed := g.intN(maxMockPlayersNeeded) + 1
		// keep seeded matches open: at least one seat left
		joined := min(g.intN(maxMockPlayersJoined+1), needed-1)

		matches = append(matches, models.MatchRequest{
			ID:            uuid.NewString(),
			UserID:        fmt.Sprintf("user_%d", i),
			Gamertag:      gamertag,
			Avatar:        models.AvatarFor(gamertag),
			GameName:      game,
			GameMode:      g.pick(g.Catalog.MatchTypes),
			Region:        g.pick(g.Catalog.Regions),
			SkillLevel:    g.pick(g.Catalog.SkillLevels),
			Description:   g.description(game),
			Status:        models.MatchStatusOpen,
			PlayersNeeded: needed,
			PlayersJoined: joined,
			CreatedAt:     g.ago(recentWindow),
			Level:         g.intN(maxMockLevel) + 1,
		})
	}
	return matches, nil
}

func (g *Random) Connections(_ context.Context) ([]models.Connection, error) {
	n := min(mockConnectionCount, len(g.Catalog.Gamertags))
	conns := make([]models.Connection, 0, n)
	for i := 0; i < n; i++ {
		gamertag := g.Catalog.Gamertags[i]
		status := models.ConnectionPending
		if i < mockAcceptedCount {
			status = models.ConnectionAccepted
		}
		conns = append(conns, models.Connection{
			ID:        fmt.Sprintf("conn_%d", i),
			UserID:    fmt.Sprintf("user_%d", i),
			Gamertag:  gamertag,
			Avatar:    models.AvatarFor(gamertag),
			Status:    status,
			Games:     []string{g.pick(g.Catalog.Games), g.pick(g.Catalog.Games)},
			Level:     g.intN(maxMockLevel) + 1,
			CreatedAt: g.ago(connectionWindow),
		})
	}
	return conns, nil
}

// Conversations mirrors the accepted mock connections, one opening message
// each.
func (g *Random) Conversations(_ context.Context) ([]models.Conversation, error) {
	n := min(mockAcceptedCount, len(g.Catalog.Gamertags))
	convs := make([]models.Conversation, 0, n)
	for i := 0; i < n; i++ {
		gamertag := g.Catalog.Gamertags[i]
		userID := fmt.Sprintf("user_%d", i)
		msg := models.Message{
			ID:        fmt.Sprintf("msg_%d_1", i),
			SenderID:  userID,
			Text:      g.pick(g.Catalog.ChatLines),
			Timestamp: g.ago(recentWindow),
		}
		convs = append(convs, models.Conversation{
			ID:                  fmt.Sprintf("conv_%d", i),
			ParticipantID:       userID,
			ParticipantGamertag: gamertag,
			ParticipantAvatar:   models.AvatarFor(gamertag),
			Messages:            []models.Message{msg},
			LastMessage:         msg.Text,
			LastMessageTime:     msg.Timestamp,
			UnreadCount:         g.intN(maxMockUnreadMessages + 1),
		})
	}
	return convs, nil
}

func (g *Random) Tournaments(_ context.Context) ([]models.Tournament, error) {
	now := g.Now()
	out := make([]models.Tournament, 0, len(g.Catalog.Tournaments))
	for _, t := range g.Catalog.Tournaments {
		out = append(out, models.Tournament{
			ID:              t.ID,
			Name:            t.Name,
			GameName:        t.Game,
			PrizePool:       t.PrizePool,
			EntryFee:        t.EntryFee,
			Status:          models.TournamentStatus(t.Status),
			StartDate:       now.Add(time.Duration(t.StartInHours) * time.Hour),
			MaxTeams:        t.MaxTeams,
			RegisteredTeams: t.RegisteredTeams,
			Format:          t.Format,
			Description:     t.Description,
		})
	}
	return out, nil
}
