// Package seed produces the placeholder collections the store starts with
// when nothing has been persisted yet.
package seed

import (
	"context"

	"nexusmatch/models"
)

// Generator builds first-run content for each seeded collection. The profile
// is never seeded: no profile means "not onboarded".
type Generator interface {
	Matches(ctx context.Context) ([]models.MatchRequest, error)
	Connections(ctx context.Context) ([]models.Connection, error)
	Conversations(ctx context.Context) ([]models.Conversation, error)
	Tournaments(ctx context.Context) ([]models.Tournament, error)
}
