package services

import (
	"context"
	"log"

	"nexusmatch/models"
)

func (s *Store) Tournaments() []models.Tournament {
	s.tournaments.mu.Lock()
	defer s.tournaments.mu.Unlock()
	return append([]models.Tournament{}, s.tournaments.value...)
}

func (s *Store) Tournament(id string) (models.Tournament, bool) {
	s.tournaments.mu.Lock()
	defer s.tournaments.mu.Unlock()
	for _, t := range s.tournaments.value {
		if t.ID == id {
			return t, true
		}
	}
	return models.Tournament{}, false
}

// RegisterForTournament charges the entry fee. It does not record a
// registration or touch RegisteredTeams; the result is the spend result.
// Completed tournaments are a no-op reported as false.
func (s *Store) RegisterForTournament(ctx context.Context, id string) (bool, error) {
	t, ok := s.Tournament(id)
	if !ok {
		return false, ErrTournamentNotFound
	}
	if t.Status == models.TournamentCompleted {
		return false, nil
	}

	paid, err := s.SpendCoins(ctx, t.EntryFee)
	if err != nil {
		return false, err
	}
	if paid {
		log.Printf("[STORE] 🏆 Entry fee paid for %s: %d coins", t.Name, t.EntryFee)
	}
	return paid, nil
}
