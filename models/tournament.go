package models

import "time"

type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentLive      TournamentStatus = "live"
	TournamentCompleted TournamentStatus = "completed"
)

// Tournament is read-mostly: registration charges the entry fee but does not
// touch RegisteredTeams.
type Tournament struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	GameName        string           `json:"gameName"`
	PrizePool       string           `json:"prizePool"` // display text, e.g. "5,000 Coins"
	EntryFee        int64            `json:"entryFee"`
	Status          TournamentStatus `json:"status"`
	StartDate       time.Time        `json:"startDate"`
	MaxTeams        int              `json:"maxTeams"`
	RegisteredTeams int              `json:"registeredTeams"`
	Format          string           `json:"format"`
	Description     string           `json:"description"`
}
