package models

import "time"

type MatchStatus string

const (
	MatchStatusOpen   MatchStatus = "open"
	MatchStatusFilled MatchStatus = "filled"
	MatchStatusClosed MatchStatus = "closed"
)

// MatchRequest is a "looking for group" post. The collection is kept
// newest-first.
type MatchRequest struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Gamertag      string      `json:"gamertag"`
	Avatar        string      `json:"avatar"`
	GameName      string      `json:"gameName"`
	GameMode      string      `json:"gameMode"`
	Region        string      `json:"region"`
	SkillLevel    string      `json:"skillLevel"`
	Description   string      `json:"description"`
	Status        MatchStatus `json:"status"`
	PlayersNeeded int         `json:"playersNeeded"`
	PlayersJoined int         `json:"playersJoined"`
	CreatedAt     time.Time   `json:"createdAt"`
	Level         int         `json:"level"` // owner's level when posted
}

// IsFull reports whether no seat is left.
func (m MatchRequest) IsFull() bool {
	return m.PlayersJoined >= m.PlayersNeeded
}
