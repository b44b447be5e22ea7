package services

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/gosimple/unidecode"
	"golang.org/x/text/cases"

	"nexusmatch/models"
)

// AllFilter is the chip value meaning "no filter".
const AllFilter = "All"

// GameKey is the URL-safe key of a game name ("League of Legends" ->
// "league-of-legends").
func GameKey(name string) string {
	return slug.Make(name)
}

// GameByKey resolves a key or a display name to the catalog game.
func GameByKey(key string) (string, bool) {
	want := GameKey(key)
	for _, g := range models.Games {
		if GameKey(g) == want {
			return g, true
		}
	}
	return "", false
}

func unset(v string) bool {
	return v == "" || strings.EqualFold(v, AllFilter)
}

// MatchFilter narrows the match board the way the home screen chips do.
type MatchFilter struct {
	Game       string // display name or GameKey
	Region     string
	SkillLevel string
	Status     models.MatchStatus
	OwnerID    string
}

func (f MatchFilter) Match(m models.MatchRequest) bool {
	if !unset(f.Game) && GameKey(m.GameName) != GameKey(f.Game) {
		return false
	}
	if !unset(f.Region) && m.Region != f.Region {
		return false
	}
	if !unset(f.SkillLevel) && m.SkillLevel != f.SkillLevel {
		return false
	}
	if !unset(string(f.Status)) && m.Status != f.Status {
		return false
	}
	if f.OwnerID != "" && m.UserID != f.OwnerID {
		return false
	}
	return true
}

func FilterMatches(matches []models.MatchRequest, f MatchFilter) []models.MatchRequest {
	out := make([]models.MatchRequest, 0, len(matches))
	for _, m := range matches {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// ConnectionFilter selects by status and an optional gamertag search.
type ConnectionFilter struct {
	Status models.ConnectionStatus
	Query  string
}

func (f ConnectionFilter) Match(c models.Connection) bool {
	if !unset(string(f.Status)) && c.Status != f.Status {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" && !strings.Contains(fold(c.Gamertag), fold(q)) {
		return false
	}
	return true
}

func FilterConnections(conns []models.Connection, f ConnectionFilter) []models.Connection {
	out := make([]models.Connection, 0, len(conns))
	for _, c := range conns {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

func FilterTournaments(ts []models.Tournament, status models.TournamentStatus) []models.Tournament {
	out := make([]models.Tournament, 0, len(ts))
	for _, t := range ts {
		if unset(string(status)) || t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// fold makes gamertags comparable across case and accents ("ÉLITE" and
// "elite" fold alike).
func fold(s string) string {
	return cases.Fold().String(unidecode.Unidecode(s))
}
