package models

import "time"

// Profile is the local user's identity and economy state.
// Level is cached from XP and only ever written together with it.
type Profile struct {
	ID             string            `json:"id"`
	Gamertag       string            `json:"gamertag"`
	Bio            string            `json:"bio"`
	Location       string            `json:"location"`
	PreferredGames []string          `json:"preferredGames"`
	SkillLevels    map[string]string `json:"skillLevels"` // game -> tier
	Coins          int64             `json:"coins"`
	XP             int64             `json:"xp"`
	Level          int               `json:"level"`
	Avatar         string            `json:"avatar"`
	LastDailyClaim *time.Time        `json:"lastDailyClaim"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// Clone returns a deep copy so callers can't mutate store state.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.PreferredGames = make([]string, len(p.PreferredGames))
	copy(out.PreferredGames, p.PreferredGames)
	if p.SkillLevels != nil {
		out.SkillLevels = make(map[string]string, len(p.SkillLevels))
		for k, v := range p.SkillLevels {
			out.SkillLevels[k] = v
		}
	}
	if p.LastDailyClaim != nil {
		t := *p.LastDailyClaim
		out.LastDailyClaim = &t
	}
	return &out
}
