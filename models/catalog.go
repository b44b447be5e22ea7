package models

// Games players can post match requests for.
var Games = []string{
	"Valorant",
	"CS2",
	"League of Legends",
	"Apex Legends",
	"Fortnite",
	"Overwatch 2",
	"Rocket League",
	"Call of Duty",
	"Rainbow Six Siege",
	"Dota 2",
}

var Regions = []string{
	"NA East",
	"NA West",
	"EU West",
	"EU East",
	"Asia Pacific",
	"South America",
	"Oceania",
}

// SkillLevels is ordered from lowest to highest tier.
var SkillLevels = []string{
	"Bronze",
	"Silver",
	"Gold",
	"Platinum",
	"Diamond",
	"Master",
	"Grandmaster",
	"Radiant",
}

var MatchTypes = []string{
	"Competitive",
	"Casual",
	"Ranked",
	"Scrimmage",
	"Tournament",
}

// AvatarColors are the avatar tokens handed out to gamers.
var AvatarColors = []string{
	"#00F0FF",
	"#FF00E5",
	"#7B61FF",
	"#00FF88",
	"#FFB800",
	"#FF3366",
}

// DefaultAvatar is the avatar token of a freshly onboarded profile.
const DefaultAvatar = "#00F0FF"

// AvatarFor picks a stable avatar colour for a gamertag (sum of code points).
func AvatarFor(gamertag string) string {
	sum := 0
	for _, r := range gamertag {
		sum += int(r)
	}
	return AvatarColors[sum%len(AvatarColors)]
}

// Contains reports whether v is one of the catalog values.
func Contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
