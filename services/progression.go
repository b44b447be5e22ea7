package services

// XPWeights are the XP grants per action.
type XPWeights struct {
	CreateMatch       int64
	JoinMatch         int64
	ConnectionRequest int64
	AcceptConnection  int64
	SendMessage       int64
	DailyReward       int64
}

var DefaultXPWeights = XPWeights{
	CreateMatch:       10,
	JoinMatch:         5,
	ConnectionRequest: 3,
	AcceptConnection:  5,
	SendMessage:       1,
	DailyReward:       25,
}

// Economy constants.
const (
	StartingCoins     int64 = 500
	DailyRewardCoins  int64 = 100
	MatchHostingCost  int64 = 10
	XPPerLevel              = 100
	StartingLevel           = 1
	MinGamertagLength       = 3
	MaxGamertagLength       = 20
	MinPlayersNeeded        = 1
	MaxPlayersNeeded        = 9
)

// CalculateLevel is the only place the level formula lives:
// level = floor(xp / 100) + 1. Negative XP is treated as zero.
func CalculateLevel(xp int64) int {
	if xp < 0 {
		xp = 0
	}
	return int(xp/XPPerLevel) + StartingLevel
}

// XPForNextLevel is the XP total at which level+1 starts.
func XPForNextLevel(level int) int64 {
	if level < StartingLevel {
		level = StartingLevel
	}
	return int64(level) * XPPerLevel
}

// XPProgress is how far into the current level xp is, in [0, 1).
func XPProgress(xp int64) float64 {
	if xp < 0 {
		return 0
	}
	return float64(xp%XPPerLevel) / XPPerLevel
}
