package seed

import (
	"fmt"
	"log"
	"os"

	"github.com/goccy/go-yaml"

	"nexusmatch/models"
)

// TournamentSeed is a tournament template; its start date is relative to
// the moment the seed is generated.
type TournamentSeed struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Game            string `yaml:"game"`
	PrizePool       string `yaml:"prize_pool"`
	EntryFee        int64  `yaml:"entry_fee"`
	Status          string `yaml:"status"`
	StartInHours    int    `yaml:"start_in_hours"` // negative = already started
	MaxTeams        int    `yaml:"max_teams"`
	RegisteredTeams int    `yaml:"registered_teams"`
	Format          string `yaml:"format"`
	Description     string `yaml:"description"`
}

// Catalog is the candidate pool the random generator picks from.
type Catalog struct {
	Games        []string            `yaml:"games"`
	Regions      []string            `yaml:"regions"`
	SkillLevels  []string            `yaml:"skill_levels"`
	MatchTypes   []string            `yaml:"match_types"`
	Gamertags    []string            `yaml:"gamertags"`
	ChatLines    []string            `yaml:"chat_lines"`
	Descriptions map[string][]string `yaml:"descriptions"` // game -> match blurbs
	Tournaments  []TournamentSeed    `yaml:"tournaments"`
}

// DefaultCatalog returns the built-in candidate pool.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Games:       append([]string(nil), models.Games...),
		Regions:     append([]string(nil), models.Regions...),
		SkillLevels: append([]string(nil), models.SkillLevels...),
		MatchTypes:  append([]string(nil), models.MatchTypes...),
		Gamertags: []string{
			"ShadowStrike", "NeonBlade", "CyberPh4ntom", "VoidWalker", "PixelReaper",
			"GlitchHunter", "ByteStorm", "NullPointer", "DarkMatter", "QuantumRush",
			"IronPulse", "StealthViper", "RazorEdge", "BlitzKrieg", "MercuryRise",
			"PhotonBlast", "TurboNova", "ZeroGrav", "OmegaFlux", "ChronoShift",
		},
		ChatLines: []string{
			"Hey, wanna queue up?",
			"GG last game!",
			"I'm online now, let's run it",
			"What rank are you this season?",
			"Need one more for our team",
			"That play was insane",
			"Same time tomorrow?",
			"Just got promoted, let's celebrate with some games",
		},
		Descriptions: map[string][]string{
			"Valorant":          {"Need Duelist or Sentinel for ranked grind", "LFG Immortal+ push, mic required", "Chill comp games, no tilt"},
			"CS2":               {"Premier mode, need AWPer", "Faceit Level 8+ grind", "Looking for IGL, serious team"},
			"League of Legends": {"Need jungler for Clash", "Duo bot lane, ADC main", "Ranked flex, Gold+"},
			"Apex Legends":      {"Ranked grind, Diamond lobby", "Need third for trios, aggressive playstyle", "Pubs for fun, all welcome"},
			"Fortnite":          {"Arena duos, need a cracked builder", "Tournament prep, serious players only", "Creative 1v1s and chill vibes"},
			"Overwatch 2":       {"Need tank main for comp", "Looking for support, Masters+", "Quick play, just having fun"},
			"Rocket League":     {"2s ranked, Diamond+", "Tournament team, C1+", "Casual 3s, all ranks"},
			"Call of Duty":      {"Warzone squad, aggressive rotations", "Ranked play, need AR slayer", "CDL watch party + play"},
			"Rainbow Six Siege": {"Stack for ranked, Plat+", "Need hard breacher main", "Casual fun, learning new ops"},
			"Dota 2":            {"Need pos 4/5 for ranked", "Battle cup team, Ancient+", "Turbo games, chill session"},
		},
		Tournaments: []TournamentSeed{
			{
				ID: "t1", Name: "Neon Clash Series", Game: "Valorant", PrizePool: "5,000 Coins", EntryFee: 50,
				Status: "upcoming", StartInHours: 72, MaxTeams: 32, RegisteredTeams: 24, Format: "5v5 Single Elimination",
				Description: "The premier Valorant tournament for competitive players. Prove your worth in the Neon Clash Series.",
			},
			{
				ID: "t2", Name: "Cyber Strike Open", Game: "CS2", PrizePool: "10,000 Coins", EntryFee: 100,
				Status: "upcoming", StartInHours: 168, MaxTeams: 16, RegisteredTeams: 12, Format: "5v5 Double Elimination",
				Description: "Elite CS2 competition. Double elimination bracket with top-tier prizes.",
			},
			{
				ID: "t3", Name: "Pixel Royale", Game: "Fortnite", PrizePool: "3,000 Coins", EntryFee: 25,
				Status: "live", StartInHours: -1, MaxTeams: 64, RegisteredTeams: 64, Format: "Solos - 3 Rounds",
				Description: "Battle royale at its finest. 64 players compete across 3 rounds.",
			},
			{
				ID: "t4", Name: "Apex Predator Cup", Game: "Apex Legends", PrizePool: "7,500 Coins", EntryFee: 75,
				Status: "upcoming", StartInHours: 120, MaxTeams: 20, RegisteredTeams: 15, Format: "Trios - Points System",
				Description: "Points-based Apex tournament. Placement + kills scoring system.",
			},
			{
				ID: "t5", Name: "Rift Champions", Game: "League of Legends", PrizePool: "15,000 Coins", EntryFee: 150,
				Status: "upcoming", StartInHours: 336, MaxTeams: 8, RegisteredTeams: 6, Format: "5v5 Round Robin + Playoffs",
				Description: "The most prestigious League tournament on NexusMatch. Round robin into best-of-3 playoffs.",
			},
			{
				ID: "t6", Name: "Rocket Masters", Game: "Rocket League", PrizePool: "2,000 Coins", EntryFee: 30,
				Status: "completed", StartInHours: -48, MaxTeams: 16, RegisteredTeams: 16, Format: "3v3 Double Elimination",
				Description: "Aerial goals and clutch saves. The best Rocket League teams battled it out.",
			},
		},
	}
}

// LoadCatalog reads a YAML catalog. Lists left out of the file keep their
// built-in defaults.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes YAML over the defaults and validates the result.
func ParseCatalog(data []byte) (*Catalog, error) {
	cat := DefaultCatalog()
	if err := yaml.Unmarshal(data, cat); err != nil {
		return nil, fmt.Errorf("invalid seed catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	log.Printf("[SEED] Loaded catalog: %d games, %d regions, %d gamertags, %d tournaments",
		len(cat.Games), len(cat.Regions), len(cat.Gamertags), len(cat.Tournaments))
	return cat, nil
}

// Validate checks every list the generator draws from is non-empty and the
// tournament statuses are known.
func (c *Catalog) Validate() error {
	lists := map[string][]string{
		"games":        c.Games,
		"regions":      c.Regions,
		"skill_levels": c.SkillLevels,
		"match_types":  c.MatchTypes,
		"gamertags":    c.Gamertags,
		"chat_lines":   c.ChatLines,
	}
	for name, values := range lists {
		if len(values) == 0 {
			return fmt.Errorf("seed catalog: %s must not be empty", name)
		}
	}
	for _, t := range c.Tournaments {
		switch models.TournamentStatus(t.Status) {
		case models.TournamentUpcoming, models.TournamentLive, models.TournamentCompleted:
		default:
			return fmt.Errorf("seed catalog: tournament %q has unknown status %q", t.ID, t.Status)
		}
	}
	return nil
}
