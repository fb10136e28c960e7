package models

// GameMode describes a playing format for a round. The catalog is display
// metadata only; net scoring and standings work the same under every mode.
type GameMode struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ScoringType string `json:"scoring_type"` // "stroke", "points" or "skins"
}

var GameModes = []GameMode{
	{
		Key:         "scramble",
		Name:        "Scramble",
		Description: "All players tee off, choose the best shot, and everyone plays their next shot from that spot. Repeat until the ball is holed.",
		ScoringType: "stroke",
	},
	{
		Key:         "best_ball",
		Name:        "Best Ball (Four-Ball)",
		Description: "Everyone plays their own ball. The team score for the hole is the lowest single score among the team members.",
		ScoringType: "stroke",
	},
	{
		Key:         "stableford",
		Name:        "Stableford",
		Description: "Points are awarded based on your score relative to par (e.g., Par = 2 pts, Birdie = 3 pts). The goal is to get the highest score.",
		ScoringType: "points",
	},
	{
		Key:         "bingo_bango_bongo",
		Name:        "Bingo Bango Bongo",
		Description: "Three points per hole: 1 for first on the green, 1 for closest to the pin (once all are on), 1 for first in the hole.",
		ScoringType: "points",
	},
	{
		Key:         "skins",
		Name:        "Skins",
		Description: "Each hole is worth a \"skin\". The lowest score wins the skin. If there is a tie, the skin carries over to the next hole.",
		ScoringType: "skins",
	},
}

// ValidGameMode reports whether key names a mode from the catalog.
func ValidGameMode(key string) bool {
	for _, mode := range GameModes {
		if mode.Key == key {
			return true
		}
	}
	return false
}
