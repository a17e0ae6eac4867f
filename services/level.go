package services

import "math"

// MaxLevel caps the curve; beyond it CurrentLevelXP grows unbounded.
const MaxLevel = 100

// LevelProgress is the derived leveling state for a cumulative XP total.
type LevelProgress struct {
	Level          int   `json:"level"`
	CurrentLevelXP int64 `json:"current_level_xp"`
	NextLevelXP    int64 `json:"next_level_xp"`
}

// xpToClearLevel returns the XP required to clear the given level.
// L_n = floor(100 * n^1.5)
func xpToClearLevel(level int) int64 {
	return int64(math.Floor(100 * math.Pow(float64(level), 1.5)))
}

// LevelForXP maps a cumulative XP total to (level, within-level progress,
// XP required for the next level). Deterministic, no side effects.
func LevelForXP(totalXP int64) LevelProgress {
	if totalXP < 0 {
		totalXP = 0
	}

	level := 1
	var consumed int64
	for level < MaxLevel {
		required := xpToClearLevel(level)
		if consumed+required > totalXP {
			return LevelProgress{
				Level:          level,
				CurrentLevelXP: totalXP - consumed,
				NextLevelXP:    required,
			}
		}
		consumed += required
		level++
	}

	// Capped at MaxLevel: no next level, surplus XP keeps accumulating
	return LevelProgress{
		Level:          MaxLevel,
		CurrentLevelXP: totalXP - consumed,
		NextLevelXP:    0,
	}
}

// TitleForLevel maps a level to its display title band.
func TitleForLevel(level int) string {
	switch {
	case level >= 50:
		return "Legend"
	case level >= 35:
		return "Master"
	case level >= 20:
		return "Expert"
	case level >= 10:
		return "Enthusiast"
	case level >= 5:
		return "Explorer"
	default:
		return "Newcomer"
	}
}

// MilestoneCreditBonuses: one-time credit amounts logged when a user first
// reaches these levels. Intent is logged only — the credit ledger lives in
// the wallet service and no grant call is wired yet (kept as a named gap).
var MilestoneCreditBonuses = map[int]int64{
	10:  100,
	25:  250,
	50:  500,
	75:  750,
	100: 1000,
}
