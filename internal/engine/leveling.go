package engine

import "github.com/finvita/backend/internal/types"

// Progress is the leveling slice of the gamification ledger.
type Progress struct {
	TotalPoints int
	LevelPoints int
	Level       string
}

// promotionThreshold is the level-point count at which the given tier
// promotes into the next one. Diamond never promotes.
func promotionThreshold(level string) (int, bool) {
	switch level {
	case types.LevelBronze:
		return 500, true
	case types.LevelSilver:
		return 501, true
	case types.LevelGold:
		return 1501, true
	case types.LevelPlatinum:
		return 3001, true
	default:
		return 0, false
	}
}

func nextLevel(level string) string {
	switch level {
	case types.LevelBronze:
		return types.LevelSilver
	case types.LevelSilver:
		return types.LevelGold
	case types.LevelGold:
		return types.LevelPlatinum
	case types.LevelPlatinum:
		return types.LevelDiamond
	default:
		return level
	}
}

// ApplyPoints folds delta into the ledger. TotalPoints accumulates
// unconditionally and is never decremented. On crossing the current
// tier's threshold the level advances once and the threshold is
// subtracted, so overflow points carry into the new tier rather than
// being truncated. At most one promotion happens per call; a delta large
// enough to cross two thresholds banks the remainder and promotes again
// on the next award.
func ApplyPoints(p Progress, delta int) Progress {
	if delta < 0 {
		delta = 0
	}
	out := p
	if out.Level == "" {
		out.Level = types.LevelBronze
	}
	out.TotalPoints += delta
	out.LevelPoints += delta

	if threshold, ok := promotionThreshold(out.Level); ok && out.LevelPoints >= threshold {
		out.Level = nextLevel(out.Level)
		out.LevelPoints -= threshold
	}
	return out
}
