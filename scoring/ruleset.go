package scoring

// Tendency is the outcome category of a score pair, independent of the
// exact goal counts.
type Tendency int

const (
	AwayWin Tendency = -1
	Draw    Tendency = 0
	HomeWin Tendency = 1
)

// TendencyOf classifies a score pair as home win, draw or away win.
func TendencyOf(home, away int) Tendency {
	switch {
	case home > away:
		return HomeWin
	case home < away:
		return AwayWin
	default:
		return Draw
	}
}

// Ruleset maps a prediction and the official result to a point value.
// Implementations must be pure and total over non-negative inputs.
type Ruleset interface {
	Name() string
	Score(predictedHome, predictedAway, actualHome, actualAway int) int
}

// ClassicRuleset is the standard prediction-game scheme: 3 points for the
// exact score, 1 for the correct tendency only, 0 otherwise.
type ClassicRuleset struct{}

func (ClassicRuleset) Name() string { return "classic" }

func (ClassicRuleset) Score(ph, pa, ah, aa int) int {
	if ph == ah && pa == aa {
		return 3
	}
	if TendencyOf(ph, pa) == TendencyOf(ah, aa) {
		return 1
	}
	return 0
}

// GoalRuleset awards each part of the score independently: one point per
// exactly guessed goal count (home and away) plus two for the correct
// tendency, so an exact score is worth 4.
type GoalRuleset struct{}

func (GoalRuleset) Name() string { return "goals" }

func (GoalRuleset) Score(ph, pa, ah, aa int) int {
	points := 0
	if ph == ah {
		points++
	}
	if pa == aa {
		points++
	}
	if TendencyOf(ph, pa) == TendencyOf(ah, aa) {
		points += 2
	}
	return points
}

// ByName resolves a configured ruleset name, defaulting to classic for
// the empty string. The second return is false for unknown names.
func ByName(name string) (Ruleset, bool) {
	switch name {
	case "", "classic":
		return ClassicRuleset{}, true
	case "goals":
		return GoalRuleset{}, true
	default:
		return nil, false
	}
}
