package scoring_test

import (
	"testing"

	"github.com/Dosada05/prediction-league/scoring"
)

func TestTendencyOf(t *testing.T) {
	cases := []struct {
		home, away int
		want       scoring.Tendency
	}{
		{2, 1, scoring.HomeWin},
		{0, 0, scoring.Draw},
		{3, 3, scoring.Draw},
		{1, 4, scoring.AwayWin},
	}
	for _, c := range cases {
		if got := scoring.TendencyOf(c.home, c.away); got != c.want {
			t.Errorf("TendencyOf(%d, %d) = %d, want %d", c.home, c.away, got, c.want)
		}
	}
}

func TestClassicRuleset(t *testing.T) {
	r := scoring.ClassicRuleset{}
	cases := []struct {
		name           string
		ph, pa, ah, aa int
		want           int
	}{
		{"exact score", 2, 1, 2, 1, 3},
		{"exact nil-nil", 0, 0, 0, 0, 3},
		{"home win tendency", 2, 1, 3, 1, 1},
		{"draw tendency", 1, 1, 2, 2, 1},
		{"away win tendency", 0, 2, 1, 3, 1},
		{"wrong tendency", 2, 1, 1, 2, 0},
		{"draw predicted, home won", 1, 1, 2, 1, 0},
		{"home predicted, drew", 2, 0, 0, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := r.Score(c.ph, c.pa, c.ah, c.aa); got != c.want {
				t.Fatalf("Score(%d,%d,%d,%d) = %d, want %d", c.ph, c.pa, c.ah, c.aa, got, c.want)
			}
		})
	}
}

// Three points exactly when both values match; one point exactly when the
// tendencies agree but the scores differ; zero otherwise.
func TestClassicRulesetExhaustive(t *testing.T) {
	r := scoring.ClassicRuleset{}
	const max = 6
	for ph := 0; ph <= max; ph++ {
		for pa := 0; pa <= max; pa++ {
			for ah := 0; ah <= max; ah++ {
				for aa := 0; aa <= max; aa++ {
					got := r.Score(ph, pa, ah, aa)
					exact := ph == ah && pa == aa
					tendency := scoring.TendencyOf(ph, pa) == scoring.TendencyOf(ah, aa)
					want := 0
					if exact {
						want = 3
					} else if tendency {
						want = 1
					}
					if got != want {
						t.Fatalf("Score(%d,%d,%d,%d) = %d, want %d", ph, pa, ah, aa, got, want)
					}
				}
			}
		}
	}
}

func TestGoalRuleset(t *testing.T) {
	r := scoring.GoalRuleset{}
	cases := []struct {
		name           string
		ph, pa, ah, aa int
		want           int
	}{
		{"exact score", 2, 1, 2, 1, 4},
		{"home goals and tendency", 2, 1, 2, 0, 3},
		{"tendency only", 1, 0, 3, 2, 2},
		{"away goals only", 0, 1, 2, 1, 1},
		{"nothing right", 2, 0, 0, 3, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := r.Score(c.ph, c.pa, c.ah, c.aa); got != c.want {
				t.Fatalf("Score(%d,%d,%d,%d) = %d, want %d", c.ph, c.pa, c.ah, c.aa, got, c.want)
			}
		})
	}
}

func TestByName(t *testing.T) {
	if r, ok := scoring.ByName(""); !ok || r.Name() != "classic" {
		t.Fatalf("empty name should resolve to classic, got %v, %v", r, ok)
	}
	if r, ok := scoring.ByName("goals"); !ok || r.Name() != "goals" {
		t.Fatalf("goals should resolve, got %v, %v", r, ok)
	}
	if _, ok := scoring.ByName("bogus"); ok {
		t.Fatal("unknown ruleset name should not resolve")
	}
}
