package recommend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myMealPlanner/domain"
)

func similarityCandidates(raws ...float64) []domain.CandidateRecord {
	out := make([]domain.CandidateRecord, len(raws))
	for i, raw := range raws {
		out[i] = domain.CandidateRecord{
			ItemID:     string(rune('a' + i)),
			RawSignals: domain.RawSignals{domain.SignalSimilarity: raw},
		}
	}
	return out
}

func popularityCandidates(raws ...float64) []domain.CandidateRecord {
	out := make([]domain.CandidateRecord, len(raws))
	for i, raw := range raws {
		out[i] = domain.CandidateRecord{
			ItemID:     string(rune('a' + i)),
			RawSignals: domain.RawSignals{domain.SignalPopularity: raw},
		}
	}
	return out
}

func TestNormalizeTopNormalized(t *testing.T) {
	scored := Normalize(similarityCandidates(10, 5, 0), ModeTopNormalized)

	require.Len(t, scored, 3)
	assert.InDelta(t, 1.0, scored[0].DisplayScore, 1e-9)
	assert.InDelta(t, 0.5, scored[1].DisplayScore, 1e-9)
	assert.InDelta(t, 0.0, scored[2].DisplayScore, 1e-9)
}

func TestNormalizeLogCount(t *testing.T) {
	scored := Normalize(popularityCandidates(10, 5, 0), ModeLogCount)

	require.Len(t, scored, 3)
	assert.InDelta(t, 1.0, scored[0].DisplayScore, 1e-9)
	assert.InDelta(t, math.Log1p(5)/math.Log1p(10), scored[1].DisplayScore, 1e-9)
	assert.InDelta(t, 0.0, scored[2].DisplayScore, 1e-9)
}

func TestNormalizeEmptyInput(t *testing.T) {
	for mode := range allModes {
		scored := Normalize(nil, mode)
		assert.Empty(t, scored, "mode %s", mode)
	}
}

func TestNormalizeAllModesBounded(t *testing.T) {
	candidates := []domain.CandidateRecord{
		{ItemID: "a", RawSignals: domain.RawSignals{domain.SignalSimilarity: 120}, UserRating: 4.5, PrepTimeMinutes: 20},
		{ItemID: "b", RawSignals: domain.RawSignals{domain.SignalPrediction: 5.5}, UserRating: 3.0, PrepTimeMinutes: 45},
		{ItemID: "c", RawSignals: domain.RawSignals{domain.SignalPopularity: 1}, UserRating: 0, PrepTimeMinutes: 5},
		{ItemID: "d", RawSignals: domain.RawSignals{domain.SignalSimilarity: -3}},
		{ItemID: "e", RawSignals: domain.RawSignals{domain.SignalSimilarity: math.NaN()}},
		{ItemID: "f", RawSignals: domain.RawSignals{domain.SignalPrediction: math.Inf(1)}},
		{ItemID: "g"},
	}

	for mode := range allModes {
		scored := Normalize(candidates, mode)
		require.Len(t, scored, len(candidates), "mode %s", mode)
		for _, c := range scored {
			assert.GreaterOrEqual(t, c.DisplayScore, 0.0, "mode %s item %s", mode, c.ItemID)
			assert.LessOrEqual(t, c.DisplayScore, 1.0, "mode %s item %s", mode, c.ItemID)
			assert.False(t, math.IsNaN(c.DisplayScore), "mode %s item %s", mode, c.ItemID)
		}
	}
}

func TestNormalizePreservesOrderAndIsPure(t *testing.T) {
	candidates := similarityCandidates(3, 9, 1, 7)

	first := Normalize(candidates, ModePercentile)
	second := Normalize(candidates, ModePercentile)

	require.Len(t, first, 4)
	for i := range first {
		assert.Equal(t, candidates[i].ItemID, first[i].ItemID)
		assert.Equal(t, first[i].DisplayScore, second[i].DisplayScore)
	}
	// inputs are never mutated
	for _, c := range candidates {
		assert.Zero(t, c.DisplayScore)
	}
}

func TestNormalizeTopMonotonic(t *testing.T) {
	scored := Normalize(similarityCandidates(2, 8, 5, 8), ModeTopNormalized)

	for i := range scored {
		for j := range scored {
			rawI := scored[i].RawSignals.Authoritative()
			rawJ := scored[j].RawSignals.Authoritative()
			if rawI > rawJ {
				assert.Greater(t, scored[i].DisplayScore, scored[j].DisplayScore)
			}
			if rawI == rawJ {
				assert.Equal(t, scored[i].DisplayScore, scored[j].DisplayScore)
			}
		}
	}
}

func TestNormalizePercentileTies(t *testing.T) {
	scored := Normalize(similarityCandidates(5, 5, 10), ModePercentile)

	// tied values take the percentile of the lowest-ranked member
	assert.InDelta(t, 1.0/3.0, scored[0].DisplayScore, 1e-9)
	assert.InDelta(t, 1.0/3.0, scored[1].DisplayScore, 1e-9)
	assert.InDelta(t, 1.0, scored[2].DisplayScore, 1e-9)
}

func TestNormalizeDecileSteps(t *testing.T) {
	scored := Normalize(similarityCandidates(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), ModeDecile)

	for _, c := range scored {
		steps := c.DisplayScore * 10
		assert.InDelta(t, math.Round(steps), steps, 1e-9, "decile scores land on tenths")
		assert.Greater(t, c.DisplayScore, 0.0)
	}
	assert.InDelta(t, 1.0, scored[9].DisplayScore, 1e-9)
}

func TestNormalizeWilsonBelowTopNormalized(t *testing.T) {
	candidates := similarityCandidates(10, 7, 3, 1)

	top := Normalize(candidates, ModeTopNormalized)
	wilson := Normalize(candidates, ModeWilson)

	for i := range top {
		assert.LessOrEqual(t, wilson[i].DisplayScore, top[i].DisplayScore,
			"wilson lower bound never exceeds the plain ratio")
	}
}

func TestNormalizeBayesianShrinksTowardMean(t *testing.T) {
	candidates := similarityCandidates(10, 5, 0)

	top := Normalize(candidates, ModeTopNormalized)
	bayes := Normalize(candidates, ModeBayesian)

	// the extremes move toward the mean ratio, the middle stays put
	assert.Less(t, bayes[0].DisplayScore, top[0].DisplayScore)
	assert.Greater(t, bayes[2].DisplayScore, top[2].DisplayScore)
	assert.InDelta(t, top[1].DisplayScore, bayes[1].DisplayScore, 1e-9)
}

func TestNormalizeZScoreSigmoidConstantInput(t *testing.T) {
	scored := Normalize(similarityCandidates(4, 4, 4), ModeZScoreSigmoid)

	// zero spread maps everything to the sigmoid midpoint
	for _, c := range scored {
		assert.InDelta(t, 0.5, c.DisplayScore, 1e-9)
	}
}

func TestNormalizeFixedExponentialTopScore(t *testing.T) {
	scored := Normalize(similarityCandidates(10, 0), ModeFixedExponential)

	assert.InDelta(t, 1-math.Exp(-expSteepness), scored[0].DisplayScore, 1e-9)
	assert.InDelta(t, 0.0, scored[1].DisplayScore, 1e-9)
}

func TestNormalizeMultiFactorWeights(t *testing.T) {
	candidates := []domain.CandidateRecord{
		{ItemID: "a", RawSignals: domain.RawSignals{domain.SignalSimilarity: 10}, UserRating: 5, PrepTimeMinutes: 10},
		{ItemID: "b", RawSignals: domain.RawSignals{domain.SignalSimilarity: 5}, UserRating: 2.5, PrepTimeMinutes: 40},
	}

	scored := Normalize(candidates, ModeMultiFactor)

	// a: base 1.0, rating 1.0, prep 1-10/40
	wantA := 0.5*1.0 + 0.3*1.0 + 0.2*(1-10.0/40.0)
	wantB := 0.5*0.5 + 0.3*0.5 + 0.2*0.0
	assert.InDelta(t, wantA, scored[0].DisplayScore, 1e-9)
	assert.InDelta(t, wantB, scored[1].DisplayScore, 1e-9)
}

func TestNormalizeAllZeroSignals(t *testing.T) {
	candidates := similarityCandidates(0, 0, 0)

	for _, mode := range []Mode{ModeTopNormalized, ModeFixedExponential, ModeLogCount, ModeBayesian, ModeWilson} {
		scored := Normalize(candidates, mode)
		for _, c := range scored {
			assert.Zero(t, c.DisplayScore, "mode %s", mode)
		}
	}
}

func TestSignalPriority(t *testing.T) {
	both := domain.RawSignals{
		domain.SignalSimilarity: 2,
		domain.SignalPopularity: 99,
	}
	assert.Equal(t, 2.0, both.Authoritative(), "similarity outranks popularity")

	neg := domain.RawSignals{domain.SignalSimilarity: -1, domain.SignalPopularity: 7}
	assert.Zero(t, neg.Authoritative(), "present but malformed signals clamp to zero, no fallthrough")

	assert.Zero(t, domain.RawSignals{}.Authoritative())
}

func TestParseMode(t *testing.T) {
	mode, ok := ParseMode("percentile")
	require.True(t, ok)
	assert.Equal(t, ModePercentile, mode)

	_, ok = ParseMode("nonsense")
	assert.False(t, ok)

	assert.Equal(t, ModeTopNormalized, DefaultMode)
}
