package recommend

import (
	"math"
	"sort"

	"myMealPlanner/domain"
)

// Mode selects how raw signals are normalized into display scores.
type Mode string

const (
	ModeTopNormalized    Mode = "top_normalized"
	ModeFixedExponential Mode = "fixed_exponential"
	ModePercentile       Mode = "percentile"
	ModeZScoreSigmoid    Mode = "zscore_sigmoid"
	ModeLogCount         Mode = "log_count"
	ModeBayesian         Mode = "bayesian"
	ModeDecile           Mode = "decile"
	ModeWilson           Mode = "wilson"
	ModeMultiFactor      Mode = "multi_factor"
)

const DefaultMode = ModeTopNormalized

var allModes = map[Mode]bool{
	ModeTopNormalized:    true,
	ModeFixedExponential: true,
	ModePercentile:       true,
	ModeZScoreSigmoid:    true,
	ModeLogCount:         true,
	ModeBayesian:         true,
	ModeDecile:           true,
	ModeWilson:           true,
	ModeMultiFactor:      true,
}

// ParseMode reports whether s names a known scoring mode.
func ParseMode(s string) (Mode, bool) {
	m := Mode(s)
	return m, allModes[m]
}

const (
	expSteepness     = 2.0
	sigmoidSteepness = 1.2
	bayesianPrior    = 10.0
	wilsonZ          = 1.96
)

// signalStats are the set-wide aggregates every mode formula draws on.
type signalStats struct {
	raws      []float64
	sorted    []float64
	maxRaw    float64
	mean      float64
	std       float64
	maxRating float64
	maxPrep   float64
}

func computeStats(candidates []domain.CandidateRecord) signalStats {
	st := signalStats{raws: make([]float64, len(candidates))}

	sum := 0.0
	for i, c := range candidates {
		raw := c.RawSignals.Authoritative()
		st.raws[i] = raw
		sum += raw
		if raw > st.maxRaw {
			st.maxRaw = raw
		}
		if r := clampFinite(c.UserRating); r > st.maxRating {
			st.maxRating = r
		}
		if p := clampFinite(float64(c.PrepTimeMinutes)); p > st.maxPrep {
			st.maxPrep = p
		}
	}

	n := float64(len(candidates))
	if n > 0 {
		st.mean = sum / n
		varSum := 0.0
		for _, raw := range st.raws {
			d := raw - st.mean
			varSum += d * d
		}
		st.std = math.Sqrt(varSum / n)
	}
	// zero spread would divide to NaN downstream
	if st.std == 0 {
		st.std = 1
	}

	st.sorted = append([]float64(nil), st.raws...)
	sort.Float64s(st.sorted)

	return st
}

// pct returns the rank percentile of x using the first-index-with-raw>=x
// convention: all candidates tied at the same raw value receive the
// percentile of the lowest-ranked member of the tie.
func (st signalStats) pct(x float64) float64 {
	if len(st.sorted) == 0 {
		return 0
	}
	idx := sort.SearchFloat64s(st.sorted, x)
	return float64(idx+1) / float64(len(st.sorted))
}

// Normalize attaches a bounded display score to every candidate. It is
// pure: same length, same order, no I/O, and identical inputs always
// produce identical outputs. Empty input yields an empty slice.
func Normalize(candidates []domain.CandidateRecord, mode Mode) []domain.CandidateRecord {
	out := make([]domain.CandidateRecord, len(candidates))
	if len(candidates) == 0 {
		return out
	}

	st := computeStats(candidates)

	for i, c := range candidates {
		c.DisplayScore = clamp01(score(st.raws[i], c, st, mode))
		out[i] = c
	}
	return out
}

func score(raw float64, c domain.CandidateRecord, st signalStats, mode Mode) float64 {
	switch mode {
	case ModeFixedExponential:
		if st.maxRaw == 0 {
			return 0
		}
		return 1 - math.Exp(-expSteepness*raw/st.maxRaw)

	case ModePercentile:
		return st.pct(raw)

	case ModeZScoreSigmoid:
		return sigmoid(sigmoidSteepness * (raw - st.mean) / st.std)

	case ModeLogCount:
		denom := math.Log1p(st.maxRaw)
		if denom == 0 {
			return 0
		}
		return math.Log1p(raw) / denom

	case ModeBayesian:
		if st.maxRaw == 0 {
			return 0
		}
		shrunk := (raw + bayesianPrior*st.mean) / (1 + bayesianPrior)
		return shrunk / st.maxRaw

	case ModeDecile:
		return math.Ceil(st.pct(raw)*10) / 10

	case ModeWilson:
		p := 0.0
		if st.maxRaw > 0 {
			p = raw / st.maxRaw
		}
		return wilsonLowerBound(p, len(st.raws))

	case ModeMultiFactor:
		base := 0.0
		if st.maxRaw > 0 {
			base = raw / st.maxRaw
		}
		rating := 0.0
		if st.maxRating > 0 {
			rating = clampFinite(c.UserRating) / st.maxRating
		}
		prep := 0.0
		if st.maxPrep > 0 {
			prep = 1 - clampFinite(float64(c.PrepTimeMinutes))/st.maxPrep
		}
		return 0.5*base + 0.3*rating + 0.2*prep

	case ModeTopNormalized:
		fallthrough
	default:
		if st.maxRaw == 0 {
			return 0
		}
		return raw / st.maxRaw
	}
}

// wilsonLowerBound is the 95% Wilson score lower confidence bound for a
// proportion p over n trials. The caller's n is the candidate count, which
// conflates response size with observation count; kept as-is for output
// compatibility with the historical scoring behavior.
func wilsonLowerBound(p float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	nf := float64(n)
	z2 := wilsonZ * wilsonZ
	denom := 1 + z2/nf
	center := p + z2/(2*nf)
	margin := wilsonZ * math.Sqrt((p*(1-p)+z2/(4*nf))/nf)
	return (center - margin) / denom
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampFinite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
