package colocate

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// epsilon guards every division that could otherwise divide by zero, per
// §4.2 and §7 ("all arithmetic branches that could divide by zero have
// explicit epsilon guards ... and never raise").
const epsilon = 1e-9

// delta computes the global dispersion δ (§4.2): the mean, over every
// ordered pair (f_i, f_j) with i<j in rarity order, of count(f_j)/count(f_i).
// Returns 0 if |F| < 2.
func delta(ro RarityOrder, counts FeatureCount) float64 {
	order := ro.Order()
	m := len(order)
	if m < 2 {
		return 0
	}
	ratios := make([]float64, 0, m*(m-1)/2)
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			denom := float64(counts[order[i]])
			if denom == 0 {
				denom = epsilon
			}
			ratios = append(ratios, float64(counts[order[j]])/denom)
		}
	}
	return stat.Mean(ratios, nil)
}

// rareIntensity computes RI(f, C) (§4.2): a Gaussian-shaped weight on how
// close count(f) is to count(f_min(C)). Returns 0 if f is not a member of
// C. RI(f_min(C)) is always 1; for any other member it returns 0 if
// f_min's count is 0 or if δ <= epsilon.
func rareIntensity(f FeatureType, c Colocation, counts FeatureCount, d float64) float64 {
	if !c.Contains(f) {
		return 0
	}
	fMin := c.FMin()
	if f == fMin {
		return 1
	}
	minCount := float64(counts[fMin])
	if minCount == 0 || d <= epsilon {
		return 0
	}
	v := float64(counts[f]) / minCount
	return math.Exp(-((v - 1) * (v - 1)) / (2 * d * d))
}

// weight returns 1/RI(f,C), the rare-intensity weight used by WPI (§4.2).
// When RI is at or below epsilon, WPI must treat f as non-prevalent, so
// weight returns the sentinel 0 rather than diverging to +Inf.
func weight(f FeatureType, c Colocation, counts FeatureCount, d float64) float64 {
	ri := rareIntensity(f, c, counts, d)
	if ri > epsilon {
		return 1 / ri
	}
	return 0
}

// participationRatio computes PR(f,C,T(C)) (§4.2): the fraction of
// instances of type f that participate in at least one row of T(C).
// Returns 0 if f has no position in C.
func participationRatio(f FeatureType, c Colocation, rows []Row, counts FeatureCount) float64 {
	pos := -1
	for i, m := range c.Features() {
		if m == f {
			pos = i
			break
		}
	}
	if pos < 0 {
		return 0
	}
	distinct := make(map[InstanceRef]struct{})
	for _, row := range rows {
		distinct[row[pos]] = struct{}{}
	}
	total := counts[f]
	if total == 0 {
		return 0
	}
	return float64(len(distinct)) / float64(total)
}

// participationIndex computes PI(C,T(C)) (§4.2): the minimum participation
// ratio over every member of C.
func participationIndex(c Colocation, rows []Row, counts FeatureCount) float64 {
	return minOverFeatures(c, func(f FeatureType) float64 {
		return participationRatio(f, c, rows, counts)
	})
}

// weightedParticipationIndex computes WPI(C,T(C),δ) (§4.2): the minimum,
// over every member f of C, of PR(f,C) * weight(f,C).
func weightedParticipationIndex(c Colocation, rows []Row, counts FeatureCount, d float64) float64 {
	return minOverFeatures(c, func(f FeatureType) float64 {
		return participationRatio(f, c, rows, counts) * weight(f, c, counts, d)
	})
}

// minOverFeatures folds fn over every member of C, tracking the minimum
// with gonum/floats the way the teacher's numeric aggregation code does.
func minOverFeatures(c Colocation, fn func(FeatureType) float64) float64 {
	values := make([]float64, len(c.Features()))
	for i, f := range c.Features() {
		values[i] = fn(f)
	}
	return floats.Min(values)
}
