package colocate

import (
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/slices"
)

// CandidateGen implements §4.5: the Apriori join of (k-1)-prevalent
// colocations into k-candidates. Two parents join when their first k-2
// members agree; the join's last two members are the parents' differing
// last entries, sorted into rarity order.
func CandidateGen(prev []Colocation, ro RarityOrder) ([]Colocation, error) {
	seen := mapset.NewThreadUnsafeSet[string]()
	var out []Colocation

	for i := 0; i < len(prev); i++ {
		for j := i + 1; j < len(prev); j++ {
			pi, pj := prev[i], prev[j]
			if pi.Len() != pj.Len() {
				continue
			}
			k := pi.Len()
			if k == 0 {
				continue
			}
			if !sharePrefix(pi, pj, k-1) {
				continue
			}
			lastI, lastJ := pi.Features()[k-1], pj.Features()[k-1]
			if lastI == lastJ {
				continue
			}

			members := make([]FeatureType, 0, k+1)
			members = append(members, pi.Features()[:k-1]...)
			members = append(members, lastI, lastJ)

			c, err := NewColocation(ro, members)
			if err != nil {
				return nil, err
			}
			if seen.Contains(c.Key()) {
				continue
			}
			seen.Add(c.Key())
			out = append(out, c)
		}
	}

	slices.SortFunc(out, func(a, b Colocation) int {
		af, bf := a.Features(), b.Features()
		for i := 0; i < len(af) && i < len(bf); i++ {
			ra, _ := ro.Rank(af[i])
			rb, _ := ro.Rank(bf[i])
			if ra != rb {
				return ra - rb
			}
		}
		return len(af) - len(bf)
	})
	return out, nil
}

// sharePrefix reports whether a and b agree on their first n rarity-ordered
// members.
func sharePrefix(a, b Colocation, n int) bool {
	af, bf := a.Features(), b.Features()
	if len(af) < n || len(bf) < n {
		return false
	}
	for i := 0; i < n; i++ {
		if af[i] != bf[i] {
			return false
		}
	}
	return true
}
