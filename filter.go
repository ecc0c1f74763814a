package colocate

import "github.com/bits-and-blooms/bitset"

// prevalentSet indexes a level's prevalent colocations by a bitset over
// rarity ranks, so CandidateFilter's Lemma-2 membership check is a bitset
// comparison rather than a slice scan.
type prevalentSet struct {
	ro      RarityOrder
	members map[string]bool
}

func newPrevalentSet(ro RarityOrder, prevalent []Colocation) prevalentSet {
	ps := prevalentSet{ro: ro, members: make(map[string]bool, len(prevalent))}
	for _, c := range prevalent {
		ps.members[ps.bitsetKey(c)] = true
	}
	return ps
}

func (ps prevalentSet) bitsetKey(c Colocation) string {
	bs := bitset.New(uint(ps.ro.Len()))
	for _, f := range c.Features() {
		if rank, ok := ps.ro.Rank(f); ok {
			bs.Set(uint(rank))
		}
	}
	buf, _ := bs.MarshalBinary()
	return string(buf)
}

func (ps prevalentSet) contains(c Colocation) bool {
	return ps.members[ps.bitsetKey(c)]
}

// CandidateFilter implements §4.6: for k >= 3, prune candidates whose
// f_min-containing (k-1)-subsets were not prevalent at the previous level
// (Lemma 2), and prune candidates whose f_min-free subset's upper bound
// falls short of min_prev (Lemma 3). For k = 2 every candidate passes
// unfiltered, per the spec's explicit mandate that the join already used
// only prevalent singletons and Lemma 3 needs a (k-1) >= 2 subset.
func CandidateFilter(candidates []Colocation, prevPrevalent []Colocation, prevTable RowTable, minPrev float64, counts FeatureCount, d float64, ro RarityOrder) ([]Colocation, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if candidates[0].Len() < 3 {
		out := make([]Colocation, len(candidates))
		copy(out, candidates)
		return out, nil
	}

	ps := newPrevalentSet(ro, prevPrevalent)

	var out []Colocation
	for _, c := range candidates {
		members := c.Features()
		k := len(members)

		pruned := false
		for i := 1; i < k; i++ {
			subset := c.WithoutIndex(i)
			if !ps.contains(subset) {
				pruned = true
				break
			}
		}
		if pruned {
			continue
		}

		s0 := c.WithoutIndex(0)
		fMax := c.FMax()
		w := weight(fMax, c, counts, d)
		pi := participationIndex(s0, prevTable[s0.Key()], counts)
		if pi*w < minPrev {
			continue
		}

		out = append(out, c)
	}
	return out, nil
}
