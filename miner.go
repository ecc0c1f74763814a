package colocate

import (
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// LevelStats is the per-k-level progress payload described in SPEC_FULL's
// supplemented progress/timing summary: the candidate count CandidateGen
// produced, the count CandidateFilter let through, and the row count of
// T_k, so a caller can log or display mining progress without reaching
// into driver internals.
type LevelStats struct {
	K              int
	CandidateCount int
	FilteredCount  int
	TableRows      int
	PrevalentCount int
}

// ProgressFunc receives one LevelStats payload per completed k-level.
type ProgressFunc func(LevelStats)

// MinerConfig controls MinerDriver behavior. Start with [DefaultConfig]
// and override the fields you need.
type MinerConfig struct {
	// NeighborDistance is d, the spatial neighborhood threshold (§3). Must
	// be > 0.
	NeighborDistance float64

	// MinPrev is the weighted-prevalence threshold min_prev ∈ (0,1] (§3).
	MinPrev float64

	// Workers controls the number of goroutines for the two embarrassingly
	// parallel inner loops (§5: GridIndex cell processing,
	// TableInstanceBuilder row extension). 0 means runtime.NumCPU().
	Workers int

	// Progress, if set, is called once per completed k-level. When nil,
	// the driver logs each level at Debug through the global zap logger
	// (§"Logging" in SPEC_FULL's ambient stack).
	Progress ProgressFunc

	// Cancel, if non-nil, is checked between stages; the driver returns
	// the patterns discovered so far once it is closed (§5 Cancellation).
	Cancel <-chan struct{}
}

// Result is MinerDriver's output: the union P_2 ∪ P_3 ∪ … of every
// prevalent colocation discovered, plus per-level statistics (§4.8
// Output; singletons are never reported).
type Result struct {
	Prevalent []Colocation
	Levels    []LevelStats
}

// DefaultConfig returns a MinerConfig with reasonable defaults. MinPrev
// and NeighborDistance have no sensible default and must be set by the
// caller (they come from the configuration reader collaborator, §6).
func DefaultConfig() MinerConfig {
	return MinerConfig{}
}

// validateConfig checks that cfg fields are valid and returns a
// descriptive configuration error if not (§7).
func validateConfig(cfg *MinerConfig) error {
	if cfg.NeighborDistance <= 0 {
		return configInvalidf("NeighborDistance must be > 0, got %v", cfg.NeighborDistance)
	}
	if cfg.MinPrev <= 0 || cfg.MinPrev > 1 {
		return configInvalidf("MinPrev must be in (0,1], got %v", cfg.MinPrev)
	}
	if cfg.Workers < 0 {
		return configInvalidf("Workers must be >= 0, got %d", cfg.Workers)
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *MinerConfig) {
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// emptyResult returns an empty Result, for the |instances| = 0 edge case
// (§4.8 Failure semantics).
func emptyResult() *Result {
	return &Result{}
}

// cancelled reports whether cfg's cancellation token has fired.
func cancelled(cfg MinerConfig) bool {
	return builderCancelled(cfg.Cancel)
}

// Mine runs the full pipeline of §4.1–§4.8 against set and returns every
// prevalent colocation found. GridIndex, NeighborhoodMap, and NRTree are
// built once up front; the Apriori loop (CandidateGen → CandidateFilter →
// TableInstanceBuilder → WPI-selection) then runs level by level until no
// k-prevalent patterns remain or k exceeds |F|.
func Mine(set *InstanceSet, cfg MinerConfig) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	if set.Len() == 0 {
		return emptyResult(), nil
	}

	counts := countFeatures(set)
	ro := NewRarityOrder(counts)
	dispersion := delta(ro, counts)

	pairs, err := GridIndex(set, cfg.NeighborDistance, cfg.Workers)
	if err != nil {
		return nil, err
	}
	nm, err := BuildNeighborhoodMap(set, pairs, ro)
	if err != nil {
		return nil, err
	}
	tree, err := BuildNRTree(set, ro, nm)
	if err != nil {
		return nil, err
	}

	prevTable := seedRowTable(set, ro)
	prevPrevalent, err := singletons(ro)
	if err != nil {
		return nil, err
	}

	result := emptyResult()
	k := 1
	for len(prevPrevalent) > 0 {
		if cancelled(cfg) {
			return result, nil
		}
		k++
		if k > ro.Len() {
			break
		}

		cands, err := CandidateGen(prevPrevalent, ro)
		if err != nil {
			return nil, err
		}
		if len(cands) == 0 {
			break
		}
		candidateCount := len(cands)

		if k >= 3 {
			cands, err = CandidateFilter(cands, prevPrevalent, prevTable, cfg.MinPrev, counts, dispersion, ro)
			if err != nil {
				return nil, err
			}
		}
		filteredCount := len(cands)

		table, err := TableInstanceBuilder(tree, prevTable, cands, cfg.Workers, cfg.Cancel)
		if err != nil {
			return nil, err
		}

		var levelPrevalent []Colocation
		rowCount := 0
		for _, c := range cands {
			rows := table[c.Key()]
			rowCount += len(rows)
			wpi := weightedParticipationIndex(c, rows, counts, dispersion)
			if wpi >= cfg.MinPrev {
				levelPrevalent = append(levelPrevalent, c)
			}
		}
		canonicalSort(levelPrevalent, ro)

		stats := LevelStats{
			K:              k,
			CandidateCount: candidateCount,
			FilteredCount:  filteredCount,
			TableRows:      rowCount,
			PrevalentCount: len(levelPrevalent),
		}
		report(cfg, stats)

		result.Prevalent = append(result.Prevalent, levelPrevalent...)
		result.Levels = append(result.Levels, stats)

		prevPrevalent = levelPrevalent
		prevTable = table
	}

	return result, nil
}

// singletons builds P_1 = { [f] : f in F } in rarity order (§4.8 Init).
func singletons(ro RarityOrder) ([]Colocation, error) {
	out := make([]Colocation, 0, ro.Len())
	for _, f := range ro.Order() {
		c, err := NewColocation(ro, []FeatureType{f})
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// canonicalSort sorts colocations in colocation order (§5 "Ordering
// guarantees").
func canonicalSort(cs []Colocation, ro RarityOrder) {
	slices.SortFunc(cs, func(a, b Colocation) int {
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
}

// report delivers one level's LevelStats to the caller's Progress
// callback, or logs it at Debug through the global zap logger when no
// callback is set (SPEC_FULL's ambient logging stack).
func report(cfg MinerConfig, stats LevelStats) {
	if cfg.Progress != nil {
		cfg.Progress(stats)
		return
	}
	zap.L().Debug("colocate: level complete",
		zap.Int("k", stats.K),
		zap.Int("candidates", stats.CandidateCount),
		zap.Int("filtered", stats.FilteredCount),
		zap.Int("tableRows", stats.TableRows),
		zap.Int("prevalent", stats.PrevalentCount),
	)
}
