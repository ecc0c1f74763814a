// Package colocate implements the core of a rare-feature-weighted spatial
// co-location pattern miner.
//
// Given a set of georeferenced instances, each labeled with a feature type
// (A, B, C, ...), it discovers sets of feature types whose instances
// repeatedly appear within a fixed spatial distance of one another, and
// reports the sets whose weighted prevalence exceeds a threshold.
//
// Basic usage:
//
//	set, err := colocate.NewInstanceSet(instances)
//	cfg := colocate.DefaultConfig()
//	cfg.NeighborDistance = 2.0
//	cfg.MinPrev = 0.3
//	result, err := colocate.Mine(set, cfg)
//	// result.Prevalent holds the discovered Colocations, rarity-ordered.
//
// # Pipeline
//
// Mine runs a grid-based spatial join (GridIndex) to find cross-type
// neighbor pairs, indexes each instance's neighbors by feature type under a
// rarity order (NeighborhoodMap, NRTree), then performs an Apriori-style
// breadth-first search (CandidateGen, CandidateFilter, TableInstanceBuilder)
// that grows k-size candidate patterns and prunes with two lemmas specific
// to rarity-weighted prevalence, accepting patterns whose weighted
// participation index (WPI) meets MinPrev.
//
// # Scope
//
// The core is batch and immutable once built: it does not support
// incremental updates, non-Euclidean distances, dimensions above two, or
// spatio-temporal patterns. CSV loading, configuration parsing, process
// memory probing and result formatting are external collaborators — see
// the internal/loader, internal/config, internal/memprobe and
// internal/report packages and the cmd/colominer CLI that wire them
// together.
package colocate
