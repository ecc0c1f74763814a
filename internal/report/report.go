// Package report implements the result formatter collaborator of §6: it
// renders a mining Result as an aligned text table, a msgpack binary
// blob, or (for diagnostics) a Graphviz lattice, and carries the
// config-echo/elapsed-time/peak-memory summary fields SPEC_FULL adds.
package report

import (
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rotisserie/eris"
	"github.com/vmihailenco/msgpack/v5"

	colocate "github.com/Academic-Paper-Implementations/Efficient-Co-location-Pattern-Mining-in-Large-Spatial-Datasets-with-Rare-Features"
)

// Result is the CLI-facing summary of a mining run (§6 "Result output";
// SPEC_FULL's supplemented config-echo and progress/timing features).
type Result struct {
	DatasetPath      string
	NeighborDistance float64
	MinPrev          float64
	InstanceCount    int
	Patterns         []string
	ElapsedTime      time.Duration
	PeakMemoryBytes  uint64
}

// FromMinerResult builds a report.Result from the core's mining output,
// canonicalizing the pattern list by sorting it lexicographically before
// rendering (§5 "Ordering guarantees"; original_source's utils.cpp
// sort-before-print convention).
func FromMinerResult(datasetPath string, d, minPrev float64, instanceCount int, mined *colocate.Result, elapsed time.Duration, peakMem uint64) Result {
	patterns := make([]string, len(mined.Prevalent))
	for i, c := range mined.Prevalent {
		patterns[i] = c.String()
	}
	sort.Strings(patterns)

	return Result{
		DatasetPath:      datasetPath,
		NeighborDistance: d,
		MinPrev:          minPrev,
		InstanceCount:    instanceCount,
		Patterns:         patterns,
		ElapsedTime:      elapsed,
		PeakMemoryBytes:  peakMem,
	}
}

// RenderTable formats the result as an aligned text table via go-pretty.
func RenderTable(r Result) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"datasetPath", r.DatasetPath})
	t.AppendRow(table.Row{"neighborDistance", r.NeighborDistance})
	t.AppendRow(table.Row{"minPrev", r.MinPrev})
	t.AppendRow(table.Row{"instances", r.InstanceCount})
	t.AppendRow(table.Row{"patternCount", len(r.Patterns)})
	t.AppendRow(table.Row{"elapsed", r.ElapsedTime.String()})
	t.AppendRow(table.Row{"peakMemoryBytes", r.PeakMemoryBytes})
	t.AppendSeparator()
	for _, p := range r.Patterns {
		t.AppendRow(table.Row{"pattern", p})
	}
	return t.Render()
}

// EncodeMsgpack serializes the result to its binary msgpack form, the
// alternative to the text table for programmatic consumers.
func EncodeMsgpack(r Result) ([]byte, error) {
	data, err := msgpack.Marshal(r)
	if err != nil {
		return nil, eris.Wrap(err, "report: encode msgpack")
	}
	return data, nil
}
