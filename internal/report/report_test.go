package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	colocate "github.com/Academic-Paper-Implementations/Efficient-Co-location-Pattern-Mining-in-Large-Spatial-Datasets-with-Rare-Features"
)

func TestFromMinerResult_SortsPatterns(t *testing.T) {
	counts := colocate.FeatureCount{"A": 10, "B": 20, "C": 5}
	ro := colocate.NewRarityOrder(counts)
	cAB, _ := colocate.NewColocation(ro, []colocate.FeatureType{"A", "B"})
	cBC, _ := colocate.NewColocation(ro, []colocate.FeatureType{"B", "C"})

	mined := &colocate.Result{Prevalent: []colocate.Colocation{cAB, cBC}}
	r := FromMinerResult("./d.csv", 2.0, 0.5, 35, mined, 10*time.Millisecond, 1024)

	require.Len(t, r.Patterns, 2)
	assert.True(t, r.Patterns[0] <= r.Patterns[1])
	assert.Equal(t, "./d.csv", r.DatasetPath)
}

func TestRenderTable_ContainsFields(t *testing.T) {
	r := Result{DatasetPath: "./d.csv", NeighborDistance: 2, MinPrev: 0.5, InstanceCount: 4, Patterns: []string{"{A,B}"}}
	out := RenderTable(r)
	assert.True(t, strings.Contains(out, "datasetPath"))
	assert.True(t, strings.Contains(out, "{A,B}"))
}

func TestEncodeMsgpack_RoundTripsLength(t *testing.T) {
	r := Result{DatasetPath: "./d.csv", Patterns: []string{"{A,B}"}}
	data, err := EncodeMsgpack(r)
	require.NoError(t, err)
	assert.Greater(t, len(data), 0)
}

func TestRenderLattice_ProducesDotWithEdges(t *testing.T) {
	counts := colocate.FeatureCount{"A": 10, "B": 20, "C": 5}
	ro := colocate.NewRarityOrder(counts)
	cAB, _ := colocate.NewColocation(ro, []colocate.FeatureType{"A", "B"})
	cABC, _ := colocate.NewColocation(ro, []colocate.FeatureType{"A", "B", "C"})

	dot, err := RenderLattice([]colocate.Colocation{cAB, cABC})
	require.NoError(t, err)
	assert.True(t, strings.Contains(dot, "digraph"))
	assert.True(t, strings.Contains(dot, "->"))
}
