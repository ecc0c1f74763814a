package report

import (
	"github.com/awalterschulze/gographviz"
	"github.com/rotisserie/eris"

	colocate "github.com/Academic-Paper-Implementations/Efficient-Co-location-Pattern-Mining-in-Large-Spatial-Datasets-with-Rare-Features"
)

// RenderLattice renders the discovered colocations as a Graphviz .dot
// diagram: one node per prevalent pattern, one edge from each pattern's
// (k-1)-prefix (the colocation TableInstanceBuilder extended it from, §4.7)
// to the pattern itself, for diagnostic visualization of the Apriori
// search tree actually explored.
func RenderLattice(prevalent []colocate.Colocation) (string, error) {
	graph := gographviz.NewGraph()
	if err := graph.SetName("lattice"); err != nil {
		return "", eris.Wrap(err, "report: set graph name")
	}
	if err := graph.SetDir(true); err != nil {
		return "", eris.Wrap(err, "report: set graph direction")
	}

	seen := map[string]bool{}
	for _, c := range prevalent {
		node := nodeName(c)
		if !seen[node] {
			if err := graph.AddNode("lattice", node, map[string]string{"label": `"` + c.String() + `"`}); err != nil {
				return "", eris.Wrap(err, "report: add node")
			}
			seen[node] = true
		}
		if c.Len() < 2 {
			continue
		}

		prefix := c.WithoutIndex(c.Len() - 1)
		prefixNode := nodeName(prefix)
		if !seen[prefixNode] {
			if err := graph.AddNode("lattice", prefixNode, map[string]string{"label": `"` + prefix.String() + `"`}); err != nil {
				return "", eris.Wrap(err, "report: add prefix node")
			}
			seen[prefixNode] = true
		}
		if err := graph.AddEdge(prefixNode, node, true, nil); err != nil {
			return "", eris.Wrap(err, "report: add edge")
		}
	}

	return graph.String(), nil
}

func nodeName(c colocate.Colocation) string {
	return `"` + c.Key() + `"`
}
