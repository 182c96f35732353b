package resolver

import (
	"sync"

	"pytoy/src/internal/model"
	"pytoy/src/internal/pkgerrors"
)

// graph is the resolver's in-memory dependency graph: nodes keyed by
// "name@version" per model.Package.ID, edges pointing parent (dependent) to
// child (dependency). Safe for concurrent addNode/addEdge calls during the
// worklist expansion; topoOrder is single-threaded, run after expansion
// completes.
type graph struct {
	mu    sync.Mutex
	nodes map[string]model.Package
	edges map[string][]string
}

func newGraph() *graph {
	return &graph{
		nodes: make(map[string]model.Package),
		edges: make(map[string][]string),
	}
}

// addNode registers pkg if its (name, version) identity isn't already present.
// Returns true if this call added a new node.
func (g *graph) addNode(pkg model.Package) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.nodes[pkg.ID()]; ok {
		return false
	}
	g.nodes[pkg.ID()] = pkg
	return true
}

func (g *graph) addEdge(parentID, childID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, existing := range g.edges[parentID] {
		if existing == childID {
			return
		}
	}
	g.edges[parentID] = append(g.edges[parentID], childID)
}

// topoOrder returns every node in reverse topological order (dependencies
// before dependents) via DFS postorder, detecting cycles with a visiting set.
func (g *graph) topoOrder() ([]model.Package, error) {
	order := make([]model.Package, 0, len(g.nodes))
	done := make(map[string]bool, len(g.nodes))
	visiting := make(map[string]bool)

	var visit func(id string) error
	visit = func(id string) error {
		if done[id] {
			return nil
		}
		if visiting[id] {
			return pkgerrors.Of(pkgerrors.ErrResolutionFailed, "circular dependency involving %s", id)
		}
		visiting[id] = true
		for _, childID := range g.edges[id] {
			if err := visit(childID); err != nil {
				return err
			}
		}
		visiting[id] = false
		done[id] = true
		order = append(order, g.nodes[id])
		return nil
	}

	for id := range g.nodes {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return order, nil
}
