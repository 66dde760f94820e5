package domain

import (
	"sort"

	"go.trai.ch/zerr"
)

// Graph represents the static dependency DAG of workspace packages.
type Graph struct {
	units map[string]Unit
	order []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		units: make(map[string]Unit),
	}
}

// AddUnit adds a unit to the graph.
// It returns an error if a unit with the same name already exists.
func (g *Graph) AddUnit(u *Unit) error {
	if _, exists := g.units[u.Name]; exists {
		return zerr.With(ErrUnitAlreadyExists, "unit", u.Name)
	}
	g.units[u.Name] = *u
	return nil
}

// Validate checks for missing dependencies and cycles via a topological sort,
// populating the execution order on success. Disconnected components are
// visited in sorted name order so the resulting order is deterministic
// across runs.
func (g *Graph) Validate() error {
	g.order = make([]string, 0, len(g.units))
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		visited[name] = 1
		path = append(path, name)

		unit, exists := g.units[name]
		if !exists {
			return zerr.With(ErrMissingDependency, "dependency", name)
		}

		for _, dep := range unit.Dependencies {
			if visited[dep] == 1 {
				return g.cycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[name] = 2
		path = path[:len(path)-1]
		g.order = append(g.order, name)
		return nil
	}

	names := make([]string, 0, len(g.units))
	for name := range g.units {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *Graph) cycleError(path []string, dep string) error {
	cyclePath := ""
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i] + " -> "
	}
	cyclePath += dep
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}

// Levels groups units into waves where every unit's dependencies live in an
// earlier wave. Units within the same wave have no dependency relationship
// and may build concurrently.
func (g *Graph) Levels() [][]string {
	depth := make(map[string]int, len(g.units))
	maxDepth := 0
	for _, name := range g.order {
		d := 0
		for _, dep := range g.units[name].Dependencies {
			if depth[dep]+1 > d {
				d = depth[dep] + 1
			}
		}
		depth[name] = d
		if d > maxDepth {
			maxDepth = d
		}
	}

	levels := make([][]string, maxDepth+1)
	for _, name := range g.order {
		levels[depth[name]] = append(levels[depth[name]], name)
	}
	for _, level := range levels {
		sort.Strings(level)
	}
	return levels
}

// Unit returns the stored unit by name.
func (g *Graph) Unit(name string) (Unit, bool) {
	u, ok := g.units[name]
	return u, ok
}
