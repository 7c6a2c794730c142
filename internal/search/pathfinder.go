package search

import (
	"context"
	"fmt"

	"github.com/vanshika/degrees/internal/dataset"
)

// Graph is the adjacency view the path finder explores.
type Graph interface {
	HasPerson(id string) bool
	Neighbors(personID string) ([]dataset.Neighbor, error)
}

// Step is one edge of a path: the movie shared with the previous person and
// the person reached through it.
type Step struct {
	MovieID  string
	PersonID string
}

// Result is the outcome of a shortest-path search. Connected is false when
// source and target lie in different components of the co-star graph.
type Result struct {
	Source    string
	Target    string
	Steps     []Step
	Connected bool
	Expanded  int
}

// Degrees returns the number of edges in the path.
func (r Result) Degrees() int {
	return len(r.Steps)
}

// PathFinder runs breadth-first searches over a Graph. It keeps no state
// between calls, so one PathFinder may serve concurrent searches.
type PathFinder struct {
	graph Graph
}

// NewPathFinder returns a PathFinder over g.
func NewPathFinder(g Graph) *PathFinder {
	return &PathFinder{graph: g}
}

// ShortestPath returns a minimum-edge path from source to target. When several
// shortest paths exist the one returned depends on the graph's neighbor order.
// A path from a person to themself is empty and connected.
func (f *PathFinder) ShortestPath(ctx context.Context, source, target string) (Result, error) {
	if !f.graph.HasPerson(source) {
		return Result{}, fmt.Errorf("source %s: %w", source, dataset.ErrPersonNotFound)
	}
	if !f.graph.HasPerson(target) {
		return Result{}, fmt.Errorf("target %s: %w", target, dataset.ErrPersonNotFound)
	}

	result := Result{Source: source, Target: target}

	arena := []Node{{State: source, Parent: NoParent, Index: 0}}
	frontier := NewQueueFrontier()
	frontier.Add(arena[0])

	// discovered holds every state that is explored or currently queued
	discovered := map[string]struct{}{source: {}}

	for !frontier.Empty() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		current, err := frontier.Remove()
		if err != nil {
			return Result{}, err
		}
		result.Expanded++

		if current.State == target {
			result.Steps = reconstruct(arena, current)
			result.Connected = true
			return result, nil
		}

		neighbors, err := f.graph.Neighbors(current.State)
		if err != nil {
			return Result{}, fmt.Errorf("expand %s: %w", current.State, err)
		}
		for _, n := range neighbors {
			if _, seen := discovered[n.PersonID]; seen {
				continue
			}
			discovered[n.PersonID] = struct{}{}
			child := Node{
				State:  n.PersonID,
				Action: n.MovieID,
				Parent: current.Index,
				Index:  len(arena),
			}
			arena = append(arena, child)
			frontier.Add(child)
		}
	}

	return result, nil
}

func reconstruct(arena []Node, node Node) []Step {
	var steps []Step
	for !node.IsRoot() {
		steps = append(steps, Step{MovieID: node.Action, PersonID: node.State})
		node = arena[node.Parent]
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
