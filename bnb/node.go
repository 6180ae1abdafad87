/*
Copyright © 2015-2022 Leo Antunes <leo@costela.net>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/
package bnb

import (
	"container/heap"
	"fmt"
)

// Order selects which open node is explored next.
type Order int

const (
	// DepthFirst explores the most recently created node first.
	DepthFirst Order = iota
	// BestBound explores the node with the most promising parent
	// relaxation first, ties going to the oldest node.
	BestBound
)

func (o Order) String() string {
	switch o {
	case DepthFirst:
		return "depth-first"
	case BestBound:
		return "best-bound"
	default:
		return "unknown"
	}
}

// NodeState is the fate of a node in the enumeration tree.
type NodeState int

const (
	Open NodeState = iota
	// Pruned nodes cannot improve on the incumbent, or their relaxation
	// could not be solved within the iteration budget.
	Pruned
	Infeasible
	Incumbent
	Branched
)

func (s NodeState) String() string {
	switch s {
	case Open:
		return "open"
	case Pruned:
		return "pruned"
	case Infeasible:
		return "infeasible"
	case Incumbent:
		return "incumbent"
	case Branched:
		return "branched"
	default:
		return "unknown"
	}
}

// BoundChange tightens one variable bound.
type BoundChange struct {
	Variable int
	// Upper selects x ≤ Value; otherwise x ≥ Value.
	Upper bool
	Value float64
}

func (c BoundChange) String() string {
	if c.Upper {
		return fmt.Sprintf("x%d <= %g", c.Variable, c.Value)
	}
	return fmt.Sprintf("x%d >= %g", c.Variable, c.Value)
}

// Node is a subproblem: the original problem with every bound change
// accumulated along the path from the root.
type Node struct {
	ID     int
	Parent int // -1 for the root
	Depth  int

	Changes []BoundChange

	// Bound is the parent's relaxation value in minimization sense, a
	// lower bound on anything this node can reach.
	Bound float64
	// Relaxation is the node's own relaxation value in the caller's
	// sense, NaN unless it was solved to optimality.
	Relaxation float64

	State NodeState
}

type queue interface {
	push(n Node)
	pop() Node
	Len() int
}

type stack []Node

func (s *stack) push(n Node) { *s = append(*s, n) }

func (s *stack) pop() Node {
	old := *s
	n := old[len(old)-1]
	*s = old[:len(old)-1]
	return n
}

func (s *stack) Len() int { return len(*s) }

// nodeHeap implements heap.Interface ordered by bound, then by ID.
type nodeHeap []Node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].Bound != h[j].Bound {
		return h[i].Bound < h[j].Bound
	}
	return h[i].ID < h[j].ID
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(Node)) }

func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}

type priorityQueue struct {
	h nodeHeap
}

func (q *priorityQueue) push(n Node) { heap.Push(&q.h, n) }

func (q *priorityQueue) pop() Node { return heap.Pop(&q.h).(Node) }

func (q *priorityQueue) Len() int { return q.h.Len() }

func newQueue(o Order) queue {
	if o == BestBound {
		return &priorityQueue{}
	}
	return &stack{}
}
