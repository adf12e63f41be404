package epa

import "container/heap"

// Polytope is the EPA boundary, a binary min-heap of edges ordered by distance
// to the origin. Edges at equal distance come out in no particular order.
type Polytope struct {
	edges edgeHeap
}

// NewPolytope creates a polytope holding edges.
func NewPolytope(edges ...Edge) *Polytope {
	p := &Polytope{edges: make(edgeHeap, 0, len(edges)+polytopeInitialCapacity)}
	p.Push(edges...)
	return p
}

func (p *Polytope) Len() int {
	return p.edges.Len()
}

// Peek returns the edge closest to the origin. It panics on an empty polytope.
func (p *Polytope) Peek() Edge {
	return p.edges[0]
}

// Pop removes and returns the edge closest to the origin.
func (p *Polytope) Pop() Edge {
	return heap.Pop(&p.edges).(Edge)
}

func (p *Polytope) Push(edges ...Edge) {
	for _, e := range edges {
		heap.Push(&p.edges, e)
	}
}

// Reset empties the polytope, keeping its storage.
func (p *Polytope) Reset() {
	p.edges = p.edges[:0]
}

// edgeHeap implements heap.Interface.
type edgeHeap []Edge

func (h edgeHeap) Len() int           { return len(h) }
func (h edgeHeap) Less(i, j int) bool { return h[i].Distance < h[j].Distance }
func (h edgeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *edgeHeap) Push(x any) {
	*h = append(*h, x.(Edge))
}

func (h *edgeHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
