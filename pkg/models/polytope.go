// Package models provides the wireframe topology rendered by tesseract.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/tesseract/pkg/math4d"
)

// Topology errors reported by Validate.
var (
	ErrEdgeRange      = errors.New("vertex index out of range")
	ErrDegenerateEdge = errors.New("edge joins a vertex to itself")
	ErrNotAxisAligned = errors.New("edge endpoints must differ in exactly one coordinate")
	ErrDuplicateEdge  = errors.New("duplicate edge")
)

// Edge joins two vertices by index.
type Edge struct {
	A, B int
}

// Polytope is a wireframe in 4D: a vertex list plus the edges between them.
// Vertices are never modified after construction; all motion happens in the
// projector.
type Polytope struct {
	Name     string
	Vertices []math4d.Vec4
	Edges    []Edge
}

// tesseractVertices lists {-0.5, 0.5}^4. Vertices 0-7 form the w=-0.5 cube
// and 8-15 the w=+0.5 cube, each as a bottom (y=-0.5) ring then a top ring.
var tesseractVertices = [16]math4d.Vec4{
	{X: -0.5, Y: -0.5, Z: -0.5, W: -0.5},
	{X: 0.5, Y: -0.5, Z: -0.5, W: -0.5},
	{X: 0.5, Y: -0.5, Z: 0.5, W: -0.5},
	{X: -0.5, Y: -0.5, Z: 0.5, W: -0.5},

	{X: -0.5, Y: 0.5, Z: -0.5, W: -0.5},
	{X: 0.5, Y: 0.5, Z: -0.5, W: -0.5},
	{X: 0.5, Y: 0.5, Z: 0.5, W: -0.5},
	{X: -0.5, Y: 0.5, Z: 0.5, W: -0.5},

	{X: -0.5, Y: -0.5, Z: -0.5, W: 0.5},
	{X: 0.5, Y: -0.5, Z: -0.5, W: 0.5},
	{X: 0.5, Y: -0.5, Z: 0.5, W: 0.5},
	{X: -0.5, Y: -0.5, Z: 0.5, W: 0.5},

	{X: -0.5, Y: 0.5, Z: -0.5, W: 0.5},
	{X: 0.5, Y: 0.5, Z: -0.5, W: 0.5},
	{X: 0.5, Y: 0.5, Z: 0.5, W: 0.5},
	{X: -0.5, Y: 0.5, Z: 0.5, W: 0.5},
}

var tesseractEdges = [32]Edge{
	// Inner cube (w = -0.5)
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},

	// Outer cube (w = +0.5)
	{8, 9}, {9, 10}, {10, 11}, {11, 8},
	{8, 12}, {9, 13}, {10, 14}, {11, 15},
	{12, 13}, {13, 14}, {14, 15}, {15, 12},

	// Connecting edges along w
	{0, 8}, {1, 9}, {2, 10}, {3, 11},
	{4, 12}, {5, 13}, {6, 14}, {7, 15},
}

// NewTesseract returns the unit hypercube centered at the origin.
func NewTesseract() *Polytope {
	p := &Polytope{
		Name:     "tesseract",
		Vertices: make([]math4d.Vec4, len(tesseractVertices)),
		Edges:    make([]Edge, len(tesseractEdges)),
	}
	copy(p.Vertices, tesseractVertices[:])
	copy(p.Edges, tesseractEdges[:])
	return p
}

// VertexCount returns the number of vertices.
func (p *Polytope) VertexCount() int {
	return len(p.Vertices)
}

// EdgeCount returns the number of edges.
func (p *Polytope) EdgeCount() int {
	return len(p.Edges)
}

// Validate checks the edge list against the vertex list. Every edge must
// join two distinct, in-range vertices that differ along exactly one axis,
// and no pair may be listed twice.
func (p *Polytope) Validate() error {
	seen := make(map[Edge]struct{}, len(p.Edges))
	for i, e := range p.Edges {
		if e.A < 0 || e.A >= len(p.Vertices) || e.B < 0 || e.B >= len(p.Vertices) {
			return fmt.Errorf("edge %d (%d,%d): %w", i, e.A, e.B, ErrEdgeRange)
		}
		if e.A == e.B {
			return fmt.Errorf("edge %d (%d,%d): %w", i, e.A, e.B, ErrDegenerateEdge)
		}
		if differingAxes(p.Vertices[e.A], p.Vertices[e.B]) != 1 {
			return fmt.Errorf("edge %d (%d,%d): %w", i, e.A, e.B, ErrNotAxisAligned)
		}
		key := e
		if key.A > key.B {
			key.A, key.B = key.B, key.A
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("edge %d (%d,%d): %w", i, e.A, e.B, ErrDuplicateEdge)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func differingAxes(a, b math4d.Vec4) int {
	n := 0
	for axis := math4d.AxisX; axis <= math4d.AxisW; axis++ {
		if a.Component(axis) != b.Component(axis) {
			n++
		}
	}
	return n
}
