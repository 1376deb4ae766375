package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/tesseract/pkg/math4d"
)

// ErrNoLines is returned when a GLB file holds no LINES primitive.
var ErrNoLines = errors.New("no line primitives")

// Wireframe is a 3D line set, the form a polytope takes after its 4D
// perspective divide.
type Wireframe struct {
	Name   string
	Points []math4d.Vec3
	Edges  []Edge
}

// SaveWireframeGLB writes the wireframe as a binary glTF file with a single
// LINES primitive, so the 3D stage of the projection can be inspected in any
// glTF viewer.
func SaveWireframeGLB(path string, w *Wireframe) error {
	if len(w.Points) == 0 {
		return fmt.Errorf("save %s: empty wireframe", path)
	}
	if len(w.Points) > math.MaxUint16 {
		return fmt.Errorf("save %s: %d points exceed 16-bit indices", path, len(w.Points))
	}

	positions := make([][3]float32, len(w.Points))
	for i, p := range w.Points {
		positions[i] = [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
	}
	indices := make([]uint16, 0, len(w.Edges)*2)
	for i, e := range w.Edges {
		if e.A < 0 || e.A >= len(w.Points) || e.B < 0 || e.B >= len(w.Points) {
			return fmt.Errorf("save %s: edge %d: %w", path, i, ErrEdgeRange)
		}
		indices = append(indices, uint16(e.A), uint16(e.B))
	}

	doc := gltf.NewDocument()
	posIdx := modeler.WritePosition(doc, positions)
	indIdx := modeler.WriteIndices(doc, indices)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: w.Name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indIdx),
			Attributes: map[string]int{gltf.POSITION: posIdx},
			Mode:       gltf.PrimitiveLines,
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: w.Name,
		Mesh: gltf.Index(len(doc.Meshes) - 1),
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// LoadWireframeGLB reads every LINES primitive of a glTF/GLB file into one
// wireframe. Triangle and point primitives are ignored.
func LoadWireframeGLB(path string) (*Wireframe, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	w := &Wireframe{}
	for _, m := range doc.Meshes {
		if w.Name == "" {
			w.Name = m.Name
		}
		if err := readLines(doc, m, w); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(w.Edges) == 0 {
		return nil, fmt.Errorf("load %s: %w", path, ErrNoLines)
	}
	return w, nil
}

// readLines appends the line primitives of a glTF mesh to w.
func readLines(doc *gltf.Document, m *gltf.Mesh, w *Wireframe) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveLines {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posIdx < 0 || posIdx >= len(doc.Accessors) {
			return fmt.Errorf("position accessor %d out of range", posIdx)
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(w.Points)
		for _, p := range positions {
			w.Points = append(w.Points, math4d.V3(float64(p[0]), float64(p[1]), float64(p[2])))
		}

		if prim.Indices == nil {
			// No indices: consecutive point pairs are segments
			for i := 0; i+1 < len(positions); i += 2 {
				w.Edges = append(w.Edges, Edge{base + i, base + i + 1})
			}
			continue
		}
		if *prim.Indices < 0 || *prim.Indices >= len(doc.Accessors) {
			return fmt.Errorf("index accessor %d out of range", *prim.Indices)
		}
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
		for i := 0; i+1 < len(indices); i += 2 {
			a, b := int(indices[i]), int(indices[i+1])
			if a >= len(positions) || b >= len(positions) {
				return fmt.Errorf("segment %d (%d,%d): %w", i/2, a, b, ErrEdgeRange)
			}
			w.Edges = append(w.Edges, Edge{base + a, base + b})
		}
	}
	return nil
}
