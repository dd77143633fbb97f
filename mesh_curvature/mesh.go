package meshcurvature

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// NewMesh builds a mesh from vertices and faces and computes its per-vertex
// adjacency. Estimated fields on the vertices are reset.
func NewMesh(vertices []Vertex, faces []Face) (*Mesh, error) {
	if len(vertices) == 0 || len(faces) == 0 {
		return nil, ErrEmptyMesh
	}
	for i, f := range faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d index %d: %w", i, idx, ErrDanglingIndex)
			}
		}
	}

	m := &Mesh{
		Vertices: make([]Vertex, len(vertices)),
		Faces:    append([]Face(nil), faces...),
	}
	for i, v := range vertices {
		m.Vertices[i] = Vertex{Position: v.Position, Normal: v.Normal}
	}
	m.AdjacentFaces = AdjacentFaces(len(m.Vertices), m.Faces)
	return m, nil
}

// NewMeshFromArrays builds a mesh from parallel position and normal arrays.
// normals may be nil, in which case every normal is zero until generated.
func NewMeshFromArrays(positions, normals []r3.Vector, faces []Face) (*Mesh, error) {
	if normals != nil && len(normals) != len(positions) {
		return nil, fmt.Errorf("%d normals for %d positions", len(normals), len(positions))
	}
	vertices := make([]Vertex, len(positions))
	for i, p := range positions {
		vertices[i].Position = p
		if normals != nil {
			vertices[i].Normal = normals[i]
		}
	}
	return NewMesh(vertices, faces)
}

// HasNormals reports whether every vertex carries a non-zero normal.
func (m *Mesh) HasNormals() bool {
	for _, v := range m.Vertices {
		if v.Normal.Norm2() == 0 {
			return false
		}
	}
	return true
}

// edges returns the edge vectors of face f, each edge being opposite the
// corner with the same index.
func (m *Mesh) edges(f Face) [3]r3.Vector {
	p0 := m.Vertices[f[0]].Position
	p1 := m.Vertices[f[1]].Position
	p2 := m.Vertices[f[2]].Position
	return [3]r3.Vector{p2.Sub(p1), p0.Sub(p2), p1.Sub(p0)}
}

// invalidate drops estimates that depend on geometry or normals.
func (m *Mesh) invalidate() {
	m.hasCurvature = false
}
