package meshcurvature

import (
	"time"

	"github.com/golang/geo/r3"
)

// Vertex is a mesh vertex together with the quantities estimated for it.
type Vertex struct {
	Position r3.Vector
	Normal   r3.Vector // Unit length

	PointArea float64 // Mixed Voronoi area around the vertex

	Pdir1 r3.Vector // Direction of Curv1, orthogonal to Normal
	Pdir2 r3.Vector // Normal × Pdir1
	Curv1 float64   // Principal curvature with the larger magnitude
	Curv2 float64
	DCurv [4]float64 // Curvature derivative in the (Pdir1, Pdir2) basis
}

// Frame returns the vertex's principal tangent frame.
func (v Vertex) Frame() Frame {
	return Frame{U: v.Pdir1, V: v.Pdir2}
}

// Face is a triangle given as three vertex indices. Counter-clockwise winding
// seen from outside defines the outward side.
type Face [3]int

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Vertices []Vertex
	Faces    []Face

	// AdjacentFaces lists, per vertex, the faces that use it in ascending order.
	AdjacentFaces [][]int

	// CornerAreas holds, per face, the share of the face area given to each
	// corner (X, Y, Z for corners 0, 1, 2).
	CornerAreas []r3.Vector

	hasAreas     bool
	hasCurvature bool
}

// Principal is a diagonalized curvature tensor.
type Principal struct {
	Dir1, Dir2 r3.Vector
	K1, K2     float64
}

// FieldRange summarizes one scalar field over all vertices.
type FieldRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// Stats describes one run of the estimator over a mesh.
type Stats struct {
	Vertices int
	Faces    int

	DegenerateFaces        int // Faces with no usable area
	SkippedCurvatureFaces  int // Faces whose curvature fit was singular or non-finite
	SkippedDerivativeFaces int // Faces whose derivative fit was singular or non-finite

	TotalArea float64
	Curv1     FieldRange
	Curv2     FieldRange

	AreaTime       time.Duration
	CurvatureTime  time.Duration
	DerivativeTime time.Duration
}
