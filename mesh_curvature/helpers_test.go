package meshcurvature

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

// orientFaces flips any face whose normal points away from outward(centroid).
func orientFaces(positions []r3.Vector, faces []Face, outward func(c r3.Vector) r3.Vector) {
	for i, f := range faces {
		p0, p1, p2 := positions[f[0]], positions[f[1]], positions[f[2]]
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		c := p0.Add(p1).Add(p2).Mul(1.0 / 3)
		if n.Dot(outward(c)) < 0 {
			faces[i] = Face{f[0], f[2], f[1]}
		}
	}
}

// generateSphere builds a latitude/longitude sphere with exact outward normals.
func generateSphere(t *testing.T, center r3.Vector, radius float64, nLat, nLon int) *Mesh {
	t.Helper()
	var positions, normals []r3.Vector
	add := func(dir r3.Vector) int {
		positions = append(positions, center.Add(dir.Mul(radius)))
		normals = append(normals, dir)
		return len(positions) - 1
	}

	north := add(r3.Vector{Z: 1})
	rings := make([][]int, 0, nLat-1)
	for j := 1; j < nLat; j++ {
		theta := math.Pi * float64(j) / float64(nLat)
		ring := make([]int, nLon)
		for k := 0; k < nLon; k++ {
			phi := 2 * math.Pi * float64(k) / float64(nLon)
			ring[k] = add(r3.Vector{
				X: math.Sin(theta) * math.Cos(phi),
				Y: math.Sin(theta) * math.Sin(phi),
				Z: math.Cos(theta),
			})
		}
		rings = append(rings, ring)
	}
	south := add(r3.Vector{Z: -1})

	var faces []Face
	for k := 0; k < nLon; k++ {
		k1 := (k + 1) % nLon
		faces = append(faces, Face{north, rings[0][k], rings[0][k1]})
		last := rings[len(rings)-1]
		faces = append(faces, Face{south, last[k1], last[k]})
	}
	for j := 0; j+1 < len(rings); j++ {
		a, b := rings[j], rings[j+1]
		for k := 0; k < nLon; k++ {
			k1 := (k + 1) % nLon
			faces = append(faces, Face{a[k], b[k], b[k1]}, Face{a[k], b[k1], a[k1]})
		}
	}
	orientFaces(positions, faces, func(c r3.Vector) r3.Vector { return c.Sub(center) })

	m, err := NewMeshFromArrays(positions, normals, faces)
	if err != nil {
		t.Fatalf("NewMeshFromArrays: %v", err)
	}
	return m
}

// generateCylinder builds an open cylinder around the Z axis with exact
// radial normals.
func generateCylinder(t *testing.T, radius, height float64, nAround, nUp int) *Mesh {
	t.Helper()
	var positions, normals []r3.Vector
	for j := 0; j <= nUp; j++ {
		z := height * float64(j) / float64(nUp)
		for k := 0; k < nAround; k++ {
			phi := 2 * math.Pi * float64(k) / float64(nAround)
			dir := r3.Vector{X: math.Cos(phi), Y: math.Sin(phi)}
			positions = append(positions, dir.Mul(radius).Add(r3.Vector{Z: z}))
			normals = append(normals, dir)
		}
	}

	idx := func(j, k int) int { return j*nAround + k%nAround }
	var faces []Face
	for j := 0; j < nUp; j++ {
		for k := 0; k < nAround; k++ {
			faces = append(faces,
				Face{idx(j, k), idx(j, k+1), idx(j+1, k+1)},
				Face{idx(j, k), idx(j+1, k+1), idx(j+1, k)},
			)
		}
	}
	orientFaces(positions, faces, func(c r3.Vector) r3.Vector { return r3.Vector{X: c.X, Y: c.Y} })

	m, err := NewMeshFromArrays(positions, normals, faces)
	if err != nil {
		t.Fatalf("NewMeshFromArrays: %v", err)
	}
	return m
}

// generatePlane builds an n×n grid in the z = 0 plane with +Z normals.
func generatePlane(t *testing.T, n int, spacing float64) *Mesh {
	t.Helper()
	var positions, normals []r3.Vector
	for j := 0; j <= n; j++ {
		for k := 0; k <= n; k++ {
			positions = append(positions, r3.Vector{X: float64(k) * spacing, Y: float64(j) * spacing})
			normals = append(normals, r3.Vector{Z: 1})
		}
	}
	idx := func(j, k int) int { return j*(n+1) + k }
	var faces []Face
	for j := 0; j < n; j++ {
		for k := 0; k < n; k++ {
			faces = append(faces,
				Face{idx(j, k), idx(j, k+1), idx(j+1, k+1)},
				Face{idx(j, k), idx(j+1, k+1), idx(j+1, k)},
			)
		}
	}
	m, err := NewMeshFromArrays(positions, normals, faces)
	if err != nil {
		t.Fatalf("NewMeshFromArrays: %v", err)
	}
	return m
}

func triangleArea(m *Mesh, f Face) float64 {
	e := m.edges(f)
	return 0.5 * e[0].Cross(e[1]).Norm()
}

func inlineConfig() *Config {
	cfg := DefaultConfig()
	cfg.Parallel.Workers = 1
	return &cfg
}
