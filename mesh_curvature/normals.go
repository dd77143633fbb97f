package meshcurvature

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// GenerateNormals replaces the mesh's vertex normals using method.
// NormalsInput leaves them untouched.
func GenerateNormals(m *Mesh, method NormalMethod) error {
	switch method {
	case NormalsInput, "":
		return nil
	case NormalsAreaWeighted:
		AreaWeightedNormals(m)
	case NormalsPCA:
		PCANormals(m)
	default:
		return fmt.Errorf("%q: %w", method, ErrUnknownNormalMethod)
	}
	return nil
}

// AreaWeightedNormals sets each vertex normal to the normalized sum of its
// incident face normals, each scaled by twice the face area. Vertices with no
// incident face of positive area keep their normal.
func AreaWeightedNormals(m *Mesh) {
	sums := faceNormalSums(m)
	for i := range m.Vertices {
		if n := sums[i].Normalize(); n.Norm2() > 0 {
			m.Vertices[i].Normal = n
		}
	}
	m.invalidate()
}

func faceNormalSums(m *Mesh) []r3.Vector {
	sums := make([]r3.Vector, len(m.Vertices))
	for _, f := range m.Faces {
		e := m.edges(f)
		n := e[0].Cross(e[1])
		for _, v := range f {
			sums[v] = sums[v].Add(n)
		}
	}
	return sums
}

// PCANormals sets each vertex normal to the direction of least variance of
// the vertex and its one-ring neighbors, oriented to agree with the
// area-weighted normal. Vertices with fewer than three distinct neighbors
// fall back to the area-weighted normal.
func PCANormals(m *Mesh) {
	sums := faceNormalSums(m)
	for i := range m.Vertices {
		ref := sums[i].Normalize()
		n, ok := ringNormal(m, i)
		if !ok {
			n = ref
		} else {
			n = orientNormal(n, ref)
		}
		if n.Norm2() > 0 {
			m.Vertices[i].Normal = n
		}
	}
	m.invalidate()
}

// ringNormal fits a plane through vertex i and its one-ring by PCA.
func ringNormal(m *Mesh, i int) (r3.Vector, bool) {
	seen := map[int]bool{i: true}
	points := []r3.Vector{m.Vertices[i].Position}
	for _, fi := range m.AdjacentFaces[i] {
		for _, v := range m.Faces[fi] {
			if !seen[v] {
				seen[v] = true
				points = append(points, m.Vertices[v].Position)
			}
		}
	}
	if len(points) < 4 {
		return r3.Vector{}, false
	}

	var centroid r3.Vector
	for _, p := range points {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1 / float64(len(points)))

	var cov [9]float64 // 3x3 row-major
	for _, p := range points {
		d := p.Sub(centroid)
		cov[0] += d.X * d.X
		cov[1] += d.X * d.Y
		cov[2] += d.X * d.Z
		cov[4] += d.Y * d.Y
		cov[5] += d.Y * d.Z
		cov[8] += d.Z * d.Z
	}
	cov[3], cov[6], cov[7] = cov[1], cov[2], cov[5]

	var eigen mat.EigenSym
	if !eigen.Factorize(mat.NewSymDense(3, cov[:]), true) {
		return r3.Vector{}, false
	}
	var vecs mat.Dense
	eigen.VectorsTo(&vecs)

	// Eigenvalues are ascending; column 0 is the plane normal.
	n := r3.Vector{X: vecs.At(0, 0), Y: vecs.At(1, 0), Z: vecs.At(2, 0)}.Normalize()
	return n, n.Norm2() > 0
}

// orientNormal flips normal if it points away from ref.
func orientNormal(normal, ref r3.Vector) r3.Vector {
	if normal.Dot(ref) < 0 {
		return normal.Mul(-1)
	}
	return normal
}

// NormalizeNormals rescales every non-zero normal to unit length.
func NormalizeNormals(m *Mesh) {
	for i := range m.Vertices {
		if n := m.Vertices[i].Normal.Normalize(); n.Norm2() > 0 {
			m.Vertices[i].Normal = n
		}
	}
	m.invalidate()
}
