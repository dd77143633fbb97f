package meshcurvature

import "github.com/golang/geo/r3"

// CornerAreas splits the area of the triangle with edges e (edge i opposite
// corner i) among its corners using mixed Voronoi cells. Acute triangles use
// the circumcentric cells; an obtuse triangle gives its obtuse corner half the
// area and the other corners their clipped Voronoi share. The three weights
// sum to the triangle area. ok is false for triangles with no area or with
// non-finite weights.
func CornerAreas(e [3]r3.Vector) (areas r3.Vector, ok bool) {
	area := 0.5 * e[0].Cross(e[1]).Norm()
	if !(area > 0) || !isFinite(area) {
		return r3.Vector{}, false
	}
	l2 := [3]float64{e[0].Norm2(), e[1].Norm2(), e[2].Norm2()}

	// Barycentric weights of the circumcenter.
	bcw := [3]float64{
		l2[0] * (l2[1] + l2[2] - l2[0]),
		l2[1] * (l2[2] + l2[0] - l2[1]),
		l2[2] * (l2[0] + l2[1] - l2[2]),
	}

	switch {
	case bcw[0] <= 0:
		areas.Y = -0.25 * l2[2] * area / e[0].Dot(e[2])
		areas.Z = -0.25 * l2[1] * area / e[0].Dot(e[1])
		areas.X = area - areas.Y - areas.Z
	case bcw[1] <= 0:
		areas.Z = -0.25 * l2[0] * area / e[1].Dot(e[0])
		areas.X = -0.25 * l2[2] * area / e[1].Dot(e[2])
		areas.Y = area - areas.Z - areas.X
	case bcw[2] <= 0:
		areas.X = -0.25 * l2[1] * area / e[2].Dot(e[1])
		areas.Y = -0.25 * l2[0] * area / e[2].Dot(e[0])
		areas.Z = area - areas.X - areas.Y
	default:
		scale := 0.5 * area / (bcw[0] + bcw[1] + bcw[2])
		areas.X = scale * (bcw[1] + bcw[2])
		areas.Y = scale * (bcw[2] + bcw[0])
		areas.Z = scale * (bcw[0] + bcw[1])
	}

	if !allFinite(areas.X, areas.Y, areas.Z) {
		return r3.Vector{}, false
	}
	return areas, true
}

// computePointAreas fills m.CornerAreas and every vertex's PointArea from
// scratch and returns the number of faces that contributed nothing.
func computePointAreas(m *Mesh) int {
	m.CornerAreas = make([]r3.Vector, len(m.Faces))
	for i := range m.Vertices {
		m.Vertices[i].PointArea = 0
	}

	degenerate := 0
	for i, f := range m.Faces {
		ca, ok := CornerAreas(m.edges(f))
		if !ok {
			degenerate++
			continue
		}
		m.CornerAreas[i] = ca
	}
	for i, f := range m.Faces {
		ca := m.CornerAreas[i]
		m.Vertices[f[0]].PointArea += ca.X
		m.Vertices[f[1]].PointArea += ca.Y
		m.Vertices[f[2]].PointArea += ca.Z
	}

	m.hasAreas = true
	m.hasCurvature = false
	return degenerate
}

// cornerWeight is the share of vertex v's area contributed by corner j of face i.
// Vertices without area receive nothing.
func (m *Mesh) cornerWeight(i, j int) float64 {
	pa := m.Vertices[m.Faces[i][j]].PointArea
	if !(pa > 0) {
		return 0
	}
	var ca float64
	switch j {
	case 0:
		ca = m.CornerAreas[i].X
	case 1:
		ca = m.CornerAreas[i].Y
	default:
		ca = m.CornerAreas[i].Z
	}
	return ca / pa
}
