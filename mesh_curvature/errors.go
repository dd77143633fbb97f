package meshcurvature

import "errors"

var (
	// ErrNilMesh is returned when a nil mesh is passed.
	ErrNilMesh = errors.New("mesh is nil")

	// ErrEmptyMesh is returned when a mesh has no vertices or no faces.
	ErrEmptyMesh = errors.New("mesh has no vertices or faces")

	// ErrDanglingIndex is returned when a face refers to a vertex that does not exist.
	ErrDanglingIndex = errors.New("face references a vertex out of range")

	// ErrTooManyVertices is returned when per-vertex data does not fit the 256×256 face-count grid.
	ErrTooManyVertices = errors.New("too many vertices for face-count grid")

	// ErrUnknownNormalMethod is returned for an unrecognized normal generation method.
	ErrUnknownNormalMethod = errors.New("unknown normal method")

	// ErrUnknownField is returned for an unrecognized curvature export field.
	ErrUnknownField = errors.New("unknown curvature field")
)
