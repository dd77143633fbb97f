package curvview

import "errors"

var (
	// ErrUnknownFormat is returned when a mesh file extension is not recognized.
	ErrUnknownFormat = errors.New("unknown mesh file format")

	// ErrMalformedOBJ is returned when an OBJ statement cannot be parsed.
	ErrMalformedOBJ = errors.New("malformed OBJ")

	// ErrMalformedSTL is returned when binary STL data does not match its
	// declared triangle count.
	ErrMalformedSTL = errors.New("malformed STL")

	// ErrNoMesh is returned when a step needs a mesh that has not been loaded.
	ErrNoMesh = errors.New("no mesh loaded")

	// ErrNoStats is returned when a report is requested before estimation.
	ErrNoStats = errors.New("no curvature statistics")
)
