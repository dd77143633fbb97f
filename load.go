package curvview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	meshcurvature "github.com/biotinker/curvview/mesh_curvature"
)

// LoadMeshFile reads an OBJ or binary STL mesh, chosen by file extension.
func LoadMeshFile(path string) (*meshcurvature.Mesh, error) {
	var load func(io.Reader) (*meshcurvature.Mesh, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		load = LoadOBJ
	case ".stl":
		load = LoadSTL
	default:
		return nil, fmt.Errorf("%q: %w", ext, ErrUnknownFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()

	m, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return m, nil
}
