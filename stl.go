package curvview

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/golang/geo/r3"
	"github.com/hschendel/stl"

	meshcurvature "github.com/biotinker/curvview/mesh_curvature"
)

// Binary STL layout: an 80-byte header and a uint32 triangle count, then one
// 50-byte record (normal, three vertices, attribute) per triangle.
const (
	stlHeaderSize   = 84
	stlTriangleSize = 50
)

// LoadSTL reads an ASCII or binary STL mesh. Corners with bit-identical
// positions are welded into one vertex. STL facet normals are per face, so
// vertex normals are left zero for the caller to generate.
func LoadSTL(r io.Reader) (*meshcurvature.Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading STL: %w", err)
	}
	data, err = checkSTL(data)
	if err != nil {
		return nil, err
	}
	solid, err := stl.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing STL: %w", err)
	}

	var (
		vertices []meshcurvature.Vertex
		index    = map[stl.Vec3]int{}
		faces    = make([]meshcurvature.Face, 0, len(solid.Triangles))
	)
	for _, tri := range solid.Triangles {
		var f meshcurvature.Face
		for k, p := range tri.Vertices {
			idx, ok := index[p]
			if !ok {
				idx = len(vertices)
				index[p] = idx
				vertices = append(vertices, meshcurvature.Vertex{
					Position: r3.Vector{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])},
				})
			}
			f[k] = idx
		}
		faces = append(faces, f)
	}
	return meshcurvature.NewMesh(vertices, faces)
}

// checkSTL rejects binary data whose declared triangle count does not match
// its length, before anything is sized from that count. Data of exactly the
// binary length is always read as binary, even when its header starts with
// "solid".
func checkSTL(data []byte) ([]byte, error) {
	ascii := bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid"))
	if len(data) < stlHeaderSize {
		if ascii {
			return data, nil
		}
		return nil, fmt.Errorf("%d bytes is shorter than the binary header: %w", len(data), ErrMalformedSTL)
	}

	num := uint64(binary.LittleEndian.Uint32(data[80:stlHeaderSize]))
	if want := stlHeaderSize + num*stlTriangleSize; uint64(len(data)) != want {
		if ascii {
			return data, nil
		}
		return nil, fmt.Errorf("header declares %d triangles (%d bytes), got %d bytes: %w", num, want, len(data), ErrMalformedSTL)
	}
	if ascii {
		binaryData := make([]byte, len(data))
		copy(binaryData, data)
		for i := range binaryData[:80] {
			binaryData[i] = 0
		}
		return binaryData, nil
	}
	return data, nil
}
