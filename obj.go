package curvview

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	meshcurvature "github.com/biotinker/curvview/mesh_curvature"
)

// objCorner identifies a mesh vertex by its OBJ position and normal indices.
type objCorner struct {
	pos, norm int // norm is -1 when the face gives no normal
}

// LoadOBJ reads a Wavefront OBJ mesh. Only v, vn and f statements are used;
// polygons are fan-triangulated. Each distinct (position, normal) pair used
// by a face becomes one mesh vertex. If any corner lacks a normal, all normals
// are left zero for the caller to generate.
func LoadOBJ(r io.Reader) (*meshcurvature.Mesh, error) {
	var (
		positions []r3.Vector
		normals   []r3.Vector
		corners   []objCorner
		index     = map[objCorner]int{}
		faces     []meshcurvature.Face
		missing   bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v", "vn":
			vec, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if fields[0] == "v" {
				positions = append(positions, vec)
			} else {
				normals = append(normals, vec)
			}

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face with %d corners: %w", line, len(fields)-1, ErrMalformedOBJ)
			}
			poly := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				c, err := parseCorner(ref, len(positions), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				if c.norm < 0 {
					missing = true
				}
				idx, ok := index[c]
				if !ok {
					idx = len(corners)
					index[c] = idx
					corners = append(corners, c)
				}
				poly = append(poly, idx)
			}
			for k := 1; k+1 < len(poly); k++ {
				faces = append(faces, meshcurvature.Face{poly[0], poly[k], poly[k+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	vertices := make([]meshcurvature.Vertex, len(corners))
	for i, c := range corners {
		vertices[i].Position = positions[c.pos]
		if !missing {
			vertices[i].Normal = normals[c.norm]
		}
	}
	return meshcurvature.NewMesh(vertices, faces)
}

func parseVec3(fields []string) (r3.Vector, error) {
	if len(fields) < 3 {
		return r3.Vector{}, fmt.Errorf("want 3 coordinates, got %d: %w", len(fields), ErrMalformedOBJ)
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return r3.Vector{}, fmt.Errorf("coordinate %q: %w", fields[i], ErrMalformedOBJ)
		}
		xyz[i] = f
	}
	return r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// parseCorner parses v, v/vt, v//vn or v/vt/vn with 1-based or negative
// (relative) indices.
func parseCorner(ref string, numPositions, numNormals int) (objCorner, error) {
	parts := strings.Split(ref, "/")
	pos, err := resolveIndex(parts[0], numPositions)
	if err != nil {
		return objCorner{}, err
	}
	c := objCorner{pos: pos, norm: -1}
	if len(parts) == 3 && parts[2] != "" {
		if c.norm, err = resolveIndex(parts[2], numNormals); err != nil {
			return objCorner{}, err
		}
	}
	return c, nil
}

func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q: %w", s, ErrMalformedOBJ)
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("index %d out of range 1..%d: %w", i, n, ErrMalformedOBJ)
}
