package meshcurvature

import (
	"fmt"
	"image"
)

// FaceCountGridSize is the side length of the face-count grid.
const FaceCountGridSize = 256

// AdjacentFaces lists, for each of numVertices vertices, the indices of the
// faces that use it, in ascending order.
func AdjacentFaces(numVertices int, faces []Face) [][]int {
	adj := make([][]int, numVertices)
	for i, f := range faces {
		for _, v := range f {
			adj[v] = append(adj[v], i)
		}
	}
	return adj
}

// FaceCountGrid packs each vertex's incident face count row-major into a
// 256×256 single-channel image, clamped to 255 and zero padded. A renderer
// samples it by vertex index.
func FaceCountGrid(adjacent [][]int) (*image.Gray, error) {
	const capacity = FaceCountGridSize * FaceCountGridSize
	if len(adjacent) > capacity {
		return nil, fmt.Errorf("%d vertices, grid holds %d: %w", len(adjacent), capacity, ErrTooManyVertices)
	}

	img := image.NewGray(image.Rect(0, 0, FaceCountGridSize, FaceCountGridSize))
	for i, faces := range adjacent {
		n := len(faces)
		if n > 255 {
			n = 255
		}
		img.Pix[i] = uint8(n)
	}
	return img, nil
}
