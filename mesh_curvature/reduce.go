package meshcurvature

import (
	"context"

	"github.com/biotinker/curvview/internal/parallel"
)

// faceTerms is what one face adds to each of its three corners. Faces whose
// fit failed have ok unset and add nothing.
type faceTerms[T any] struct {
	corner [3]T
	ok     bool
}

// mapFaces evaluates fn for every face. Each call writes only its own slot,
// so batches may run on the pool in any order.
func mapFaces[T any](
	ctx context.Context,
	pool *parallel.WorkerPool,
	numFaces, batchSize int,
	fn func(face int) ([3]T, bool),
) ([]faceTerms[T], error) {
	terms := make([]faceTerms[T], numFaces)
	err := parallel.ForEachBatch(ctx, pool, numFaces, batchSize, func(r parallel.Range) {
		for i := r.Start; i < r.End; i++ {
			terms[i].corner, terms[i].ok = fn(i)
		}
	})
	if err != nil {
		return nil, err
	}
	return terms, nil
}

// reduceFaces adds the face terms into per-vertex accumulators in face order
// and returns the number of skipped faces. The fixed order makes the result
// independent of how the map step was scheduled.
func reduceFaces[T any](faces []Face, terms []faceTerms[T], add func(vertex int, term T)) int {
	skipped := 0
	for i, t := range terms {
		if !t.ok {
			skipped++
			continue
		}
		for j, v := range faces[i] {
			add(v, t.corner[j])
		}
	}
	return skipped
}
