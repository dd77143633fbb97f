package meshcurvature

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.viam.com/rdk/logging"

	"github.com/biotinker/curvview/internal/parallel"
)

// Estimator runs the per-vertex curvature pipeline on meshes.
type Estimator struct {
	cfg    Config
	logger logging.Logger
}

// NewEstimator creates a new Estimator with the given configuration. A nil
// config selects DefaultConfig and a nil logger discards output.
func NewEstimator(cfg *Config, logger logging.Logger) *Estimator {
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	if logger == nil {
		logger = logging.NewBlankLogger("meshcurvature")
	}
	return &Estimator{cfg: *cfg, logger: logger}
}

// Config returns the estimator's configuration.
func (e *Estimator) Config() Config {
	return e.cfg
}

// Estimate runs point areas, principal curvatures and, if configured, the
// curvature derivative on mesh, and summarizes the result.
func (e *Estimator) Estimate(ctx context.Context, mesh *Mesh) (*Stats, error) {
	if mesh == nil {
		return nil, ErrNilMesh
	}
	pool, release := e.pool()
	defer release()

	stats := &Stats{Vertices: len(mesh.Vertices), Faces: len(mesh.Faces)}

	start := time.Now()
	stats.DegenerateFaces = e.PointAreas(mesh)
	stats.AreaTime = time.Since(start)

	start = time.Now()
	skipped, err := e.principalCurvatures(ctx, mesh, pool)
	if err != nil {
		return nil, fmt.Errorf("principal curvatures: %w", err)
	}
	stats.SkippedCurvatureFaces = skipped
	stats.CurvatureTime = time.Since(start)

	if e.cfg.Curvature.Derivatives {
		start = time.Now()
		skipped, err := e.derivativeCurvatures(ctx, mesh, pool)
		if err != nil {
			return nil, fmt.Errorf("curvature derivatives: %w", err)
		}
		stats.SkippedDerivativeFaces = skipped
		stats.DerivativeTime = time.Since(start)
	}

	summarize(mesh, stats)
	e.logger.Infof("Estimated curvature on %d vertices / %d faces (k1 %.4g..%.4g, k2 %.4g..%.4g)",
		stats.Vertices, stats.Faces, stats.Curv1.Min, stats.Curv1.Max, stats.Curv2.Min, stats.Curv2.Max)
	return stats, nil
}

// PointAreas computes corner and point areas for mesh and returns the number
// of faces without usable area.
func (e *Estimator) PointAreas(mesh *Mesh) int {
	degenerate := computePointAreas(mesh)
	if degenerate > 0 {
		e.logger.Debugf("Point areas: %d of %d faces are degenerate", degenerate, len(mesh.Faces))
	}
	return degenerate
}

// PrincipalCurvatures estimates Curv1, Curv2, Pdir1 and Pdir2 for every vertex
// and returns the number of faces whose fit was skipped. Point areas are
// computed first if they are missing.
func (e *Estimator) PrincipalCurvatures(ctx context.Context, mesh *Mesh) (int, error) {
	if mesh == nil {
		return 0, ErrNilMesh
	}
	pool, release := e.pool()
	defer release()
	return e.principalCurvatures(ctx, mesh, pool)
}

// DerivativeCurvatures estimates DCurv for every vertex and returns the number
// of faces whose fit was skipped. Principal curvatures are estimated first if
// they are missing.
func (e *Estimator) DerivativeCurvatures(ctx context.Context, mesh *Mesh) (int, error) {
	if mesh == nil {
		return 0, ErrNilMesh
	}
	pool, release := e.pool()
	defer release()
	return e.derivativeCurvatures(ctx, mesh, pool)
}

func (e *Estimator) principalCurvatures(ctx context.Context, mesh *Mesh, pool *parallel.WorkerPool) (int, error) {
	if !mesh.hasAreas {
		e.PointAreas(mesh)
	}
	seedFrames(mesh)

	terms, err := mapFaces(ctx, pool, len(mesh.Faces), e.cfg.Parallel.BatchSize,
		func(i int) ([3][3]float64, bool) { return faceCurvature(mesh, i) })
	if err != nil {
		return 0, err
	}

	acc := make([][3]float64, len(mesh.Vertices))
	skipped := reduceFaces(mesh.Faces, terms, func(v int, t [3]float64) {
		acc[v][0] += t[0]
		acc[v][1] += t[1]
		acc[v][2] += t[2]
	})
	diagonalizeVertices(mesh, acc)
	mesh.hasCurvature = true

	if skipped > 0 {
		e.logger.Debugf("Principal curvatures: skipped %d of %d faces", skipped, len(mesh.Faces))
	}
	return skipped, nil
}

func (e *Estimator) derivativeCurvatures(ctx context.Context, mesh *Mesh, pool *parallel.WorkerPool) (int, error) {
	if !mesh.hasCurvature {
		if _, err := e.principalCurvatures(ctx, mesh, pool); err != nil {
			return 0, err
		}
	}

	terms, err := mapFaces(ctx, pool, len(mesh.Faces), e.cfg.Parallel.BatchSize,
		func(i int) ([3][4]float64, bool) { return faceDerivative(mesh, i) })
	if err != nil {
		return 0, err
	}

	for i := range mesh.Vertices {
		mesh.Vertices[i].DCurv = [4]float64{}
	}
	skipped := reduceFaces(mesh.Faces, terms, func(v int, t [4]float64) {
		d := &mesh.Vertices[v].DCurv
		for k := range d {
			d[k] += t[k]
		}
	})

	if skipped > 0 {
		e.logger.Debugf("Curvature derivatives: skipped %d of %d faces", skipped, len(mesh.Faces))
	}
	return skipped, nil
}

// pool returns the worker pool for one call, or nil when faces should be
// processed inline.
func (e *Estimator) pool() (*parallel.WorkerPool, func()) {
	if e.cfg.Parallel.Workers == 1 {
		return nil, func() {}
	}
	p := parallel.NewWorkerPool(e.cfg.Parallel.Workers)
	return p, p.Close
}

func summarize(mesh *Mesh, stats *Stats) {
	for _, v := range mesh.Vertices {
		stats.TotalArea += v.PointArea
	}
	stats.Curv1 = fieldRange(mesh.Vertices, func(v Vertex) float64 { return v.Curv1 })
	stats.Curv2 = fieldRange(mesh.Vertices, func(v Vertex) float64 { return v.Curv2 })
}

func fieldRange(vertices []Vertex, value func(Vertex) float64) FieldRange {
	if len(vertices) == 0 {
		return FieldRange{}
	}
	r := FieldRange{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, v := range vertices {
		x := value(v)
		r.Min = math.Min(r.Min, x)
		r.Max = math.Max(r.Max, x)
		sum += x
	}
	r.Mean = sum / float64(len(vertices))
	return r
}
