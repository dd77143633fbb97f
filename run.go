package curvview

import (
	"context"
	"fmt"

	meshcurvature "github.com/biotinker/curvview/mesh_curvature"
)

// Step is one stage of a job.
type Step struct {
	Name string
	Fn   func(context.Context, *Job) error
}

// Pipeline is the full job: load → normals → estimate → export → report.
var Pipeline = []Step{
	{"Load", Load},
	{"Normals", PrepareNormals},
	{"Estimate", Estimate},
	{"Export", Export},
	{"Report", Report},
}

// Run executes the full pipeline on j.
func Run(ctx context.Context, j *Job) error {
	j.logger.Infof("Starting curvature job for %s", j.Settings.Input)
	if err := RunSteps(ctx, j, Pipeline); err != nil {
		return err
	}
	j.logger.Info("Job complete")
	return nil
}

// RunSteps executes steps in order, stopping at the first failure.
func RunSteps(ctx context.Context, j *Job, steps []Step) error {
	for _, step := range steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		j.logger.Infof("=== %s ===", step.Name)
		if err := step.Fn(ctx, j); err != nil {
			return fmt.Errorf("%s: %w", step.Name, err)
		}
	}
	return nil
}

// Load reads the input mesh.
func Load(ctx context.Context, j *Job) error {
	m, err := LoadMeshFile(j.Settings.Input)
	if err != nil {
		return err
	}
	j.Mesh = m
	j.Stats = nil
	j.logger.Infof("Loaded %d vertices, %d faces", len(m.Vertices), len(m.Faces))
	return nil
}

// PrepareNormals applies the configured normal method. Meshes loaded
// without normals always get area-weighted normals first.
func PrepareNormals(ctx context.Context, j *Job) error {
	if j.Mesh == nil {
		return ErrNoMesh
	}
	if !j.Mesh.HasNormals() {
		j.logger.Infof("Mesh has no vertex normals, generating %s normals", meshcurvature.NormalsAreaWeighted)
		meshcurvature.AreaWeightedNormals(j.Mesh)
	}
	if j.Config.Normals.Normalize {
		meshcurvature.NormalizeNormals(j.Mesh)
	}
	return meshcurvature.GenerateNormals(j.Mesh, j.Config.Normals.Method)
}

// Estimate runs the curvature estimator and records its statistics.
func Estimate(ctx context.Context, j *Job) error {
	if j.Mesh == nil {
		return ErrNoMesh
	}
	stats, err := j.Estimator.Estimate(ctx, j.Mesh)
	if err != nil {
		return err
	}
	j.Stats = stats
	if n := stats.SkippedCurvatureFaces + stats.SkippedDerivativeFaces; n > 0 {
		j.logger.Warnf("%d face fits were skipped (%d degenerate faces)", n, stats.DegenerateFaces)
	}
	return nil
}

// PointAreas computes only the mixed Voronoi areas.
func PointAreas(ctx context.Context, j *Job) error {
	if j.Mesh == nil {
		return ErrNoMesh
	}
	n := j.Estimator.PointAreas(j.Mesh)
	j.logger.Infof("Point areas computed, %d degenerate faces", n)
	return nil
}

// PrincipalCurvatures estimates only the principal curvatures.
func PrincipalCurvatures(ctx context.Context, j *Job) error {
	if j.Mesh == nil {
		return ErrNoMesh
	}
	n, err := j.Estimator.PrincipalCurvatures(ctx, j.Mesh)
	if err != nil {
		return err
	}
	j.logger.Infof("Principal curvatures computed, %d faces skipped", n)
	return nil
}

// DerivativeCurvatures estimates the curvature derivative, and the principal
// curvatures it depends on.
func DerivativeCurvatures(ctx context.Context, j *Job) error {
	if j.Mesh == nil {
		return ErrNoMesh
	}
	n, err := j.Estimator.DerivativeCurvatures(ctx, j.Mesh)
	if err != nil {
		return err
	}
	j.logger.Infof("Curvature derivatives computed, %d faces skipped", n)
	return nil
}
