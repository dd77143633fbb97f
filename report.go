package curvview

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	meshcurvature "github.com/biotinker/curvview/mesh_curvature"
)

// Report renders the job statistics as JSON and writes them to the report
// path, or logs them when none is set.
func Report(ctx context.Context, j *Job) error {
	if j.Stats == nil {
		return ErrNoStats
	}
	data, err := MarshalStats(j.Settings.Input, j.Stats)
	if err != nil {
		return err
	}
	if j.Settings.Report == "" {
		j.logger.Infof("Report: %s", data)
		return nil
	}
	if err := os.WriteFile(j.Settings.Report, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	j.logger.Infof("Wrote report to %s", j.Settings.Report)
	return nil
}

// MarshalStats encodes estimator statistics as indented JSON.
func MarshalStats(input string, s *meshcurvature.Stats) ([]byte, error) {
	fieldRange := func(r meshcurvature.FieldRange) map[string]interface{} {
		return map[string]interface{}{"min": r.Min, "max": r.Max, "mean": r.Mean}
	}
	st, err := structpb.NewStruct(map[string]interface{}{
		"input":    input,
		"vertices": s.Vertices,
		"faces":    s.Faces,
		"skipped": map[string]interface{}{
			"degenerate": s.DegenerateFaces,
			"curvature":  s.SkippedCurvatureFaces,
			"derivative": s.SkippedDerivativeFaces,
		},
		"total_area": s.TotalArea,
		"curv1":      fieldRange(s.Curv1),
		"curv2":      fieldRange(s.Curv2),
		"seconds": map[string]interface{}{
			"areas":      s.AreaTime.Seconds(),
			"curvature":  s.CurvatureTime.Seconds(),
			"derivative": s.DerivativeTime.Seconds(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}
