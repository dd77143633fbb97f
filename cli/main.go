package main

import (
	"context"
	"flag"
	"image/png"
	"os"
	"os/signal"
	"syscall"

	"github.com/biotinker/curvview"
	"github.com/biotinker/curvview/internal/settings"
	meshcurvature "github.com/biotinker/curvview/mesh_curvature"

	"go.viam.com/rdk/logging"
)

var (
	load    = curvview.Step{Name: "Load", Fn: curvview.Load}
	normals = curvview.Step{Name: "Normals", Fn: curvview.PrepareNormals}
	full    = curvview.Step{Name: "Estimate", Fn: curvview.Estimate}
)

// Each step runs after the stages it depends on.
var steps = map[string][]curvview.Step{
	"load":      {load},
	"normals":   {load, normals},
	"areas":     {load, normals, {Name: "PointAreas", Fn: curvview.PointAreas}},
	"curvature": {load, normals, {Name: "PrincipalCurvatures", Fn: curvview.PrincipalCurvatures}},
	"dcurv":     {load, normals, {Name: "DerivativeCurvatures", Fn: curvview.DerivativeCurvatures}},
	"export":    {load, normals, full, {Name: "Export", Fn: curvview.Export}},
	"report":    {load, normals, full, {Name: "Report", Fn: curvview.Report}},
}

const validSteps = "load, normals, areas, curvature, dcurv, export, report"

func main() {
	settingsPath := flag.String("settings", "", "path to job settings JSON file")
	step := flag.String("step", "", "step to run: "+validSteps)
	gridPath := flag.String("face-grid", "", "write the 256x256 adjacent-face-count grid to this PNG (optional)")
	flag.Parse()

	logger := logging.NewLogger("curvview-cli")

	if *settingsPath == "" {
		logger.Fatal("-settings flag is required")
	}
	if *step == "" {
		logger.Fatal("-step flag is required; valid steps: " + validSteps)
	}
	if _, ok := steps[*step]; !ok {
		logger.Fatalf("unknown step %q; valid steps: %s", *step, validSteps)
	}

	s, err := settings.Load(*settingsPath)
	if err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	j, err := curvview.NewJob(s, logger)
	if err != nil {
		logger.Fatal(err)
	}

	logger.Infof("=== Running step: %s ===", *step)
	if err := curvview.RunSteps(ctx, j, steps[*step]); err != nil {
		logger.Fatal(err)
	}

	if *gridPath != "" {
		if err := writeFaceGrid(j.Mesh, *gridPath); err != nil {
			logger.Fatal(err)
		}
		logger.Infof("Wrote face-count grid to %s", *gridPath)
	}
	printSummary(j, logger)
	logger.Infof("Step %s completed successfully", *step)
}

func writeFaceGrid(m *meshcurvature.Mesh, path string) error {
	img, err := meshcurvature.FaceCountGrid(m.AdjacentFaces)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(j *curvview.Job, logger logging.Logger) {
	if j.Mesh == nil {
		return
	}
	logger.Infof("Mesh: %d vertices, %d faces", len(j.Mesh.Vertices), len(j.Mesh.Faces))
	n := len(j.Mesh.Vertices)
	if n > 5 {
		n = 5
	}
	for i, v := range j.Mesh.Vertices[:n] {
		logger.Infof("  vertex %d: area=%.4g k1=%.4g k2=%.4g pdir1=(%.3f, %.3f, %.3f) dcurv=%.3g",
			i, v.PointArea, v.Curv1, v.Curv2, v.Pdir1.X, v.Pdir1.Y, v.Pdir1.Z, v.DCurv)
	}
}
