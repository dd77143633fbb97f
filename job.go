package curvview

import (
	"fmt"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/pointcloud"

	"github.com/biotinker/curvview/internal/settings"
	meshcurvature "github.com/biotinker/curvview/mesh_curvature"
)

// Job carries one mesh through the curvature pipeline.
type Job struct {
	Settings  *settings.Settings
	Config    meshcurvature.Config
	Estimator *meshcurvature.Estimator

	Mesh  *meshcurvature.Mesh
	Stats *meshcurvature.Stats
	Cloud pointcloud.PointCloud

	logger logging.Logger
}

// NewJob prepares a job from loaded settings.
func NewJob(s *settings.Settings, logger logging.Logger) (*Job, error) {
	cfg, err := s.EstimatorConfig()
	if err != nil {
		return nil, fmt.Errorf("estimator config: %w", err)
	}
	return &Job{
		Settings:  s,
		Config:    cfg,
		Estimator: meshcurvature.NewEstimator(&cfg, logger),
		logger:    logger,
	}, nil
}
