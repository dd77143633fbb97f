// Package settings loads curvview job files.
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"

	meshcurvature "github.com/biotinker/curvview/mesh_curvature"
)

// Pose places exported points in a world frame. Orientation is an axis
// (OX, OY, OZ) plus a rotation Theta in degrees about it.
type Pose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	OX    float64 `json:"o_x"`
	OY    float64 `json:"o_y"`
	OZ    float64 `json:"o_z"`
	Theta float64 `json:"theta"`
}

// Settings describes one curvature job.
type Settings struct {
	Input  string `json:"input"`  // OBJ or STL mesh
	Output string `json:"output"` // Colored point cloud (PCD); empty = skip
	Report string `json:"report"` // JSON summary; empty = log only
	Pose   *Pose  `json:"pose"`   // World frame of the output cloud; nil = mesh frame

	// Config overrides fields of meshcurvature.DefaultConfig, keyed by their
	// mapstructure names.
	Config map[string]interface{} `json:"config"`
}

// Load reads and parses a job file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	if s.Input == "" {
		return nil, fmt.Errorf("settings file %s: input is required", path)
	}
	return &s, nil
}

// EstimatorConfig returns the default configuration with the job's overrides
// applied. Unknown keys are rejected.
func (s *Settings) EstimatorConfig() (meshcurvature.Config, error) {
	cfg := meshcurvature.DefaultConfig()
	if len(s.Config) == 0 {
		return cfg, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(s.Config); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
