package meshcurvature

// Config holds all configuration for the curvature pipeline.
type Config struct {
	Curvature CurvatureConfig `mapstructure:"curvature"`
	Normals   NormalsConfig   `mapstructure:"normals"`
	Parallel  ParallelConfig  `mapstructure:"parallel"`
	Export    ExportConfig    `mapstructure:"export"`
}

// CurvatureConfig selects which estimation stages run.
type CurvatureConfig struct {
	Derivatives bool `mapstructure:"derivatives"` // Also estimate the curvature derivative
}

// NormalMethod names a way of producing per-vertex normals.
type NormalMethod string

const (
	// NormalsInput keeps the normals supplied with the mesh.
	NormalsInput NormalMethod = "input"
	// NormalsAreaWeighted averages incident face normals weighted by face area.
	NormalsAreaWeighted NormalMethod = "area_weighted"
	// NormalsPCA fits a plane to each vertex's one-ring.
	NormalsPCA NormalMethod = "pca"
)

// NormalsConfig holds parameters for vertex normal preparation.
type NormalsConfig struct {
	Method    NormalMethod `mapstructure:"method"`    // How normals are produced
	Normalize bool         `mapstructure:"normalize"` // Rescale input normals to unit length
}

// ParallelConfig holds parameters for the per-face worker pool.
type ParallelConfig struct {
	Workers   int `mapstructure:"workers"`    // 0 = GOMAXPROCS, 1 = run inline
	BatchSize int `mapstructure:"batch_size"` // Faces per work item
}

// CurvatureField names a scalar derived from the principal curvatures.
type CurvatureField string

const (
	FieldMean     CurvatureField = "mean"
	FieldGaussian CurvatureField = "gaussian"
	FieldK1       CurvatureField = "k1"
	FieldK2       CurvatureField = "k2"
)

// ExportConfig holds parameters for the colored point-cloud export.
type ExportConfig struct {
	Field      CurvatureField `mapstructure:"field"`       // Scalar mapped to color
	ColorScale float64        `mapstructure:"color_scale"` // |value| that saturates the ramp; 0 = auto
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Curvature: CurvatureConfig{
			Derivatives: true,
		},
		Normals: NormalsConfig{
			Method:    NormalsInput,
			Normalize: true,
		},
		Parallel: ParallelConfig{
			Workers:   0,
			BatchSize: 4096,
		},
		Export: ExportConfig{
			Field:      FieldMean,
			ColorScale: 0,
		},
	}
}
