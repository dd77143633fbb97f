package curvview

import (
	"context"
	"fmt"
	"os"

	"github.com/golang/geo/r3"

	"go.viam.com/rdk/pointcloud"
	"go.viam.com/rdk/spatialmath"

	"github.com/biotinker/curvview/internal/settings"
	meshcurvature "github.com/biotinker/curvview/mesh_curvature"
)

// Export builds the colored curvature point cloud, moves it into the
// configured world frame and writes it as binary PCD.
func Export(ctx context.Context, j *Job) error {
	if j.Mesh == nil {
		return ErrNoMesh
	}
	cloud, err := meshcurvature.PointCloud(j.Mesh, j.Config.Export)
	if err != nil {
		return fmt.Errorf("build point cloud: %w", err)
	}

	if j.Settings.Pose != nil {
		pose := worldPose(*j.Settings.Pose)
		j.logger.Infof("Transforming cloud to world frame: %v", pose)
		world := pointcloud.NewBasicPointCloud(cloud.Size())
		if err := pointcloud.ApplyOffset(cloud, pose, world); err != nil {
			return fmt.Errorf("failed to transform point cloud: %w", err)
		}
		cloud = world
	}
	j.Cloud = cloud

	if j.Settings.Output == "" {
		j.logger.Debug("No output path, skipping PCD")
		return nil
	}
	if err := savePointCloudToPCD(cloud, j.Settings.Output); err != nil {
		return err
	}
	j.logger.Infof("Saved %s colored point cloud to %s (%d points)", j.Config.Export.Field, j.Settings.Output, cloud.Size())
	return nil
}

// worldPose converts job settings to a pose. A zero orientation axis means
// no rotation.
func worldPose(p settings.Pose) spatialmath.Pose {
	ov := &spatialmath.OrientationVectorDegrees{OX: p.OX, OY: p.OY, OZ: p.OZ, Theta: p.Theta}
	if p.OX == 0 && p.OY == 0 && p.OZ == 0 {
		ov = &spatialmath.OrientationVectorDegrees{OZ: 1, Theta: p.Theta}
	}
	return spatialmath.NewPose(r3.Vector{X: p.X, Y: p.Y, Z: p.Z}, ov)
}

// savePointCloudToPCD writes a point cloud to a PCD file in binary format.
func savePointCloudToPCD(cloud pointcloud.PointCloud, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := pointcloud.ToPCD(cloud, file, pointcloud.PCDBinary); err != nil {
		file.Close()
		return fmt.Errorf("write PCD: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close PCD: %w", err)
	}
	return nil
}
