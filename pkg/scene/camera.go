package scene

import (
	"math"

	"github.com/jkulda/go-render-bench/pkg/core"
)

// CameraConfig holds the parameters needed to construct a pinhole camera
type CameraConfig struct {
	Center        core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	Width, Height int
	VFov          float64 // vertical field of view in degrees
}

// Camera is a pinhole camera that can both generate primary rays and
// project world points back onto the raster, which light tracing needs
// to splat contributions at the right pixel.
type Camera struct {
	Center        core.Vec3
	Width, Height int

	forward, right, up core.Vec3
	planeDist          float64 // distance to the image plane in pixel units
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	forward := config.LookAt.Subtract(config.Center).Normalize()
	right := forward.Cross(config.Up).Normalize()
	up := right.Cross(forward)

	tanHalf := math.Tan(config.VFov * math.Pi / 360.0)
	planeDist := float64(config.Height) / (2.0 * tanHalf)

	return &Camera{
		Center:    config.Center,
		Width:     config.Width,
		Height:    config.Height,
		forward:   forward,
		right:     right,
		up:        up,
		planeDist: planeDist,
	}
}

// GenerateRay returns the primary ray through raster position (x, y).
// Fractional coordinates jitter the sample within the pixel.
func (c *Camera) GenerateRay(x, y float64) core.Ray {
	px := x - float64(c.Width)/2.0
	py := float64(c.Height)/2.0 - y

	direction := c.forward.Multiply(c.planeDist).
		Add(c.right.Multiply(px)).
		Add(c.up.Multiply(py)).
		Normalize()

	return core.NewRay(c.Center, direction)
}

// WorldToRaster projects a world point onto the raster. Returns false
// when the point lies behind the camera or outside the image.
func (c *Camera) WorldToRaster(point core.Vec3) (core.Vec2, bool) {
	toPoint := point.Subtract(c.Center)
	depth := toPoint.Dot(c.forward)
	if depth <= 0 {
		return core.Vec2{}, false
	}

	x := toPoint.Dot(c.right)*c.planeDist/depth + float64(c.Width)/2.0
	y := float64(c.Height)/2.0 - toPoint.Dot(c.up)*c.planeDist/depth
	if x < 0 || y < 0 || x >= float64(c.Width) || y >= float64(c.Height) {
		return core.Vec2{}, false
	}

	return core.NewVec2(x, y), true
}

// ImportanceWeight converts radiance arriving at the camera from the
// given direction into an image contribution. The factor accounts for
// the pixel density on the image plane.
func (c *Camera) ImportanceWeight(direction core.Vec3) float64 {
	cosTheta := c.forward.Dot(direction.Normalize())
	if cosTheta <= 0 {
		return 0
	}

	// Distance to the image plane along the ray, converted from the
	// solid angle measure to the raster area measure.
	distToPlane := c.planeDist / cosTheta
	return distToPlane * distToPlane / cosTheta
}
