package scene

import (
	"math"

	"github.com/jkulda/go-render-bench/pkg/core"
)

// IlluminationSample is a direction toward a light sampled from a shading
// point, with the radiance already divided by the sampling pdf.
type IlluminationSample struct {
	Direction core.Vec3
	Distance  float64
	Radiance  core.Vec3
	Pdf       float64 // solid angle pdf, 1 for delta lights
	IsDelta   bool
}

// EmissionSample is a ray leaving a light, used by light-path tracing.
// Radiance is the initial path throughput with the pdf applied.
type EmissionSample struct {
	Ray      core.Ray
	Radiance core.Vec3
}

// Light is a source of illumination in the scene
type Light interface {
	// Illuminate samples a shadow-ray direction from point toward the light
	Illuminate(point core.Vec3, sample core.Vec2) (IlluminationSample, bool)

	// Emit samples a ray leaving the light carrying its radiance
	Emit(posSample, dirSample core.Vec2) EmissionSample
}

// AreaLight is a quad panel emitting from its front face
type AreaLight struct {
	Corner, U, V core.Vec3
	Normal       core.Vec3
	Radiance     core.Vec3
	area         float64
}

// NewAreaLight creates an area light over a parallelogram
func NewAreaLight(corner, u, v, radiance core.Vec3) *AreaLight {
	return &AreaLight{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   u.Cross(v).Normalize(),
		Radiance: radiance,
		area:     u.Cross(v).Length(),
	}
}

// Illuminate samples a point on the panel
func (l *AreaLight) Illuminate(point core.Vec3, sample core.Vec2) (IlluminationSample, bool) {
	onLight := l.Corner.Add(l.U.Multiply(sample.X)).Add(l.V.Multiply(sample.Y))
	toLight := onLight.Subtract(point)
	distSq := toLight.LengthSquared()
	dist := math.Sqrt(distSq)
	dir := toLight.Multiply(1.0 / dist)

	cosAtLight := l.Normal.Dot(dir.Negate())
	if cosAtLight <= 0 {
		return IlluminationSample{}, false
	}

	// Area pdf converted to solid angle
	pdf := distSq / (cosAtLight * l.area)
	return IlluminationSample{
		Direction: dir,
		Distance:  dist,
		Radiance:  l.Radiance.Multiply(1.0 / pdf),
		Pdf:       pdf,
	}, true
}

// Emit samples a cosine-weighted ray from a uniform point on the panel
func (l *AreaLight) Emit(posSample, dirSample core.Vec2) EmissionSample {
	origin := l.Corner.Add(l.U.Multiply(posSample.X)).Add(l.V.Multiply(posSample.Y))
	direction := core.SampleCosineHemisphere(l.Normal, dirSample)

	// pdf = (cos/pi) * (1/area); emitted power = radiance * cos, so the
	// cosines cancel and pi * area * radiance remains.
	radiance := l.Radiance.Multiply(math.Pi * l.area)
	return EmissionSample{
		Ray:      core.NewRay(origin.Add(l.Normal.Multiply(1e-4)), direction),
		Radiance: radiance,
	}
}

// PdfIlluminate returns the solid angle pdf of sampling the given
// direction from point, for multiple importance sampling
func (l *AreaLight) PdfIlluminate(point, direction core.Vec3, distance float64) float64 {
	cosAtLight := l.Normal.Dot(direction.Negate())
	if cosAtLight <= 0 {
		return 0
	}
	return distance * distance / (cosAtLight * l.area)
}

// PointLight emits uniformly in all directions from a single point
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a point light with the given intensity
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// Illuminate returns the delta direction toward the point light
func (l *PointLight) Illuminate(point core.Vec3, sample core.Vec2) (IlluminationSample, bool) {
	toLight := l.Position.Subtract(point)
	distSq := toLight.LengthSquared()
	if distSq == 0 {
		return IlluminationSample{}, false
	}
	dist := math.Sqrt(distSq)
	return IlluminationSample{
		Direction: toLight.Multiply(1.0 / dist),
		Distance:  dist,
		Radiance:  l.Intensity.Multiply(1.0 / distSq),
		Pdf:       1,
		IsDelta:   true,
	}, true
}

// Emit samples a uniform direction on the sphere
func (l *PointLight) Emit(posSample, dirSample core.Vec2) EmissionSample {
	direction := core.SampleUniformSphere(dirSample)
	// pdf = 1/(4*pi)
	return EmissionSample{
		Ray:      core.NewRay(l.Position, direction),
		Radiance: l.Intensity.Multiply(4 * math.Pi),
	}
}

// DirectionalLight models a distant sun: parallel rays, delta direction
type DirectionalLight struct {
	Direction core.Vec3 // direction the light travels
	Radiance  core.Vec3

	sceneCenter core.Vec3
	sceneRadius float64
}

// NewDirectionalLight creates a sun light covering the scene's bounding sphere
func NewDirectionalLight(direction, radiance, sceneCenter core.Vec3, sceneRadius float64) *DirectionalLight {
	return &DirectionalLight{
		Direction:   direction.Normalize(),
		Radiance:    radiance,
		sceneCenter: sceneCenter,
		sceneRadius: sceneRadius,
	}
}

// Illuminate returns the fixed direction toward the sun
func (l *DirectionalLight) Illuminate(point core.Vec3, sample core.Vec2) (IlluminationSample, bool) {
	return IlluminationSample{
		Direction: l.Direction.Negate(),
		Distance:  2 * l.sceneRadius,
		Radiance:  l.Radiance,
		Pdf:       1,
		IsDelta:   true,
	}, true
}

// Emit samples a parallel ray through a disk covering the scene
func (l *DirectionalLight) Emit(posSample, dirSample core.Vec2) EmissionSample {
	tangent, bitangent := core.OrthonormalBasis(l.Direction)

	// Uniform point on the disk perpendicular to the light direction
	r := l.sceneRadius * math.Sqrt(posSample.X)
	phi := 2 * math.Pi * posSample.Y
	offset := tangent.Multiply(r * math.Cos(phi)).Add(bitangent.Multiply(r * math.Sin(phi)))

	origin := l.sceneCenter.Subtract(l.Direction.Multiply(2 * l.sceneRadius)).Add(offset)
	diskArea := math.Pi * l.sceneRadius * l.sceneRadius
	return EmissionSample{
		Ray:      core.NewRay(origin, l.Direction),
		Radiance: l.Radiance.Multiply(diskArea),
	}
}

// BackgroundLight is a constant environment surrounding the scene
type BackgroundLight struct {
	Radiance core.Vec3

	sceneCenter core.Vec3
	sceneRadius float64
}

// NewBackgroundLight creates a constant environment light
func NewBackgroundLight(radiance, sceneCenter core.Vec3, sceneRadius float64) *BackgroundLight {
	return &BackgroundLight{Radiance: radiance, sceneCenter: sceneCenter, sceneRadius: sceneRadius}
}

// Illuminate samples a uniform direction on the sphere of directions
func (l *BackgroundLight) Illuminate(point core.Vec3, sample core.Vec2) (IlluminationSample, bool) {
	direction := core.SampleUniformSphere(sample)
	pdf := 1.0 / (4 * math.Pi)
	return IlluminationSample{
		Direction: direction,
		Distance:  2 * l.sceneRadius,
		Radiance:  l.Radiance.Multiply(1.0 / pdf),
		Pdf:       pdf,
	}, true
}

// Emit samples an inward ray from the bounding sphere
func (l *BackgroundLight) Emit(posSample, dirSample core.Vec2) EmissionSample {
	onSphere := core.SampleUniformSphere(posSample)
	origin := l.sceneCenter.Add(onSphere.Multiply(l.sceneRadius))
	direction := core.SampleCosineHemisphere(onSphere.Negate(), dirSample)

	sphereArea := 4 * math.Pi * l.sceneRadius * l.sceneRadius
	return EmissionSample{
		Ray:      core.NewRay(origin, direction),
		Radiance: l.Radiance.Multiply(math.Pi * sphereArea),
	}
}
