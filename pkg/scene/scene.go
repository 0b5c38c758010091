// Package scene builds the Cornell-box benchmark scenes from a bitmask
// of feature flags. A scene bundles geometry, lights and a camera, and is
// immutable once built so it can be shared read-only across workers.
package scene

import (
	"math"

	"github.com/jkulda/go-render-bench/pkg/core"
)

// Feature flags selecting geometry and light variants of the Cornell box.
const (
	LightCeiling uint = 1 << iota
	LightSun
	LightPoint
	LightBackground
	SmallMirrorBall
	SmallGlassBall
	LargeMirrorBall
	GlossyFloor

	BothSmallBalls = SmallMirrorBall | SmallGlassBall
)

// Scene is an immutable benchmark scene
type Scene struct {
	Width, Height int
	Camera        *Camera
	Shapes        []Shape
	Lights        []Light

	// Background is non-nil when the environment emits light; rays that
	// leave the scene pick up its radiance.
	Background *BackgroundLight

	// Bounding sphere, used by infinite lights
	Center core.Vec3
	Radius float64
}

// Box dimensions and camera follow the classic 555-unit Cornell setup.
const boxSize = 555.0

// New builds a Cornell box variant from the feature mask at the given
// resolution
func New(width, height int, mask uint) *Scene {
	center := core.NewVec3(boxSize/2, boxSize/2, boxSize/2)

	s := &Scene{
		Width:  width,
		Height: height,
		Camera: NewCamera(CameraConfig{
			Center: core.NewVec3(boxSize/2, boxSize/2, -800),
			LookAt: center,
			Up:     core.NewVec3(0, 1, 0),
			Width:  width,
			Height: height,
			VFov:   40.0,
		}),
		Center: center,
		Radius: boxSize * math.Sqrt(3) / 2,
	}

	s.buildWalls(mask)
	s.buildBalls(mask)
	s.buildLights(mask)

	return s
}

func (s *Scene) buildWalls(mask uint) {
	white := NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	floorMaterial := white
	if mask&GlossyFloor != 0 {
		floorMaterial = NewGlossy(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.7, 0.7, 0.7))
	}

	// Five walls, open towards the camera
	s.Shapes = append(s.Shapes,
		// Floor
		NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), floorMaterial),
		// Ceiling
		NewQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white),
		// Back wall
		NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white),
		// Left wall (red)
		NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), red),
		// Right wall (green)
		NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), green),
	)
}

func (s *Scene) buildBalls(mask uint) {
	mirror := NewMirror(core.NewVec3(0.95, 0.95, 0.95))
	// The glass ball of the original is approximated by a tinted mirror,
	// which keeps a single BSDF model across all strategies.
	tinted := NewMirror(core.NewVec3(0.75, 0.85, 0.95))

	if mask&SmallMirrorBall != 0 {
		s.Shapes = append(s.Shapes, NewSphere(core.NewVec3(185, 90, 150), 90, mirror))
	}
	if mask&SmallGlassBall != 0 {
		s.Shapes = append(s.Shapes, NewSphere(core.NewVec3(370, 90, 370), 90, tinted))
	}
	if mask&LargeMirrorBall != 0 {
		s.Shapes = append(s.Shapes, NewSphere(core.NewVec3(boxSize/2, 160, 300), 160, mirror))
	}
}

func (s *Scene) buildLights(mask uint) {
	if mask&LightCeiling != 0 {
		// Panel just below the ceiling, emitting downwards
		corner := core.NewVec3(213, boxSize-1, 227)
		u := core.NewVec3(130, 0, 0)
		v := core.NewVec3(0, 0, 105)
		light := NewAreaLight(corner, u, v, core.NewVec3(18.4, 15.6, 8.0))
		s.Lights = append(s.Lights, light)

		// The panel is also scene geometry so camera paths see it glow
		panel := NewQuad(corner, u, v, NewLambertian(core.Vec3{}))
		panel.Light = light
		s.Shapes = append(s.Shapes, panel)
	}

	if mask&LightSun != 0 {
		direction := core.NewVec3(0.4, -1, 0.2)
		s.Lights = append(s.Lights, NewDirectionalLight(direction, core.NewVec3(3.2, 3.0, 2.8), s.Center, s.Radius))
	}

	if mask&LightPoint != 0 {
		intensity := core.NewVec3(1, 1, 1).Multiply(2.5e5)
		s.Lights = append(s.Lights, NewPointLight(core.NewVec3(boxSize/2, 500, boxSize/2), intensity))
	}

	if mask&LightBackground != 0 {
		background := NewBackgroundLight(core.NewVec3(0.53, 0.81, 0.98), s.Center, s.Radius)
		s.Background = background
		s.Lights = append(s.Lights, background)
	}
}

// Intersect returns the closest hit along the ray, if any
func (s *Scene) Intersect(ray core.Ray, tMin, tMax float64) (*Hit, bool) {
	var closest *Hit
	closestSoFar := tMax

	for _, shape := range s.Shapes {
		if hit, ok := shape.Hit(ray, tMin, closestSoFar); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// Occluded reports whether anything blocks the segment from point along
// direction up to distance
func (s *Scene) Occluded(point, direction core.Vec3, distance float64) bool {
	ray := core.NewRay(point, direction)
	_, blocked := s.Intersect(ray, 1e-3, distance-1e-3)
	return blocked
}

// BackgroundRadiance returns the environment radiance for a ray that
// left the scene
func (s *Scene) BackgroundRadiance(ray core.Ray) core.Vec3 {
	if s.Background == nil {
		return core.Vec3{}
	}
	return s.Background.Radiance
}
