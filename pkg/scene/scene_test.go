package scene

import (
	"math"
	"testing"

	"github.com/jkulda/go-render-bench/pkg/core"
)

func TestMaskSelectsLights(t *testing.T) {
	tests := []struct {
		name       string
		mask       uint
		lights     int
		background bool
	}{
		{"ceiling", LightCeiling, 1, false},
		{"sun", LightSun, 1, false},
		{"point", LightPoint, 1, false},
		{"background", LightBackground, 1, true},
		{"ceiling and sun", LightCeiling | LightSun, 2, false},
		{"no lights", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(16, 16, tt.mask)

			if len(s.Lights) != tt.lights {
				t.Errorf("expected %d lights, got %d", tt.lights, len(s.Lights))
			}
			if (s.Background != nil) != tt.background {
				t.Errorf("expected background=%t", tt.background)
			}
		})
	}
}

func TestMaskSelectsGeometry(t *testing.T) {
	base := len(New(16, 16, 0).Shapes)

	if got := len(New(16, 16, BothSmallBalls).Shapes); got != base+2 {
		t.Errorf("expected %d shapes with both small balls, got %d", base+2, got)
	}
	if got := len(New(16, 16, LargeMirrorBall).Shapes); got != base+1 {
		t.Errorf("expected %d shapes with large ball, got %d", base+1, got)
	}
	// Ceiling light adds the emissive panel as geometry
	if got := len(New(16, 16, LightCeiling).Shapes); got != base+1 {
		t.Errorf("expected %d shapes with ceiling light, got %d", base+1, got)
	}
}

func TestGlossyFloorMaterial(t *testing.T) {
	matte := New(16, 16, 0)
	glossy := New(16, 16, GlossyFloor)

	// The floor is the first wall; glossy variant carries a mirror term
	matteFloor := matte.Shapes[0].(*Quad)
	glossyFloor := glossy.Shapes[0].(*Quad)

	if !matteFloor.Material.Mirror.IsZero() {
		t.Error("matte floor should have no mirror component")
	}
	if glossyFloor.Material.Mirror.IsZero() {
		t.Error("glossy floor should have a mirror component")
	}
}

func TestSphereIntersection(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 10), 2, NewLambertian(core.NewVec3(1, 1, 1)))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	hit, ok := sphere.Hit(ray, 1e-3, math.Inf(1))
	if !ok {
		t.Fatal("expected ray to hit sphere")
	}
	if math.Abs(hit.T-8) > 1e-9 {
		t.Errorf("expected hit at t=8, got %f", hit.T)
	}
	if hit.Normal.Dot(ray.Direction) >= 0 {
		t.Error("normal should face the ray origin")
	}

	miss := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, 0, 1))
	if _, ok := sphere.Hit(miss, 1e-3, math.Inf(1)); ok {
		t.Error("expected offset ray to miss sphere")
	}
}

func TestQuadIntersection(t *testing.T) {
	quad := NewQuad(core.NewVec3(-1, -1, 5), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
		NewLambertian(core.NewVec3(1, 1, 1)))

	hit, ok := quad.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 1e-3, math.Inf(1))
	if !ok {
		t.Fatal("expected center ray to hit quad")
	}
	if math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("expected hit at t=5, got %f", hit.T)
	}

	if _, ok := quad.Hit(core.NewRay(core.NewVec3(5, 5, 0), core.NewVec3(0, 0, 1)), 1e-3, math.Inf(1)); ok {
		t.Error("expected ray outside the quad to miss")
	}
}

func TestSceneIntersectFindsClosest(t *testing.T) {
	s := New(16, 16, LargeMirrorBall)

	// Straight into the box: the large ball sits in front of the back wall
	ray := s.Camera.GenerateRay(8, 8)
	hit, ok := s.Intersect(ray, 1e-3, math.Inf(1))
	if !ok {
		t.Fatal("expected camera ray to hit the scene")
	}
	if hit.Material.Mirror.IsZero() {
		t.Error("expected the closest hit to be the mirror ball")
	}
}

func TestOccluded(t *testing.T) {
	s := New(16, 16, 0)

	center := core.NewVec3(boxSize/2, boxSize/2, boxSize/2)
	up := core.NewVec3(0, 1, 0)

	if !s.Occluded(center, up, 2*boxSize) {
		t.Error("ceiling should occlude a long upward segment")
	}
	if s.Occluded(center, up, 10) {
		t.Error("short segment should be unoccluded")
	}
}

func TestCameraProjectionRoundTrip(t *testing.T) {
	s := New(64, 64, 0)
	camera := s.Camera

	for _, px := range []core.Vec2{{X: 32.5, Y: 32.5}, {X: 5.5, Y: 50.5}, {X: 60.5, Y: 2.5}} {
		ray := camera.GenerateRay(px.X, px.Y)
		point := ray.At(500)

		raster, visible := camera.WorldToRaster(point)
		if !visible {
			t.Fatalf("point along camera ray through (%v) should be visible", px)
		}
		if math.Abs(raster.X-px.X) > 1e-6 || math.Abs(raster.Y-px.Y) > 1e-6 {
			t.Errorf("round trip drifted: started (%f,%f), got (%f,%f)", px.X, px.Y, raster.X, raster.Y)
		}
	}

	// Points behind the camera never project
	behind := camera.Center.Add(core.NewVec3(0, 0, -100))
	if _, visible := camera.WorldToRaster(behind); visible {
		t.Error("point behind the camera should not be visible")
	}
}

func TestAreaLightIlluminate(t *testing.T) {
	light := NewAreaLight(
		core.NewVec3(-1, 10, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2),
		core.NewVec3(5, 5, 5))

	// The panel normal points down (-Y), so a point below sees it
	sample, ok := light.Illuminate(core.NewVec3(0, 0, 0), core.NewVec2(0.5, 0.5))
	if !ok {
		t.Fatal("expected point below the panel to be illuminated")
	}
	if sample.Direction.Y <= 0 {
		t.Error("direction should point up toward the panel")
	}
	if sample.Pdf <= 0 {
		t.Error("pdf must be positive")
	}

	// A point above the panel faces its back
	if _, ok := light.Illuminate(core.NewVec3(0, 20, 0), core.NewVec2(0.5, 0.5)); ok {
		t.Error("expected back side to give no illumination")
	}
}
