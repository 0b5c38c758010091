package algorithm

import (
	"testing"

	"github.com/jkulda/go-render-bench/pkg/core"
	"github.com/jkulda/go-render-bench/pkg/framebuffer"
	"github.com/jkulda/go-render-bench/pkg/scene"
)

func TestHashGridFindsNearbyVertices(t *testing.T) {
	grid := newHashGrid(1.0, 8)
	points := []core.Vec3{
		{X: 0.1, Y: 0.1, Z: 0.1},
		{X: 0.9, Y: 0.1, Z: 0.1},
		{X: 5, Y: 5, Z: 5},
	}
	for i, p := range points {
		grid.insert(i, p)
	}

	found := map[int]bool{}
	grid.forEachNear(core.NewVec3(0.5, 0.1, 0.1), 1.0, func(index int) {
		found[index] = true
	})

	if !found[0] || !found[1] {
		t.Errorf("expected both near vertices, found %v", found)
	}
	if found[2] {
		t.Error("distant vertex should be pruned by the grid")
	}
}

func TestVertexCMModes(t *testing.T) {
	s := scene.New(12, 12, scene.LightCeiling|scene.BothSmallBalls)

	modes := []struct {
		name string
		mode VcmMode
	}{
		{"light tracing", LightTrace},
		{"progressive photon mapping", Ppm},
		{"bidirectional photon mapping", Bpm},
		{"bidirectional path tracing", Bpt},
		{"vertex connection merging", Vcm},
	}

	for _, tt := range modes {
		t.Run(tt.name, func(t *testing.T) {
			r := NewVertexCM(s, tt.mode, 1234, 10)

			if r.WasUsed() {
				t.Fatal("new renderer must report unused")
			}
			r.RunIteration(0)
			r.RunIteration(1)
			if !r.WasUsed() {
				t.Fatal("renderer must report used")
			}

			fb := framebuffer.New(12, 12)
			r.GetFramebuffer(fb)

			assertFinite(t, fb)
			if totalLuminance(fb) == 0 {
				t.Error("expected a lit scene to produce non-zero radiance")
			}
		})
	}
}

func TestVertexCMNoLights(t *testing.T) {
	s := scene.New(8, 8, 0)

	for _, mode := range []VcmMode{LightTrace, Bpt, Vcm} {
		r := NewVertexCM(s, mode, 1, 10)
		r.RunIteration(0)

		fb := framebuffer.New(8, 8)
		r.GetFramebuffer(fb)
		if totalLuminance(fb) != 0 {
			t.Errorf("mode %d: scene without lights must render black", mode)
		}
	}
}
