package algorithm

import (
	"math"
	"testing"

	"github.com/jkulda/go-render-bench/pkg/framebuffer"
	"github.com/jkulda/go-render-bench/pkg/scene"
)

func totalLuminance(fb *framebuffer.Framebuffer) float64 {
	sum := 0.0
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			sum += fb.At(x, y).Luminance()
		}
	}
	return sum
}

func assertFinite(t *testing.T, fb *framebuffer.Framebuffer) {
	t.Helper()
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			c := fb.At(x, y)
			if math.IsNaN(c.X+c.Y+c.Z) || math.IsInf(c.X+c.Y+c.Z, 0) {
				t.Fatalf("non-finite radiance at (%d,%d): %v", x, y, c)
			}
		}
	}
}

func TestPathTracerProducesLight(t *testing.T) {
	s := scene.New(16, 16, scene.LightCeiling)
	pt := NewPathTracer(s, 1234, 10)

	for i := 0; i < 4; i++ {
		pt.RunIteration(i)
	}

	fb := framebuffer.New(16, 16)
	pt.GetFramebuffer(fb)

	assertFinite(t, fb)
	if totalLuminance(fb) == 0 {
		t.Error("expected a lit scene to produce non-zero radiance")
	}
}

func TestPathTracerDarkSceneStaysDark(t *testing.T) {
	s := scene.New(8, 8, 0) // no lights at all
	pt := NewPathTracer(s, 1234, 10)
	pt.RunIteration(0)

	fb := framebuffer.New(8, 8)
	pt.GetFramebuffer(fb)

	if totalLuminance(fb) != 0 {
		t.Error("scene without lights must render black")
	}
}

func TestPathTracerGetFramebufferRepeatable(t *testing.T) {
	s := scene.New(8, 8, scene.LightCeiling)
	pt := NewPathTracer(s, 7, 10)
	pt.RunIteration(0)

	a := framebuffer.New(8, 8)
	b := framebuffer.New(8, 8)
	pt.GetFramebuffer(a)
	pt.GetFramebuffer(b)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatal("GetFramebuffer must not mutate internal state")
			}
		}
	}
}

func TestPathTracerSeedsDiffer(t *testing.T) {
	s := scene.New(8, 8, scene.LightCeiling)

	a := NewPathTracer(s, 1, 10)
	b := NewPathTracer(s, 2, 10)
	a.RunIteration(0)
	b.RunIteration(0)

	fbA := framebuffer.New(8, 8)
	fbB := framebuffer.New(8, 8)
	a.GetFramebuffer(fbA)
	b.GetFramebuffer(fbB)

	identical := true
	for y := 0; y < 8 && identical; y++ {
		for x := 0; x < 8; x++ {
			if fbA.At(x, y) != fbB.At(x, y) {
				identical = false
				break
			}
		}
	}
	if identical {
		t.Error("different seeds should produce different sample streams")
	}
}
