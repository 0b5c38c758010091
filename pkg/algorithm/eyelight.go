package algorithm

import (
	"math"

	"github.com/jkulda/go-render-bench/pkg/core"
	"github.com/jkulda/go-render-bench/pkg/scene"
)

// EyeLight is the trivial one-shot shading estimator: every visible
// surface is shaded by the cosine between its normal and the view ray.
// Its output does not depend on the iteration count, so the harness runs
// it exactly once; it has no random stream and no path length bound.
type EyeLight struct {
	rendererBase
}

// NewEyeLight creates an eye-light renderer for the scene
func NewEyeLight(s *scene.Scene) *EyeLight {
	return &EyeLight{rendererBase: newRendererBase(s, 0, 0)}
}

// RunIteration shades every pixel once
func (e *EyeLight) RunIteration(iteration int) {
	e.markIteration()

	camera := e.scene.Camera
	for y := 0; y < e.scene.Height; y++ {
		for x := 0; x < e.scene.Width; x++ {
			ray := camera.GenerateRay(float64(x)+0.5, float64(y)+0.5)

			hit, ok := e.scene.Intersect(ray, 1e-3, math.Inf(1))
			if !ok {
				continue
			}

			shade := math.Abs(hit.Normal.Dot(ray.Direction.Negate()))
			e.frame.AddColor(x, y, core.NewVec3(shade, shade, shade))
		}
	}
}
