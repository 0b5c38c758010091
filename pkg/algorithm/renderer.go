// Package algorithm implements the light transport strategies driven by
// the render harness. Each strategy owns a private framebuffer and a
// deterministically seeded sampler; its accumulator holds the sum of its
// own iterations and is normalized by that count on export.
package algorithm

import (
	"github.com/jkulda/go-render-bench/pkg/core"
	"github.com/jkulda/go-render-bench/pkg/framebuffer"
	"github.com/jkulda/go-render-bench/pkg/scene"
)

// rendererBase carries the state every strategy shares: the scene, the
// private accumulator, the random stream and the iteration counter that
// doubles as the "was used" marker.
type rendererBase struct {
	scene         *scene.Scene
	frame         *framebuffer.Framebuffer
	sampler       *core.RandomSampler
	iterations    int
	maxPathLength int
}

func newRendererBase(s *scene.Scene, seed int64, maxPathLength int) rendererBase {
	return rendererBase{
		scene:         s,
		frame:         framebuffer.New(s.Width, s.Height),
		sampler:       core.NewRandomSampler(seed),
		maxPathLength: maxPathLength,
	}
}

// markIteration counts one completed iteration; the first call flips the
// instance to used.
func (r *rendererBase) markIteration() {
	r.iterations++
}

// WasUsed reports whether this instance ran at least one iteration
func (r *rendererBase) WasUsed() bool {
	return r.iterations > 0
}

// GetFramebuffer copies the accumulated radiance into fb, normalized by
// the number of iterations this instance personally ran. Internal state
// is left untouched so the call is repeatable.
func (r *rendererBase) GetFramebuffer(fb *framebuffer.Framebuffer) {
	factor := 1.0
	if r.iterations > 0 {
		factor = 1.0 / float64(r.iterations)
	}
	fb.CopyFrom(r.frame, factor)
}
