package algorithm

import (
	"math"

	"github.com/jkulda/go-render-bench/pkg/core"
	"github.com/jkulda/go-render-bench/pkg/scene"
)

// PathTracer implements unidirectional path tracing from the camera with
// next-event estimation at diffuse vertices. One iteration traces one
// path per pixel.
type PathTracer struct {
	rendererBase
}

// NewPathTracer creates a path tracer with its own random stream
func NewPathTracer(s *scene.Scene, seed int64, maxPathLength int) *PathTracer {
	return &PathTracer{rendererBase: newRendererBase(s, seed, maxPathLength)}
}

// RunIteration traces one jittered camera path per pixel
func (p *PathTracer) RunIteration(iteration int) {
	p.markIteration()

	camera := p.scene.Camera
	for y := 0; y < p.scene.Height; y++ {
		for x := 0; x < p.scene.Width; x++ {
			jitter := p.sampler.Get2D()
			ray := camera.GenerateRay(float64(x)+jitter.X, float64(y)+jitter.Y)
			p.frame.AddColor(x, y, p.trace(ray))
		}
	}
}

// trace walks a camera path up to the configured maximum length.
// Emission is only collected when the previous bounce was specular (or
// the path just left the camera); diffuse vertices get their direct
// light from explicit light sampling instead, which avoids counting the
// same contribution twice.
func (p *PathTracer) trace(ray core.Ray) core.Vec3 {
	var color core.Vec3
	throughput := core.NewVec3(1, 1, 1)
	cameFromSpecular := true

	for length := 1; length <= p.maxPathLength; length++ {
		hit, ok := p.scene.Intersect(ray, 1e-3, math.Inf(1))
		if !ok {
			if cameFromSpecular {
				color = color.Add(throughput.MultiplyVec(p.scene.BackgroundRadiance(ray)))
			}
			break
		}

		if hit.Light != nil && cameFromSpecular {
			color = color.Add(throughput.MultiplyVec(hit.Light.Radiance))
		}

		if hit.Material.HasDiffuse() {
			color = color.Add(throughput.MultiplyVec(p.directLight(hit)))
		}

		sample, ok := hit.Material.Sample(hit.Normal, ray.Direction.Negate(), p.sampler)
		if !ok {
			break
		}

		cameFromSpecular = sample.Specular
		throughput = throughput.MultiplyVec(sample.Weight)
		ray = core.NewRay(hit.Point.Add(hit.Normal.Multiply(1e-4)), sample.Direction)
	}

	return color
}

// directLight estimates direct illumination at a diffuse vertex by
// sampling one light uniformly
func (p *PathTracer) directLight(hit *scene.Hit) core.Vec3 {
	lights := p.scene.Lights
	if len(lights) == 0 {
		return core.Vec3{}
	}

	pick := int(p.sampler.Get1D() * float64(len(lights)))
	if pick == len(lights) {
		pick--
	}

	sample, ok := lights[pick].Illuminate(hit.Point, p.sampler.Get2D())
	if !ok {
		return core.Vec3{}
	}

	cosine := sample.Direction.Dot(hit.Normal)
	if cosine <= 0 {
		return core.Vec3{}
	}

	origin := hit.Point.Add(hit.Normal.Multiply(1e-4))
	if p.scene.Occluded(origin, sample.Direction, sample.Distance) {
		return core.Vec3{}
	}

	brdf := hit.Material.EvalDiffuse()
	return brdf.MultiplyVec(sample.Radiance).Multiply(cosine * float64(len(lights)))
}
