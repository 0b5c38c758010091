package algorithm

import (
	"math"

	"github.com/jkulda/go-render-bench/pkg/core"
	"github.com/jkulda/go-render-bench/pkg/scene"
)

// VcmMode selects which transport paths the VertexCM strategy uses.
// Light tracing, both photon mapping flavors, bidirectional path tracing
// and full vertex connection and merging are all the same machinery with
// different stages enabled, so they share one implementation.
type VcmMode int

const (
	// LightTrace only traces light paths and splats them onto the camera
	LightTrace VcmMode = iota
	// Ppm gathers photons at the first diffuse camera vertex
	Ppm
	// Bpm gathers photons at every diffuse camera vertex
	Bpm
	// Bpt connects camera vertices to light vertices
	Bpt
	// Vcm combines vertex connection with photon merging
	Vcm
)

// lightVertex is a stored point on a light subpath
type lightVertex struct {
	point      core.Vec3
	normal     core.Vec3
	throughput core.Vec3
	material   *scene.Material
	pathLength int
}

// VertexCM implements the light tracing / photon mapping / bidirectional
// family. One iteration traces one light subpath per pixel, then (except
// in pure light tracing) one camera path per pixel that connects to or
// merges with the stored light vertices.
//
// The contribution weighting is intentionally simpler than full VCM
// multiple importance sampling; the harness contract does not depend on
// the estimator's variance, only on it being an unbiased-per-iteration
// accumulator.
type VertexCM struct {
	rendererBase
	mode       VcmMode
	baseRadius float64

	// Per-iteration scratch state, rebuilt by every RunIteration
	vertices   []lightVertex
	pathStarts []int // vertices index where each light subpath begins
	grid       *hashGrid
}

// NewVertexCM creates a renderer of the given mode with its own random
// stream
func NewVertexCM(s *scene.Scene, mode VcmMode, seed int64, maxPathLength int) *VertexCM {
	return &VertexCM{
		rendererBase: newRendererBase(s, seed, maxPathLength),
		mode:         mode,
		baseRadius:   0.005 * s.Radius,
	}
}

func (v *VertexCM) usesMerging() bool {
	return v.mode == Ppm || v.mode == Bpm || v.mode == Vcm
}

func (v *VertexCM) usesConnection() bool {
	return v.mode == Bpt || v.mode == Vcm
}

func (v *VertexCM) connectsToCamera() bool {
	return v.mode == LightTrace || v.mode == Bpt || v.mode == Vcm
}

// RunIteration runs both stages of one sampling pass
func (v *VertexCM) RunIteration(iteration int) {
	v.markIteration()

	// Merging radius shrinks slowly across iterations so repeated
	// passes tighten the density estimate.
	radius := v.baseRadius / math.Pow(float64(iteration+1), 0.25)
	pathCount := v.scene.Width * v.scene.Height

	v.traceLightPaths(pathCount, radius)

	if v.mode == LightTrace {
		return
	}

	camera := v.scene.Camera
	for y := 0; y < v.scene.Height; y++ {
		for x := 0; x < v.scene.Width; x++ {
			jitter := v.sampler.Get2D()
			ray := camera.GenerateRay(float64(x)+jitter.X, float64(y)+jitter.Y)
			pathIndex := y*v.scene.Width + x
			v.frame.AddColor(x, y, v.traceCameraPath(ray, pathIndex, pathCount, radius))
		}
	}
}

// traceLightPaths traces pathCount light subpaths, splatting camera
// connections and (for the merging modes) indexing the vertices in a
// hash grid
func (v *VertexCM) traceLightPaths(pathCount int, radius float64) {
	v.vertices = v.vertices[:0]
	v.pathStarts = v.pathStarts[:0]
	if v.usesMerging() {
		v.grid = newHashGrid(radius, pathCount)
	}

	lights := v.scene.Lights
	if len(lights) == 0 {
		for i := 0; i < pathCount; i++ {
			v.pathStarts = append(v.pathStarts, 0)
		}
		return
	}

	for i := 0; i < pathCount; i++ {
		v.pathStarts = append(v.pathStarts, len(v.vertices))

		pick := int(v.sampler.Get1D() * float64(len(lights)))
		if pick == len(lights) {
			pick--
		}
		emission := lights[pick].Emit(v.sampler.Get2D(), v.sampler.Get2D())

		ray := emission.Ray
		throughput := emission.Radiance.Multiply(float64(len(lights)))

		for length := 1; length <= v.maxPathLength; length++ {
			hit, ok := v.scene.Intersect(ray, 1e-3, math.Inf(1))
			if !ok {
				break
			}

			if hit.Material.HasDiffuse() {
				vertex := lightVertex{
					point:      hit.Point,
					normal:     hit.Normal,
					throughput: throughput,
					material:   hit.Material,
					pathLength: length,
				}
				if v.usesMerging() {
					v.grid.insert(len(v.vertices), vertex.point)
				}
				v.vertices = append(v.vertices, vertex)

				if v.connectsToCamera() && length+1 <= v.maxPathLength {
					v.connectToCamera(&vertex, pathCount)
				}
			}

			sample, ok := hit.Material.Sample(hit.Normal, ray.Direction.Negate(), v.sampler)
			if !ok {
				break
			}
			throughput = throughput.MultiplyVec(sample.Weight)
			ray = core.NewRay(hit.Point.Add(hit.Normal.Multiply(1e-4)), sample.Direction)
		}
	}
}

// connectToCamera splats a light vertex onto the image through the
// camera. The contribution carries 1/pathCount because every light
// subpath splats into the shared image.
func (v *VertexCM) connectToCamera(vertex *lightVertex, pathCount int) {
	camera := v.scene.Camera

	raster, visible := camera.WorldToRaster(vertex.point)
	if !visible {
		return
	}

	toCamera := camera.Center.Subtract(vertex.point)
	dist := toCamera.Length()
	direction := toCamera.Multiply(1.0 / dist)

	cosAtSurface := vertex.normal.Dot(direction)
	if cosAtSurface <= 0 {
		return
	}

	origin := vertex.point.Add(vertex.normal.Multiply(1e-4))
	if v.scene.Occluded(origin, direction, dist) {
		return
	}

	importance := camera.ImportanceWeight(direction.Negate())
	brdf := vertex.material.EvalDiffuse()
	contribution := vertex.throughput.MultiplyVec(brdf).
		Multiply(cosAtSurface * importance / (dist * dist * float64(pathCount)))

	v.frame.AddColor(int(raster.X), int(raster.Y), contribution)
}

// traceCameraPath walks one camera path, collecting emission, direct
// light, vertex connections and photon merges as the mode dictates
func (v *VertexCM) traceCameraPath(ray core.Ray, pathIndex, pathCount int, radius float64) core.Vec3 {
	var color core.Vec3
	throughput := core.NewVec3(1, 1, 1)
	cameFromSpecular := true

	for length := 1; length <= v.maxPathLength; length++ {
		hit, ok := v.scene.Intersect(ray, 1e-3, math.Inf(1))
		if !ok {
			if cameFromSpecular {
				color = color.Add(throughput.MultiplyVec(v.scene.BackgroundRadiance(ray)))
			}
			break
		}

		if hit.Light != nil && cameFromSpecular {
			color = color.Add(throughput.MultiplyVec(hit.Light.Radiance))
		}

		if hit.Material.HasDiffuse() {
			color = color.Add(throughput.MultiplyVec(v.directLight(hit)))

			if v.usesConnection() {
				connected := v.connectToLightPath(hit, pathIndex, length)
				color = color.Add(throughput.MultiplyVec(connected).Multiply(v.strategyWeight()))
			}

			if v.usesMerging() {
				merged := v.mergePhotons(hit, length, pathCount, radius)
				color = color.Add(throughput.MultiplyVec(merged).Multiply(v.strategyWeight()))

				// Progressive photon mapping gathers only at the first
				// diffuse vertex
				if v.mode == Ppm {
					break
				}
			}
		}

		sample, ok := hit.Material.Sample(hit.Normal, ray.Direction.Negate(), v.sampler)
		if !ok {
			break
		}

		cameFromSpecular = sample.Specular
		throughput = throughput.MultiplyVec(sample.Weight)
		ray = core.NewRay(hit.Point.Add(hit.Normal.Multiply(1e-4)), sample.Direction)
	}

	return color
}

// strategyWeight splits the indirect estimate between connection and
// merging when both run, so VCM does not count transport twice
func (v *VertexCM) strategyWeight() float64 {
	if v.mode == Vcm {
		return 0.5
	}
	return 1.0
}

// directLight is the same one-light next-event estimate the path tracer
// uses
func (v *VertexCM) directLight(hit *scene.Hit) core.Vec3 {
	lights := v.scene.Lights
	if len(lights) == 0 {
		return core.Vec3{}
	}

	pick := int(v.sampler.Get1D() * float64(len(lights)))
	if pick == len(lights) {
		pick--
	}

	sample, ok := lights[pick].Illuminate(hit.Point, v.sampler.Get2D())
	if !ok {
		return core.Vec3{}
	}

	cosine := sample.Direction.Dot(hit.Normal)
	if cosine <= 0 {
		return core.Vec3{}
	}

	origin := hit.Point.Add(hit.Normal.Multiply(1e-4))
	if v.scene.Occluded(origin, sample.Direction, sample.Distance) {
		return core.Vec3{}
	}

	brdf := hit.Material.EvalDiffuse()
	return brdf.MultiplyVec(sample.Radiance).Multiply(cosine * float64(len(lights)))
}

// connectToLightPath connects a diffuse camera vertex to every vertex of
// the light subpath traced for the same pixel
func (v *VertexCM) connectToLightPath(hit *scene.Hit, pathIndex, cameraLength int) core.Vec3 {
	start := v.pathStarts[pathIndex]
	end := len(v.vertices)
	if pathIndex+1 < len(v.pathStarts) {
		end = v.pathStarts[pathIndex+1]
	}

	var total core.Vec3
	for i := start; i < end; i++ {
		vertex := &v.vertices[i]
		if cameraLength+vertex.pathLength+1 > v.maxPathLength {
			continue
		}

		toVertex := vertex.point.Subtract(hit.Point)
		distSq := toVertex.LengthSquared()
		if distSq == 0 {
			continue
		}
		dist := math.Sqrt(distSq)
		direction := toVertex.Multiply(1.0 / dist)

		cosCamera := hit.Normal.Dot(direction)
		cosLight := vertex.normal.Dot(direction.Negate())
		if cosCamera <= 0 || cosLight <= 0 {
			continue
		}

		origin := hit.Point.Add(hit.Normal.Multiply(1e-4))
		if v.scene.Occluded(origin, direction, dist) {
			continue
		}

		geometry := cosCamera * cosLight / distSq
		brdfCamera := hit.Material.EvalDiffuse()
		brdfLight := vertex.material.EvalDiffuse()

		contribution := brdfCamera.MultiplyVec(brdfLight).
			MultiplyVec(vertex.throughput).Multiply(geometry)
		total = total.Add(contribution)
	}

	return total
}

// mergePhotons estimates radiance at a diffuse camera vertex from the
// light vertices within the merging radius
func (v *VertexCM) mergePhotons(hit *scene.Hit, cameraLength, pathCount int, radius float64) core.Vec3 {
	radiusSq := radius * radius
	normalization := 1.0 / (math.Pi * radiusSq * float64(pathCount))
	brdf := hit.Material.EvalDiffuse()

	var total core.Vec3
	v.grid.forEachNear(hit.Point, radius, func(index int) {
		vertex := &v.vertices[index]
		if cameraLength+vertex.pathLength > v.maxPathLength {
			return
		}
		if vertex.point.Subtract(hit.Point).LengthSquared() > radiusSq {
			return
		}
		// Reject photons arriving from the far side of the surface
		if vertex.normal.Dot(hit.Normal) <= 0 {
			return
		}

		total = total.Add(vertex.throughput)
	})

	return brdf.MultiplyVec(total).Multiply(normalization)
}
