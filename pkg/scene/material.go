package scene

import (
	"math"

	"github.com/jkulda/go-render-bench/pkg/core"
)

// Material combines a lambertian diffuse term with an optional perfect
// mirror term. The glossy floor and the reflective balls reuse the mirror
// term with different tints, which keeps every light transport strategy
// working against one BSDF model.
type Material struct {
	Diffuse core.Vec3 // lambertian albedo
	Mirror  core.Vec3 // specular reflectance, zero for matte surfaces
}

// NewLambertian creates a purely diffuse material
func NewLambertian(albedo core.Vec3) *Material {
	return &Material{Diffuse: albedo}
}

// NewMirror creates a purely specular material
func NewMirror(reflectance core.Vec3) *Material {
	return &Material{Mirror: reflectance}
}

// NewGlossy creates a diffuse material with a specular coat
func NewGlossy(albedo, reflectance core.Vec3) *Material {
	return &Material{Diffuse: albedo, Mirror: reflectance}
}

// ScatterSample is the result of sampling the material's BSDF
type ScatterSample struct {
	Direction core.Vec3
	Weight    core.Vec3 // throughput multiplier, pdf already applied
	Specular  bool      // true for the mirror component
}

// mirrorProbability returns the chance of picking the specular component
// when sampling. Pure mirrors always reflect, matte surfaces never do.
func (m *Material) mirrorProbability() float64 {
	d := m.Diffuse.Luminance()
	s := m.Mirror.Luminance()
	if d+s == 0 {
		return 0
	}
	return s / (d + s)
}

// Sample picks an outgoing direction for light arriving from -wo at a
// surface with the given normal. Returns false when the material absorbs
// the path.
func (m *Material) Sample(normal, wo core.Vec3, sampler core.Sampler) (ScatterSample, bool) {
	pMirror := m.mirrorProbability()

	if pMirror > 0 && sampler.Get1D() < pMirror {
		reflected := reflect(wo.Negate(), normal)
		return ScatterSample{
			Direction: reflected,
			Weight:    m.Mirror.Multiply(1.0 / pMirror),
			Specular:  true,
		}, true
	}

	if m.Diffuse.IsZero() {
		return ScatterSample{}, false
	}

	// Cosine-weighted diffuse bounce: the cos/pi pdf cancels against the
	// lambertian brdf and cosine term, leaving albedo as the weight.
	direction := core.SampleCosineHemisphere(normal, sampler.Get2D())
	weight := m.Diffuse.Multiply(1.0 / (1.0 - pMirror))
	return ScatterSample{Direction: direction, Weight: weight}, true
}

// EvalDiffuse returns the diffuse brdf value of the material. The mirror
// component is a delta distribution and never evaluates.
func (m *Material) EvalDiffuse() core.Vec3 {
	return m.Diffuse.Multiply(invPi)
}

// HasDiffuse reports whether the material has a non-zero diffuse term
func (m *Material) HasDiffuse() bool {
	return !m.Diffuse.IsZero()
}

func reflect(v, normal core.Vec3) core.Vec3 {
	return v.Subtract(normal.Multiply(2 * v.Dot(normal))).Normalize()
}

var invPi = 1.0 / math.Pi
