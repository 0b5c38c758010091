package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a deterministic sampler from a seed
func NewRandomSampler(seed int64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewSource(seed))}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SampleCosineHemisphere generates a cosine-weighted direction in the
// hemisphere around normal. The resulting pdf is cos(theta)/pi.
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	a := 2.0 * math.Pi * sample.X
	z := sample.Y
	r := math.Sqrt(z)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	zCoord := math.Sqrt(1.0 - z)

	tangent, bitangent := OrthonormalBasis(normal)
	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(zCoord))
}

// SampleUniformSphere generates a uniform direction on the unit sphere
func SampleUniformSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// OrthonormalBasis builds two unit vectors perpendicular to normal and
// to each other
func OrthonormalBasis(normal Vec3) (tangent, bitangent Vec3) {
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}

	tangent = nt.Cross(normal).Normalize()
	bitangent = normal.Cross(tangent)
	return tangent, bitangent
}

// PowerHeuristic computes the power heuristic weight for multiple
// importance sampling with exponent 2
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	if f == 0 && g == 0 {
		return 0
	}
	return (f * f) / (f*f + g*g)
}
