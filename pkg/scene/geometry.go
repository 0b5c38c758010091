package scene

import (
	"math"

	"github.com/jkulda/go-render-bench/pkg/core"
)

// Hit records an intersection between a ray and a shape
type Hit struct {
	T        float64
	Point    core.Vec3
	Normal   core.Vec3
	Material *Material
	Light    *AreaLight // non-nil when the surface is emissive
}

// Shape is anything a ray can intersect
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*Hit, bool)
}

// Sphere is a simple analytic sphere
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *Material
}

// NewSphere creates a sphere with the given material
func NewSphere(center core.Vec3, radius float64, material *Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: material}
}

// Hit tests the ray against the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*Hit, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Find the nearest root within [tMin, tMax]
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	normal := point.Subtract(s.Center).Normalize()
	if ray.Direction.Dot(normal) > 0 {
		normal = normal.Negate()
	}

	return &Hit{T: root, Point: point, Normal: normal, Material: s.Material}, true
}

// Quad is a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3
	U, V     core.Vec3
	Normal   core.Vec3
	Material *Material
	Light    *AreaLight // set for the ceiling light panel
}

// NewQuad creates a quad with the given material
func NewQuad(corner, u, v core.Vec3, material *Material) *Quad {
	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   u.Cross(v).Normalize(),
		Material: material,
	}
}

// Hit tests the ray against the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*Hit, bool) {
	denom := q.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-9 {
		return nil, false
	}

	t := q.Normal.Dot(q.Corner.Subtract(ray.Origin)) / denom
	if t < tMin || t > tMax {
		return nil, false
	}

	// Express the hit point in the quad's edge basis
	point := ray.At(t)
	rel := point.Subtract(q.Corner)
	uu := q.U.Dot(q.U)
	vv := q.V.Dot(q.V)
	uv := q.U.Dot(q.V)
	ru := rel.Dot(q.U)
	rv := rel.Dot(q.V)

	det := uu*vv - uv*uv
	if det == 0 {
		return nil, false
	}
	alpha := (ru*vv - rv*uv) / det
	beta := (rv*uu - ru*uv) / det
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	normal := q.Normal
	if ray.Direction.Dot(normal) > 0 {
		normal = normal.Negate()
	}

	return &Hit{T: t, Point: point, Normal: normal, Material: q.Material, Light: q.Light}, true
}

// Area returns the surface area of the quad
func (q *Quad) Area() float64 {
	return q.U.Cross(q.V).Length()
}
