package core

import (
	"math"
	"testing"
)

func TestVec3Operations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	if got := a.Add(b); got != NewVec3(5, 7, 9) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Subtract(b); got != NewVec3(-3, -3, -3) {
		t.Errorf("Subtract: got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot: got %f", got)
	}
	if got := a.Cross(b); got != NewVec3(-3, 6, -3) {
		t.Errorf("Cross: got %v", got)
	}
	if got := a.MultiplyVec(b); got != NewVec3(4, 10, 18) {
		t.Errorf("MultiplyVec: got %v", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4)
	n := v.Normalize()

	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("normalized length should be 1, got %f", n.Length())
	}

	if got := (Vec3{}).Normalize(); !got.IsZero() {
		t.Errorf("normalizing the zero vector should stay zero, got %v", got)
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(NewVec3(1, 0, 0), NewVec3(0, 2, 0))
	if got := r.At(2); got != NewVec3(1, 4, 0) {
		t.Errorf("At: got %v", got)
	}
}

func TestSamplerDeterminism(t *testing.T) {
	a := NewRandomSampler(42)
	b := NewRandomSampler(42)
	c := NewRandomSampler(43)

	if a.Get1D() != b.Get1D() {
		t.Error("same seed must produce the same stream")
	}
	if a.Get1D() == c.Get1D() {
		t.Error("different seeds should diverge")
	}
}

func TestSampleCosineHemisphere(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	sampler := NewRandomSampler(7)

	for i := 0; i < 100; i++ {
		dir := SampleCosineHemisphere(normal, sampler.Get2D())
		if dir.Dot(normal) < 0 {
			t.Fatalf("sampled direction %v leaves the hemisphere", dir)
		}
		if math.Abs(dir.Length()-1) > 1e-9 {
			t.Fatalf("sampled direction %v is not unit length", dir)
		}
	}
}

func TestPowerHeuristic(t *testing.T) {
	if got := PowerHeuristic(1, 1, 1, 1); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("symmetric pdfs should weight 0.5, got %f", got)
	}
	if got := PowerHeuristic(1, 0, 1, 0); got != 0 {
		t.Errorf("degenerate pdfs should weight 0, got %f", got)
	}
	if got := PowerHeuristic(1, 10, 1, 0.1); got < 0.99 {
		t.Errorf("dominant pdf should take almost all weight, got %f", got)
	}
}
