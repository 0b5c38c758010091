package framebuffer

import (
	"path/filepath"
	"testing"

	"github.com/jkulda/go-render-bench/pkg/core"
)

func TestAddColorAccumulates(t *testing.T) {
	fb := New(4, 4)

	fb.AddColor(1, 2, core.NewVec3(0.5, 0.25, 0.125))
	fb.AddColor(1, 2, core.NewVec3(0.5, 0.25, 0.125))

	got := fb.At(1, 2)
	want := core.NewVec3(1.0, 0.5, 0.25)
	if got != want {
		t.Errorf("expected accumulated %v, got %v", want, got)
	}

	// Out-of-bounds splats are dropped silently
	fb.AddColor(-1, 0, core.NewVec3(1, 1, 1))
	fb.AddColor(4, 4, core.NewVec3(1, 1, 1))
}

func TestAddAndScale(t *testing.T) {
	a := New(2, 2)
	b := New(2, 2)
	a.AddColor(0, 0, core.NewVec3(1, 2, 3))
	b.AddColor(0, 0, core.NewVec3(3, 2, 1))

	if err := a.Add(b); err != nil {
		t.Fatalf("unexpected add error: %v", err)
	}
	a.Scale(0.5)

	got := a.At(0, 0)
	want := core.NewVec3(2, 2, 2)
	if got != want {
		t.Errorf("expected %v after add+scale, got %v", want, got)
	}
}

func TestAddSizeMismatch(t *testing.T) {
	a := New(2, 2)
	b := New(3, 2)
	if err := a.Add(b); err == nil {
		t.Error("expected error adding buffers of different sizes")
	}
}

func TestCopyFromNormalizes(t *testing.T) {
	src := New(2, 2)
	src.AddColor(1, 1, core.NewVec3(8, 8, 8))

	dst := New(1, 1) // wrong size on purpose, CopyFrom must resize
	dst.CopyFrom(src, 0.25)

	if dst.Width() != 2 || dst.Height() != 2 {
		t.Fatalf("expected 2x2 after copy, got %dx%d", dst.Width(), dst.Height())
	}
	got := dst.At(1, 1)
	want := core.NewVec3(2, 2, 2)
	if got != want {
		t.Errorf("expected scaled copy %v, got %v", want, got)
	}

	// Source must be untouched
	if src.At(1, 1) != core.NewVec3(8, 8, 8) {
		t.Error("CopyFrom modified its source")
	}
}

func TestToImageToneMapping(t *testing.T) {
	fb := New(2, 1)
	fb.AddColor(0, 0, core.NewVec3(1, 1, 1))
	// Pixel (1,0) stays black

	img := fb.ToImage(2.2)

	white := img.RGBAAt(0, 0)
	if white.R != 255 || white.G != 255 || white.B != 255 {
		t.Errorf("expected full white for radiance 1.0, got %v", white)
	}

	black := img.RGBAAt(1, 0)
	if black.R != 0 || black.G != 0 || black.B != 0 {
		t.Errorf("expected black for zero radiance, got %v", black)
	}
}

func TestSaveChoosesEncoderByExtension(t *testing.T) {
	fb := New(4, 4)
	fb.AddColor(0, 0, core.NewVec3(0.5, 0.5, 0.5))

	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.bmp"} {
		path := filepath.Join(dir, name)
		if err := fb.Save(path, 2.2); err != nil {
			t.Errorf("saving %s: %v", name, err)
		}
	}
}
