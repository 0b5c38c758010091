package render

import (
	"fmt"

	"github.com/jkulda/go-render-bench/pkg/framebuffer"
	"github.com/jkulda/go-render-bench/pkg/scene"
)

// Algorithm selects one of the light transport strategies
type Algorithm int

const (
	EyeLight Algorithm = iota
	PathTracing
	LightTracing
	ProgressivePhotonMapping
	BidirectionalPhotonMapping
	BidirectionalPathTracing
	VertexConnectionMerging

	algorithmCount
)

var algorithmNames = [algorithmCount]string{
	"Eye Light (L.N, DotLN)",
	"Path Tracing",
	"Light Tracing",
	"Progressive Photon Mapping",
	"Bidirectional Photon Mapping",
	"Bidirectional Path Tracing",
	"Vertex Connection Merging",
}

var algorithmAcronyms = [algorithmCount]string{
	"el", "pt", "lt", "ppm", "bpm", "bpt", "vcm",
}

// Valid reports whether the selector names a known algorithm
func (a Algorithm) Valid() bool {
	return a >= 0 && a < algorithmCount
}

// Name returns the human-readable algorithm name. An out-of-range
// selector is a ConfigurationError, never a fallback string.
func (a Algorithm) Name() (string, error) {
	if !a.Valid() {
		return "", &ConfigurationError{Reason: fmt.Sprintf("unknown algorithm selector %d", a)}
	}
	return algorithmNames[a], nil
}

// Acronym returns the short algorithm tag used in output file names
func (a Algorithm) Acronym() (string, error) {
	if !a.Valid() {
		return "", &ConfigurationError{Reason: fmt.Sprintf("unknown algorithm selector %d", a)}
	}
	return algorithmAcronyms[a], nil
}

// Algorithms returns every known algorithm in benchmark order
func Algorithms() []Algorithm {
	all := make([]Algorithm, algorithmCount)
	for i := range all {
		all[i] = Algorithm(i)
	}
	return all
}

// Config holds the parameters of a single render run
type Config struct {
	Scene         *scene.Scene
	Algorithm     Algorithm
	Iterations    int // requested iteration count, 0 is legal
	NumThreads    int
	BaseSeed      int
	MaxPathLength int

	// Framebuffer receives the merged, normalized result
	Framebuffer *framebuffer.Framebuffer
}

// Validate checks the configuration invariants before any worker spawns
func (c *Config) Validate() error {
	if c.Scene == nil {
		return &ConfigurationError{Reason: "no scene"}
	}
	if c.Framebuffer == nil {
		return &ConfigurationError{Reason: "no output framebuffer"}
	}
	if !c.Algorithm.Valid() {
		return &ConfigurationError{Reason: fmt.Sprintf("unknown algorithm selector %d", c.Algorithm)}
	}
	if c.NumThreads < 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("thread count %d < 1", c.NumThreads)}
	}
	if c.Iterations < 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("negative iteration count %d", c.Iterations)}
	}
	return nil
}
