// Package render contains the concurrency core of the benchmark: it
// distributes iteration indices across a fixed pool of goroutines, each
// exclusively owning one deterministically seeded renderer instance, and
// merges the contributing accumulators into a single normalized image.
package render

import (
	"sync"
	"time"

	"github.com/jkulda/go-render-bench/pkg/algorithm"
	"github.com/jkulda/go-render-bench/pkg/framebuffer"
)

// Renderer is the capability interface every light transport strategy
// satisfies. An instance is owned by exactly one goroutine during the
// parallel region and is only read after the barrier.
type Renderer interface {
	// RunIteration adds one unbiased stochastic contribution to the
	// instance's private accumulator and marks the instance used. Never
	// called concurrently on the same instance.
	RunIteration(iteration int)

	// WasUsed reports whether at least one iteration ran on this instance
	WasUsed() bool

	// GetFramebuffer copies the instance's self-normalized estimate into
	// fb without resetting internal state
	GetFramebuffer(fb *framebuffer.Framebuffer)
}

// Run executes one full render: instance construction, the parallel
// iteration loop, and the merge. It returns the wall-clock time spent in
// the loop and merge. The normalized result lands in cfg.Framebuffer.
func Run(cfg *Config) (time.Duration, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	renderers, iterations, err := newRenderers(cfg)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	RunIterations(renderers, iterations)
	err = Merge(renderers, cfg.Framebuffer)
	elapsed := time.Since(start)

	if err != nil {
		if degenerate, ok := err.(*DegenerateRunError); ok {
			degenerate.Iterations = iterations
			degenerate.NumThreads = cfg.NumThreads
		}
		return elapsed, err
	}
	return elapsed, nil
}

// newRenderers builds one renderer instance per thread, seeded with
// base seed + thread index. It also resolves the effective iteration
// count: the eye-light strategy is one-shot, so a single iteration is
// forced regardless of the requested count.
func newRenderers(cfg *Config) ([]Renderer, int, error) {
	renderers := make([]Renderer, cfg.NumThreads)
	iterations := cfg.Iterations

	for i := range renderers {
		seed := int64(cfg.BaseSeed + i)

		switch cfg.Algorithm {
		case EyeLight:
			renderers[i] = algorithm.NewEyeLight(cfg.Scene)
		case PathTracing:
			renderers[i] = algorithm.NewPathTracer(cfg.Scene, seed, cfg.MaxPathLength)
		case LightTracing:
			renderers[i] = algorithm.NewVertexCM(cfg.Scene, algorithm.LightTrace, seed, cfg.MaxPathLength)
		case ProgressivePhotonMapping:
			renderers[i] = algorithm.NewVertexCM(cfg.Scene, algorithm.Ppm, seed, cfg.MaxPathLength)
		case BidirectionalPhotonMapping:
			renderers[i] = algorithm.NewVertexCM(cfg.Scene, algorithm.Bpm, seed, cfg.MaxPathLength)
		case BidirectionalPathTracing:
			renderers[i] = algorithm.NewVertexCM(cfg.Scene, algorithm.Bpt, seed, cfg.MaxPathLength)
		case VertexConnectionMerging:
			renderers[i] = algorithm.NewVertexCM(cfg.Scene, algorithm.Vcm, seed, cfg.MaxPathLength)
		default:
			return nil, 0, &ConfigurationError{Reason: "unknown algorithm selector"}
		}
	}

	if cfg.Algorithm == EyeLight {
		iterations = 1
	}

	return renderers, iterations, nil
}

// RunIterations distributes iteration indices 0..iterations-1 across the
// given renderer instances, one goroutine per instance. Every index is
// consumed exactly once; assignment order across instances is whatever
// the scheduler produces. Returns only after every worker has finished.
func RunIterations(renderers []Renderer, iterations int) {
	indices := make(chan int, iterations)
	for i := 0; i < iterations; i++ {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	for _, r := range renderers {
		wg.Add(1)
		go func(r Renderer) {
			defer wg.Done()
			for iteration := range indices {
				r.RunIteration(iteration)
			}
		}(r)
	}
	wg.Wait()
}

// Merge reduces the contributing instances into out: the first
// contributor initializes the buffer, the rest are added element-wise,
// and the sum is scaled by 1/contributors. Instances are scanned in
// slice order so the floating-point reduction is reproducible. Must only
// be called after RunIterations has returned.
func Merge(renderers []Renderer, out *framebuffer.Framebuffer) error {
	contributors := make([]Renderer, 0, len(renderers))
	for _, r := range renderers {
		if r.WasUsed() {
			contributors = append(contributors, r)
		}
	}

	if len(contributors) == 0 {
		return &DegenerateRunError{NumThreads: len(renderers)}
	}

	contributors[0].GetFramebuffer(out)
	if len(contributors) > 1 {
		tmp := framebuffer.New(out.Width(), out.Height())
		for _, r := range contributors[1:] {
			r.GetFramebuffer(tmp)
			if err := out.Add(tmp); err != nil {
				return err
			}
		}
	}

	out.Scale(1.0 / float64(len(contributors)))
	return nil
}
