package render

import "fmt"

// ConfigurationError reports an invalid run configuration. It is raised
// before any worker is spawned and aborts the whole run.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("render: invalid configuration: %s", e.Reason)
}

// DegenerateRunError reports a run where no renderer instance performed
// any iteration, so there is nothing to normalize. Callers should skip
// the result rather than treat it as an image.
type DegenerateRunError struct {
	Iterations int
	NumThreads int
}

func (e *DegenerateRunError) Error() string {
	return fmt.Sprintf("render: no renderer contributed (%d iterations across %d threads)",
		e.Iterations, e.NumThreads)
}
