// Package bench drives the benchmark matrix: every scene configuration,
// with and without the glossy floor, crossed with every enabled
// algorithm. Each cell renders once, is timed, exported as an image and
// appended to the report; degenerate cells are skipped, not fatal.
package bench

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jkulda/go-render-bench/log"
	"github.com/jkulda/go-render-bench/pkg/framebuffer"
	"github.com/jkulda/go-render-bench/pkg/render"
	"github.com/jkulda/go-render-bench/pkg/scene"
)

var logger = log.New("bench")

// SceneConfig describes one benchmark scene: a feature mask, a display
// name and the acronym used for output file naming
type SceneConfig struct {
	Mask    uint
	Name    string
	Acronym string
}

// DefaultSceneConfigs returns the benchmark's scene matrix: three
// geometry sets crossed with four light setups
func DefaultSceneConfigs() []SceneConfig {
	return []SceneConfig{
		{scene.LightCeiling, "Empty + Ceiling", "ec"},
		{scene.LightSun, "Empty + Sun", "es"},
		{scene.LightPoint, "Empty + Point", "ep"},
		{scene.LightBackground, "Empty + Background", "eb"},

		{scene.BothSmallBalls | scene.LightCeiling, "Small balls + Ceiling", "sbc"},
		{scene.BothSmallBalls | scene.LightSun, "Small balls + Sun", "sbs"},
		{scene.BothSmallBalls | scene.LightPoint, "Small balls + Point", "sbp"},
		{scene.BothSmallBalls | scene.LightBackground, "Small balls + Background", "sbb"},

		{scene.LargeMirrorBall | scene.LightCeiling, "Large mirror ball + Ceiling", "lbc"},
		{scene.LargeMirrorBall | scene.LightSun, "Large mirror ball + Sun", "lbs"},
		{scene.LargeMirrorBall | scene.LightPoint, "Large mirror ball + Point", "lbp"},
		{scene.LargeMirrorBall | scene.LightBackground, "Large mirror ball + Background", "lbb"},
	}
}

// Driver runs the benchmark matrix
type Driver struct {
	Iterations    int
	NumThreads    int
	BaseSeed      int
	MaxPathLength int
	Resolution    int
	Gamma         float64
	OutputDir     string
	ImageExt      string // "png" or "bmp"

	Algorithms   []render.Algorithm
	SceneConfigs []SceneConfig

	// Indirections for the collaborators, swappable in tests
	runCell func(cfg *render.Config) (time.Duration, error)
	export  func(fb *framebuffer.Framebuffer, filename string, gamma float64) error
}

// NewDriver creates a driver with the original benchmark defaults
func NewDriver(iterations, numThreads int) *Driver {
	return &Driver{
		Iterations:    iterations,
		NumThreads:    numThreads,
		BaseSeed:      1234,
		MaxPathLength: 10,
		Resolution:    256,
		Gamma:         2.2,
		OutputDir:     ".",
		ImageExt:      "bmp",
		Algorithms:    render.Algorithms(),
		SceneConfigs:  DefaultSceneConfigs(),
		runCell:       render.Run,
		export: func(fb *framebuffer.Framebuffer, filename string, gamma float64) error {
			return fb.Save(filename, gamma)
		},
	}
}

// Run processes the full matrix and returns the collected report.
// Configuration errors abort the run; degenerate cells are logged and
// skipped.
func (d *Driver) Run() (*Report, error) {
	report := NewReport()
	output := framebuffer.New(d.Resolution, d.Resolution)

	// The matrix runs every scene twice, glossy floor first, matching
	// the original benchmark order.
	sceneCount := len(d.SceneConfigs)
	for sceneIndex := 0; sceneIndex < sceneCount*2; sceneIndex++ {
		sceneConfig := d.SceneConfigs[sceneIndex%sceneCount]

		mask := sceneConfig.Mask
		name := sceneConfig.Name
		acronym := sceneConfig.Acronym
		if sceneIndex < sceneCount {
			mask |= scene.GlossyFloor
			name = "Glossy " + name
			acronym = "g" + acronym
		}

		s := scene.New(d.Resolution, d.Resolution, mask)
		logger.Noticef("scene: %s", name)

		for _, alg := range d.Algorithms {
			record, err := d.runAlgorithm(s, alg, acronym, output)
			if err != nil {
				var degenerate *render.DegenerateRunError
				if errors.As(err, &degenerate) {
					logger.Warningf("skipping cell %s/%s: %v", acronym, record.Acronym, err)
					continue
				}
				return report, err
			}
			report.Add(name, record)
		}
	}

	return report, nil
}

// runAlgorithm renders one benchmark cell and exports its image
func (d *Driver) runAlgorithm(s *scene.Scene, alg render.Algorithm, sceneAcronym string, output *framebuffer.Framebuffer) (Record, error) {
	algName, err := alg.Name()
	if err != nil {
		return Record{}, err
	}
	algAcronym, err := alg.Acronym()
	if err != nil {
		return Record{}, err
	}
	record := Record{Algorithm: algName, Acronym: algAcronym}

	cfg := &render.Config{
		Scene:         s,
		Algorithm:     alg,
		Iterations:    d.Iterations,
		NumThreads:    d.NumThreads,
		BaseSeed:      d.BaseSeed,
		MaxPathLength: d.MaxPathLength,
		Framebuffer:   output,
	}

	logger.Noticef("running %s...", algName)
	elapsed, err := d.runCell(cfg)
	if err != nil {
		return record, err
	}
	logger.Noticef("done in %.3g s", elapsed.Seconds())

	filename := filepath.Join(d.OutputDir, fmt.Sprintf("%s_%s.%s", sceneAcronym, algAcronym, d.ImageExt))
	if err := d.export(output, filename, d.Gamma); err != nil {
		return record, err
	}

	record.Elapsed = elapsed
	record.File = filename
	return record, nil
}
