package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/urfave/cli"

	"github.com/jkulda/go-render-bench/log"
	"github.com/jkulda/go-render-bench/pkg/bench"
)

const baseIterations = 10

var logger = log.New("main")

func main() {
	app := cli.NewApp()
	app.Name = "render-bench"
	app.Usage = "benchmark light transport algorithms over a scene matrix"
	app.ArgsUsage = "[iteration multiplier]"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Action = runBenchmark

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func runBenchmark(ctx *cli.Context) error {
	switch {
	case ctx.Bool("vv"):
		log.SetLevel(log.Debug)
	case ctx.Bool("v"):
		log.SetLevel(log.Info)
	}

	multiplier := 1
	if ctx.NArg() > 0 {
		parsed, err := strconv.Atoi(ctx.Args().First())
		if err != nil || parsed < 1 {
			return fmt.Errorf("iteration multiplier must be a positive integer, got %q", ctx.Args().First())
		}
		multiplier = parsed
	}

	// One core stays reserved for the driving and reporting thread
	numThreads := max(1, runtime.NumCPU()-1)
	logger.Noticef("using %d threads", numThreads)

	driver := bench.NewDriver(baseIterations*multiplier, numThreads)
	report, err := driver.Run()
	if err != nil {
		return err
	}

	if err := report.WriteHTMLFile("report.html"); err != nil {
		return err
	}

	logger.Noticef("benchmark results\n%s", report.Summary())
	logger.Noticef("report written to report.html")
	return nil
}
