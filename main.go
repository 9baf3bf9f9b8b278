package main

import (
	"context"
	"flag"
	"fmt"
	"mandelbrot/coordinator"
	"mandelbrot/misc"
	"os"
	"os/signal"
	"syscall"

	"github.com/BrugadaSyndrome/bslogger"
)

var (
	settingsFile string
	workerCount  int
	strategy     string
)

func parseArguments() {
	flag.StringVar(&settingsFile, "settings", "", "Settings file (json, yaml or toml) for the run")
	flag.IntVar(&workerCount, "workers", 0, "Number of workers, overrides the settings file")
	flag.StringVar(&strategy, "strategy", "", "Worker strategy (Sequential, Threads, Futures, MapReduce), overrides the settings file")
	flag.Parse()
}

func main() {
	parseArguments()
	logger := bslogger.NewLogger("Main", bslogger.Normal, nil)

	settings, err := coordinator.NewSettings(settingsFile)
	misc.CheckError(err, logger, misc.Fatal)
	if workerCount > 0 {
		settings.MandelbrotSettings.Workers = workerCount
	}
	if strategy != "" {
		settings.MandelbrotSettings.Strategy = strategy
		misc.CheckError(settings.Verify(), logger, misc.Fatal)
	}

	c, err := coordinator.NewCoordinator(settings)
	misc.CheckError(err, logger, misc.Fatal)
	defer c.Close()

	// Stop rendering at the next scanline on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path, err := c.Run(ctx)
	if err != nil {
		logger.Error(err.Error())
		c.Close()
		os.Exit(1)
	}
	logger.Info(fmt.Sprintf("Done. Image written to %s", path))
}
