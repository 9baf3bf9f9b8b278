package coordinator

import (
	"context"
	"fmt"
	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"os"
	"path/filepath"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/bytedance/sonic"
	"github.com/google/gops/agent"
	"github.com/pkg/profile"
)

const settingsBackupName = "settings.json"

// Coordinator drives one render: it prepares the run directory, renders the
// image and saves it there.
type Coordinator struct {
	heartBeat time.Duration
	logFile   *os.File
	logger    bslogger.Logger
	renderer  *mandelbrot.Renderer
	runPath   string
	settings  Settings
}

func NewCoordinator(settings Settings) (*Coordinator, error) {
	c := &Coordinator{
		heartBeat: 30 * time.Second,
		logger:    bslogger.NewLogger("Coordinator", bslogger.Normal, nil),
		runPath:   filepath.Join(settings.SavePath, settings.RunName),
		settings:  settings,
	}

	// Create directory to store files for this run
	if err := misc.MakeDir(c.runPath); err != nil {
		return nil, err
	}

	// Copy the settings to the directory so the run can be duplicated in the future
	bytes, err := sonic.ConfigStd.MarshalIndent(settings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("unable to encode settings - %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.runPath, settingsBackupName), bytes, 0o644); err != nil {
		return nil, fmt.Errorf("%w: unable to make a backup copy of the settings - %s", misc.ErrIO, err)
	}

	// Create a log file to record the run
	logFile, err := os.Create(filepath.Join(c.runPath, "coordinator.log"))
	misc.CheckError(err, c.logger, misc.Warning)
	if err == nil {
		c.logFile = logFile
		c.logger = bslogger.NewLogger("Coordinator", bslogger.Normal, logFile)
	}

	ms := settings.MandelbrotSettings
	c.renderer, err = mandelbrot.NewRenderer(ms.Bounds, ms.Width, ms.Height,
		mandelbrot.WithStrategy(ms.ParsedStrategy()),
		mandelbrot.WithLogger(c.logger),
	)
	if err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// ImagePath is where Run saves the bitmap.
func (c *Coordinator) ImagePath() string {
	return filepath.Join(c.runPath, c.settings.RunName+".bmp")
}

func (c *Coordinator) Renderer() *mandelbrot.Renderer {
	return c.renderer
}

// Run renders the image and saves it, returning the path of the bitmap.
func (c *Coordinator) Run(ctx context.Context) (string, error) {
	if c.settings.DiagnosticsAddress != "" {
		if err := agent.Listen(agent.Options{Addr: c.settings.DiagnosticsAddress}); err != nil {
			c.logger.Warning(fmt.Sprintf("Unable to start diagnostics agent at %s - %s", c.settings.DiagnosticsAddress, err))
		} else {
			c.logger.Info(fmt.Sprintf("Diagnostics agent listening at %s", c.settings.DiagnosticsAddress))
			defer agent.Close()
		}
	}
	if mode := c.profileMode(); mode != nil {
		defer profile.Start(mode, profile.ProfilePath(c.runPath), profile.Quiet, profile.NoShutdownHook).Stop()
	}

	done := make(chan struct{})
	go c.tickers(done)
	err := c.renderer.Render(ctx, c.settings.MandelbrotSettings.Workers)
	close(done)
	if err != nil {
		return "", err
	}

	path := c.ImagePath()
	if err := c.renderer.Save(path); err != nil {
		return "", err
	}
	return path, nil
}

// Close releases the run's log file.
func (c *Coordinator) Close() error {
	if c.logFile == nil {
		return nil
	}
	err := c.logFile.Close()
	c.logFile = nil
	return err
}

func (c *Coordinator) tickers(done <-chan struct{}) {
	heartBeat := time.NewTicker(c.heartBeat)
	defer heartBeat.Stop()
	startTime := time.Now()

	for {
		select {
		case <-done:
			return
		case <-heartBeat.C:
			c.logger.Info(fmt.Sprintf("Still rendering [Elapsed: %s]", time.Since(startTime).Round(time.Second)))
		}
	}
}

func (c *Coordinator) profileMode() func(*profile.Profile) {
	switch c.settings.Profile {
	case ProfileCPU:
		return profile.CPUProfile
	case ProfileMem:
		return profile.MemProfile
	case ProfileTrace:
		return profile.TraceProfile
	default:
		return nil
	}
}
