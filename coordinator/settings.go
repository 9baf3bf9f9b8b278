package coordinator

import (
	"fmt"
	"mandelbrot/mandelbrot"
	"os"
	"strings"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/zeromicro/go-zero/core/conf"
)

// Profile modes a run can be recorded with.
const (
	ProfileNone  = ""
	ProfileCPU   = "cpu"
	ProfileMem   = "mem"
	ProfileTrace = "trace"
)

type Settings struct {
	// DiagnosticsAddress starts a gops agent on this address when set.
	DiagnosticsAddress string              `json:"DiagnosticsAddress,optional"`
	MandelbrotSettings mandelbrot.Settings `json:"Mandelbrot,optional"`
	Profile            string              `json:"Profile,optional"`
	RunName            string              `json:"RunName,optional"`
	SavePath           string              `json:"SavePath,optional"`
}

// NewSettings loads settingsFile (json, yaml or toml, chosen by extension) and
// verifies it. An empty settingsFile gives the verified defaults.
func NewSettings(settingsFile string) (Settings, error) {
	var s Settings
	if settingsFile != "" {
		if err := conf.Load(settingsFile, &s); err != nil {
			return s, fmt.Errorf("unable to load settings %s - %w", settingsFile, err)
		}
	}
	if err := s.Verify(); err != nil {
		return s, err
	}
	return s, nil
}

func (s *Settings) String() string {
	output := "\nCoordinator settings\n"
	output += fmt.Sprintf("Diagnostics Address: %s\n", s.DiagnosticsAddress)
	output += fmt.Sprintf("Profile: %s\n", s.Profile)
	output += fmt.Sprintf("Run Name: %s\n", s.RunName)
	output += fmt.Sprintf("Save Path: %s", s.SavePath)
	output += s.MandelbrotSettings.String()
	return output
}

func (s *Settings) Verify() error {
	logger := bslogger.NewLogger("CoordinatorSettings", bslogger.Normal, nil)

	if err := s.MandelbrotSettings.Verify(); err != nil {
		return err
	}
	switch strings.ToLower(s.Profile) {
	case ProfileNone, ProfileCPU, ProfileMem, ProfileTrace:
		s.Profile = strings.ToLower(s.Profile)
	default:
		logger.Warning(fmt.Sprintf("Unknown profile %q. Disabling profiling.", s.Profile))
		s.Profile = ProfileNone
	}
	if s.RunName == "" {
		s.RunName = "run_" + time.Now().Format("2006_01_02-03_04_05")
	}
	if s.SavePath == "" {
		s.SavePath, _ = os.Getwd()
	}

	logger.Debug(s.String())
	return nil
}
