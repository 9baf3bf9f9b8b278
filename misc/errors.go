package misc

import (
	"errors"

	"github.com/BrugadaSyndrome/bslogger"
)

// Error kinds surfaced to the caller of the failing operation. Wrap them with
// fmt.Errorf("...: %w", ...) and test with errors.Is.
var (
	ErrInvalidBounds     = errors.New("invalid plane bounds")
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	ErrInvalidWorkers    = errors.New("invalid worker count")
	ErrFormat            = errors.New("malformed bitmap")
	ErrIO                = errors.New("i/o failure")
	ErrWorkerFailure     = errors.New("worker failure")
)

const (
	Fatal Severity = iota
	Error
	Warning
	Info
	Debug
)

type Severity int

func (s Severity) String() string {
	return []string{
		"Fatal", "Error", "Warning", "Info", "Debug",
	}[s]
}

// CheckError logs err at the given severity. Fatal exits the process.
func CheckError(err error, logger bslogger.Logger, severity Severity) {
	if err != nil {
		switch severity {
		case Fatal:
			logger.Fatal(err.Error())
		case Error:
			logger.Error(err.Error())
		case Warning:
			logger.Warning(err.Error())
		case Info:
			logger.Info(err.Error())
		case Debug:
			logger.Debug(err.Error())
		default:
			logger.Fatal(err.Error())
		}
	}
}
