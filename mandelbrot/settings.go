package mandelbrot

import (
	"fmt"
	"mandelbrot/misc"
	"mandelbrot/worker"
	"math"

	"github.com/BrugadaSyndrome/bslogger"
)

// Bounds is the rectangle of the complex plane that is rendered. The
// horizontal axis is the real part, the vertical axis the imaginary part.
type Bounds struct {
	HorLower float64 `json:"HorLower,default=-2"`
	HorUpper float64 `json:"HorUpper,default=0.5"`
	VerLower float64 `json:"VerLower,default=-1.2"`
	VerUpper float64 `json:"VerUpper,default=1.2"`
}

// DefaultBounds frames the whole set.
var DefaultBounds = Bounds{HorLower: -2, HorUpper: 0.5, VerLower: -1.2, VerUpper: 1.2}

func (b Bounds) String() string {
	return fmt.Sprintf("{Bounds Horizontal: [%g, %g) Vertical: [%g, %g)}", b.HorLower, b.HorUpper, b.VerLower, b.VerUpper)
}

// Verify fails with misc.ErrInvalidBounds unless every bound is finite and
// each lower bound is below its upper bound.
func (b Bounds) Verify() error {
	for _, v := range []float64{b.HorLower, b.HorUpper, b.VerLower, b.VerUpper} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", misc.ErrInvalidBounds, b)
		}
	}
	if b.HorLower >= b.HorUpper {
		return fmt.Errorf("%w: horizontal lower %g >= upper %g", misc.ErrInvalidBounds, b.HorLower, b.HorUpper)
	}
	if b.VerLower >= b.VerUpper {
		return fmt.Errorf("%w: vertical lower %g >= upper %g", misc.ErrInvalidBounds, b.VerLower, b.VerUpper)
	}
	return nil
}

// Point returns the complex number pixel (x, y) of a width x height image maps to.
func (b Bounds) Point(width int, height int, x int, y int) Complex {
	return Complex{
		Real:      Rescale(width, b.HorLower, b.HorUpper, x),
		Imaginary: Rescale(height, b.VerLower, b.VerUpper, y),
	}
}

type Settings struct {
	Bounds   Bounds `json:"Bounds,optional"`
	Height   int    `json:"Height,default=2160"`
	Strategy string `json:"Strategy,default=Futures"`
	Width    int    `json:"Width,default=3840"`
	Workers  int    `json:"Workers,default=8"`
}

func (s *Settings) String() string {
	output := "\nMandelbrot settings\n"
	output += fmt.Sprintf("Bounds: %s\n", s.Bounds)
	output += fmt.Sprintf("Height: %d\n", s.Height)
	output += fmt.Sprintf("Strategy: %s\n", s.Strategy)
	output += fmt.Sprintf("Width: %d\n", s.Width)
	output += fmt.Sprintf("Workers: %d\n", s.Workers)
	return output
}

// Verify fills in defaults for unset values. Bounds are never defaulted once
// any of them is set; invalid bounds are an error.
func (s *Settings) Verify() error {
	logger := bslogger.NewLogger("MandelbrotSettings", bslogger.Normal, nil)

	if s.Bounds == (Bounds{}) {
		s.Bounds = DefaultBounds
	}
	if err := s.Bounds.Verify(); err != nil {
		return err
	}
	if s.Height <= 0 {
		s.Height = ImageHeight
	}
	if s.Strategy == "" {
		s.Strategy = worker.Futures.String()
	}
	if _, err := worker.ParseStrategy(s.Strategy); err != nil {
		logger.Warning(fmt.Sprintf("%s, falling back to %s", err, worker.Futures))
		s.Strategy = worker.Futures.String()
	}
	if s.Width <= 0 {
		s.Width = ImageWidth
	}
	if s.Workers <= 0 {
		s.Workers = 8
	}
	if s.Workers > s.Height {
		logger.Info(fmt.Sprintf("%d workers for %d rows, some workers will have no rows", s.Workers, s.Height))
	}

	return nil
}

// ParsedStrategy is the worker strategy named by s.Strategy.
func (s *Settings) ParsedStrategy() worker.Strategy {
	strategy, err := worker.ParseStrategy(s.Strategy)
	if err != nil {
		return worker.Futures
	}
	return strategy
}
