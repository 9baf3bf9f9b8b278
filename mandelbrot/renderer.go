package mandelbrot

import (
	"context"
	"fmt"
	"io"
	"mandelbrot/bmp"
	"mandelbrot/misc"
	"mandelbrot/raster"
	"mandelbrot/task"
	"mandelbrot/worker"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

// Renderer owns the plane bounds and the raster a render writes into.
type Renderer struct {
	bounds   Bounds
	height   int
	image    *raster.Raster
	logger   bslogger.Logger
	strategy worker.Strategy
	width    int
}

type Option func(r *Renderer)

// WithStrategy picks how Render runs its workers. The default is worker.Futures.
func WithStrategy(strategy worker.Strategy) Option {
	return func(r *Renderer) {
		r.strategy = strategy
	}
}

func WithLogger(logger bslogger.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// NewRenderer prepares a width x height render of bounds.
func NewRenderer(bounds Bounds, width int, height int, opts ...Option) (*Renderer, error) {
	if err := bounds.Verify(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", misc.ErrInvalidDimensions, width, height)
	}
	image, err := raster.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", misc.ErrInvalidDimensions, err)
	}

	r := &Renderer{
		bounds:   bounds,
		height:   height,
		image:    image,
		logger:   bslogger.NewLogger("Renderer", bslogger.Normal, nil),
		strategy: worker.Futures,
		width:    width,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Renderer) Bounds() Bounds {
	return r.bounds
}

// Raster is the image the last Render produced.
func (r *Renderer) Raster() *raster.Raster {
	return r.image
}

// Render computes every pixel using workers concurrent workers, each owning a
// contiguous block of rows. It returns once all of them are done.
func (r *Renderer) Render(ctx context.Context, workers int) error {
	tasks, err := task.Split(r.height, workers)
	if err != nil {
		return err
	}

	// hand each task its own rows of the raster
	views := make([]raster.View, len(tasks))
	for i, t := range tasks {
		views[i] = r.image.View(t.Start, t.End)
	}

	r.logger.Info(fmt.Sprintf("Rendering %dx%d %s with %d workers [%s]", r.width, r.height, r.bounds, workers, r.strategy))
	startTime := time.Now()

	err = worker.New(r.strategy).Run(ctx, len(tasks), func(ctx context.Context, i int) error {
		return r.renderRows(ctx, views[i])
	})
	if err != nil {
		return err
	}

	r.logger.Info(fmt.Sprintf("Rendered %d rows in %s", r.height, time.Since(startTime)))
	return nil
}

func (r *Renderer) renderRows(ctx context.Context, view raster.View) error {
	for y := view.Start(); y < view.End(); y++ {
		// cancellation is only observed between scanlines
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := 0; x < r.width; x++ {
			c := r.bounds.Point(r.width, r.height, x, y)
			view.Set(x, y, Colour(EscapeTime(c)))
		}
	}
	return nil
}

// ToBitmap writes the raster to w as a top-down bitmap.
func (r *Renderer) ToBitmap(w io.Writer) error {
	return bmp.Encode(w, r.image, bmp.TopDown)
}

// Save writes the raster to fileName as a top-down bitmap. Nothing is left at
// fileName if writing fails.
func (r *Renderer) Save(fileName string) error {
	if err := bmp.Save(fileName, r.image, bmp.TopDown); err != nil {
		return err
	}
	r.logger.Info(fmt.Sprintf("Saved image to %s", fileName))
	return nil
}
