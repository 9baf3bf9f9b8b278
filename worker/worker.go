package worker

import (
	"context"
	"errors"
	"fmt"
	"mandelbrot/misc"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/zeromicro/go-zero/core/mr"
	"golang.org/x/sync/errgroup"
)

// Job computes job number i. Jobs of one Run must not share mutable state.
type Job func(ctx context.Context, i int) error

type Worker struct {
	logger         bslogger.Logger
	strategy       Strategy
	tasksCompleted atomic.Int64
}

func New(strategy Strategy) *Worker {
	return &Worker{
		logger:   bslogger.NewLogger(fmt.Sprintf("Worker %s", strategy), bslogger.Normal, nil),
		strategy: strategy,
	}
}

func (w *Worker) Strategy() Strategy {
	return w.strategy
}

// TasksCompleted is the number of jobs that returned without error over the
// lifetime of w.
func (w *Worker) TasksCompleted() int64 {
	return w.tasksCompleted.Load()
}

// Run executes job(ctx, i) for every i in [0, n) and returns once every job
// that was started has returned. A failing or panicking job is reported as an
// error wrapping misc.ErrWorkerFailure; nothing is retried.
func (w *Worker) Run(ctx context.Context, n int, job Job) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", misc.ErrInvalidWorkers, n)
	}
	if n == 0 {
		return nil
	}

	w.logger.Debug(fmt.Sprintf("Processing %d tasks", n))
	startTime := time.Now()

	var err error
	switch w.strategy {
	case Sequential:
		err = w.runSequential(ctx, n, job)
	case Threads:
		err = w.runThreads(ctx, n, job)
	case Futures:
		err = w.runFutures(ctx, n, job)
	case MapReduce:
		err = w.runMapReduce(ctx, n, job)
	default:
		return fmt.Errorf("unknown strategy: %d", w.strategy)
	}

	if err != nil {
		w.logger.Error(fmt.Sprintf("Processing %d tasks failed: %s", n, err))
		return err
	}
	w.logger.Debug(fmt.Sprintf("Processed %d tasks in %s", n, time.Since(startTime)))
	return nil
}

func (w *Worker) runSequential(ctx context.Context, n int, job Job) error {
	for i := 0; i < n; i++ {
		if err := w.safeRun(ctx, i, job); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) runThreads(ctx context.Context, n int, job Job) error {
	var wg sync.WaitGroup
	// each goroutine only writes its own slot
	errs := make([]error, n)

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = w.safeRun(ctx, i, job)
		}(i)
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (w *Worker) runFutures(ctx context.Context, n int, job Job) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return w.safeRun(gctx, i, job)
		})
	}
	// Wait returns the first error once every submitted job has returned
	return g.Wait()
}

func (w *Worker) runMapReduce(ctx context.Context, n int, job Job) error {
	errs := make([]error, n)
	fns := make([]func() error, n)
	for i := 0; i < n; i++ {
		i := i
		fns[i] = func() error {
			// failures are collected rather than returned so mr does not abandon
			// jobs it has not started yet
			errs[i] = w.safeRun(ctx, i, job)
			return nil
		}
	}
	if err := mr.Finish(fns...); err != nil {
		return fmt.Errorf("%w: %w", misc.ErrWorkerFailure, err)
	}
	return errors.Join(errs...)
}

func (w *Worker) safeRun(ctx context.Context, i int, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: task %d panicked: %v", misc.ErrWorkerFailure, i, r)
		}
	}()

	if err = job(ctx, i); err != nil {
		return fmt.Errorf("%w: task %d: %w", misc.ErrWorkerFailure, i, err)
	}
	w.tasksCompleted.Add(1)
	return nil
}
