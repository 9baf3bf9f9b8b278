package worker

import (
	"context"
	"errors"
	"fmt"
	"mandelbrot/misc"
	"strings"
	"sync/atomic"
	"testing"
)

func TestRunVisitsEveryJobOnce(t *testing.T) {
	for _, strategy := range Strategies() {
		t.Run(strategy.String(), func(t *testing.T) {
			const n = 37
			counts := make([]int32, n)
			w := New(strategy)

			err := w.Run(context.Background(), n, func(ctx context.Context, i int) error {
				atomic.AddInt32(&counts[i], 1)
				return nil
			})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			for i, c := range counts {
				if c != 1 {
					t.Errorf("job %d ran %d times", i, c)
				}
			}
			if got := w.TasksCompleted(); got != n {
				t.Errorf("TasksCompleted = %d, want %d", got, n)
			}
		})
	}
}

func TestRunNoJobs(t *testing.T) {
	for _, strategy := range Strategies() {
		err := New(strategy).Run(context.Background(), 0, func(ctx context.Context, i int) error {
			t.Errorf("%s: job %d should not run", strategy, i)
			return nil
		})
		if err != nil {
			t.Errorf("%s: Run(0) = %v", strategy, err)
		}
	}
}

func TestRunNegativeJobs(t *testing.T) {
	err := New(Threads).Run(context.Background(), -1, func(ctx context.Context, i int) error { return nil })
	if !errors.Is(err, misc.ErrInvalidWorkers) {
		t.Errorf("Run(-1) = %v, want %v", err, misc.ErrInvalidWorkers)
	}
}

func TestRunPropagatesFailure(t *testing.T) {
	boom := errors.New("boom")
	for _, strategy := range Strategies() {
		t.Run(strategy.String(), func(t *testing.T) {
			err := New(strategy).Run(context.Background(), 8, func(ctx context.Context, i int) error {
				if i == 5 {
					return boom
				}
				return nil
			})
			if !errors.Is(err, misc.ErrWorkerFailure) {
				t.Errorf("error %v does not wrap %v", err, misc.ErrWorkerFailure)
			}
			if !errors.Is(err, boom) {
				t.Errorf("error %v does not wrap the job error", err)
			}
		})
	}
}

func TestRunRecoversPanics(t *testing.T) {
	for _, strategy := range Strategies() {
		t.Run(strategy.String(), func(t *testing.T) {
			err := New(strategy).Run(context.Background(), 4, func(ctx context.Context, i int) error {
				if i == 2 {
					var pixels []int
					_ = pixels[i]
				}
				return nil
			})
			if !errors.Is(err, misc.ErrWorkerFailure) {
				t.Errorf("Run = %v, want %v", err, misc.ErrWorkerFailure)
			}
		})
	}
}

func TestThreadsWaitsForEveryJob(t *testing.T) {
	var finished atomic.Int32
	err := New(Threads).Run(context.Background(), 6, func(ctx context.Context, i int) error {
		defer finished.Add(1)
		if i%2 == 0 {
			return fmt.Errorf("job %d", i)
		}
		return nil
	})
	if finished.Load() != 6 {
		t.Errorf("%d jobs finished before Run returned, want 6", finished.Load())
	}
	// every failure is reported, not only the first
	for _, i := range []int{0, 2, 4} {
		if want := fmt.Sprintf("job %d", i); !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestFuturesCancelsSiblings(t *testing.T) {
	release := make(chan struct{})
	err := New(Futures).Run(context.Background(), 2, func(ctx context.Context, i int) error {
		if i == 0 {
			defer close(release)
			return errors.New("first")
		}
		<-release
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, misc.ErrWorkerFailure) {
		t.Errorf("Run = %v, want %v", err, misc.ErrWorkerFailure)
	}
}

func TestParseStrategy(t *testing.T) {
	for _, strategy := range Strategies() {
		got, err := ParseStrategy(strategy.String())
		if err != nil || got != strategy {
			t.Errorf("ParseStrategy(%q) = %v, %v", strategy.String(), got, err)
		}
	}
	if got, err := ParseStrategy("futures"); err != nil || got != Futures {
		t.Errorf("ParseStrategy(futures) = %v, %v", got, err)
	}
	if _, err := ParseStrategy("gpu"); err == nil {
		t.Error("ParseStrategy(gpu) should fail")
	}
}

func BenchmarkRun(b *testing.B) {
	job := func(ctx context.Context, i int) error {
		sum := 0
		for j := 0; j < 10000; j++ {
			sum += j ^ i
		}
		_ = sum
		return nil
	}
	for _, strategy := range Strategies() {
		b.Run(strategy.String(), func(b *testing.B) {
			w := New(strategy)
			for i := 0; i < b.N; i++ {
				if err := w.Run(context.Background(), 8, job); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
