package task

import (
	"errors"
	"mandelbrot/misc"
	"testing"
)

func TestSplitCoversEveryRowOnce(t *testing.T) {
	for height := 0; height <= 40; height++ {
		for workers := 1; workers <= height+6; workers++ {
			tasks, err := Split(height, workers)
			if err != nil {
				t.Fatalf("Split(%d, %d): %v", height, workers, err)
			}
			if len(tasks) != workers {
				t.Fatalf("Split(%d, %d) returned %d tasks", height, workers, len(tasks))
			}

			seen := make([]int, height)
			next := 0
			for i, task := range tasks {
				if task.ID != i {
					t.Errorf("Split(%d, %d) task %d has ID %d", height, workers, i, task.ID)
				}
				if task.Start != next {
					t.Fatalf("Split(%d, %d) task %v does not start at %d", height, workers, task, next)
				}
				for row := task.Start; row < task.End; row++ {
					seen[row]++
				}
				next = task.End
			}
			if next != height {
				t.Fatalf("Split(%d, %d) ends at %d", height, workers, next)
			}
			for row, count := range seen {
				if count != 1 {
					t.Fatalf("Split(%d, %d) covers row %d %d times", height, workers, row, count)
				}
			}
		}
	}
}

func TestSplitRemainderGoesToLastWorker(t *testing.T) {
	tasks, err := Split(10, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []Task{
		{ID: 0, Start: 0, End: 3},
		{ID: 1, Start: 3, End: 6},
		{ID: 2, Start: 6, End: 10},
	}
	for i := range want {
		if tasks[i] != want[i] {
			t.Errorf("task %d = %v, want %v", i, tasks[i], want[i])
		}
	}
}

func TestSplitMoreWorkersThanRows(t *testing.T) {
	tasks, err := Split(4, 9)
	if err != nil {
		t.Fatal(err)
	}
	for _, task := range tasks[:8] {
		if !task.Empty() {
			t.Errorf("expected %v to be empty", task)
		}
	}
	if last := tasks[8]; last.Start != 0 || last.End != 4 || last.Rows() != 4 {
		t.Errorf("last task = %v, want rows [0, 4)", last)
	}
}

func TestSplitRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		height  int
		workers int
		want    error
	}{
		{"zero workers", 10, 0, misc.ErrInvalidWorkers},
		{"negative workers", 10, -2, misc.ErrInvalidWorkers},
		{"negative height", -1, 2, misc.ErrInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Split(tt.height, tt.workers); !errors.Is(err, tt.want) {
				t.Errorf("Split(%d, %d) error = %v, want %v", tt.height, tt.workers, err, tt.want)
			}
		})
	}
}
