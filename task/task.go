package task

import (
	"fmt"
	"mandelbrot/misc"
)

// Task is one worker's share of a render: the rows [Start, End) of the image.
// A Task may be empty when there are more workers than rows.
type Task struct {
	End   int
	ID    int
	Start int
}

func (t Task) String() string {
	output := "{Task "
	output += fmt.Sprintf("ID: %d ", t.ID)
	output += fmt.Sprintf("Start: %d ", t.Start)
	output += fmt.Sprintf("End: %d}", t.End)
	return output
}

// Rows is the number of rows the task covers.
func (t Task) Rows() int {
	return t.End - t.Start
}

func (t Task) Empty() bool {
	return t.End <= t.Start
}

// Split divides the rows [0, height) between workers. Each worker gets
// height/workers rows and the last one also takes the remainder, so the tasks
// are contiguous, never overlap and cover every row exactly once.
func Split(height int, workers int) ([]Task, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: %d", misc.ErrInvalidWorkers, workers)
	}
	if height < 0 {
		return nil, fmt.Errorf("%w: height %d", misc.ErrInvalidDimensions, height)
	}

	base := height / workers
	tasks := make([]Task, workers)
	for i := 0; i < workers; i++ {
		tasks[i] = Task{
			End:   (i + 1) * base,
			ID:    i,
			Start: i * base,
		}
	}
	// the last worker absorbs the rows integer division left over
	tasks[workers-1].End = height

	return tasks, nil
}
