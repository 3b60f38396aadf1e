package shell

import (
	"context"
	"errors"

	"github.com/nikbrunner/bmterm/internal/output"
)

// ErrQueueFull is returned by Submit when the queue has no free slot.
var ErrQueueFull = errors.New("command queue is full")

// DefaultQueueSize is the number of lines that may wait for execution.
const DefaultQueueSize = 32

// Executor runs a single command line.
type Executor interface {
	Execute(ctx context.Context, line string) output.Result
}

// Queue runs submitted lines one at a time, in submission order, on a single
// goroutine. Results are delivered in the same order.
type Queue struct {
	exec    Executor
	lines   chan string
	results chan output.Result
}

// NewQueue creates a queue holding at most size pending lines.
func NewQueue(exec Executor, size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		exec:    exec,
		lines:   make(chan string, size),
		results: make(chan output.Result, size),
	}
}

// Submit enqueues a line without blocking.
func (q *Queue) Submit(line string) error {
	select {
	case q.lines <- line:
		return nil
	default:
		return ErrQueueFull
	}
}

// Results delivers one result per executed line. It is closed when Run returns.
func (q *Queue) Results() <-chan output.Result {
	return q.results
}

// Run executes queued lines until ctx is cancelled.
func (q *Queue) Run(ctx context.Context) error {
	defer close(q.results)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line := <-q.lines:
			res := q.exec.Execute(ctx, line)
			select {
			case q.results <- res:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// FullResult is the result shown for a line rejected by a full queue.
func FullResult(line string) output.Result {
	return output.Result{Blocks: []output.Block{
		output.Echo(line),
		output.Error("Error: " + ErrQueueFull.Error()),
	}}
}
