package parallel

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// PanicError is returned by Map when a task panics. The remaining tasks still
// run to completion before Map returns.
type PanicError struct {
	Index int
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task %d panicked: %v\n%s", e.Index, e.Value, e.Stack)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Map runs task(i) for every i in [0, n) on a pool of exactly workers
// goroutines fed from a task queue, and returns the results indexed by i.
//
// The pool is created for this call only; Map returns after every worker has
// exited, so all n results are available at once. Tasks run in no particular
// order and must not share mutable state beyond their own result slot.
func Map[T any](workers, n int, task func(i int) T) ([]T, error) {
	if workers < 1 {
		return nil, fmt.Errorf("parallel: worker count must be at least 1, got %d", workers)
	}
	if n < 0 {
		return nil, fmt.Errorf("parallel: invalid task count %d", n)
	}

	results := make([]T, n)
	queue := make(chan int, n)
	for i := 0; i < n; i++ {
		queue <- i
	}
	close(queue)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			return drain(queue, results, task)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// drain consumes indices until the queue is empty. A panicking task is
// recorded and the worker keeps going so that the join still sees every
// index processed.
func drain[T any](queue <-chan int, results []T, task func(i int) T) (err error) {
	for i := range queue {
		if perr := runTask(i, results, task); perr != nil && err == nil {
			err = perr
		}
	}
	return err
}

func runTask[T any](i int, results []T, task func(i int) T) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &PanicError{Index: i, Value: p, Stack: debug.Stack()}
		}
	}()
	results[i] = task(i)
	return nil
}
