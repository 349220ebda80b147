// Package async provides utilities for parallel task execution with
// error collection.
//
// [Run] executes multiple operations concurrently and returns all
// errors joined. It is used where a provisioner fans out over
// independent resources, such as publishing one endpoint per
// availability zone.
package async

import (
	"context"
	"errors"
	"fmt"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// Run executes all tasks in parallel and waits for every one to finish.
// Errors are wrapped with the task name and joined, so a single failed
// availability zone does not mask the others.
func Run(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	type result struct {
		name string
		err  error
	}

	results := make(chan result, len(tasks))
	for _, task := range tasks {
		go func() {
			results <- result{name: task.Name, err: task.Func(ctx)}
		}()
	}

	var errs []error
	for range len(tasks) {
		res := <-results
		if res.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.name, res.err))
		}
	}
	return errors.Join(errs...)
}
