package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ludo-technologies/xingstat/domain"
)

// ParallelExecutorImpl implements the ParallelExecutor interface
type ParallelExecutorImpl struct {
	maxConcurrency int
	timeout        time.Duration
	onDone         func(done, total int)
}

// NewParallelExecutor creates a new parallel executor
func NewParallelExecutor() domain.ParallelExecutor {
	return &ParallelExecutorImpl{
		maxConcurrency: 0,
		timeout:        5 * time.Minute,
	}
}

// Execute runs every task and returns their results in task order. All
// tasks run even when some fail; the failures are joined.
func (pe *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) ([]string, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	if pe.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pe.timeout)
		defer cancel()
	}

	var semaphore chan struct{}
	if pe.maxConcurrency > 0 {
		semaphore = make(chan struct{}, pe.maxConcurrency)
	}

	results := make([]string, len(tasks))
	errs := make([]error, len(tasks))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, t domain.ExecutableTask) {
			defer wg.Done()

			if semaphore != nil {
				select {
				case semaphore <- struct{}{}:
					defer func() { <-semaphore }()
				case <-ctx.Done():
					errs[i] = fmt.Errorf("task %s cancelled: %w", t.Name(), ctx.Err())
					return
				}
			}

			if err := ctx.Err(); err != nil {
				errs[i] = fmt.Errorf("task %s cancelled: %w", t.Name(), err)
				return
			}

			path, err := t.Execute(ctx)
			if err != nil {
				errs[i] = fmt.Errorf("task %s failed: %w", t.Name(), err)
				return
			}
			results[i] = path

			if pe.onDone != nil {
				mu.Lock()
				done++
				pe.onDone(done, len(tasks))
				mu.Unlock()
			}
		}(i, task)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return results, err
	}
	return results, nil
}

// SetMaxConcurrency sets the maximum number of concurrent tasks
func (pe *ParallelExecutorImpl) SetMaxConcurrency(max int) {
	pe.maxConcurrency = max
}

// SetTimeout sets the timeout for all tasks
func (pe *ParallelExecutorImpl) SetTimeout(timeout time.Duration) {
	pe.timeout = timeout
}

// OnTaskDone registers a callback run after every successful task
func (pe *ParallelExecutorImpl) OnTaskDone(fn func(done, total int)) {
	pe.onDone = fn
}

// FuncTask adapts a function to domain.ExecutableTask
type FuncTask struct {
	name    string
	execute func(context.Context) (string, error)
}

// NewFuncTask creates a task named name
func NewFuncTask(name string, execute func(context.Context) (string, error)) domain.ExecutableTask {
	return &FuncTask{name: name, execute: execute}
}

// Name returns the name of the task
func (t *FuncTask) Name() string {
	return t.name
}

// Execute runs the task
func (t *FuncTask) Execute(ctx context.Context) (string, error) {
	if t.execute == nil {
		return "", fmt.Errorf("task %s has no execute function", t.name)
	}
	return t.execute(ctx)
}
