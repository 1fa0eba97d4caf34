package reconciler

import (
	"context"

	"go.uber.org/zap"
)

type WorkerPoolI interface {
	AddTask(ctx context.Context, task Task) error
	Close()
}

type Task func() error

// WorkerPool ограничивает число одновременных сверок с платёжным шлюзом.
type WorkerPool struct {
	tasks chan Task
}

func NewWorkerPool(size int) *WorkerPool {
	tasks := make(chan Task, size)
	wp := &WorkerPool{tasks: tasks}

	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	for task := range wp.tasks {
		if err := task(); err != nil {
			zap.L().Error("Reconciliation task failed", zap.Error(err))
		}
	}
}

func (wp *WorkerPool) AddTask(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.tasks <- task:
		return nil
	}
}

func (wp *WorkerPool) Close() {
	select {
	case <-wp.tasks:
	default:
		close(wp.tasks)
	}
}
