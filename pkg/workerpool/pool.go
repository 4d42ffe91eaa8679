// Package workerpool is a bounded goroutine pool. The event bus routes
// async listener dispatch through one so a burst of orders cannot spawn
// an unbounded number of goroutines.
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolFull is returned by TrySubmit when the task queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool runs submitted tasks on a fixed set of worker goroutines.
type Pool struct {
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	closeCh chan struct{}
}

// New creates a Pool with the given number of workers. The task queue
// buffers twice the worker count to absorb bursts.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		tasks:   make(chan func(), size*2),
		closeCh: make(chan struct{}),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit enqueues task, blocking until a slot frees up. Returns
// ErrPoolClosed while shutting down.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	case p.tasks <- task:
		return nil
	}
}

// TrySubmit enqueues task without blocking. Returns ErrPoolFull when the
// queue is at capacity, ErrPoolClosed while shutting down.
func (p *Pool) TrySubmit(task func()) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	default:
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// Shutdown stops accepting tasks, waits for in-flight ones and releases
// the workers. Safe to call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.closeCh)
		close(p.tasks)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		safeRun(task)
	}
}

// safeRun keeps a panicking task from killing the worker.
func safeRun(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}
