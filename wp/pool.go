// Package wp runs calls on a fixed set of workers. Tasks sharing a key are
// executed by the same worker in submission order.
package wp

import (
	"context"
	"errors"
	"sync"

	"github.com/segmentio/fasthash/fnv1a"
)

// ErrPoolStopped is returned by Submit once Stop has been called.
var ErrPoolStopped = errors.New("wp: pool stopped")

// Pool dispatches tasks to workers by key hash.
type Pool struct {
	queues []chan func()
	wg     sync.WaitGroup

	mu         sync.RWMutex
	stopped    bool
	done       chan struct{}
	submitting sync.WaitGroup
}

// NewPool starts workers goroutines, each with a queue of queueSize tasks.
// Values below 1 are raised to 1.
func NewPool(workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	p := &Pool{
		queues: make([]chan func(), workers),
		done:   make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
		p.wg.Add(1)
		go p.work(p.queues[i])
	}

	return p
}

func (p *Pool) work(queue <-chan func()) {
	defer p.wg.Done()
	for task := range queue {
		task()
	}
}

// Workers returns the number of workers.
func (p *Pool) Workers() int {
	return len(p.queues)
}

// Submit queues task on the worker owning key, blocking while that queue is full.
// A blocked Submit returns ErrPoolStopped as soon as Stop is called. A nil task is
// ignored.
func (p *Pool) Submit(ctx context.Context, key string, task func()) error {
	if task == nil {
		return nil
	}

	p.mu.RLock()
	if p.stopped {
		p.mu.RUnlock()
		return ErrPoolStopped
	}
	p.submitting.Add(1)
	p.mu.RUnlock()
	defer p.submitting.Done()

	select {
	case p.queues[p.index(key)] <- task:
		return nil
	case <-p.done:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop refuses new tasks and waits until every queued task has run.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.done)
	p.mu.Unlock()

	// queues close only once no Submit can send to them
	p.submitting.Wait()
	for _, q := range p.queues {
		close(q)
	}
	p.wg.Wait()
}

func (p *Pool) index(key string) int {
	return int(fnv1a.HashString64(key) % uint64(len(p.queues)))
}
