// Package sched executes pending array computations on logical compute
// queues. Each placement gets one FIFO queue served by a single worker
// goroutine, modeling a serialized device stream: submitting work never
// blocks, and results become readable only after the stream has run the
// node and everything it depends on.
package sched

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler owns the per-placement queues and their workers. Queues are
// created lazily the first time a node is forced onto a placement.
type Scheduler struct {
	logger *zap.Logger

	mu     sync.Mutex
	queues map[string]*queue
	closed bool
	wg     sync.WaitGroup
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger attaches a structured logger for dispatch events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// New creates a Scheduler with no running workers.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		logger: zap.NewNop(),
		queues: make(map[string]*queue),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Force schedules n's transitive dependency closure and blocks until n
// has executed. Idempotent: a node runs at most once, and forcing an
// already-done node just returns its recorded error.
func (s *Scheduler) Force(n *Node) error {
	s.schedule(n)
	return n.Wait()
}

// schedule pushes idle nodes onto their queues, dependencies first so a
// node never precedes its own dependency on the same stream. The node
// lock is held through the push: once any caller observes a node as
// queued, the node and its transitive dependencies are already enqueued
// in topological order. (Dependency graphs are acyclic, so the
// parent-then-dep lock order cannot cycle.)
func (s *Scheduler) schedule(n *Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != stateIdle {
		return
	}

	for _, d := range n.deps {
		s.schedule(d)
	}

	s.queueFor(n.queue).push(n)
	n.state = stateQueued
	s.logger.Debug("node queued",
		zap.String("id", n.id),
		zap.String("op", n.label),
		zap.String("placement", n.queue))
}

// queueFor returns the queue for a placement, starting its worker on
// first use.
func (s *Scheduler) queueFor(name string) *queue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		panic(fmt.Sprintf("sched: Force on closed scheduler (placement %s)", name))
	}
	q, ok := s.queues[name]
	if !ok {
		q = newQueue()
		s.queues[name] = q
		s.wg.Add(1)
		go s.worker(q)
	}
	return q
}

func (s *Scheduler) worker(q *queue) {
	defer s.wg.Done()
	for {
		n, ok := q.pop()
		if !ok {
			return
		}
		s.execute(n)
	}
}

// execute waits for n's dependencies, then runs it. A failed dependency
// propagates its error without running n.
func (s *Scheduler) execute(n *Node) {
	for _, d := range n.deps {
		if err := d.Wait(); err != nil {
			n.finish(err)
			s.logger.Debug("node skipped: dependency failed",
				zap.String("id", n.id),
				zap.String("op", n.label),
				zap.Error(err))
			return
		}
	}

	start := time.Now()
	err := n.run()
	n.finish(err)
	s.logger.Debug("node complete",
		zap.String("id", n.id),
		zap.String("op", n.label),
		zap.String("placement", n.queue),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))
}

// Close stops every worker and waits for them to exit. Nodes that were
// never forced stay pending forever; Close is for process teardown and
// tests, not part of the steady-state contract.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	queues := make([]*queue, 0, len(s.queues))
	for _, q := range s.queues {
		queues = append(queues, q)
	}
	s.mu.Unlock()

	for _, q := range queues {
		q.close()
	}
	s.wg.Wait()
}

// queue is an unbounded FIFO guarded by a condition variable.
type queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	nodes  []*Node
	closed bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *queue) push(n *Node) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.nodes = append(q.nodes, n)
	q.cond.Signal()
}

// pop blocks until a node is available or the queue is closed. The
// second result is false once the queue is closed and drained.
func (q *queue) pop() (*Node, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.nodes) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.nodes) == 0 {
		return nil, false
	}
	n := q.nodes[0]
	q.nodes = q.nodes[1:]
	return n, true
}

func (q *queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
