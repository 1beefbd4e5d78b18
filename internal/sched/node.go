package sched

import (
	"sync"

	"github.com/rs/xid"
)

type nodeState int

const (
	stateIdle   nodeState = iota // constructed, not yet forced
	stateQueued                  // on a placement queue
	stateDone                    // executed (or failed), result final
)

// Node is one pending computation. Its done channel closes exactly once,
// after which Err is final and any result the run closure produced is
// visible to waiters (channel close is the memory barrier).
type Node struct {
	id    string
	label string
	queue string
	deps  []*Node
	run   func() error

	mu    sync.Mutex
	state nodeState
	err   error
	done  chan struct{}
}

// NewNode builds an idle node on the named placement queue. run executes
// at most once, after every dep has completed successfully.
func (s *Scheduler) NewNode(queue, label string, deps []*Node, run func() error) *Node {
	return &Node{
		id:    xid.New().String(),
		label: label,
		queue: queue,
		deps:  deps,
		run:   run,
		done:  make(chan struct{}),
	}
}

// Completed builds a node that is already done, for values produced
// synchronously (cross-placement copies of materialized buffers).
func (s *Scheduler) Completed(queue, label string) *Node {
	n := &Node{
		id:    xid.New().String(),
		label: label,
		queue: queue,
		state: stateDone,
		done:  make(chan struct{}),
	}
	close(n.done)
	return n
}

// ID returns the node's unique id.
func (n *Node) ID() string {
	return n.id
}

// Label returns the operation name the node was created with.
func (n *Node) Label() string {
	return n.label
}

// Done reports whether the node has executed.
func (n *Node) Done() bool {
	select {
	case <-n.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the node has executed and returns its error.
// The node must have been forced, directly or as a dependency.
func (n *Node) Wait() error {
	<-n.done
	return n.err
}

// Err returns the execution error. Only meaningful once Done.
func (n *Node) Err() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.err
}

func (n *Node) finish(err error) {
	n.mu.Lock()
	n.state = stateDone
	n.err = err
	n.mu.Unlock()
	close(n.done)
}
