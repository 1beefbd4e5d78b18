package array

import (
	"go.uber.org/zap"

	"github.com/drift-ml/drift/internal/parallel"
	"github.com/drift-ml/drift/internal/sched"
)

// Runtime owns the compute streams handles are dispatched on. Every
// constructor takes one explicitly; handles built on different runtimes
// cannot be combined.
type Runtime struct {
	sched *sched.Scheduler
	par   parallel.Config
}

type runtimeConfig struct {
	logger *zap.Logger
}

// Option configures a Runtime.
type Option func(*runtimeConfig)

// WithLogger attaches a structured logger for dispatch and
// materialization events. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *runtimeConfig) {
		c.logger = l
	}
}

// NewRuntime creates a Runtime. Close it when done; handles outlive
// their usefulness once their runtime is closed.
func NewRuntime(opts ...Option) *Runtime {
	cfg := runtimeConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Runtime{
		sched: sched.New(sched.WithLogger(cfg.logger)),
		par:   parallel.DefaultConfig(),
	}
}

// Close stops the runtime's compute streams.
func (rt *Runtime) Close() {
	rt.sched.Close()
}
