// Package boot runs the ordered dependency initialization that must
// succeed before the service binds its listener.
package boot

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Step is a single named setup action. Steps do not retry; a connection
// routine that wants retries owns them itself.
type Step struct {
	Name    string
	Connect func(ctx context.Context) error
}

// Runner executes steps in order and stops at the first failure.
type Runner struct {
	log   *zap.Logger
	steps []Step
}

func NewRunner(log *zap.Logger, steps ...Step) *Runner {
	return &Runner{log: log, steps: steps}
}

// Run connects every dependency in order. On the first failure the
// remaining steps are not attempted and the cause is returned wrapped
// with the step name.
func (r *Runner) Run(ctx context.Context) error {
	for _, s := range r.steps {
		r.log.Info("initializing dependency", zap.String("dependency", s.Name))
		if err := s.Connect(ctx); err != nil {
			r.log.Error("dependency initialization failed",
				zap.String("dependency", s.Name),
				zap.Error(err))
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	}
	r.log.Info("all dependencies initialized", zap.Int("count", len(r.steps)))
	return nil
}
