package sim

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/lcsim/internal/circuit"
	"github.com/san-kum/lcsim/internal/dynamo"
)

// MetricFactory builds fresh metric instances for one sweep member. Metrics
// carry state, so they are never shared between goroutines.
type MetricFactory func() []dynamo.Metric

// Sweep runs one independent circuit per parameter set.
type Sweep struct {
	params  []circuit.Params
	metrics MetricFactory
	limit   int
	log     *zap.Logger
}

func NewSweep(params []circuit.Params, metrics MetricFactory, log *zap.Logger) *Sweep {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sweep{params: params, metrics: metrics, limit: -1, log: log}
}

// SetLimit caps the number of circuits simulated at once. n <= 0 means no cap.
func (s *Sweep) SetLimit(n int) {
	if n <= 0 {
		n = -1
	}
	s.limit = n
}

// Run returns results in the order of the parameter sets. The first failure
// cancels the remaining members.
func (s *Sweep) Run(ctx context.Context, cfg dynamo.Config) ([]*dynamo.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]*dynamo.Result, len(s.params))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)

	for i, p := range s.params {
		i, p := i, p
		g.Go(func() error {
			c, err := circuit.New(p)
			if err != nil {
				return fmt.Errorf("sweep member %d: %w", i, err)
			}

			drv := New(c, s.log.With(zap.Int("member", i)))
			if s.metrics != nil {
				for _, m := range s.metrics() {
					drv.AddMetric(m)
				}
			}

			res, err := drv.Run(ctx, cfg)
			if err != nil {
				return fmt.Errorf("sweep member %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
