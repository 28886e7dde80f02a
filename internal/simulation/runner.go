// Package simulation drives producers and consumers against a shared
// marketplace until every consumer has checked out all of its carts.
package simulation

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vogiaan1904/ticketbottle-marketplace/internal/scenario"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/service"
	"github.com/vogiaan1904/ticketbottle-marketplace/pkg/logger"
)

type Runner struct {
	producers []*Producer
	consumers []*Consumer
	timeout   time.Duration
	l         logger.Logger
}

type RunnerConfig struct {
	// Timeout bounds the whole run. Zero means no limit.
	Timeout time.Duration
}

func NewRunner(
	ctx context.Context,
	sc *scenario.Scenario,
	market Market,
	orders service.OrderService,
	printer *Printer,
	cfg RunnerConfig,
	l logger.Logger,
) *Runner {
	r := &Runner{
		timeout: cfg.Timeout,
		l:       l,
	}

	for _, spec := range sc.Producers {
		r.producers = append(r.producers, NewProducer(ctx, spec, market, l))
	}
	for _, spec := range sc.Consumers {
		r.consumers = append(r.consumers, NewConsumer(spec, market, orders, printer, l))
	}

	return r
}

func (r *Runner) Producers() []*Producer {
	return r.producers
}

// Run blocks until all consumers are done, then stops the producers.
func (r *Runner) Run(ctx context.Context) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	prodCtx, stopProducers := context.WithCancel(ctx)
	defer stopProducers()

	pg, pctx := errgroup.WithContext(prodCtx)
	for _, p := range r.producers {
		pg.Go(func() error {
			return p.Run(pctx)
		})
	}

	// A failing producer cancels pctx, which also stops the consumers.
	cg, cctx := errgroup.WithContext(pctx)
	for _, c := range r.consumers {
		cg.Go(func() error {
			return c.Run(cctx)
		})
	}

	r.l.Infof(ctx, "Simulation started with %d producers and %d consumers", len(r.producers), len(r.consumers))

	consErr := cg.Wait()
	stopProducers()
	prodErr := pg.Wait()

	if prodErr != nil {
		r.l.Errorf(ctx, "simulation.Runner.Run: producer failed: %v", prodErr)
		return prodErr
	}
	if consErr != nil {
		r.l.Errorf(ctx, "simulation.Runner.Run: consumer failed: %v", consErr)
		return consErr
	}

	r.l.Info(ctx, "Simulation finished")
	return nil
}
