package simulation

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/scenario"
	"github.com/vogiaan1904/ticketbottle-marketplace/pkg/logger"
)

type Producer struct {
	Name          string
	Catalog       []scenario.CatalogEntry
	RepublishWait time.Duration

	id        models.ProducerID
	market    Market
	l         logger.Logger
	published atomic.Int64
}

// NewProducer registers with market straight away so producer IDs follow
// construction order.
func NewProducer(ctx context.Context, spec scenario.ProducerSpec, market Market, l logger.Logger) *Producer {
	return &Producer{
		Name:          spec.Name,
		Catalog:       spec.Catalog,
		RepublishWait: spec.RepublishWait,
		id:            market.RegisterProducer(ctx),
		market:        market,
		l:             l,
	}
}

func (p *Producer) ID() models.ProducerID {
	return p.id
}

func (p *Producer) Published() int64 {
	return p.published.Load()
}

// Run cycles through the catalog until ctx is done. Cancellation is the
// normal way to stop a producer and is not reported as an error.
func (p *Producer) Run(ctx context.Context) error {
	ctx = p.l.WithFields(ctx, "producer", p.Name, "producer_id", p.id.String())
	p.l.Debug(ctx, "Producer started")

	if len(p.Catalog) == 0 {
		<-ctx.Done()
		return nil
	}

	for {
		for _, entry := range p.Catalog {
			if err := p.publish(ctx, entry); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					p.l.Debugf(ctx, "Producer stopped after publishing %d items", p.Published())
					return nil
				}
				return err
			}
		}
	}
}

func (p *Producer) publish(ctx context.Context, entry scenario.CatalogEntry) error {
	for n := 0; n < entry.Quantity; {
		ok, err := p.market.Publish(ctx, p.id, entry.Product)
		if err != nil {
			return fmt.Errorf("producer %s: failed to publish %s: %w", p.Name, entry.ProductID, err)
		}

		if !ok {
			if err := retryWait(ctx, p.RepublishWait); err != nil {
				return err
			}
			continue
		}

		n++
		p.published.Add(1)
		if err := sleep(ctx, entry.Wait); err != nil {
			return err
		}
	}

	return nil
}
