package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/scenario"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/service"
	"github.com/vogiaan1904/ticketbottle-marketplace/pkg/logger"
)

type Consumer struct {
	Name      string
	Carts     [][]scenario.Action
	RetryWait time.Duration

	market  Market
	orders  service.OrderService
	printer *Printer
	l       logger.Logger
}

func NewConsumer(
	spec scenario.ConsumerSpec,
	market Market,
	orders service.OrderService,
	printer *Printer,
	l logger.Logger,
) *Consumer {
	return &Consumer{
		Name:      spec.Name,
		Carts:     spec.Carts,
		RetryWait: spec.RetryWait,
		market:    market,
		orders:    orders,
		printer:   printer,
		l:         l,
	}
}

// Run works through every scripted cart and checks each one out. Adds are
// retried until the product shows up or ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	ctx = c.l.WithFields(ctx, "consumer", c.Name)

	for _, actions := range c.Carts {
		if _, err := c.shop(ctx, actions); err != nil {
			return err
		}
	}

	return nil
}

func (c *Consumer) shop(ctx context.Context, actions []scenario.Action) (*models.Receipt, error) {
	cartID := c.market.NewCart(ctx)
	ctx = c.l.WithFields(ctx, "cart_id", cartID.String())

	for _, a := range actions {
		var err error
		switch a.Type {
		case scenario.ActionAdd:
			err = c.add(ctx, cartID, a)
		case scenario.ActionRemove:
			err = c.remove(ctx, cartID, a)
		default:
			err = fmt.Errorf("unknown action type %q", a.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("consumer %s: %w", c.Name, err)
		}
	}

	rc, err := c.orders.PlaceOrder(ctx, c.Name, cartID)
	if err != nil {
		return nil, fmt.Errorf("consumer %s: %w", c.Name, err)
	}

	if err := c.printer.PrintReceipt(rc); err != nil {
		c.l.Errorf(ctx, "simulation.Consumer.shop: failed to print receipt %s: %v", rc.OrderID, err)
	}

	return rc, nil
}

func (c *Consumer) add(ctx context.Context, cartID models.CartID, a scenario.Action) error {
	for n := 0; n < a.Quantity; {
		ok, err := c.market.AddToCart(ctx, cartID, a.Product)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", a.ProductID, err)
		}

		if !ok {
			if err := retryWait(ctx, c.RetryWait); err != nil {
				return fmt.Errorf("waiting for %s: %w", a.ProductID, err)
			}
			continue
		}
		n++
	}

	return nil
}

func (c *Consumer) remove(ctx context.Context, cartID models.CartID, a scenario.Action) error {
	for n := 0; n < a.Quantity; n++ {
		if err := c.market.RemoveFromCart(ctx, cartID, a.Product); err != nil {
			return fmt.Errorf("failed to remove %s: %w", a.ProductID, err)
		}
	}

	return nil
}
