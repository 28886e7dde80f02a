package simulation

import (
	"context"
	"time"

	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
)

// Market is the marketplace as seen by producers and consumers.
type Market interface {
	RegisterProducer(ctx context.Context) models.ProducerID
	Publish(ctx context.Context, producer models.ProducerID, product models.Product) (bool, error)
	NewCart(ctx context.Context) models.CartID
	AddToCart(ctx context.Context, cart models.CartID, product models.Product) (bool, error)
	RemoveFromCart(ctx context.Context, cart models.CartID, product models.Product) error
}

// minRetryWait bounds how fast a producer or consumer polls the marketplace
// when its configured wait is zero.
const minRetryWait = time.Millisecond

// retryWait is sleep with d raised to at least minRetryWait.
func retryWait(ctx context.Context, d time.Duration) error {
	return sleep(ctx, max(d, minRetryWait))
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
