package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
	repo "github.com/vogiaan1904/ticketbottle-marketplace/internal/repository/redis"
	"github.com/vogiaan1904/ticketbottle-marketplace/pkg/logger"
)

type orderService struct {
	market      Checkouter
	receiptRepo repo.ReceiptRepository
	prod        producer.Producer
	l           logger.Logger
}

// NewOrderService wraps checkout. receiptRepo and prod are optional.
func NewOrderService(
	market Checkouter,
	receiptRepo repo.ReceiptRepository,
	prod producer.Producer,
	l logger.Logger,
) OrderService {
	return &orderService{
		market:      market,
		receiptRepo: receiptRepo,
		prod:        prod,
		l:           l,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, consumer string, cartID models.CartID) (*models.Receipt, error) {
	products, err := s.market.Checkout(ctx, cartID)
	if err != nil {
		s.l.Errorf(ctx, "service.orderService.PlaceOrder: %v", err)
		return nil, fmt.Errorf("failed to checkout %s: %w", cartID, err)
	}

	rc := models.NewReceipt(uuid.New().String(), consumer, cartID, products, time.Now())

	// The order is final once checkout succeeds; recording and publishing are best effort.
	if s.receiptRepo != nil {
		if err := s.receiptRepo.Save(ctx, rc); err != nil {
			s.l.Errorf(ctx, "service.orderService.PlaceOrder: failed to record order %s: %v", rc.OrderID, err)
		}
	}

	if s.prod != nil {
		if err := s.prod.PublishOrderPlaced(ctx, kafka.NewOrderPlacedEvent(rc)); err != nil {
			s.l.Errorf(ctx, "service.orderService.PlaceOrder: failed to publish order %s: %v", rc.OrderID, err)
		}
	}

	s.l.Infof(ctx, "Order %s placed by %s: %d products, total %d", rc.OrderID, consumer, len(products), rc.Total)

	return rc, nil
}
