package kafka

import (
	"time"

	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
)

// Events published BY the marketplace simulation

type OrderPlacedEvent struct {
	OrderID   string        `json:"order_id"`
	Consumer  string        `json:"consumer"`
	CartID    int64         `json:"cart_id"`
	Items     []OrderedItem `json:"items"`
	Total     int           `json:"total"`
	PlacedAt  time.Time     `json:"placed_at"`
	Timestamp time.Time     `json:"timestamp"`
}

type OrderedItem struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Price   int    `json:"price"`
	Display string `json:"display"`
}

func NewOrderPlacedEvent(r *models.Receipt) OrderPlacedEvent {
	items := make([]OrderedItem, 0, len(r.Products))
	for _, p := range r.Products {
		items = append(items, OrderedItem{
			Kind:    p.Kind(),
			Name:    p.ProductName(),
			Price:   p.ProductPrice(),
			Display: p.String(),
		})
	}

	return OrderPlacedEvent{
		OrderID:  r.OrderID,
		Consumer: r.Consumer,
		CartID:   int64(r.CartID),
		Items:    items,
		Total:    r.Total,
		PlacedAt: r.PlacedAt,
	}
}
