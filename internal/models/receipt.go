package models

import "time"

type Receipt struct {
	OrderID  string    `json:"order_id"`
	Consumer string    `json:"consumer"`
	CartID   CartID    `json:"cart_id"`
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	PlacedAt time.Time `json:"placed_at"`
}

func NewReceipt(orderID, consumer string, cartID CartID, products []Product, placedAt time.Time) *Receipt {
	total := 0
	for _, p := range products {
		total += p.ProductPrice()
	}

	return &Receipt{
		OrderID:  orderID,
		Consumer: consumer,
		CartID:   cartID,
		Products: products,
		Total:    total,
		PlacedAt: placedAt,
	}
}
