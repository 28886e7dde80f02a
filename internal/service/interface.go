package service

import (
	"context"

	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, consumer string, cartID models.CartID) (*models.Receipt, error)
}

// Checkouter is the part of the marketplace the order service needs.
type Checkouter interface {
	Checkout(ctx context.Context, cartID models.CartID) ([]models.Product, error)
}
