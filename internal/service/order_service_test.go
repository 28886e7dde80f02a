package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vogiaan1904/ticketbottle-marketplace/internal/delivery/kafka"
	mkterrors "github.com/vogiaan1904/ticketbottle-marketplace/internal/errors"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
	"github.com/vogiaan1904/ticketbottle-marketplace/pkg/logger"
)

type mockCheckouter struct {
	products []models.Product
	err      error
}

func (m *mockCheckouter) Checkout(ctx context.Context, cartID models.CartID) ([]models.Product, error) {
	return m.products, m.err
}

type mockReceiptRepo struct {
	mu    sync.Mutex
	saved []*models.Receipt
	err   error
}

func (m *mockReceiptRepo) Save(ctx context.Context, r *models.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, r)
	return nil
}

func (m *mockReceiptRepo) GetConsumerOrders(ctx context.Context, consumer string) ([]string, error) {
	return nil, nil
}

func (m *mockReceiptRepo) GetOrderProducts(ctx context.Context, orderID string) ([]string, error) {
	return nil, nil
}

func (m *mockReceiptRepo) GetSales(ctx context.Context) (map[string]int64, error) {
	return nil, nil
}

type mockProducer struct {
	mu     sync.Mutex
	events []kafka.OrderPlacedEvent
	err    error
}

func (m *mockProducer) PublishOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockProducer) Close() error { return nil }

var cartProducts = []models.Product{
	models.Tea{Name: "Linden", Price: 9, Type: "Herbal"},
	models.Coffee{Name: "Brazil", Price: 7, Acidity: 5.09, RoastLevel: "HIGH"},
}

func TestPlaceOrder_Success(t *testing.T) {
	market := &mockCheckouter{products: cartProducts}
	rr := &mockReceiptRepo{}
	prod := &mockProducer{}
	svc := NewOrderService(market, rr, prod, logger.InitializeTestZapLogger())

	rc, err := svc.PlaceOrder(context.Background(), "cons1", models.CartID(2))
	require.NoError(t, err)

	assert.NotEmpty(t, rc.OrderID)
	assert.Equal(t, "cons1", rc.Consumer)
	assert.Equal(t, models.CartID(2), rc.CartID)
	assert.Equal(t, cartProducts, rc.Products)
	assert.Equal(t, 16, rc.Total)
	assert.False(t, rc.PlacedAt.IsZero())

	require.Len(t, rr.saved, 1)
	assert.Same(t, rc, rr.saved[0])

	require.Len(t, prod.events, 1)
	assert.Equal(t, rc.OrderID, prod.events[0].OrderID)
	assert.Len(t, prod.events[0].Items, 2)
}

func TestPlaceOrder_UniqueOrderIDs(t *testing.T) {
	svc := NewOrderService(&mockCheckouter{}, nil, nil, logger.InitializeTestZapLogger())

	a, err := svc.PlaceOrder(context.Background(), "cons1", models.CartID(0))
	require.NoError(t, err)
	b, err := svc.PlaceOrder(context.Background(), "cons1", models.CartID(1))
	require.NoError(t, err)

	assert.NotEqual(t, a.OrderID, b.OrderID)
	assert.Equal(t, 0, a.Total)
}

func TestPlaceOrder_CheckoutFails(t *testing.T) {
	rr := &mockReceiptRepo{}
	prod := &mockProducer{}
	market := &mockCheckouter{err: mkterrors.ErrCartCheckedOut}
	svc := NewOrderService(market, rr, prod, logger.InitializeTestZapLogger())

	_, err := svc.PlaceOrder(context.Background(), "cons1", models.CartID(0))
	require.ErrorIs(t, err, mkterrors.ErrCartCheckedOut)
	assert.Empty(t, rr.saved)
	assert.Empty(t, prod.events)
}

func TestPlaceOrder_SinkFailuresAreNotFatal(t *testing.T) {
	rr := &mockReceiptRepo{err: errors.New("redis down")}
	prod := &mockProducer{err: errors.New("kafka down")}
	svc := NewOrderService(&mockCheckouter{products: cartProducts}, rr, prod, logger.InitializeTestZapLogger())

	rc, err := svc.PlaceOrder(context.Background(), "cons1", models.CartID(0))
	require.NoError(t, err)
	assert.Len(t, rc.Products, 2)
}
