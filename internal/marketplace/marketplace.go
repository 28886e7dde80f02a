// Package marketplace is the shared registry that producers publish into and
// consumers reserve from. Every operation runs under one mutex so the
// available pool, the quota counters and the carts change together.
package marketplace

import (
	"context"
	"reflect"
	"sync"

	"github.com/vogiaan1904/ticketbottle-marketplace/internal/errors"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
	"github.com/vogiaan1904/ticketbottle-marketplace/pkg/logger"
)

type Marketplace struct {
	queueCapacity int
	l             logger.Logger

	mu             sync.Mutex
	nextProducerID models.ProducerID
	nextCartID     models.CartID
	items          *registry
	carts          *cartStore
}

type Stats struct {
	Available int
	Reserved  int
	OpenCarts int
	Producers int
	Quota     map[models.ProducerID]int
}

func New(queueCapacity int, l logger.Logger) (*Marketplace, error) {
	if queueCapacity <= 0 {
		return nil, errors.ErrInvalidCapacity
	}

	return &Marketplace{
		queueCapacity: queueCapacity,
		l:             l,
		items:         newRegistry(),
		carts:         newCartStore(),
	}, nil
}

func (m *Marketplace) QueueCapacity() int {
	return m.queueCapacity
}

func (m *Marketplace) RegisterProducer(ctx context.Context) models.ProducerID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextProducerID
	m.nextProducerID++
	m.items.register(id)

	m.l.Debugf(ctx, "marketplace.RegisterProducer: registered %s", id)
	return id
}

// Publish lists product on behalf of producer. It returns false without
// changing anything when the producer already has queueCapacity items waiting.
// A nil or non-comparable product is refused with ErrInvalidProduct.
func (m *Marketplace) Publish(ctx context.Context, producer models.ProducerID, product models.Product) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.items.registered(producer) {
		m.l.Warnf(ctx, "marketplace.Publish: %s: %v", producer, errors.ErrProducerNotFound)
		return false, errors.ErrProducerNotFound
	}

	if err := checkProduct(product); err != nil {
		m.l.Warnf(ctx, "marketplace.Publish: %s: %v", producer, err)
		return false, err
	}

	if m.items.count(producer) >= m.queueCapacity {
		m.l.Debugf(ctx, "marketplace.Publish: %s queue full, can't publish %s", producer, product)
		return false, nil
	}

	m.items.push(models.ListedItem{Product: product, ProducerID: producer})

	m.l.Debugf(ctx, "marketplace.Publish: %s published %s", producer, product)
	return true, nil
}

func (m *Marketplace) NewCart(ctx context.Context) models.CartID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextCartID
	m.nextCartID++
	m.carts.create(id)

	m.l.Debugf(ctx, "marketplace.NewCart: created %s", id)
	return id
}

// AddToCart reserves the oldest available item equal to product. It returns
// false when no such item is listed right now.
func (m *Marketplace) AddToCart(ctx context.Context, cart models.CartID, product models.Product) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkCart(cart); err != nil {
		m.l.Warnf(ctx, "marketplace.AddToCart: %s: %v", cart, err)
		return false, err
	}

	if err := checkProduct(product); err != nil {
		m.l.Warnf(ctx, "marketplace.AddToCart: %s: %v", cart, err)
		return false, err
	}

	item, ok := m.items.takeFirst(product)
	if !ok {
		return false, nil
	}
	m.carts.add(cart, item)

	m.l.Debugf(ctx, "marketplace.AddToCart: %s reserved %s from %s", cart, item.Product, item.ProducerID)
	return true, nil
}

// RemoveFromCart returns one reserved item equal to product to the available
// pool. A product that is not in the cart is ignored.
func (m *Marketplace) RemoveFromCart(ctx context.Context, cart models.CartID, product models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkCart(cart); err != nil {
		m.l.Warnf(ctx, "marketplace.RemoveFromCart: %s: %v", cart, err)
		return err
	}

	if err := checkProduct(product); err != nil {
		m.l.Warnf(ctx, "marketplace.RemoveFromCart: %s: %v", cart, err)
		return err
	}

	item, ok := m.carts.removeFirst(cart, product)
	if !ok {
		return nil
	}
	m.items.push(item)

	m.l.Debugf(ctx, "marketplace.RemoveFromCart: %s returned %s to %s", cart, item.Product, item.ProducerID)
	return nil
}

// Checkout retires the cart and returns its products in reservation order.
// The items are consumed and never go back to the available pool.
func (m *Marketplace) Checkout(ctx context.Context, cart models.CartID) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkCart(cart); err != nil {
		m.l.Warnf(ctx, "marketplace.Checkout: %s: %v", cart, err)
		return nil, err
	}

	items := m.carts.drain(cart)
	products := make([]models.Product, 0, len(items))
	for _, it := range items {
		products = append(products, it.Product)
	}

	m.l.Debugf(ctx, "marketplace.Checkout: %s placed order with %d products", cart, len(products))
	return products, nil
}

func (m *Marketplace) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Available: m.items.len(),
		Reserved:  m.carts.reserved(),
		OpenCarts: m.carts.len(),
		Producers: int(m.nextProducerID),
		Quota:     m.items.quotaSnapshot(),
	}
}

// checkCart must be called with mu held.
func (m *Marketplace) checkCart(cart models.CartID) error {
	if m.carts.open(cart) {
		return nil
	}
	if cart >= 0 && cart < m.nextCartID {
		return errors.ErrCartCheckedOut
	}
	return errors.ErrCartNotFound
}

// checkProduct rejects products that == cannot compare without panicking.
func checkProduct(p models.Product) error {
	if p == nil || !reflect.TypeOf(p).Comparable() {
		return errors.ErrInvalidProduct
	}
	return nil
}
