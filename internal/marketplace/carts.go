package marketplace

import (
	"slices"

	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
)

type cartStore struct {
	carts map[models.CartID][]models.ListedItem
}

func newCartStore() *cartStore {
	return &cartStore{
		carts: make(map[models.CartID][]models.ListedItem),
	}
}

func (s *cartStore) create(id models.CartID) {
	s.carts[id] = nil
}

func (s *cartStore) open(id models.CartID) bool {
	_, ok := s.carts[id]
	return ok
}

func (s *cartStore) add(id models.CartID, item models.ListedItem) {
	s.carts[id] = append(s.carts[id], item)
}

// removeFirst takes the earliest reserved item matching product out of the cart.
func (s *cartStore) removeFirst(id models.CartID, product models.Product) (models.ListedItem, bool) {
	items := s.carts[id]
	idx := slices.IndexFunc(items, func(it models.ListedItem) bool {
		return it.Product == product
	})
	if idx < 0 {
		return models.ListedItem{}, false
	}

	item := items[idx]
	s.carts[id] = slices.Delete(items, idx, idx+1)

	return item, true
}

// drain retires the cart and returns what it held, in reservation order.
func (s *cartStore) drain(id models.CartID) []models.ListedItem {
	items := s.carts[id]
	delete(s.carts, id)
	return items
}

func (s *cartStore) reserved() int {
	n := 0
	for _, items := range s.carts {
		n += len(items)
	}
	return n
}

func (s *cartStore) len() int {
	return len(s.carts)
}
