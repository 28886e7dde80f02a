package marketplace

import (
	"slices"

	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
)

// registry holds the available pool and per-producer quota counters.
// quota[p] always equals the number of p's items in available.
type registry struct {
	available []models.ListedItem
	quota     map[models.ProducerID]int
}

func newRegistry() *registry {
	return &registry{
		quota: make(map[models.ProducerID]int),
	}
}

func (r *registry) register(id models.ProducerID) {
	r.quota[id] = 0
}

func (r *registry) registered(id models.ProducerID) bool {
	_, ok := r.quota[id]
	return ok
}

func (r *registry) count(id models.ProducerID) int {
	return r.quota[id]
}

func (r *registry) push(item models.ListedItem) {
	r.available = append(r.available, item)
	r.quota[item.ProducerID]++
}

// takeFirst removes the oldest available item matching product.
func (r *registry) takeFirst(product models.Product) (models.ListedItem, bool) {
	idx := slices.IndexFunc(r.available, func(it models.ListedItem) bool {
		return it.Product == product
	})
	if idx < 0 {
		return models.ListedItem{}, false
	}

	item := r.available[idx]
	r.available = slices.Delete(r.available, idx, idx+1)
	r.quota[item.ProducerID]--

	return item, true
}

func (r *registry) len() int {
	return len(r.available)
}

func (r *registry) quotaSnapshot() map[models.ProducerID]int {
	out := make(map[models.ProducerID]int, len(r.quota))
	for id, n := range r.quota {
		out[id] = n
	}
	return out
}
