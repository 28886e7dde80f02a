package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProduct_ValueEquality(t *testing.T) {
	var a Product = Tea{Name: "Linden", Price: 9, Type: "Herbal"}
	var b Product = Tea{Name: "Linden", Price: 9, Type: "Herbal"}
	var c Product = Tea{Name: "Linden", Price: 10, Type: "Herbal"}
	var d Product = Coffee{Name: "Linden", Price: 9}

	assert.True(t, a == b)
	assert.False(t, a == c)
	assert.False(t, a == d)
}

func TestProduct_String(t *testing.T) {
	tea := Tea{Name: "Linden", Price: 9, Type: "Herbal"}
	coffee := Coffee{Name: "Indonezia", Price: 1, Acidity: 5.05, RoastLevel: "MEDIUM"}

	assert.Equal(t, "Tea(name='Linden', price=9, type='Herbal')", tea.String())
	assert.Equal(t, "Coffee(name='Indonezia', price=1, acidity=5.05, roast_level='MEDIUM')", coffee.String())
}

func TestIDs_String(t *testing.T) {
	assert.Equal(t, "prod-3", ProducerID(3).String())
	assert.Equal(t, "cart-0", CartID(0).String())
}

func TestNewReceipt_Total(t *testing.T) {
	products := []Product{
		Tea{Name: "Linden", Price: 9, Type: "Herbal"},
		Coffee{Name: "Indonezia", Price: 1, Acidity: 5.05, RoastLevel: "MEDIUM"},
	}

	r := NewReceipt("order-1", "cons1", CartID(2), products, time.Unix(0, 0))
	assert.Equal(t, 10, r.Total)
	assert.Equal(t, CartID(2), r.CartID)
	assert.Len(t, r.Products, 2)
}
