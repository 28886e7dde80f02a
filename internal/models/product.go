package models

import (
	"fmt"
	"strconv"
)

const (
	ProductKindTea    = "Tea"
	ProductKindCoffee = "Coffee"
)

// Product is compared by value: implementations must be comparable structs so
// that == on two Product values checks the concrete type and every field.
type Product interface {
	Kind() string
	ProductName() string
	ProductPrice() int
	String() string
}

type Tea struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
	Type  string `json:"type"`
}

func (t Tea) Kind() string        { return ProductKindTea }
func (t Tea) ProductName() string { return t.Name }
func (t Tea) ProductPrice() int   { return t.Price }

func (t Tea) String() string {
	return fmt.Sprintf("Tea(name='%s', price=%d, type='%s')", t.Name, t.Price, t.Type)
}

type Coffee struct {
	Name       string  `json:"name"`
	Price      int     `json:"price"`
	Acidity    float64 `json:"acidity"`
	RoastLevel string  `json:"roast_level"`
}

func (c Coffee) Kind() string        { return ProductKindCoffee }
func (c Coffee) ProductName() string { return c.Name }
func (c Coffee) ProductPrice() int   { return c.Price }

func (c Coffee) String() string {
	return fmt.Sprintf("Coffee(name='%s', price=%d, acidity=%s, roast_level='%s')",
		c.Name, c.Price, strconv.FormatFloat(c.Acidity, 'f', -1, 64), c.RoastLevel)
}
