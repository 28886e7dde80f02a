package models

import "fmt"

type ProducerID int64

func (id ProducerID) String() string {
	return fmt.Sprintf("prod-%d", int64(id))
}

type CartID int64

func (id CartID) String() string {
	return fmt.Sprintf("cart-%d", int64(id))
}

// ListedItem is one reservable unit: a product together with the producer that published it.
type ListedItem struct {
	Product    Product
	ProducerID ProducerID
}
