package errors

import "errors"

var (
	ErrInvalidCapacity  = errors.New("queue size per producer must be positive")
	ErrProducerNotFound = errors.New("producer not registered")
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartCheckedOut   = errors.New("cart already checked out")
	ErrInvalidProduct   = errors.New("product must be a non-nil comparable value")
)
