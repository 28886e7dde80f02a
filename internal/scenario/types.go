package scenario

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
)

const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

type Scenario struct {
	QueueSizePerProducer int
	Products             map[string]models.Product
	Producers            []ProducerSpec
	Consumers            []ConsumerSpec
}

type ProducerSpec struct {
	Name          string
	RepublishWait time.Duration
	Catalog       []CatalogEntry
}

type CatalogEntry struct {
	ProductID string
	Product   models.Product
	Quantity  int
	// Wait is how long producing one unit takes.
	Wait time.Duration
}

type ConsumerSpec struct {
	Name      string
	RetryWait time.Duration
	Carts     [][]Action
}

type Action struct {
	Type      string
	ProductID string
	Product   models.Product
	Quantity  int
}

// Raw JSON shapes.

type scenarioDoc struct {
	Marketplace struct {
		QueueSizePerProducer int `json:"queue_size_per_producer"`
	} `json:"marketplace"`
	Products  map[string]productDoc `json:"products"`
	Producers []producerDoc         `json:"producers"`
	Consumers []consumerDoc         `json:"consumers"`
}

type productDoc struct {
	ProductType string  `json:"product_type"`
	Name        string  `json:"name"`
	Price       int     `json:"price"`
	Type        string  `json:"type"`
	Acidity     float64 `json:"acidity"`
	RoastLevel  string  `json:"roast_level"`
}

type producerDoc struct {
	Name              string         `json:"name"`
	RepublishWaitTime float64        `json:"republish_wait_time"`
	Products          []catalogTuple `json:"products"`
}

// catalogTuple decodes a ["id", quantity, seconds] triple.
type catalogTuple struct {
	ProductID string
	Quantity  int
	Seconds   float64
}

func (c *catalogTuple) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("catalog entry must be an array: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("catalog entry must have 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &c.ProductID); err != nil {
		return fmt.Errorf("catalog entry product id: %w", err)
	}
	if err := json.Unmarshal(raw[1], &c.Quantity); err != nil {
		return fmt.Errorf("catalog entry quantity: %w", err)
	}
	if err := json.Unmarshal(raw[2], &c.Seconds); err != nil {
		return fmt.Errorf("catalog entry wait time: %w", err)
	}
	return nil
}

type consumerDoc struct {
	Name          string        `json:"name"`
	RetryWaitTime float64       `json:"retry_wait_time"`
	Carts         [][]actionDoc `json:"carts"`
}

type actionDoc struct {
	Type      string `json:"type"`
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}
