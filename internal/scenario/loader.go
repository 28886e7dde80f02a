// Package scenario reads simulation input: the product catalog, the producers
// with what they make, the consumers with their cart scripts, and the
// marketplace queue size.
package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
)

func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer f.Close()

	sc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func Parse(r io.Reader) (*Scenario, error) {
	var doc scenarioDoc
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}

	if doc.Marketplace.QueueSizePerProducer <= 0 {
		return nil, fmt.Errorf("invalid queue_size_per_producer: %d", doc.Marketplace.QueueSizePerProducer)
	}

	sc := &Scenario{
		QueueSizePerProducer: doc.Marketplace.QueueSizePerProducer,
		Products:             make(map[string]models.Product, len(doc.Products)),
	}

	for id, p := range doc.Products {
		prod, err := p.toProduct()
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", id, err)
		}
		sc.Products[id] = prod
	}

	names := make(map[string]bool)
	for i, p := range doc.Producers {
		spec, err := sc.producer(i, p)
		if err != nil {
			return nil, err
		}
		if names[spec.Name] {
			return nil, fmt.Errorf("duplicate producer name %q", spec.Name)
		}
		names[spec.Name] = true
		sc.Producers = append(sc.Producers, spec)
	}

	names = make(map[string]bool)
	for i, c := range doc.Consumers {
		spec, err := sc.consumer(i, c)
		if err != nil {
			return nil, err
		}
		if names[spec.Name] {
			return nil, fmt.Errorf("duplicate consumer name %q", spec.Name)
		}
		names[spec.Name] = true
		sc.Consumers = append(sc.Consumers, spec)
	}

	return sc, nil
}

func (p productDoc) toProduct() (models.Product, error) {
	switch p.ProductType {
	case models.ProductKindTea:
		return models.Tea{Name: p.Name, Price: p.Price, Type: p.Type}, nil
	case models.ProductKindCoffee:
		return models.Coffee{Name: p.Name, Price: p.Price, Acidity: p.Acidity, RoastLevel: p.RoastLevel}, nil
	default:
		return nil, fmt.Errorf("unknown product_type %q", p.ProductType)
	}
}

func (sc *Scenario) producer(i int, p producerDoc) (ProducerSpec, error) {
	name := p.Name
	if name == "" {
		name = fmt.Sprintf("prod%d", i+1)
	}

	wait, err := seconds(p.RepublishWaitTime)
	if err != nil {
		return ProducerSpec{}, fmt.Errorf("producer %q republish_wait_time: %w", name, err)
	}

	spec := ProducerSpec{Name: name, RepublishWait: wait}
	for _, e := range p.Products {
		prod, ok := sc.Products[e.ProductID]
		if !ok {
			return ProducerSpec{}, fmt.Errorf("producer %q: unknown product %q", name, e.ProductID)
		}
		if e.Quantity <= 0 {
			return ProducerSpec{}, fmt.Errorf("producer %q: invalid quantity %d for %q", name, e.Quantity, e.ProductID)
		}
		w, err := seconds(e.Seconds)
		if err != nil {
			return ProducerSpec{}, fmt.Errorf("producer %q wait time for %q: %w", name, e.ProductID, err)
		}
		spec.Catalog = append(spec.Catalog, CatalogEntry{
			ProductID: e.ProductID,
			Product:   prod,
			Quantity:  e.Quantity,
			Wait:      w,
		})
	}

	return spec, nil
}

func (sc *Scenario) consumer(i int, c consumerDoc) (ConsumerSpec, error) {
	name := c.Name
	if name == "" {
		name = fmt.Sprintf("cons%d", i+1)
	}

	wait, err := seconds(c.RetryWaitTime)
	if err != nil {
		return ConsumerSpec{}, fmt.Errorf("consumer %q retry_wait_time: %w", name, err)
	}

	spec := ConsumerSpec{Name: name, RetryWait: wait}
	for _, cart := range c.Carts {
		actions := make([]Action, 0, len(cart))
		for _, a := range cart {
			if a.Type != ActionAdd && a.Type != ActionRemove {
				return ConsumerSpec{}, fmt.Errorf("consumer %q: unknown action type %q", name, a.Type)
			}
			prod, ok := sc.Products[a.ProductID]
			if !ok {
				return ConsumerSpec{}, fmt.Errorf("consumer %q: unknown product %q", name, a.ProductID)
			}
			if a.Quantity <= 0 {
				return ConsumerSpec{}, fmt.Errorf("consumer %q: invalid quantity %d for %q", name, a.Quantity, a.ProductID)
			}
			actions = append(actions, Action{
				Type:      a.Type,
				ProductID: a.ProductID,
				Product:   prod,
				Quantity:  a.Quantity,
			})
		}
		spec.Carts = append(spec.Carts, actions)
	}

	return spec, nil
}

func seconds(s float64) (time.Duration, error) {
	if s < 0 {
		return 0, fmt.Errorf("negative wait time %v", s)
	}
	return time.Duration(s * float64(time.Second)), nil
}
