package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	kafka "github.com/vogiaan1904/ticketbottle-marketplace/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-marketplace/pkg/logger"
	"github.com/vogiaan1904/ticketbottle-marketplace/pkg/util"
)

type Producer interface {
	PublishOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error
	Close() error
}

type implProducer struct {
	l     logger.Logger
	prod  sarama.SyncProducer
	topic string
}

// NewProducer publishes to topic, or to kafka.TopicOrderPlaced when topic is empty.
func NewProducer(prod sarama.SyncProducer, topic string, l logger.Logger) Producer {
	if topic == "" {
		topic = kafka.TopicOrderPlaced
	}

	return &implProducer{
		l:     l,
		prod:  prod,
		topic: topic,
	}
}

func (p *implProducer) PublishOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error {
	event.Timestamp = time.Now()
	val, err := json.Marshal(event)
	if err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.PublishOrderPlaced: %v", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.Consumer), // Partition by consumer for ordering
		Value: sarama.ByteEncoder(val),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte(kafka.HeaderTimestamp),
				Value: []byte(util.TimeToISO8601Str(event.Timestamp)),
			},
			{
				Key:   []byte(kafka.HeaderEventType),
				Value: []byte(kafka.EventTypeOrderPlaced),
			},
		},
	}

	partition, offset, err := p.prod.SendMessage(msg)
	if err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.PublishOrderPlaced: %v", err)
		return err
	}

	p.l.Debugf(ctx, "delivery.kafka.producer.PublishOrderPlaced: order %s sent to %s[%d]@%d",
		event.OrderID, p.topic, partition, offset)

	return nil
}

func (p *implProducer) Close() error {
	if err := p.prod.Close(); err != nil {
		return err
	}

	return nil
}
