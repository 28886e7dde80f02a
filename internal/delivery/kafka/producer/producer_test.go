package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kafka "github.com/vogiaan1904/ticketbottle-marketplace/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
	"github.com/vogiaan1904/ticketbottle-marketplace/pkg/logger"
)

func testReceipt() *models.Receipt {
	return models.NewReceipt("order-1", "cons1", models.CartID(4), []models.Product{
		models.Tea{Name: "Linden", Price: 9, Type: "Herbal"},
		models.Coffee{Name: "Indonezia", Price: 1, Acidity: 5.05, RoastLevel: "MEDIUM"},
	}, time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestPublishOrderPlaced(t *testing.T) {
	config := mocks.NewTestConfig()
	config.Producer.Return.Successes = true
	mp := mocks.NewSyncProducer(t, config)

	var sent kafka.OrderPlacedEvent
	mp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "orders" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "cons1" {
			return errors.New("unexpected key " + string(key))
		}
		val, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		return json.Unmarshal(val, &sent)
	})

	p := NewProducer(mp, "orders", logger.InitializeTestZapLogger())
	err := p.PublishOrderPlaced(context.Background(), kafka.NewOrderPlacedEvent(testReceipt()))
	require.NoError(t, err)
	require.NoError(t, p.Close())

	assert.Equal(t, "order-1", sent.OrderID)
	assert.Equal(t, int64(4), sent.CartID)
	assert.Equal(t, 10, sent.Total)
	require.Len(t, sent.Items, 2)
	assert.Equal(t, "Tea", sent.Items[0].Kind)
	assert.Equal(t, "Coffee(name='Indonezia', price=1, acidity=5.05, roast_level='MEDIUM')", sent.Items[1].Display)
	assert.False(t, sent.Timestamp.IsZero())
}

func TestPublishOrderPlaced_DefaultTopic(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	mp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if len(val) == 0 {
			return errors.New("empty payload")
		}
		return nil
	})

	p := NewProducer(mp, "", logger.InitializeTestZapLogger())
	require.NoError(t, p.PublishOrderPlaced(context.Background(), kafka.NewOrderPlacedEvent(testReceipt())))
	require.NoError(t, p.Close())
}

func TestPublishOrderPlaced_SendFails(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	mp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducer(mp, "orders", logger.InitializeTestZapLogger())
	err := p.PublishOrderPlaced(context.Background(), kafka.NewOrderPlacedEvent(testReceipt()))
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}
