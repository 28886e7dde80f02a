package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
	"github.com/vogiaan1904/ticketbottle-marketplace/pkg/logger"
	"github.com/vogiaan1904/ticketbottle-marketplace/pkg/util"
)

// ReceiptRepository is a write-mostly audit trail of placed orders. It is not
// marketplace state; nothing is read back into the Marketplace.
type ReceiptRepository interface {
	Save(ctx context.Context, r *models.Receipt) error
	GetConsumerOrders(ctx context.Context, consumer string) ([]string, error)
	GetOrderProducts(ctx context.Context, orderID string) ([]string, error)
	GetSales(ctx context.Context) (map[string]int64, error)
}

type redisReceiptRepository struct {
	cli    *redis.Client
	prefix string
	ttl    time.Duration
	l      logger.Logger
}

// NewRedisReceiptRepository stores keys under prefix ("marketplace" when
// empty). A zero ttl keeps order keys forever.
func NewRedisReceiptRepository(cli *redis.Client, prefix string, ttl time.Duration, l logger.Logger) ReceiptRepository {
	if prefix == "" {
		prefix = "marketplace"
	}

	return &redisReceiptRepository{
		cli:    cli,
		prefix: prefix,
		ttl:    ttl,
		l:      l,
	}
}

func (r *redisReceiptRepository) Save(ctx context.Context, rc *models.Receipt) error {
	products := make([]string, 0, len(rc.Products))
	for _, p := range rc.Products {
		products = append(products, p.String())
	}

	productsJSON, err := json.Marshal(products)
	if err != nil {
		r.l.Errorf(ctx, "redisReceiptRepository.Save: %v", err)
		return err
	}

	oKey := r.orderKey(rc.OrderID)
	cKey := r.consumerKey(rc.Consumer)

	pipe := r.cli.TxPipeline()
	pipe.HSet(ctx, oKey, map[string]any{
		"consumer":  rc.Consumer,
		"cart_id":   int64(rc.CartID),
		"total":     rc.Total,
		"placed_at": util.TimeToISO8601Str(rc.PlacedAt),
		"products":  string(productsJSON),
	})
	pipe.RPush(ctx, cKey, rc.OrderID)
	for _, p := range products {
		pipe.HIncrBy(ctx, r.salesKey(), p, 1)
	}
	if r.ttl > 0 {
		pipe.Expire(ctx, oKey, r.ttl)
		pipe.Expire(ctx, cKey, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		r.l.Errorf(ctx, "redisReceiptRepository.Save: %v", err)
		return err
	}

	r.l.Debugf(ctx, "redisReceiptRepository.Save: order %s for %s with %d products",
		rc.OrderID, rc.Consumer, len(products))

	return nil
}

func (r *redisReceiptRepository) GetConsumerOrders(ctx context.Context, consumer string) ([]string, error) {
	ids, err := r.cli.LRange(ctx, r.consumerKey(consumer), 0, -1).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisReceiptRepository.GetConsumerOrders: %v", err)
		return nil, err
	}

	return ids, nil
}

func (r *redisReceiptRepository) GetOrderProducts(ctx context.Context, orderID string) ([]string, error) {
	raw, err := r.cli.HGet(ctx, r.orderKey(orderID), "products").Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("order %s not found", orderID)
		}
		r.l.Errorf(ctx, "redisReceiptRepository.GetOrderProducts: %v", err)
		return nil, err
	}

	var products []string
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, fmt.Errorf("failed to decode order %s products: %w", orderID, err)
	}

	return products, nil
}

func (r *redisReceiptRepository) GetSales(ctx context.Context) (map[string]int64, error) {
	raw, err := r.cli.HGetAll(ctx, r.salesKey()).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisReceiptRepository.GetSales: %v", err)
		return nil, err
	}

	sales := make(map[string]int64, len(raw))
	for product, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sales counter for %s: %w", product, err)
		}
		sales[product] = n
	}

	return sales, nil
}

func (r *redisReceiptRepository) orderKey(orderID string) string {
	return fmt.Sprintf("%s:order:%s", r.prefix, orderID)
}

func (r *redisReceiptRepository) consumerKey(consumer string) string {
	return fmt.Sprintf("%s:consumer:%s:orders", r.prefix, consumer)
}

func (r *redisReceiptRepository) salesKey() string {
	return fmt.Sprintf("%s:sales", r.prefix)
}
