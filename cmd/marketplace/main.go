package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/vogiaan1904/ticketbottle-marketplace/config"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/infra/redis"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/marketplace"
	repo "github.com/vogiaan1904/ticketbottle-marketplace/internal/repository/redis"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/scenario"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/service"
	"github.com/vogiaan1904/ticketbottle-marketplace/internal/simulation"
	pkgKafka "github.com/vogiaan1904/ticketbottle-marketplace/pkg/kafka"
	pkgLog "github.com/vogiaan1904/ticketbottle-marketplace/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// marketplace [scenario.json]
	if len(os.Args) > 1 && os.Args[1] != "" {
		cfg.Simulation.InputFile = os.Args[1]
	}

	l := pkgLog.InitializeZapLogger(pkgLog.ZapConfig{
		Level:    cfg.Log.Level,
		Mode:     cfg.Log.Mode,
		Encoding: cfg.Log.Encoding,
	})
	defer l.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, l); err != nil {
		l.Errorf(ctx, "Simulation failed: %v", err)
		l.Sync()
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, l pkgLog.Logger) error {
	sc, err := scenario.Load(cfg.Simulation.InputFile)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	queueSize := sc.QueueSizePerProducer
	if cfg.Marketplace.QueueSizePerProducer > 0 {
		queueSize = cfg.Marketplace.QueueSizePerProducer
	}

	market, err := marketplace.New(queueSize, l)
	if err != nil {
		return fmt.Errorf("failed to create marketplace: %w", err)
	}

	// Receipt ledger
	var receiptRepo repo.ReceiptRepository
	if cfg.Redis.Enabled {
		redisCli, err := redis.Connect(ctx, cfg.Redis, l)
		if err != nil {
			return err
		}
		defer redis.Disconnect(context.Background(), redisCli, l)

		receiptRepo = repo.NewRedisReceiptRepository(redisCli, "", cfg.Redis.ReceiptTTL, l)
	}

	// Order events
	var orderProd producer.Producer
	if cfg.Kafka.Enabled {
		kafkaSyncProd, err := pkgKafka.NewProducer(pkgKafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			RetryMax:     cfg.Kafka.ProducerRetryMax,
			RequiredAcks: cfg.Kafka.ProducerRequiredAcks,
			ClientID:     "marketplace",
		})
		if err != nil {
			return err
		}

		orderProd = producer.NewProducer(kafkaSyncProd, cfg.Kafka.Topic, l)
		defer func() {
			if err := orderProd.Close(); err != nil {
				l.Warnf(context.Background(), "Failed to close Kafka producer: %v", err)
			}
		}()
	}

	orderSvc := service.NewOrderService(market, receiptRepo, orderProd, l)

	var out io.Writer = os.Stdout
	if cfg.Simulation.Output != "" {
		f, err := os.Create(cfg.Simulation.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	runner := simulation.NewRunner(ctx, sc, market, orderSvc, simulation.NewPrinter(out), simulation.RunnerConfig{
		Timeout: cfg.Simulation.Timeout,
	}, l)

	runErr := runner.Run(ctx)

	stats := market.Stats()
	l.Infof(ctx, "Marketplace closed: %d available, %d reserved, %d open carts, %d producers",
		stats.Available, stats.Reserved, stats.OpenCarts, stats.Producers)

	return runErr
}
