package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/redis/go-redis/v9"
	repo "github.com/vogiaan1904/ticketbottle-marketplace/internal/repository/redis"
	pkgLog "github.com/vogiaan1904/ticketbottle-marketplace/pkg/logger"
)

var (
	numProducers = flag.Int("producers", 2, "Number of producers")
	numConsumers = flag.Int("consumers", 4, "Number of consumers")
	numCarts     = flag.Int("carts", 2, "Carts per consumer")
	queueSize    = flag.Int("queue-size", 8, "Queue size per producer")
	seed         = flag.Int64("seed", 1, "Random seed")
	outFile      = flag.String("out", "", "Write the scenario here instead of stdout")

	report    = flag.Bool("report", false, "Print the sales recorded in Redis and exit")
	redisURL  = flag.String("redis", "localhost:6379", "Redis URL (host:port)")
	redisPass = flag.String("password", "", "Redis password")
	prefix    = flag.String("prefix", "marketplace", "Receipt key prefix")
)

var catalog = map[string]map[string]any{
	"id1": {"product_type": "Coffee", "name": "Indonezia", "price": 1, "acidity": 5.05, "roast_level": "MEDIUM"},
	"id2": {"product_type": "Tea", "name": "Linden", "price": 9, "type": "Herbal"},
	"id3": {"product_type": "Coffee", "name": "Brazil", "price": 7, "acidity": 5.09, "roast_level": "HIGH"},
	"id4": {"product_type": "Tea", "name": "Wild Cherry", "price": 5, "type": "Black"},
	"id5": {"product_type": "Tea", "name": "Cactus fig", "price": 3, "type": "Green"},
	"id6": {"product_type": "Coffee", "name": "Ethiopia", "price": 10, "acidity": 5.09, "roast_level": "MEDIUM"},
}

func main() {
	flag.Parse()

	if *report {
		if err := printSales(); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *numProducers < 1 || *numConsumers < 0 || *numCarts < 1 || *queueSize < 1 {
		fmt.Println("Error: producers, carts and queue-size must be positive")
		flag.Usage()
		os.Exit(1)
	}

	rnd := rand.New(rand.NewSource(*seed))
	doc := generate(rnd)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		fmt.Printf("❌ Failed to encode scenario: %v\n", err)
		os.Exit(1)
	}

	if *outFile == "" {
		fmt.Println(string(data))
		return
	}

	if err := os.WriteFile(*outFile, append(data, '\n'), 0o644); err != nil {
		fmt.Printf("❌ Failed to write %s: %v\n", *outFile, err)
		os.Exit(1)
	}
	fmt.Printf("✅ Wrote scenario with %d producers and %d consumers to %s\n", *numProducers, *numConsumers, *outFile)
}

func generate(rnd *rand.Rand) map[string]any {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Consumers only ask for what some producer makes, so every run can finish.
	published := map[string]bool{}
	producers := make([]map[string]any, 0, *numProducers)
	for i := 0; i < *numProducers; i++ {
		rnd.Shuffle(len(ids), func(a, b int) { ids[a], ids[b] = ids[b], ids[a] })

		entries := make([][]any, 0, 2)
		for _, id := range ids[:1+rnd.Intn(3)] {
			entries = append(entries, []any{id, 1 + rnd.Intn(3), waitTime(rnd, 0.05, 0.25)})
			published[id] = true
		}

		producers = append(producers, map[string]any{
			"name":                fmt.Sprintf("prod%d", i+1),
			"republish_wait_time": waitTime(rnd, 0.1, 0.2),
			"products":            entries,
		})
	}

	wanted := make([]string, 0, len(published))
	for id := range published {
		wanted = append(wanted, id)
	}
	sort.Strings(wanted)

	consumers := make([]map[string]any, 0, *numConsumers)
	for i := 0; i < *numConsumers; i++ {
		carts := make([][]map[string]any, 0, *numCarts)
		for c := 0; c < *numCarts; c++ {
			var actions []map[string]any
			for a := 0; a < 1+rnd.Intn(3); a++ {
				id := wanted[rnd.Intn(len(wanted))]
				qty := 1 + rnd.Intn(2)
				actions = append(actions, map[string]any{"type": "add", "product": id, "quantity": qty})
				if rnd.Intn(4) == 0 {
					actions = append(actions, map[string]any{"type": "remove", "product": id, "quantity": 1})
				}
			}
			carts = append(carts, actions)
		}

		consumers = append(consumers, map[string]any{
			"name":            fmt.Sprintf("cons%d", i+1),
			"retry_wait_time": waitTime(rnd, 0.1, 0.3),
			"carts":           carts,
		})
	}

	products := make(map[string]any, len(published))
	for id := range published {
		products[id] = catalog[id]
	}

	return map[string]any{
		"marketplace": map[string]any{"queue_size_per_producer": *queueSize},
		"products":    products,
		"producers":   producers,
		"consumers":   consumers,
	}
}

// waitTime returns seconds in [lo, hi) rounded to milliseconds.
func waitTime(rnd *rand.Rand, lo, hi float64) float64 {
	ms := int((lo + rnd.Float64()*(hi-lo)) * 1000)
	return float64(ms) / 1000
}

func printSales() error {
	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{
		Addr:     *redisURL,
		Password: *redisPass,
		DB:       0,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	fmt.Printf("✅ Connected to Redis at %s\n", *redisURL)

	l := pkgLog.InitializeZapLogger(pkgLog.ZapConfig{Level: "warn", Mode: "development", Encoding: "console"})
	defer l.Sync()
	sales, err := repo.NewRedisReceiptRepository(rdb, *prefix, 0, l).GetSales(ctx)
	if err != nil {
		return fmt.Errorf("failed to read sales: %w", err)
	}

	names := make([]string, 0, len(sales))
	for name := range sales {
		names = append(names, name)
	}
	sort.Strings(names)

	var total int64
	fmt.Println("\n📊 Sales:")
	for _, name := range names {
		fmt.Printf("   %4d  %s\n", sales[name], name)
		total += sales[name]
	}
	fmt.Printf("   %4d  total\n", total)

	return nil
}
