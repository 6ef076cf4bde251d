package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cuanku/ppob-bot/internal/audit"
	"github.com/cuanku/ppob-bot/internal/config"
	kafkax "github.com/cuanku/ppob-bot/internal/kafka"
	"github.com/cuanku/ppob-bot/internal/order"
	"github.com/cuanku/ppob-bot/internal/postgres"
	"github.com/cuanku/ppob-bot/internal/redisx"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Service
	svc := &audit.Service{
		Repo:        &order.Repo{DB: db},
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-auditor",
	}

	// Sweep PENDING yang nyangkut
	sweepEvery := durEnv("AUDIT_SWEEP_INTERVAL", time.Minute)
	cutoff := durEnv("AUDIT_PENDING_CUTOFF", 10*time.Minute)
	go svc.SweepStalePending(ctx, sweepEvery, cutoff)

	// Consumer
	group := getenv("AUDIT_GROUP", "trx-auditor")
	workers := mustAtoi(os.Getenv("AUDIT_WORKERS"), "2")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, order.TopicTrxExecuted, workers)

	go func() {
		log.Printf("audit consumer started: group=%s topic=%s workers=%d", group, order.TopicTrxExecuted, workers)
		if err := cons.Start(ctx, svc.HandleTrxExecuted); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down auditor...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func durEnv(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
