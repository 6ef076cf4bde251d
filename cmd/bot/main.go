package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuanku/ppob-bot/internal/config"
	"github.com/cuanku/ppob-bot/internal/gateway"
	"github.com/cuanku/ppob-bot/internal/httpx"
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
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("db schema: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, order.TopicTrxExecuted, 1024)
	prod.Start(ctx)

	// Gateway client
	signer := gateway.Signer{
		MemberID: cfg.Gateway.MemberID,
		PIN:      cfg.Gateway.PIN,
		Password: cfg.Gateway.Password,
	}
	fo := gateway.NewFailover(cfg.Gateway.Endpoint, cfg.Gateway.BackupURL)
	gw := gateway.NewClient(signer, fo, cfg.Gateway.Timeout, cfg.Gateway.PriceListURL)

	// Workflow & handler
	flow := &order.Workflow{
		Sessions: &order.RedisSessionStore{RDB: rdb},
		Store:    &order.Repo{DB: db},
		Gateway:  gw,
		Producer: prod,
		Service:  cfg.ServiceName,
	}
	router := httpx.NewRouter()
	wh := &httpx.WebhookHandler{
		Flow:      flow,
		Trx:       &order.Repo{DB: db},
		PriceList: gw,
		Redis:     rdb,
		AdminIDs:  cfg.AdminIDs,
	}
	wh.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // tutup inbox -> flush & close writer
	cancel()          // stop producer loop
	prod.WaitClosed() // drain
}
