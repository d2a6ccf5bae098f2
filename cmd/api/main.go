package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/navidnahidi/canals/internal/config"
	"github.com/navidnahidi/canals/internal/geocode"
	"github.com/navidnahidi/canals/internal/httpx"
	kafkax "github.com/navidnahidi/canals/internal/kafka"
	"github.com/navidnahidi/canals/internal/orders"
	"github.com/navidnahidi/canals/internal/payment"
	"github.com/navidnahidi/canals/internal/postgres"
	"github.com/navidnahidi/canals/internal/redisx"
	"github.com/navidnahidi/canals/internal/warehouse"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers
	prodOK := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderFulfilled, 1024, log)
	prodOK.Start(ctx)
	prodReject := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderRejected, 1024, log)
	prodReject.Start(ctx)

	// Repos & domain service
	whRepo := &warehouse.Repo{DB: db}
	svc := &orders.Service{
		Geocoder: geocode.NewStatic(),
		Picker: &warehouse.Selector{
			Stock:      whRepo,
			Warehouses: whRepo,
			Unit:       cfg.DistanceUnit,
		},
		Catalog:      &orders.CatalogRepo{DB: db},
		Gateway:      payment.NewSandbox(),
		Reservations: &orders.ReservationRepo{DB: db},
		Orders:       &orders.Repo{DB: db},
	}

	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		Service:        svc,
		Redis:          rdb,
		ProducerOK:     prodOK,
		ProducerReject: prodReject,
		Log:            log,
		ServiceName:    cfg.ServiceName,
	}
	oh.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	// close inboxes first so both loops flush before the write ctx dies
	prodOK.Close()
	prodReject.Close()
	prodOK.WaitClosed()
	prodReject.WaitClosed()
}
