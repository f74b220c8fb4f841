package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"radhecafe/internal/cart"
	cartcontroller "radhecafe/internal/cart/controller"
	"radhecafe/internal/commons"
	"radhecafe/internal/infrastructure/events"
	"radhecafe/internal/infrastructure/logger"
	"radhecafe/internal/infrastructure/mysql"
	infraredis "radhecafe/internal/infrastructure/redis"
	"radhecafe/internal/kitchen"
	"radhecafe/internal/menu"
	"radhecafe/internal/order"
	"radhecafe/internal/realtime"
	"radhecafe/internal/reports"
	"radhecafe/internal/server"
	"radhecafe/internal/session"
)

func main() {
	cfg, err := commons.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()

	hub := realtime.NewHub(zapLogger)

	// Redis is optional. With it, sessions survive restarts and change events
	// reach every instance; without it, everything stays in process memory.
	var changes realtime.Publisher = hub
	var sessions session.Store = session.NewMemoryStore(cfg.Session.TTL)
	if cfg.Redis.Addr != "" {
		rdb, err := infraredis.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("connecting to redis", zap.Error(err))
		}
		defer rdb.Close()
		zapLogger.Info("redis connected", zap.String("addr", cfg.Redis.Addr))

		sessions = session.NewRedisStore(rdb, cfg.Session.TTL)

		bridge := realtime.NewBridge(hub, rdb, zapLogger)
		go bridge.Run(runCtx)
		changes = bridge
	}

	producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, zapLogger)
	defer producer.Close()
	if producer != nil {
		zapLogger.Info("kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	carts := cart.NewRegistry()

	menuCtrl, menuSvc := menu.NewModule(db, cfg, zapLogger)
	cartCtrl := cartcontroller.NewCartController(carts, menuSvc, zapLogger)
	orderCtrl := order.NewModule(db, cfg, carts, sessions, changes, producer, hub, zapLogger)
	kitchenCtrl := kitchen.NewModule(db, cfg, changes, producer, hub, zapLogger)
	reportCtrl := reports.NewModule(db, cfg, zapLogger)

	router := server.NewRouter(server.Controllers{
		Menu:    menuCtrl,
		Cart:    cartCtrl,
		Order:   orderCtrl,
		Kitchen: kitchenCtrl,
		Reports: reportCtrl,
	}, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
