package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GiorgiUbiria/bookkeeping_system/configs"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/events"
	eventskafka "github.com/GiorgiUbiria/bookkeeping_system/internal/events/kafka"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/handlers"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/ledger"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/logger"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/orders"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/routes"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/seed"
	"github.com/GiorgiUbiria/bookkeeping_system/internal/store"
	"go.uber.org/zap"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	configs.LoadConfig()

	db, err := store.New(configs.AppConfig.DB.DSN)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	logger.Log.Info("connected to the database")

	if err := store.Migrate(db); err != nil {
		logger.Log.Fatal("migrations failed", zap.Error(err))
	}
	logger.Log.Info("migrations loaded")

	seed.Run(db)

	var pub events.Publisher = events.Noop{}
	if brokers := configs.AppConfig.Kafka.Brokers; len(brokers) > 0 {
		kp := eventskafka.NewPublisher(brokers)
		defer kp.Close()
		pub = kp
		logger.Log.Info("kafka publisher enabled", zap.Strings("brokers", brokers))
	}

	ledgerSvc := ledger.NewService(db, pub)
	orderSvc := orders.NewService(db, pub)
	h := handlers.New(db, ledgerSvc, orderSvc)

	router := routes.New(h)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Log.Error("db close skipped, reason:", zap.Error(err))
	} else {
		sqlDB.Close()
		logger.Log.Info("db closed")
	}

	logger.Log.Info("server stopped")
}
