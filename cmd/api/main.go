package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"frituurgros/internal/cartledger"
	"frituurgros/internal/config"
	"frituurgros/internal/db"
	"frituurgros/internal/events"
	"frituurgros/internal/httpserver"
	adminrepo "frituurgros/internal/repository/admin"
	categoryrepo "frituurgros/internal/repository/category"
	clientrepo "frituurgros/internal/repository/client"
	orderrepo "frituurgros/internal/repository/order"
	productrepo "frituurgros/internal/repository/product"
	tokenrepo "frituurgros/internal/repository/token"
	zonerepo "frituurgros/internal/repository/zone"
	"frituurgros/internal/schedule"
	accountsvc "frituurgros/internal/service/account"
	catalogsvc "frituurgros/internal/service/catalog"
	checkoutsvc "frituurgros/internal/service/checkout"
	sessionsvc "frituurgros/internal/service/session"
	zonesvc "frituurgros/internal/service/zone"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	adminRepo := adminrepo.NewPostgres(dbpool)
	clientRepo := clientrepo.NewPostgres(dbpool)
	zoneRepo := zonerepo.NewPostgres(dbpool)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)
	tokenRepo := tokenrepo.NewPostgres(dbpool)

	var carts *cartledger.Manager
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		carts = cartledger.NewManager(cartledger.RedisOpener(redisClient, "cart"))
		logger.Info("carts persisted in redis", zap.String("addr", cfg.RedisAddr))
	} else {
		carts = cartledger.NewManager(cartledger.MemoryOpener())
		logger.Warn("no REDIS_ADDR configured, carts are in-memory only")
	}

	policy := schedule.Policy{
		MinLeadDays:      cfg.MinLeadDays,
		MaxLookaheadDays: cfg.MaxLookaheadDays,
		MaxResults:       cfg.MaxDeliveryDates,
	}

	var checkoutService *checkoutsvc.Service
	if cfg.KafkaBrokers != "" {
		producer := events.NewProducer(cfg.KafkaBrokers, logger)
		defer producer.Close()
		checkoutService = checkoutsvc.New(orderRepo, producer, policy, cfg.SubmitTimeout, logger)
		logger.Info("order events published to kafka", zap.String("brokers", cfg.KafkaBrokers))
	} else {
		checkoutService = checkoutsvc.New(orderRepo, events.Nop{}, policy, cfg.SubmitTimeout, logger)
	}

	accountService := accountsvc.New(clientRepo, adminRepo, tokenRepo, cfg.AccessTTL, cfg.RefreshTTL)
	sessionService := sessionsvc.New(adminRepo, clientRepo, logger)
	catalogService := catalogsvc.New(productRepo, categoryRepo)
	zoneService := zonesvc.New(zoneRepo)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Accounts: accountService,
		Session:  sessionService,
		Catalog:  catalogService,
		Zones:    zoneService,
		Checkout: checkoutService,
		Orders:   orderRepo,
		Carts:    carts,
	}, cfg.CORSOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
