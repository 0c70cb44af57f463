package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	accountcmd "github.com/eaglebank/bank-account-service/internal/command"
	"github.com/eaglebank/bank-account-service/internal/handler"
	accountqry "github.com/eaglebank/bank-account-service/internal/query"
	"github.com/eaglebank/bank-account-service/internal/repository"
	"github.com/eaglebank/bank-account-service/internal/seed"
	"github.com/eaglebank/bank-account-service/shared/config"
	"github.com/eaglebank/bank-account-service/shared/events"
	"github.com/eaglebank/bank-account-service/shared/middleware"
	redisClient "github.com/eaglebank/bank-account-service/shared/redis"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Write store
	var (
		customers repository.CustomerRepository
		accounts  repository.AccountRepository
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := repository.NewMemoryStore()
		customers, accounts = store, store
		log.Println("Using in-memory storage")
	case config.StoragePostgres:
		db, err := repository.OpenPostgres(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := repository.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("Failed to prepare database: %v", err)
		}
		customers = repository.NewPostgresCustomerRepository(db)
		accounts = repository.NewPostgresAccountRepository(db)
	}

	// Redis (read model cache + event streaming), optional
	var (
		rdb       *goredis.Client
		processed accountcmd.ProcessedTransactions
	)
	if cfg.Redis.Addr != "" {
		client, err := redisClient.NewClient(ctx, redisClient.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		rdb = client.Client
		processed = repository.NewProcessedTransactions(rdb)
	} else {
		log.Println("REDIS_ADDR not set; running without cache and events")
	}

	// --- CQRS wiring ---
	publisher := events.NewPublisher(rdb)
	readRepo := repository.NewAccountReadRepository(accounts, rdb, cfg.Redis.CacheTTL)

	accountCommands := accountcmd.NewAccountCommandService(accounts, customers, readRepo, publisher, processed)
	customerCommands := accountcmd.NewCustomerCommandService(customers, publisher)
	accountQueries := accountqry.NewAccountQueryService(readRepo)
	customerQueries := accountqry.NewCustomerQueryService(customers)

	if cfg.SeedData {
		seeder := seed.NewSeeder(customerCommands, accountCommands, rand.New(rand.NewSource(time.Now().UnixNano())))
		if err := seeder.Run(ctx); err != nil {
			log.Fatalf("Failed to seed sample data: %v", err)
		}
	}

	gqlHandler, err := handler.NewGraphQLHandler(accountCommands, accountQueries, customerCommands, customerQueries)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	// Setup router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware())
	handler.RegisterRoutes(router,
		handler.NewAccountHandler(accountCommands, accountQueries),
		handler.NewCustomerHandler(customerCommands, customerQueries),
		gqlHandler,
	)

	if rdb != nil {
		go func() {
			subscriber := events.NewSubscriber(rdb, events.SubscriberConfig{
				Group:    cfg.Ledger.ConsumerGroup,
				Consumer: cfg.Ledger.ConsumerName,
				Stream:   events.TransactionEventsStream,
				Handler:  accountCommands.HandleTransactionEvent,
			})
			if err := subscriber.Start(ctx); err != nil {
				log.Printf("Subscriber stopped: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Bank account service starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}
