package main

import (
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/tienda-store/fulfillment/internal/cache"
	"github.com/tienda-store/fulfillment/internal/config"
	"github.com/tienda-store/fulfillment/internal/dispatch"
	"github.com/tienda-store/fulfillment/internal/handlers"
	"github.com/tienda-store/fulfillment/internal/mail"
	"github.com/tienda-store/fulfillment/internal/messaging"
	"github.com/tienda-store/fulfillment/internal/novedades"
	"github.com/tienda-store/fulfillment/internal/obs"
	"github.com/tienda-store/fulfillment/internal/repository"
	"github.com/tienda-store/fulfillment/internal/service"
	"github.com/tienda-store/fulfillment/internal/stock"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	log, err := obs.NewLogger(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("🚀 fulfillment service starting")

	catalogDB, err := openDatabase(cfg.CatalogDSN)
	if err != nil {
		log.Fatal("catalog database connection error", zap.Error(err))
	}
	defer catalogDB.Close()

	ordersDB, err := openDatabase(cfg.OrdersDSN)
	if err != nil {
		log.Fatal("orders database connection error", zap.Error(err))
	}
	defer ordersDB.Close()

	// RabbitMQ connection for the real-time change channel
	rabbitConfig := messaging.NewRabbitMQConfig()
	rabbitClient := messaging.NewRabbitMQClient(rabbitConfig, log)
	if err := rabbitClient.Connect(); err != nil {
		log.Fatal("rabbitmq connection error", zap.Error(err))
	}
	defer rabbitClient.Close()

	publisher := messaging.NewChangePublisher(rabbitClient, log)
	mailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	dispatcher := dispatch.New(cfg.DispatchWorkers, cfg.DispatchQueueSize, log)
	defer dispatcher.Stop()

	// Cache backend: in-process map for dev, Redis for shared deployments
	var cacheStore cache.Store
	if cfg.CacheBackend == "redis" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		cacheStore = cache.NewRedisStore(client, log)
		log.Info("cache backend: redis", zap.String("addr", cfg.RedisAddr))
	} else {
		cacheStore = cache.NewMemoryStore()
		log.Info("cache backend: memory")
	}
	ttl := cache.DefaultTTLPolicy()

	// Repositories wrapped by the coherence layer
	products := cache.NewCachedProductStore(repository.NewProductRepository(catalogDB), cacheStore, ttl.Product)
	categories := cache.NewCachedCategoryStore(repository.NewCategoryRepository(catalogDB), cacheStore, ttl.Category)
	orders := cache.NewCachedOrderStore(repository.NewOrderRepository(ordersDB), cacheStore, ttl.Order)
	watermarks := repository.NewWatermarkRepository(catalogDB)

	engine := stock.NewEngine(log)
	orderService := service.NewOrderService(orders, products, engine, dispatcher, mailer, publisher, log)
	productService := service.NewProductService(products, categories, orders, dispatcher, publisher, log)
	categoryService := service.NewCategoryService(categories, products, log)

	// Scheduled new-arrivals digest
	scheduler := cron.New()
	task := novedades.NewTask(products, watermarks, dispatcher, mailer, cfg.NovedadesRecipients, log)
	if _, err := scheduler.AddFunc(cfg.NovedadesCron, task.Run); err != nil {
		log.Fatal("new arrivals schedule error", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := handlers.NewApp()
	handlers.SetupRoutes(app,
		handlers.NewProductHandler(productService),
		handlers.NewCategoryHandler(categoryService),
		handlers.NewOrderHandler(orderService))

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("🛑 fulfillment service closing")
		if err := app.Shutdown(); err != nil {
			log.Error("shutdown error", zap.Error(err))
		}
	}()

	log.Info("🌍 fulfillment service listening", zap.String("addr", cfg.HTTPAddr))
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatal("server start error", zap.Error(err))
	}
}

func openDatabase(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("database open error: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("database ping error: %w", err)
	}
	return db, nil
}
