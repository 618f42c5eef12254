package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"overcooked-orders/config"
	httpapi "overcooked-orders/order-svc/internal/api/http"
	"overcooked-orders/order-svc/internal/domain"
	"overcooked-orders/order-svc/internal/service"
	"overcooked-orders/order-svc/internal/storage"

	"github.com/shopspring/decimal"
)

type backend interface {
	service.StockStore
	service.DishCatalog
	service.OrderRepository
	service.UserDirectory
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store backend
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		mem := storage.NewMemoryStore()
		seedMemoryStore(mem)
		store = mem
		log.Println("[order-svc] using in-memory storage")
	default:
		db := config.MustInitPostgres(cfg.Postgres)
		defer db.Close()
		repo := storage.NewPostgresRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to prepare schema: ", err)
		}
		store = repo
	}

	opts := []service.OrderServiceOption{
		service.WithPricer(service.NewPricer(cfg.DeliverySurcharge)),
	}

	var cache service.OrderViewCache
	if addr := cfg.RedisAddr(); addr != "" {
		client := config.MustInitRedis(addr)
		defer client.Close()
		cache = storage.NewRedisCache(client, cfg.OrderCacheTTL)
		opts = append(opts, service.WithViewCache(cache))
	} else {
		log.Println("[order-svc] REDIS_HOST not set, order view cache disabled")
	}

	if cfg.KafkaBroker != "" {
		writer := config.NewKafkaWriter(cfg.KafkaBroker, cfg.OrderEventsTopic)
		defer writer.Close()
		opts = append(opts, service.WithPublisher(storage.NewKafkaPublisher(writer)))
	} else {
		log.Println("[order-svc] KAFKA_BROKER not set, order events disabled")
	}

	orderSvc, router := newApp(cfg, store, cache, opts...)
	server := httpapi.NewServer(cfg.HTTPAddr, router)

	go func() {
		log.Printf("Order Service starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("[order-svc] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[order-svc] WARNING: shutdown: %v", err)
	}
	orderSvc.Wait()
}

func newApp(cfg config.Config, store backend, cache service.OrderViewCache, opts ...service.OrderServiceOption) (*service.OrderService, http.Handler) {
	ledger := service.NewLedger(store)
	orderSvc := service.NewOrderService(ledger, store, opts...)
	querySvc := service.NewOrderQueryService(store, store, store, cache, service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL})
	return orderSvc, httpapi.NewRouter(httpapi.NewHandler(orderSvc, querySvc))
}

func seedMemoryStore(mem *storage.MemoryStore) {
	mem.PutUser(domain.User{ID: 1, Name: "Demo User", Email: "demo@example.com", Role: "user"})
	mem.PutDish(domain.Dish{ID: 1, Name: "Margherita", Price: decimal.NewFromInt(10), Inventory: 50})
	mem.PutDish(domain.Dish{ID: 2, Name: "Carbonara", Price: decimal.NewFromInt(5), Inventory: 50})
	mem.PutDish(domain.Dish{ID: 3, Name: "Tiramisu", Price: decimal.RequireFromString("4.50"), Inventory: 20})
}
