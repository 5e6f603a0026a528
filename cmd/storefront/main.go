package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/int-arsh/akash-ecom/internal/cart"
	"github.com/int-arsh/akash-ecom/internal/catalog"
	"github.com/int-arsh/akash-ecom/internal/checkout"
	h "github.com/int-arsh/akash-ecom/internal/http"
	"github.com/int-arsh/akash-ecom/internal/outcome"
	"github.com/int-arsh/akash-ecom/internal/payment"
)

type Config struct {
	HTTPPort        string
	PaymentAPIURL   string
	RedisAddr       string
	DBPath          string
	MigrationsPath  string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		PaymentAPIURL:   getEnv("PAYMENT_API_URL", "http://localhost:4242"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		DBPath:          getEnv("DB_PATH", "./storefront.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./internal/catalog/migrations"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	products, err := catalog.NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open catalog: %v", err)
	}
	defer products.Close()

	if err := products.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Println("catalog migrations completed")

	store := newCartStore(cfg)

	paymentClient := payment.NewClient(cfg.PaymentAPIURL, cfg.RequestTimeout)
	checkoutService := checkout.NewService(paymentClient, store)
	reconciler := outcome.NewReconciler(paymentClient)

	catalogHandler := h.NewCatalogHandler(products, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(products, store, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(store, checkoutService, cfg.RequestTimeout)
	outcomeHandler := h.NewOutcomeHandler(reconciler, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Navigation surfaces
	r.Get("/", catalogHandler.ListProducts)
	r.Get("/checkout", checkoutHandler.View)
	r.Get("/payment-success", outcomeHandler.PaymentSuccess)
	r.Get("/payment-failed", outcomeHandler.PaymentFailed)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})
		r.Post("/checkout", checkoutHandler.Submit)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

// newCartStore prefers Redis and degrades to the in-memory store when Redis
// is not reachable at startup. Carts are short-lived either way.
func newCartStore(cfg *Config) cart.Store {
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s, using in-memory cart store: %v", cfg.RedisAddr, err)
		return cart.NewMemoryStore()
	}

	log.Printf("using redis cart store at %s", cfg.RedisAddr)
	return cart.NewRedisStore(client)
}
