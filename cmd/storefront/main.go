package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parapharma/storefront/internal/cart"
	"github.com/parapharma/storefront/internal/catalog"
	"github.com/parapharma/storefront/internal/checkout"
	"github.com/parapharma/storefront/internal/config"
	"github.com/parapharma/storefront/internal/events"
	"github.com/parapharma/storefront/internal/httpx"
)

func main() {
	cfg := config.Load()

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	catalogRepo := catalog.NewPGRepo(pool)
	orderRepo := checkout.NewPGRepo(pool)

	snaps, err := cart.NewFileSnapshots(cfg.CartSnapshotDir)
	if err != nil {
		log.Fatalf("cart snapshots: %v", err)
	}
	carts := cart.NewManager(snaps)
	defer carts.Flush()

	var pub checkout.Publisher
	if cfg.RabbitMQURL != "" {
		p, err := events.Dial(cfg.RabbitMQURL, cfg.OrderExchange, cfg.OrderQueue)
		if err != nil {
			// The broker is optional; checkout works without events.
			log.Printf("[events] broker unavailable: %v", err)
		} else {
			defer p.Close()
			pub = p
		}
	}
	svc := checkout.NewService(orderRepo, pub)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), httpx.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/home", homeHandler(catalogRepo))
		api.GET("/catalogue", catalogueHandler(catalogRepo))
		api.GET("/categories", categoriesHandler(catalogRepo))
		api.GET("/categories/:slug", categoryHandler(catalogRepo))
		api.GET("/brands", brandsHandler(catalogRepo))
		api.GET("/brands/:slug", brandHandler(catalogRepo))
		api.GET("/promos", promosHandler(catalogRepo))
		api.GET("/search", searchHandler(catalogRepo))
		api.GET("/products/:slug", productHandler(catalogRepo))

		api.GET("/cart", getCartHandler(carts))
		api.POST("/cart/items", addCartItemHandler(carts, catalogRepo))
		api.PUT("/cart/items/:productId", updateCartItemHandler(carts))
		api.DELETE("/cart/items/:productId", removeCartItemHandler(carts))
		api.DELETE("/cart", clearCartHandler(carts))

		api.POST("/checkout", checkoutHandler(svc, carts))
		api.GET("/orders/:orderNumber", orderHandler(orderRepo))

		api.GET("/faq", faqHandler())
		api.GET("/contact", contactHandler())
	}

	log.Printf("storefront listening on %s", cfg.HTTPAddr)
	log.Fatal(r.Run(cfg.HTTPAddr))
}
