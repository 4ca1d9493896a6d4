package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/sahra-perfumes/storefront/docs"
	"github.com/sahra-perfumes/storefront/internal/cache"
	"github.com/sahra-perfumes/storefront/internal/catalog"
	"github.com/sahra-perfumes/storefront/internal/config"
	"github.com/sahra-perfumes/storefront/internal/contact"
	"github.com/sahra-perfumes/storefront/internal/order"
	"github.com/sahra-perfumes/storefront/internal/report"
	"github.com/sahra-perfumes/storefront/internal/user"
)

// @title          Sahra Storefront API
// @version        1.0
// @description    Perfume storefront backend: catalog, order placement, contact intake and admin reporting.
// @BasePath       /api
func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("postgres ping: %v", err)
	}

	var ch cache.Cache
	if cfg.RedisAddr != "" {
		ch = cache.NewRedis(cfg.RedisAddr, "storefront")
	}

	products := catalog.NewPGRepo(pool)
	orders := order.NewPGRepo(pool)

	a := app{
		db:       pool,
		products: products,
		orders:   orders,
		placer:   order.NewService(products, orders),
		contacts: contact.NewPGRepo(pool),
		users:    user.NewService(user.NewPGRepo(pool)),
		reports:  report.NewPGRepo(pool, products),
		cache:    ch,
	}

	r := newRouter(a)
	log.Printf("storefront listening on %s", cfg.Addr)
	log.Fatal(r.Run(cfg.Addr))
}
