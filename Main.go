package main

import (
	"log"

	"github.com/joho/godotenv"

	"infostore/cache"
	"infostore/config"
	"infostore/jwt"
	"infostore/repository"
	"infostore/routers"
	"infostore/services"
)

func main() {
	// .env is optional; it only seeds CONFIG_PATH and friends.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := config.SetupDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	rdb := config.SetupRedis(cfg.Redis)
	defer rdb.Close()

	tokens, err := jwt.NewManager(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath, cfg.JWT.TokenTTL)
	if err != nil {
		log.Fatalf("load jwt keys: %v", err)
	}

	store := repository.NewStore(db)
	products := cache.NewProductCache(rdb)

	router := routers.SetupRouter(routers.Deps{
		Store:    store,
		Tokens:   tokens,
		Accounts: services.NewAccountService(store, tokens),
		Catalog:  services.NewCatalogService(store, products),
		Carts:    services.NewCartService(store),
		Checkout: services.NewCheckoutService(store),
		Reviews:  services.NewReviewService(store, products),
		Wishlist: services.NewWishlistService(store),
	})

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
