// Package cache holds the Redis-backed read caches.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"infostore/models"
)

const productsKey = "products:featured"

// ProductCache keeps the featured-product listing in a Redis sorted set,
// scored by product id descending so pagination happens on the Redis side.
type ProductCache struct {
	rdb *redis.Client
}

func NewProductCache(rdb *redis.Client) *ProductCache {
	return &ProductCache{rdb: rdb}
}

func (c *ProductCache) GetPage(ctx context.Context, offset, limit int) ([]models.Product, error) {
	members, err := c.rdb.ZRevRange(ctx, productsKey, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("zrevrange %s: %w", productsKey, err)
	}
	products := make([]models.Product, 0, len(members))
	for _, member := range members {
		var product models.Product
		if err := json.Unmarshal([]byte(member), &product); err != nil {
			return nil, fmt.Errorf("decode cached product: %w", err)
		}
		products = append(products, product)
	}
	return products, nil
}

func (c *ProductCache) Count(ctx context.Context) (int64, error) {
	return c.rdb.ZCard(ctx, productsKey).Result()
}

func (c *ProductCache) Rebuild(ctx context.Context, products []models.Product) error {
	members := make([]redis.Z, 0, len(products))
	for _, product := range products {
		encoded, err := json.Marshal(product)
		if err != nil {
			return fmt.Errorf("encode product %d: %w", product.ID, err)
		}
		members = append(members, redis.Z{Score: float64(product.ID), Member: encoded})
	}

	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, productsKey)
	if len(members) > 0 {
		pipe.ZAdd(ctx, productsKey, members...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rebuild %s: %w", productsKey, err)
	}
	return nil
}

func (c *ProductCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, productsKey).Err()
}
