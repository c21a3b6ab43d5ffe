package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"

	"infostore/models"
	"infostore/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// ProductCache holds the featured-product listing, ordered and paginated on
// the cache side. Implementations must be safe for concurrent use.
type ProductCache interface {
	GetPage(ctx context.Context, offset, limit int) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	Rebuild(ctx context.Context, products []models.Product) error
	Invalidate(ctx context.Context) error
}

// CatalogService serves the read-side product catalog and the admin write
// side. The cache is optional; a nil cache reads straight from storage.
type CatalogService struct {
	store *repository.Store
	cache ProductCache
}

func NewCatalogService(store *repository.Store, cache ProductCache) *CatalogService {
	return &CatalogService{store: store, cache: cache}
}

// ClampPage normalises limit/offset query values.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ListFeatured returns a page of featured products plus the total count,
// served from the cache when possible and rebuilt from storage when not.
func (s *CatalogService) ListFeatured(ctx context.Context, limit, offset int) ([]models.Product, int64, error) {
	limit, offset = ClampPage(limit, offset)

	if s.cache != nil {
		if total, err := s.cache.Count(ctx); err == nil && total > 0 {
			page, err := s.cache.GetPage(ctx, offset, limit)
			if err == nil {
				return page, total, nil
			}
			log.Printf("product cache read failed, falling back to database: %v", err)
		}
	}

	products, err := s.store.Products.ListFeatured(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list featured products: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Rebuild(ctx, products); err != nil {
			log.Printf("product cache rebuild failed: %v", err)
		}
	}

	total := int64(len(products))
	if offset >= len(products) {
		return []models.Product{}, total, nil
	}
	end := offset + limit
	if end > len(products) {
		end = len(products)
	}
	return products[offset:end], total, nil
}

// GetProduct returns a product by slug with its category and reviews.
func (s *CatalogService) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.store.Products.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// Search matches products by name, description or category name.
func (s *CatalogService) Search(ctx context.Context, query string, limit, offset int) ([]models.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, invalidArgument("no search query provided")
	}
	limit, offset = ClampPage(limit, offset)
	products, err := s.store.Products.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.Products.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.store.Products.GetCategoryBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("category not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	ImageURL    string
	Featured    *bool
	CategoryID  *uint
}

// CreateProduct adds a catalog entry with a generated unique slug.
func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalidArgument("product name is required")
	}
	if in.Price < 0 {
		return nil, invalidArgument("price must not be negative")
	}

	slug, err := s.uniqueSlug(ctx, in.Name, s.store.Products.SlugExists)
	if err != nil {
		return nil, err
	}

	featured := true
	if in.Featured != nil {
		featured = *in.Featured
	}
	product := &models.Product{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Featured:    featured,
		CategoryID:  in.CategoryID,
	}
	if err := s.store.Products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.invalidateListing(ctx)
	return product, nil
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *int64
	ImageURL    *string
	Featured    *bool
	CategoryID  *uint
}

// UpdateProduct applies the non-nil fields. The slug is stable: renames do
// not change it, so existing links keep working.
func (s *CatalogService) UpdateProduct(ctx context.Context, productID uint, in UpdateProductInput) (*models.Product, error) {
	product, err := s.store.Products.GetByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, invalidArgument("product name is required")
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, invalidArgument("price must not be negative")
		}
		product.Price = *in.Price
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Featured != nil {
		product.Featured = *in.Featured
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
	}

	if err := s.store.Products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.invalidateListing(ctx)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, productID uint) error {
	err := s.store.Products.Delete(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("product not found")
	}
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.invalidateListing(ctx)
	return nil
}

// CreateCategory adds a category with a generated unique slug.
func (s *CatalogService) CreateCategory(ctx context.Context, name, imageURL string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidArgument("category name is required")
	}
	slug, err := s.uniqueSlug(ctx, name, s.store.Products.CategorySlugExists)
	if err != nil {
		return nil, err
	}
	category := &models.Category{Name: name, Slug: slug, ImageURL: imageURL}
	if err := s.store.Products.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *CatalogService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("product cache invalidation failed: %v", err)
	}
}

func (s *CatalogService) uniqueSlug(ctx context.Context, name string, exists func(context.Context, string) (bool, error)) (string, error) {
	base := Slugify(name)
	if base == "" {
		return "", invalidArgument("name cannot be slugified")
	}
	slug := base
	for counter := 1; ; counter++ {
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

// Slugify lowercases, keeps letters and digits, and joins runs of anything
// else with single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
