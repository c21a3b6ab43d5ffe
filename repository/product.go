package repository

import (
	"context"

	"gorm.io/gorm"

	"infostore/models"
)

type gormProductRepository struct {
	db *gorm.DB
}

func (r *gormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *gormProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *gormProductRepository) Delete(ctx context.Context, productID uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, productID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormProductRepository) GetByID(ctx context.Context, productID uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, productID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Preload("Category").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.User").
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *gormProductRepository) ListFeatured(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("id DESC").
		Find(&products).Error
	return products, err
}

func (r *gormProductRepository) Search(ctx context.Context, query string, limit, offset int) ([]models.Product, error) {
	var products []models.Product
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("products.name LIKE ? OR products.description LIKE ? OR categories.name LIKE ?",
			pattern, pattern, pattern).
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	return products, err
}

func (r *gormProductRepository) UpdateRating(ctx context.Context, productID uint, average float64, total uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"total_reviews":  total,
		}).Error
}

func (r *gormProductRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *gormProductRepository) CategorySlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *gormProductRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

func (r *gormProductRepository) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Preload("Products").
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}
