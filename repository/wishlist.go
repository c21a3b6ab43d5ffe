package repository

import (
	"context"

	"gorm.io/gorm"

	"infostore/models"
)

type gormWishlistRepository struct {
	db *gorm.DB
}

func (r *gormWishlistRepository) Create(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *gormWishlistRepository) Delete(ctx context.Context, itemID uint) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&models.WishlistItem{}, itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormWishlistRepository) GetByUserAndProduct(ctx context.Context, userID, productID uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormWishlistRepository) GetForUser(ctx context.Context, itemID, userID uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormWishlistRepository) ListByUser(ctx context.Context, userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Product").
		Find(&items).Error
	return items, err
}
