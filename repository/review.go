package repository

import (
	"context"

	"gorm.io/gorm"

	"infostore/models"
)

type gormReviewRepository struct {
	db *gorm.DB
}

func (r *gormReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *gormReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *gormReviewRepository) Delete(ctx context.Context, reviewID uint) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&models.Review{}, reviewID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormReviewRepository) GetByID(ctx context.Context, reviewID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).First(&review, reviewID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *gormReviewRepository) ExistsForProductAndUser(ctx context.Context, productID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormReviewRepository) AggregateForProduct(ctx context.Context, productID uint) (float64, uint, error) {
	var agg struct {
		Average float64
		Total   uint
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("product_id = ?", productID).
		Scan(&agg).Error
	return agg.Average, agg.Total, err
}
