package repository

import (
	"context"

	"gorm.io/gorm"

	"infostore/models"
)

type gormUserRepository struct {
	db *gorm.DB
}

func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *gormUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *gormUserRepository) GetByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

func (r *gormUserRepository) EmailExists(ctx context.Context, email string, excludeUserID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormUserRepository) CreateLoginToken(ctx context.Context, token *models.LoginToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *gormUserRepository) GetLoginToken(ctx context.Context, tokenID string) (*models.LoginToken, error) {
	var token models.LoginToken
	err := r.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *gormUserRepository) DeleteLoginToken(ctx context.Context, tokenID string) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("token_id = ?", tokenID).
		Delete(&models.LoginToken{}).Error
}
