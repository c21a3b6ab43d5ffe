package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"infostore/models"
)

type gormCartRepository struct {
	db *gorm.DB
}

func (r *gormCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *gormCartRepository) GetByCode(ctx context.Context, code string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		Preload("CartItems").
		Preload("CartItems.Product").
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *gormCartRepository) GetByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("CartItems").
		Preload("CartItems.Product").
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *gormCartRepository) Delete(ctx context.Context, cartID uint) error {
	err := r.db.WithContext(ctx).Unscoped().
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Unscoped().Delete(&models.Cart{}, cartID).Error
}

func (r *gormCartRepository) GetItem(ctx context.Context, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Cart").
		Preload("Product").
		First(&item, itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormCartRepository) AddItemQuantity(ctx context.Context, cartID, productID uint, quantity uint) error {
	// Single upsert so concurrent adds to the same line never lose updates.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("quantity + VALUES(quantity)"),
			}),
		}).
		Create(&models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}).Error
}

func (r *gormCartRepository) SetItemQuantity(ctx context.Context, cartID, productID uint, quantity uint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("VALUES(quantity)"),
			}),
		}).
		Create(&models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}).Error
}

func (r *gormCartRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		UpdateColumn("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormCartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&models.CartItem{}, itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormCartRepository) DeleteItems(ctx context.Context, itemIDs []uint) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Unscoped().
		Delete(&models.CartItem{}, itemIDs).Error
}
