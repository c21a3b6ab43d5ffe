package services

import (
	"context"
	"errors"
	"fmt"

	"infostore/models"
	"infostore/repository"
)

// WishlistService manages per-user wishlists. Adding a product already on the
// wishlist removes it (toggle semantics).
type WishlistService struct {
	store *repository.Store
}

func NewWishlistService(store *repository.Store) *WishlistService {
	return &WishlistService{store: store}
}

// Toggle adds the product to the user's wishlist, or removes it if already
// present. The returned item is nil when the toggle removed it.
func (s *WishlistService) Toggle(ctx context.Context, userID, productID uint) (*models.WishlistItem, error) {
	if _, err := s.store.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("product not found")
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	existing, err := s.store.Wishlist.GetByUserAndProduct(ctx, userID, productID)
	if err == nil {
		if err := s.store.Wishlist.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("remove wishlist item: %w", err)
		}
		return nil, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("get wishlist item: %w", err)
	}

	item := &models.WishlistItem{UserID: userID, ProductID: productID}
	if err := s.store.Wishlist.Create(ctx, item); err != nil {
		// Concurrent double-toggle: treat the lost race as "already added".
		if errors.Is(err, repository.ErrDuplicate) {
			return s.store.Wishlist.GetByUserAndProduct(ctx, userID, productID)
		}
		return nil, fmt.Errorf("create wishlist item: %w", err)
	}
	return item, nil
}

func (s *WishlistService) List(ctx context.Context, userID uint) ([]models.WishlistItem, error) {
	items, err := s.store.Wishlist.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return items, nil
}

// Remove deletes one of the user's wishlist items. Items belonging to other
// users are reported as not found.
func (s *WishlistService) Remove(ctx context.Context, itemID, userID uint) error {
	item, err := s.store.Wishlist.GetForUser(ctx, itemID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("wishlist item not found")
	}
	if err != nil {
		return fmt.Errorf("get wishlist item: %w", err)
	}
	if err := s.store.Wishlist.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	return nil
}
