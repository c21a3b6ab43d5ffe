package services

import (
	"context"
	"errors"
	"fmt"

	"infostore/models"
	"infostore/repository"
)

// CartService resolves carts (anonymous by code, authenticated by owner) and
// mutates their line items.
type CartService struct {
	store *repository.Store
}

func NewCartService(store *repository.Store) *CartService {
	return &CartService{store: store}
}

type AddItemInput struct {
	CartCode  string
	ProductID uint
	Quantity  int
}

// CreateAnonymousCart creates a cart with a freshly generated unique code.
func (s *CartService) CreateAnonymousCart(ctx context.Context) (*models.Cart, error) {
	return s.createCart(ctx, s.store, nil)
}

// GetOrCreateUserCart returns the user's cart, creating it on first touch.
func (s *CartService) GetOrCreateUserCart(ctx context.Context, userID uint) (*models.Cart, error) {
	return s.getOrCreateUserCart(ctx, s.store, userID)
}

// GetCartByCode resolves a cart by its opaque code.
func (s *CartService) GetCartByCode(ctx context.Context, code string) (*models.Cart, error) {
	cart, err := s.store.Carts.GetByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("cart not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get cart by code: %w", err)
	}
	return cart, nil
}

// AddItem adds quantity of a product to the cart identified by code, creating
// the line item or incrementing the existing one in a single atomic statement.
// Returns the updated cart.
func (s *CartService) AddItem(ctx context.Context, in AddItemInput) (*models.Cart, error) {
	if in.Quantity <= 0 {
		return nil, invalidArgument("quantity must be greater than zero")
	}

	cart, err := s.store.Carts.GetByCode(ctx, in.CartCode)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("cart not found")
	}
	if err != nil {
		return nil, fmt.Errorf("resolve cart: %w", err)
	}

	if _, err := s.store.Products.GetByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("product not found")
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	if err := s.store.Carts.AddItemQuantity(ctx, cart.ID, in.ProductID, uint(in.Quantity)); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	return s.GetCartByCode(ctx, in.CartCode)
}

// UpdateItemQuantity replaces a line item's quantity. The item's cart must be
// ownerless or owned by the acting user.
func (s *CartService) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int, actorID uint) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, invalidArgument("quantity must be greater than zero")
	}

	item, err := s.getOwnedItem(ctx, itemID, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Carts.UpdateItemQuantity(ctx, itemID, uint(quantity)); err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	item.Quantity = uint(quantity)
	return item, nil
}

// RemoveItem deletes a line item, subject to the same ownership rule as
// UpdateItemQuantity.
func (s *CartService) RemoveItem(ctx context.Context, itemID uint, actorID uint) error {
	if _, err := s.getOwnedItem(ctx, itemID, actorID); err != nil {
		return err
	}
	if err := s.store.Carts.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// Merge moves the anonymous cart's line items into the acting user's cart,
// overwriting quantities for products already present, then deletes the
// anonymous cart. An unknown code is a no-op; the user cart is guaranteed to
// exist either way.
func (s *CartService) Merge(ctx context.Context, actorID uint, anonymousCode string) (*models.Cart, error) {
	err := s.store.Atomically(ctx, func(tx *repository.Store) error {
		userCart, err := s.getOrCreateUserCart(ctx, tx, actorID)
		if err != nil {
			return err
		}

		if anonymousCode == "" {
			return nil
		}
		anonCart, err := tx.Carts.GetByCode(ctx, anonymousCode)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("resolve anonymous cart: %w", err)
		}
		if anonCart.ID == userCart.ID {
			return nil
		}

		for _, item := range anonCart.CartItems {
			if err := tx.Carts.SetItemQuantity(ctx, userCart.ID, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("merge cart item: %w", err)
			}
		}
		if err := tx.Carts.Delete(ctx, anonCart.ID); err != nil {
			return fmt.Errorf("delete anonymous cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cart, err := s.store.Carts.GetByUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("reload user cart: %w", err)
	}
	return cart, nil
}

// Total computes the cart's current total in cents from live product prices.
func Total(cart *models.Cart) int64 {
	var total int64
	for _, item := range cart.CartItems {
		total += item.Product.Price * int64(item.Quantity)
	}
	return total
}

func (s *CartService) getOwnedItem(ctx context.Context, itemID, actorID uint) (*models.CartItem, error) {
	item, err := s.store.Carts.GetItem(ctx, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("cart item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	// Ownerless carts are anonymous; anyone holding the item id may touch them.
	if item.Cart.UserID != nil && *item.Cart.UserID != actorID {
		return nil, forbidden("you do not have permission to modify this item")
	}
	return item, nil
}

func (s *CartService) createCart(ctx context.Context, store *repository.Store, userID *uint) (*models.Cart, error) {
	var lastErr error
	for i := 0; i < codeAttempts; i++ {
		cart := &models.Cart{Code: newCartCode(), UserID: userID}
		err := store.Carts.Create(ctx, cart)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("create cart: %w", err)
		}
		lastErr = err
	}
	return nil, fmt.Errorf("create cart: code collisions exhausted: %w", lastErr)
}

func (s *CartService) getOrCreateUserCart(ctx context.Context, store *repository.Store, userID uint) (*models.Cart, error) {
	cart, err := store.Carts.GetByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("get user cart: %w", err)
	}

	created, err := s.createCart(ctx, store, &userID)
	if err != nil {
		// Concurrent first touch: someone else created the cart between our
		// lookup and insert. The unique index on user_id reports it.
		if errors.Is(err, repository.ErrDuplicate) {
			return store.Carts.GetByUser(ctx, userID)
		}
		return nil, err
	}
	return created, nil
}
