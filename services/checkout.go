package services

import (
	"context"
	"errors"
	"fmt"

	"infostore/models"
	"infostore/repository"
)

// CheckoutService converts a non-empty cart into an immutable order snapshot
// and empties the cart. The whole conversion runs in one transaction.
type CheckoutService struct {
	store *repository.Store
}

func NewCheckoutService(store *repository.Store) *CheckoutService {
	return &CheckoutService{store: store}
}

type CreateOrderInput struct {
	PaymentMethod   string
	ShippingAddress string // JSON payload, stored verbatim
	Notes           string
}

// CreateOrder places an order for the user's current cart contents. Prices
// are copied from the products at this instant and never recomputed.
func (s *CheckoutService) CreateOrder(ctx context.Context, userID uint, in CreateOrderInput) (*models.Order, error) {
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return nil, invalidArgument("invalid payment method")
	}
	if in.ShippingAddress == "" {
		return nil, invalidArgument("shipping address is required")
	}

	var order *models.Order
	err := s.store.Atomically(ctx, func(tx *repository.Store) error {
		cart, err := tx.Carts.GetByUser(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("cart not found")
		}
		if err != nil {
			return fmt.Errorf("get user cart: %w", err)
		}
		if len(cart.CartItems) == 0 {
			return invalidState("cart is empty")
		}

		o := &models.Order{
			UserID:          userID,
			Status:          models.OrderStatusPending,
			PaymentMethod:   in.PaymentMethod,
			TotalAmount:     Total(cart),
			ShippingAddress: in.ShippingAddress,
			Notes:           in.Notes,
		}
		if err := s.createWithCode(ctx, tx, o); err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(cart.CartItems))
		lineIDs := make([]uint, 0, len(cart.CartItems))
		for _, line := range cart.CartItems {
			items = append(items, models.OrderItem{
				OrderID:   o.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Product.Price,
			})
			lineIDs = append(lineIDs, line.ID)
		}
		if err := tx.Orders.CreateItems(ctx, items); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		// The cart persists for future reuse. Only the snapshotted lines
		// are removed; a line added mid-checkout stays in the cart rather
		// than vanishing unordered.
		if err := tx.Carts.DeleteItems(ctx, lineIDs); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (s *CheckoutService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	orders, err := s.store.Orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns one of the user's orders with its line items. Orders owned
// by other users are reported as not found, not forbidden.
func (s *CheckoutService) GetOrder(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	order, err := s.store.Orders.GetForUser(ctx, orderID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (s *CheckoutService) createWithCode(ctx context.Context, tx *repository.Store, order *models.Order) error {
	var lastErr error
	for i := 0; i < codeAttempts; i++ {
		order.Code = newOrderCode()
		err := tx.Orders.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("create order: %w", err)
		}
		lastErr = err
	}
	return fmt.Errorf("create order: code collisions exhausted: %w", lastErr)
}
