package repository

import (
	"context"

	"gorm.io/gorm"

	"infostore/models"
)

// Sentinel errors returned by every implementation in this package.
var (
	ErrNotFound  = gorm.ErrRecordNotFound
	ErrDuplicate = gorm.ErrDuplicatedKey
)

type CartRepository interface {
	Create(ctx context.Context, cart *models.Cart) error
	GetByCode(ctx context.Context, code string) (*models.Cart, error)
	GetByUser(ctx context.Context, userID uint) (*models.Cart, error)
	Delete(ctx context.Context, cartID uint) error

	GetItem(ctx context.Context, itemID uint) (*models.CartItem, error)
	// AddItemQuantity inserts the (cart, product) line with the given quantity,
	// or increments the existing line by it, in a single statement.
	AddItemQuantity(ctx context.Context, cartID, productID uint, quantity uint) error
	// SetItemQuantity inserts the (cart, product) line with the given quantity,
	// or overwrites the existing line's quantity, in a single statement.
	SetItemQuantity(ctx context.Context, cartID, productID uint, quantity uint) error
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity uint) error
	DeleteItem(ctx context.Context, itemID uint) error
	// DeleteItems removes exactly the given line items; rows outside the
	// list are left alone.
	DeleteItems(ctx context.Context, itemIDs []uint) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, productID uint) error
	GetByID(ctx context.Context, productID uint) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListFeatured(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, query string, limit, offset int) ([]models.Product, error)
	UpdateRating(ctx context.Context, productID uint, average float64, total uint) error

	CreateCategory(ctx context.Context, category *models.Category) error
	CategorySlugExists(ctx context.Context, slug string) (bool, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	CreateItems(ctx context.Context, items []models.OrderItem) error
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
	GetForUser(ctx context.Context, orderID, userID uint) (*models.Order, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string, excludeUserID uint) (bool, error)

	CreateLoginToken(ctx context.Context, token *models.LoginToken) error
	GetLoginToken(ctx context.Context, tokenID string) (*models.LoginToken, error)
	DeleteLoginToken(ctx context.Context, tokenID string) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, reviewID uint) error
	GetByID(ctx context.Context, reviewID uint) (*models.Review, error)
	ExistsForProductAndUser(ctx context.Context, productID, userID uint) (bool, error)
	// AggregateForProduct returns the average rating and review count for a product.
	AggregateForProduct(ctx context.Context, productID uint) (float64, uint, error)
}

type WishlistRepository interface {
	Create(ctx context.Context, item *models.WishlistItem) error
	Delete(ctx context.Context, itemID uint) error
	GetByUserAndProduct(ctx context.Context, userID, productID uint) (*models.WishlistItem, error)
	GetForUser(ctx context.Context, itemID, userID uint) (*models.WishlistItem, error)
	ListByUser(ctx context.Context, userID uint) ([]models.WishlistItem, error)
}

// Store bundles every repository over a single database handle so services
// can reach all aggregates and run multi-aggregate work atomically.
type Store struct {
	Carts    CartRepository
	Products ProductRepository
	Orders   OrderRepository
	Users    UserRepository
	Reviews  ReviewRepository
	Wishlist WishlistRepository

	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		Carts:    &gormCartRepository{db: db},
		Products: &gormProductRepository{db: db},
		Orders:   &gormOrderRepository{db: db},
		Users:    &gormUserRepository{db: db},
		Reviews:  &gormReviewRepository{db: db},
		Wishlist: &gormWishlistRepository{db: db},
		db:       db,
	}
}

// Atomically runs fn inside a database transaction; the Store passed to fn is
// bound to that transaction. A Store assembled without a database handle (test
// fakes) runs fn directly.
func (s *Store) Atomically(ctx context.Context, fn func(*Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
