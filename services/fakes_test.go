package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"infostore/models"
	"infostore/repository"
)

// memStore holds in-memory state shared by the per-aggregate fakes below.
// The fakes mirror the database semantics the services rely on: unique
// indexes surface repository.ErrDuplicate, misses surface ErrNotFound, and
// cart reads come back with their items and products attached.
type memStore struct {
	mu sync.Mutex

	nextID     uint
	carts      map[uint]*models.Cart
	cartItems  map[uint]*models.CartItem
	products   map[uint]*models.Product
	categories map[uint]*models.Category
	orders     map[uint]*models.Order
	orderItems map[uint][]models.OrderItem
	users      map[uint]*models.User
	tokens     map[string]*models.LoginToken
	reviews    map[uint]*models.Review
	wishlist   map[uint]*models.WishlistItem

	// When positive, the next order inserts fail with ErrDuplicate, to
	// exercise the regenerate-on-collision path.
	rejectOrderCreates int
}

func newMemStore() (*memStore, *repository.Store) {
	m := &memStore{
		carts:      make(map[uint]*models.Cart),
		cartItems:  make(map[uint]*models.CartItem),
		products:   make(map[uint]*models.Product),
		categories: make(map[uint]*models.Category),
		orders:     make(map[uint]*models.Order),
		orderItems: make(map[uint][]models.OrderItem),
		users:      make(map[uint]*models.User),
		tokens:     make(map[string]*models.LoginToken),
		reviews:    make(map[uint]*models.Review),
		wishlist:   make(map[uint]*models.WishlistItem),
	}
	return m, &repository.Store{
		Carts:    &fakeCarts{m},
		Products: &fakeProducts{m},
		Orders:   &fakeOrders{m},
		Users:    &fakeUsers{m},
		Reviews:  &fakeReviews{m},
		Wishlist: &fakeWishlist{m},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) addProduct(name string, price int64) *models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &models.Product{
		Model:    gorm.Model{ID: m.id(), CreatedAt: time.Now()},
		Name:     name,
		Slug:     Slugify(name),
		Price:    price,
		Featured: true,
	}
	m.products[p.ID] = p
	return p
}

func (m *memStore) addUser(username string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &models.User{
		Model:    gorm.Model{ID: m.id()},
		Username: username,
		Email:    username + "@example.com",
		Role:     models.RoleCustomer,
	}
	m.users[u.ID] = u
	return u
}

// ---- carts ----

type fakeCarts struct{ s *memStore }

func (f *fakeCarts) Create(_ context.Context, cart *models.Cart) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.carts {
		if existing.Code == cart.Code {
			return repository.ErrDuplicate
		}
		if cart.UserID != nil && existing.UserID != nil && *existing.UserID == *cart.UserID {
			return repository.ErrDuplicate
		}
	}
	cart.ID = f.s.id()
	stored := *cart
	f.s.carts[cart.ID] = &stored
	return nil
}

func (f *fakeCarts) loadCart(cart *models.Cart) *models.Cart {
	out := *cart
	out.CartItems = nil
	var ids []uint
	for id, item := range f.s.cartItems {
		if item.CartID == cart.ID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		item := *f.s.cartItems[id]
		if p, ok := f.s.products[item.ProductID]; ok {
			item.Product = *p
		}
		out.CartItems = append(out.CartItems, item)
	}
	return &out
}

func (f *fakeCarts) GetByCode(_ context.Context, code string) (*models.Cart, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, cart := range f.s.carts {
		if cart.Code == code {
			return f.loadCart(cart), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCarts) GetByUser(_ context.Context, userID uint) (*models.Cart, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, cart := range f.s.carts {
		if cart.UserID != nil && *cart.UserID == userID {
			return f.loadCart(cart), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCarts) Delete(_ context.Context, cartID uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for id, item := range f.s.cartItems {
		if item.CartID == cartID {
			delete(f.s.cartItems, id)
		}
	}
	delete(f.s.carts, cartID)
	return nil
}

func (f *fakeCarts) GetItem(_ context.Context, itemID uint) (*models.CartItem, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	item, ok := f.s.cartItems[itemID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *item
	if cart, ok := f.s.carts[item.CartID]; ok {
		out.Cart = *cart
	}
	if p, ok := f.s.products[item.ProductID]; ok {
		out.Product = *p
	}
	return &out, nil
}

func (f *fakeCarts) findItem(cartID, productID uint) *models.CartItem {
	for _, item := range f.s.cartItems {
		if item.CartID == cartID && item.ProductID == productID {
			return item
		}
	}
	return nil
}

func (f *fakeCarts) AddItemQuantity(_ context.Context, cartID, productID uint, quantity uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if item := f.findItem(cartID, productID); item != nil {
		item.Quantity += quantity
		return nil
	}
	item := &models.CartItem{
		Model:     gorm.Model{ID: f.s.id()},
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	f.s.cartItems[item.ID] = item
	return nil
}

func (f *fakeCarts) SetItemQuantity(_ context.Context, cartID, productID uint, quantity uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if item := f.findItem(cartID, productID); item != nil {
		item.Quantity = quantity
		return nil
	}
	item := &models.CartItem{
		Model:     gorm.Model{ID: f.s.id()},
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	f.s.cartItems[item.ID] = item
	return nil
}

func (f *fakeCarts) UpdateItemQuantity(_ context.Context, itemID uint, quantity uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	item, ok := f.s.cartItems[itemID]
	if !ok {
		return repository.ErrNotFound
	}
	item.Quantity = quantity
	return nil
}

func (f *fakeCarts) DeleteItem(_ context.Context, itemID uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.cartItems[itemID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.cartItems, itemID)
	return nil
}

func (f *fakeCarts) DeleteItems(_ context.Context, itemIDs []uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, id := range itemIDs {
		delete(f.s.cartItems, id)
	}
	return nil
}

// ---- products ----

type fakeProducts struct{ s *memStore }

func (f *fakeProducts) Create(_ context.Context, product *models.Product) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.products {
		if existing.Slug == product.Slug {
			return repository.ErrDuplicate
		}
	}
	product.ID = f.s.id()
	stored := *product
	f.s.products[product.ID] = &stored
	return nil
}

func (f *fakeProducts) Update(_ context.Context, product *models.Product) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.products[product.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *product
	f.s.products[product.ID] = &stored
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, productID uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.products[productID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.products, productID)
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, productID uint) (*models.Product, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.products[productID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakeProducts) GetBySlug(_ context.Context, slug string) (*models.Product, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.products {
		if p.Slug == slug {
			out := *p
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProducts) SlugExists(_ context.Context, slug string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.products {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProducts) ListFeatured(_ context.Context) ([]models.Product, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Product
	for _, p := range f.s.products {
		if p.Featured {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeProducts) Search(_ context.Context, query string, limit, offset int) ([]models.Product, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Product
	q := strings.ToLower(query)
	for _, p := range f.s.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProducts) UpdateRating(_ context.Context, productID uint, average float64, total uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.products[productID]
	if !ok {
		return repository.ErrNotFound
	}
	p.AverageRating = average
	p.TotalReviews = total
	return nil
}

func (f *fakeProducts) CreateCategory(_ context.Context, category *models.Category) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.categories {
		if existing.Slug == category.Slug {
			return repository.ErrDuplicate
		}
	}
	category.ID = f.s.id()
	stored := *category
	f.s.categories[category.ID] = &stored
	return nil
}

func (f *fakeProducts) CategorySlugExists(_ context.Context, slug string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.categories {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProducts) ListCategories(_ context.Context) ([]models.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Category
	for _, c := range f.s.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProducts) GetCategoryBySlug(_ context.Context, slug string) (*models.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.categories {
		if c.Slug == slug {
			out := *c
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ---- orders ----

type fakeOrders struct{ s *memStore }

func (f *fakeOrders) Create(_ context.Context, order *models.Order) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.rejectOrderCreates > 0 {
		f.s.rejectOrderCreates--
		return repository.ErrDuplicate
	}
	for _, existing := range f.s.orders {
		if existing.Code == order.Code {
			return repository.ErrDuplicate
		}
	}
	order.ID = f.s.id()
	order.CreatedAt = time.Now()
	stored := *order
	f.s.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrders) CreateItems(_ context.Context, items []models.OrderItem) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, item := range items {
		item.ID = f.s.id()
		f.s.orderItems[item.OrderID] = append(f.s.orderItems[item.OrderID], item)
	}
	return nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID uint) ([]models.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Order
	for _, order := range f.s.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeOrders) GetForUser(_ context.Context, orderID, userID uint) (*models.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	order, ok := f.s.orders[orderID]
	if !ok || order.UserID != userID {
		return nil, repository.ErrNotFound
	}
	out := *order
	for _, item := range f.s.orderItems[orderID] {
		if p, ok := f.s.products[item.ProductID]; ok {
			item.Product = *p
		}
		out.OrderItems = append(out.OrderItems, item)
	}
	return &out, nil
}

// ---- users ----

type fakeUsers struct{ s *memStore }

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = f.s.id()
	stored := *user
	f.s.users[user.ID] = &stored
	return nil
}

func (f *fakeUsers) Update(_ context.Context, user *models.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *user
	f.s.users[user.ID] = &stored
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, userID uint) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) EmailExists(_ context.Context, email string, excludeUserID uint) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Email == email && u.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) CreateLoginToken(_ context.Context, token *models.LoginToken) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	stored := *token
	f.s.tokens[token.TokenID] = &stored
	return nil
}

func (f *fakeUsers) GetLoginToken(_ context.Context, tokenID string) (*models.LoginToken, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	token, ok := f.s.tokens[tokenID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *token
	return &out, nil
}

func (f *fakeUsers) DeleteLoginToken(_ context.Context, tokenID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.tokens, tokenID)
	return nil
}

// ---- reviews ----

type fakeReviews struct{ s *memStore }

func (f *fakeReviews) Create(_ context.Context, review *models.Review) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.reviews {
		if existing.ProductID == review.ProductID && existing.UserID == review.UserID {
			return repository.ErrDuplicate
		}
	}
	review.ID = f.s.id()
	stored := *review
	f.s.reviews[review.ID] = &stored
	return nil
}

func (f *fakeReviews) Update(_ context.Context, review *models.Review) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.reviews[review.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *review
	f.s.reviews[review.ID] = &stored
	return nil
}

func (f *fakeReviews) Delete(_ context.Context, reviewID uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.reviews[reviewID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.reviews, reviewID)
	return nil
}

func (f *fakeReviews) GetByID(_ context.Context, reviewID uint) (*models.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	review, ok := f.s.reviews[reviewID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *review
	return &out, nil
}

func (f *fakeReviews) ExistsForProductAndUser(_ context.Context, productID, userID uint) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, review := range f.s.reviews {
		if review.ProductID == productID && review.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviews) AggregateForProduct(_ context.Context, productID uint) (float64, uint, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var sum, count uint
	for _, review := range f.s.reviews {
		if review.ProductID == productID {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

// ---- wishlist ----

type fakeWishlist struct{ s *memStore }

func (f *fakeWishlist) Create(_ context.Context, item *models.WishlistItem) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.wishlist {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			return repository.ErrDuplicate
		}
	}
	item.ID = f.s.id()
	stored := *item
	f.s.wishlist[item.ID] = &stored
	return nil
}

func (f *fakeWishlist) Delete(_ context.Context, itemID uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.wishlist[itemID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.wishlist, itemID)
	return nil
}

func (f *fakeWishlist) GetByUserAndProduct(_ context.Context, userID, productID uint) (*models.WishlistItem, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, item := range f.s.wishlist {
		if item.UserID == userID && item.ProductID == productID {
			out := *item
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeWishlist) GetForUser(_ context.Context, itemID, userID uint) (*models.WishlistItem, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	item, ok := f.s.wishlist[itemID]
	if !ok || item.UserID != userID {
		return nil, repository.ErrNotFound
	}
	out := *item
	return &out, nil
}

func (f *fakeWishlist) ListByUser(_ context.Context, userID uint) ([]models.WishlistItem, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.WishlistItem
	for _, item := range f.s.wishlist {
		if item.UserID == userID {
			copied := *item
			if p, ok := f.s.products[item.ProductID]; ok {
				copied.Product = *p
			}
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
