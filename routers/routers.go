package routers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"infostore/handlers"
	"infostore/jwt"
	"infostore/middleware"
	"infostore/repository"
	"infostore/services"
)

type Deps struct {
	Store    *repository.Store
	Tokens   *jwt.Manager
	Accounts *services.AccountService
	Catalog  *services.CatalogService
	Carts    *services.CartService
	Checkout *services.CheckoutService
	Reviews  *services.ReviewService
	Wishlist *services.WishlistService
}

func SetupRouter(deps Deps) *gin.Engine {
	router := gin.Default()
	_ = router.SetTrustedProxies(nil)

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	account := handlers.NewAccountHandler(deps.Accounts)
	product := handlers.NewProductHandler(deps.Catalog)
	cart := handlers.NewCartHandler(deps.Carts)
	order := handlers.NewOrderHandler(deps.Checkout)
	review := handlers.NewReviewHandler(deps.Reviews)
	wishlist := handlers.NewWishlistHandler(deps.Wishlist)

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(deps.Tokens, deps.Store))
	{
		api.POST("/auth/register", account.Register)
		api.POST("/auth/login", account.Login)

		api.GET("/products", product.ListProducts)
		api.GET("/products/:slug", product.GetProduct)
		api.GET("/search", product.Search)
		api.GET("/categories", product.ListCategories)
		api.GET("/categories/:slug", product.GetCategory)

		// Carts are reachable anonymously; ownership checks happen per item.
		api.POST("/cart", cart.CreateCart)
		api.GET("/cart", cart.GetCart)
		api.POST("/cart/add", cart.AddItem)

		authed := api.Group("")
		authed.Use(middleware.RequireLogin())
		{
			authed.POST("/auth/logout", account.Logout)
			authed.GET("/auth/profile", account.GetProfile)
			authed.PUT("/auth/profile", account.UpdateProfile)

			authed.PUT("/cart/update", cart.UpdateItem)
			authed.DELETE("/cart/item/:id", cart.DeleteItem)
			authed.POST("/cart/merge", cart.Merge)

			authed.POST("/orders", order.CreateOrder)
			authed.GET("/orders", order.ListOrders)
			authed.GET("/orders/:id", order.GetOrder)

			authed.POST("/reviews", review.AddReview)
			authed.PUT("/reviews/:id", review.UpdateReview)
			authed.DELETE("/reviews/:id", review.DeleteReview)

			authed.GET("/wishlist", wishlist.List)
			authed.POST("/wishlist", wishlist.Toggle)
			authed.DELETE("/wishlist/:id", wishlist.Delete)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.RequireLogin(), middleware.RequireAdmin())
		{
			admin.POST("/products", product.CreateProduct)
			admin.PUT("/products/:id", product.UpdateProduct)
			admin.DELETE("/products/:id", product.DeleteProduct)
			admin.POST("/categories", product.CreateCategory)
		}
	}

	return router
}
