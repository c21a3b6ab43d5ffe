package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"infostore/services"
)

type ProductHandler struct {
	catalog *services.CatalogService
}

func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func pageParams(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return services.ClampPage(limit, offset)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	limit, offset := pageParams(c)

	products, total, err := h.catalog.ListFeatured(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(products))
	for i := range products {
		out = append(out, productJSON(&products[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"products": out,
		"count":    total,
	})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	reviews := make([]gin.H, 0, len(product.Reviews))
	for i := range product.Reviews {
		review := &product.Reviews[i]
		data := reviewJSON(review)
		data["username"] = review.User.Username
		reviews = append(reviews, data)
	}

	out := productJSON(product)
	out["reviews"] = reviews
	if product.Category != nil {
		out["category"] = gin.H{
			"id":   product.Category.ID,
			"name": product.Category.Name,
			"slug": product.Category.Slug,
		}
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Search(c *gin.Context) {
	limit, offset := pageParams(c)

	products, err := h.catalog.Search(c.Request.Context(), c.Query("query"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(products))
	for i := range products {
		out = append(out, productJSON(&products[i]))
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		out = append(out, gin.H{
			"id":        category.ID,
			"name":      category.Name,
			"slug":      category.Slug,
			"image_url": category.ImageURL,
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (h *ProductHandler) GetCategory(c *gin.Context) {
	category, err := h.catalog.GetCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	products := make([]gin.H, 0, len(category.Products))
	for i := range category.Products {
		products = append(products, productJSON(&category.Products[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       category.ID,
		"name":     category.Name,
		"slug":     category.Slug,
		"products": products,
	})
}

type createProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required"`
	ImageURL    string `json:"image_url"`
	Featured    *bool  `json:"featured"`
	CategoryID  *uint  `json:"category_id"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), services.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, productJSON(product))
}

type updateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	ImageURL    *string `json:"image_url"`
	Featured    *bool   `json:"featured"`
	CategoryID  *uint   `json:"category_id"`
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), uint(productID), services.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productJSON(product))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), uint(productID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

type createCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"image_url"`
}

func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := h.catalog.CreateCategory(c.Request.Context(), req.Name, req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":   category.ID,
		"name": category.Name,
		"slug": category.Slug,
	})
}
