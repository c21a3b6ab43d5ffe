package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"infostore/services"
)

type CartHandler struct {
	carts *services.CartService
}

func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// CreateCart returns the authenticated user's cart (creating it on first
// touch) or creates a fresh anonymous cart.
func (h *CartHandler) CreateCart(c *gin.Context) {
	userID, authenticated := currentUserID(c)

	if authenticated {
		cart, err := h.carts.GetOrCreateUserCart(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cartJSON(cart))
		return
	}

	cart, err := h.carts.CreateAnonymousCart(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cartJSON(cart))
}

// GetCart fetches by ?code= or, for authenticated callers without a code, by
// identity. The two entry paths are mutually exclusive.
func (h *CartHandler) GetCart(c *gin.Context) {
	if code := c.Query("code"); code != "" {
		cart, err := h.carts.GetCartByCode(c.Request.Context(), code)
		if err != nil {
			// An unknown code reads as an empty cart so storefronts can
			// hold on to stale codes without breaking.
			if isNotFound(err) {
				c.JSON(http.StatusOK, gin.H{"cart_code": code, "cartitems": []gin.H{}, "total": 0})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartJSON(cart))
		return
	}

	userID, authenticated := currentUserID(c)
	if !authenticated {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "a cart code or authentication is required",
		})
		return
	}
	cart, err := h.carts.GetOrCreateUserCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartJSON(cart))
}

type addItemRequest struct {
	CartCode  string `json:"cart_code" binding:"required"`
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.carts.AddItem(c.Request.Context(), services.AddItemInput{
		CartCode:  req.CartCode,
		ProductID: req.ProductID,
		Quantity:  quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartJSON(cart))
}

type updateItemRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, _ := currentUserID(c)

	item, err := h.carts.UpdateItemQuantity(c.Request.Context(), req.ItemID, req.Quantity, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "cart item updated",
		"data": gin.H{
			"id":       item.ID,
			"quantity": item.Quantity,
		},
	})
}

func (h *CartHandler) DeleteItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item id"})
		return
	}
	userID, _ := currentUserID(c)

	if err := h.carts.RemoveItem(c.Request.Context(), uint(itemID), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart item deleted"})
}

type mergeRequest struct {
	TempCartCode string `json:"temp_cart_code"`
}

func (h *CartHandler) Merge(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, _ := currentUserID(c)

	cart, err := h.carts.Merge(c.Request.Context(), userID, req.TempCartCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartJSON(cart))
}
