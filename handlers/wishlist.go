package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"infostore/services"
)

type WishlistHandler struct {
	wishlist *services.WishlistService
}

func NewWishlistHandler(wishlist *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

type toggleWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

func (h *WishlistHandler) Toggle(c *gin.Context) {
	var req toggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, _ := currentUserID(c)

	item, err := h.wishlist.Toggle(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusOK, gin.H{"message": "product removed from wishlist"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         item.ID,
		"product_id": item.ProductID,
		"message":    "product added to wishlist",
	})
}

func (h *WishlistHandler) List(c *gin.Context) {
	userID, _ := currentUserID(c)

	items, err := h.wishlist.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(items))
	for i := range items {
		item := &items[i]
		out = append(out, gin.H{
			"id":         item.ID,
			"created_at": item.CreatedAt,
			"product":    productJSON(&item.Product),
		})
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": out})
}

func (h *WishlistHandler) Delete(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wishlist item id"})
		return
	}
	userID, _ := currentUserID(c)

	if err := h.wishlist.Remove(c.Request.Context(), uint(itemID), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "wishlist item deleted"})
}
