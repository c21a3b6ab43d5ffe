package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"infostore/services"
)

type OrderHandler struct {
	checkout *services.CheckoutService
}

func NewOrderHandler(checkout *services.CheckoutService) *OrderHandler {
	return &OrderHandler{checkout: checkout}
}

type createOrderRequest struct {
	PaymentMethod   string          `json:"payment_method" binding:"required"`
	ShippingAddress json.RawMessage `json:"shipping_address" binding:"required"`
	Notes           string          `json:"notes"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, _ := currentUserID(c)

	order, err := h.checkout.CreateOrder(c.Request.Context(), userID, services.CreateOrderInput{
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: string(req.ShippingAddress),
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":      order.ID,
		"message": "order created",
	})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, _ := currentUserID(c)

	orders, err := h.checkout.ListOrders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderSummaryJSON(&orders[i]))
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	userID, _ := currentUserID(c)

	order, err := h.checkout.GetOrder(c.Request.Context(), uint(orderID), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderJSON(order))
}
