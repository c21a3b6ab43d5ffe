package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"infostore/models"
	"infostore/services"
)

func productJSON(p *models.Product) gin.H {
	return gin.H{
		"id":             p.ID,
		"name":           p.Name,
		"slug":           p.Slug,
		"description":    p.Description,
		"price":          p.Price,
		"image_url":      p.ImageURL,
		"featured":       p.Featured,
		"average_rating": p.AverageRating,
		"total_reviews":  p.TotalReviews,
	}
}

func cartJSON(cart *models.Cart) gin.H {
	items := make([]gin.H, 0, len(cart.CartItems))
	for i := range cart.CartItems {
		item := &cart.CartItems[i]
		items = append(items, gin.H{
			"id":        item.ID,
			"quantity":  item.Quantity,
			"sub_total": item.Product.Price * int64(item.Quantity),
			"product":   productJSON(&item.Product),
		})
	}
	return gin.H{
		"id":        cart.ID,
		"cart_code": cart.Code,
		"cartitems": items,
		"total":     services.Total(cart),
	}
}

func orderSummaryJSON(order *models.Order) gin.H {
	return gin.H{
		"id":             order.ID,
		"order_code":     order.Code,
		"status":         order.Status,
		"payment_method": order.PaymentMethod,
		"total_amount":   order.TotalAmount,
		"created_at":     order.CreatedAt,
	}
}

func orderJSON(order *models.Order) gin.H {
	items := make([]gin.H, 0, len(order.OrderItems))
	for i := range order.OrderItems {
		item := &order.OrderItems[i]
		items = append(items, gin.H{
			"id":       item.ID,
			"quantity": item.Quantity,
			"price":    item.Price,
			"product":  productJSON(&item.Product),
		})
	}

	out := orderSummaryJSON(order)
	out["items"] = items
	out["notes"] = order.Notes
	out["shipping_address"] = json.RawMessage(order.ShippingAddress)
	return out
}

func reviewJSON(review *models.Review) gin.H {
	return gin.H{
		"id":         review.ID,
		"product_id": review.ProductID,
		"user_id":    review.UserID,
		"rating":     review.Rating,
		"comment":    review.Comment,
		"created_at": review.CreatedAt,
	}
}

func userJSON(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"phone":      user.Phone,
		"address":    user.Address,
		"city":       user.City,
		"country":    user.Country,
	}
}
