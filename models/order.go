package models

import "gorm.io/gorm"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentMulticaixa     = "multicaixa"
	PaymentBankTransfer   = "transferencia"
	PaymentCashOnDelivery = "dinheiro"
)

// Order is an immutable snapshot taken at checkout. TotalAmount and the item
// prices are frozen when the order is created and never recomputed.
type Order struct {
	gorm.Model
	Code            string `gorm:"uniqueIndex;size:20;not null"`
	UserID          uint   `gorm:"index;not null"`
	User            User
	Status          string `gorm:"size:20;not null;default:pending"`
	PaymentMethod   string `gorm:"size:20;not null"`
	TotalAmount     int64  `gorm:"not null"`
	ShippingAddress string `gorm:"type:json;not null"`
	Notes           string
	OrderItems      []OrderItem
}

// ValidPaymentMethod reports whether m is one of the accepted payment methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMulticaixa, PaymentBankTransfer, PaymentCashOnDelivery:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
// Forward-only along pending -> processing -> shipped -> delivered, with
// cancelled reachable from any non-terminal state.
func CanTransition(from, to string) bool {
	if from == OrderStatusDelivered || from == OrderStatusCancelled {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	order := map[string]int{
		OrderStatusPending:    0,
		OrderStatusProcessing: 1,
		OrderStatusShipped:    2,
		OrderStatusDelivered:  3,
	}
	f, ok := order[from]
	t, ok2 := order[to]
	return ok && ok2 && t == f+1
}
