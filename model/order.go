package model

import "time"

// Order là đơn hàng thanh toán qua cổng (gateway) - partition `orders`
type Order struct {
	DTO
	PublicCode     string     `gorm:"unique;size:20" json:"orderId"` // Mã đơn hàng công khai (ORD-XXXXXX)
	UserID         *uint      `json:"userId,omitempty"`              // Null nếu khách vãng lai
	CustomerName   string     `json:"customerName"`
	CustomerEmail  string     `gorm:"index" json:"customerEmail"`
	CustomerPhone  string     `json:"customerPhone,omitempty"`
	Status         string     `gorm:"index" json:"status"` // pending, confirmed, processing, shipped, delivered
	PaymentMethod  string     `json:"paymentMethod"`       // CARD, EWALLET...
	Subtotal       float64    `json:"subtotal"`
	ShippingCost   float64    `json:"shippingCost"`
	Tax            float64    `json:"tax"`
	TotalAmount    float64    `json:"totalAmount"`
	IsFreeShipping bool       `json:"isFreeShipping"`
	PaidAt         *time.Time `json:"paidAt,omitempty"`
	Items          []LineItem `gorm:"foreignKey:OrderID;references:ID" json:"items"`
}

type CreateOrderInput struct {
	CustomerName  string          `json:"customerName" validate:"required"`
	CustomerEmail string          `json:"customerEmail" validate:"required,email"`
	CustomerPhone string          `json:"customerPhone"`
	PaymentMethod string          `json:"paymentMethod" validate:"required,oneof=CARD EWALLET BANK_TRANSFER"`
	UserID        *uint           `json:"userId"`
	Items         []LineItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}
