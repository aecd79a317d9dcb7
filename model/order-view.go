package model

import "time"

// OrderView là hình dạng chung của đơn hàng sau khi normalize từ hai partition.
// Không bao giờ được persist - luôn dựng lại từ bản ghi gốc.
type OrderView struct {
	OrderCode     string          `json:"orderId"`
	InternalID    uint            `json:"-"`
	Rail          string          `json:"rail"` // instant_gateway | bank_transfer
	Status        string          `json:"status"`
	DisplayStatus string          `json:"displayStatus"`
	Stage         int             `json:"stage"`
	IsFailed      bool            `json:"isFailed"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	Totals        Totals          `json:"totals"`
	Items         []LineItem      `json:"items"`
	Timeline      []TimelineEntry `json:"timeline"`
	CreatedAt     time.Time       `json:"createdAt"`

	// Chỉ có ý nghĩa với rail bank_transfer
	TransactionReference *string    `json:"transactionReference,omitempty"`
	ReferenceSubmittedAt *time.Time `json:"referenceSubmittedAt,omitempty"`
	PaymentVerified      bool       `json:"paymentVerified"`
	VerificationMethod   string     `json:"verificationMethod,omitempty"`
}

type TimelineEntry struct {
	Message   string    `json:"message"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"` // placed, payment, verification, fulfillment
	Completed bool      `json:"completed"`
}
