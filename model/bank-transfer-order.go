package model

import "time"

// BankTransferOrder là đơn chuyển khoản thủ công - partition `bank_transfer_orders`.
// TransactionReference một khi đã ghi thì không được sửa; chỉ PaymentVerified /
// Status / VerificationMethod thay đổi sau khi khách gửi mã giao dịch.
type BankTransferOrder struct {
	DTO
	PublicCode     string     `gorm:"unique;size:20" json:"orderId"`
	UserID         *uint      `json:"userId,omitempty"`
	CustomerName   string     `json:"customerName"`
	CustomerEmail  string     `gorm:"index" json:"customerEmail"`
	CustomerPhone  string     `json:"customerPhone,omitempty"`
	Status         string     `gorm:"index" json:"status"` // pending_payment, payment_submitted, confirmed, rejected...
	Subtotal       float64    `json:"subtotal"`
	ShippingCost   float64    `json:"shippingCost"`
	Tax            float64    `json:"tax"`
	TotalAmount    float64    `json:"totalAmount"`
	IsFreeShipping bool       `json:"isFreeShipping"`

	TransactionReference *string    `gorm:"size:64" json:"transactionReference,omitempty"`
	ReferenceSubmittedAt *time.Time `gorm:"index" json:"referenceSubmittedAt,omitempty"`
	PaymentVerified      bool       `json:"paymentVerified"`
	VerificationMethod   string     `gorm:"index" json:"verificationMethod,omitempty"` // manual_admin, auto_immediate, auto_delayed, pending_manual
	ConfidenceScore      *int       `json:"confidenceScore,omitempty"`
	VerificationNote     string     `json:"verificationNote,omitempty"`
	PaymentVerifiedAt    *time.Time `json:"paymentVerifiedAt,omitempty"`

	// Snapshot thông tin tài khoản nhận tiền tại thời điểm đặt hàng
	BankName          string `json:"bankName"`
	BankAccountNumber string `json:"bankAccountNumber"`
	BankAccountHolder string `json:"bankAccountHolder"`

	Items []LineItem `gorm:"foreignKey:BankOrderID;references:ID" json:"items"`
}

type SubmitReferenceInput struct {
	TransactionReference string `json:"transactionReference" validate:"required,min=4,max=64"`
}

type RejectPaymentInput struct {
	Reason string `json:"reason" validate:"required"`
}
