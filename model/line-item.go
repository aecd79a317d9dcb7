package model

// LineItem thuộc về đúng một partition (OrderID hoặc BankOrderID)
type LineItem struct {
	DTO
	OrderID     *uint   `gorm:"index" json:"-"`
	BankOrderID *uint   `gorm:"index" json:"-"`
	Name        string  `json:"name"`
	Quantity    int     `gorm:"check:quantity >= 1" json:"quantity"`
	UnitAmount  float64 `gorm:"check:unit_amount >= 0" json:"unitAmount"`
	ImageRef    *string `json:"imageRef,omitempty"`
}

type LineItemInput struct {
	Name       string  `json:"name" validate:"required"`
	Quantity   int     `json:"quantity" validate:"required,min=1"`
	UnitAmount float64 `json:"unitAmount" validate:"min=0"`
	ImageRef   *string `json:"imageRef"`
}
