package model

// PricingConfig gom các hằng chính sách tiền tệ của cửa hàng
type PricingConfig struct {
	FreeShippingThreshold float64
	BaseShippingCost      float64
	TaxRate               float64
}

type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	ShippingCost   float64 `json:"shippingCost"`
	Tax            float64 `json:"tax"`
	GrandTotal     float64 `json:"grandTotal"`
	IsFreeShipping bool    `json:"isFreeShipping"`
}
