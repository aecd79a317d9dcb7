package helper

import (
	"math"

	"shop_manager/config"
	"shop_manager/model"
)

// DefaultPricingConfig đọc các hằng chính sách từ env, thiếu thì dùng mặc định
func DefaultPricingConfig() model.PricingConfig {
	return model.PricingConfig{
		FreeShippingThreshold: config.ConfigFloat("FREE_SHIPPING_THRESHOLD", 1000000),
		BaseShippingCost:      config.ConfigFloat("BASE_SHIPPING_COST", 15000),
		TaxRate:               config.ConfigFloat("TAX_RATE", 0.0001),
	}
}

// Round10 làm tròn LÊN bội số 10 gần nhất: ceil(x/10)*10
func Round10(x float64) float64 {
	return math.Ceil(x/10) * 10
}

// ComputeTotals tính {subtotal, shipping, tax, grandTotal} từ danh sách line item.
//
// Luật làm tròn áp dụng ở TỪNG bước (mỗi dòng, shipping, tax, tổng cuối) chứ
// không phải một lần ở cuối - tổng đã gửi email cho khách trước đây tính theo
// cách này nên mọi nơi phải ra kết quả giống hệt nhau.
//
// precomputedSubtotal khác nil nghĩa là caller đã tính và lưu subtotal từ trước:
// tin nguyên giá trị đó, không tính lại từ items, nhưng shipping/tax/total vẫn
// tính tiếp từ nó theo luật làm tròn.
func ComputeTotals(items []model.LineItem, precomputedSubtotal *float64, cfg model.PricingConfig) model.Totals {
	var subtotal float64
	if precomputedSubtotal != nil {
		subtotal = *precomputedSubtotal
	} else {
		for _, item := range items {
			subtotal += Round10(item.UnitAmount * float64(item.Quantity))
		}
	}

	isFreeShipping := subtotal >= cfg.FreeShippingThreshold

	shipping := 0.0
	if !isFreeShipping {
		shipping = Round10(cfg.BaseShippingCost)
	}

	tax := Round10(subtotal * cfg.TaxRate)
	grandTotal := Round10(subtotal + shipping + tax)

	return model.Totals{
		Subtotal:       subtotal,
		ShippingCost:   shipping,
		Tax:            tax,
		GrandTotal:     grandTotal,
		IsFreeShipping: isFreeShipping,
	}
}
