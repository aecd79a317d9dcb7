package database

import (
	"log"

	"shop_manager/config"
	"shop_manager/constants"
	"shop_manager/model"

	"gorm.io/gorm"
)

// SeedData tạo dữ liệu mẫu cho môi trường dev (SEED_DEMO=true)
func SeedData(db *gorm.DB) {
	if config.Config("SEED_DEMO") != "true" {
		return
	}

	orders := []model.BankTransferOrder{
		{
			PublicCode:         "ORD-DEMO01",
			CustomerName:       "Nguyễn Văn A",
			CustomerEmail:      "demo@example.com",
			Status:             constants.StatusPendingPayment,
			Subtotal:           250000,
			ShippingCost:       15000,
			Tax:                30,
			TotalAmount:        265030,
			VerificationMethod: "",
			BankName:           config.Config("STORE_BANK_NAME"),
			BankAccountNumber:  config.Config("STORE_BANK_ACCOUNT"),
			BankAccountHolder:  config.Config("STORE_BANK_HOLDER"),
			Items: []model.LineItem{
				{Name: "Áo thun basic", Quantity: 2, UnitAmount: 125000},
			},
		},
	}

	for _, order := range orders {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.BankTransferOrder{PublicCode: order.PublicCode}).FirstOrCreate(&order).Error; err != nil {
			log.Println("failed to seed demo order:", order.PublicCode, "error:", err)
		}
	}
}
