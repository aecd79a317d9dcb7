package handler

import (
	"shop_manager/database"
	"shop_manager/helper"
	"shop_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// TriggerReconciliation - entry point cho scheduler ngoài gọi theo cadence cố định.
// Secret đã được middleware.CronSecret() kiểm tra trước khi vào đây.
func TriggerReconciliation(c *fiber.Ctx) error {
	stats, err := helper.RunReconciliation(database.DB, helper.NewVerifier())
	if err != nil {
		// Tiến độ đã commit theo từng đơn vẫn giữ nguyên, chỉ báo batch lỗi
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lượt đối soát thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}
