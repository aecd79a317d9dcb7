package handler

import (
	"errors"
	"strings"
	"time"

	"shop_manager/constants"
	"shop_manager/database"
	"shop_manager/helper"
	"shop_manager/model"
	"shop_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// SubmitTransactionReference - khách gửi mã giao dịch sau khi chuyển khoản.
//
// Immediate pass chạy ngay tại đây. Kết quả cho khách chỉ có hai loại:
// "đã xác minh" hoặc "chờ xác minh" - mọi lỗi nội bộ đều rơi về "chờ xác minh"
// (fail-safe về thủ công, không bao giờ fail-safe về auto-approve).
func SubmitTransactionReference(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")
	input, ok := c.Locals("input").(model.SubmitReferenceInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var order model.BankTransferOrder
	if err := database.DB.Where("public_code = ?", orderCode).First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	if order.PaymentVerified {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn đã được xác minh thanh toán", nil)
	}
	if helper.IsFailedStatus(order.Status) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn đã ở trạng thái thất bại", nil)
	}
	// Mã giao dịch là bất biến: đã ghi một lần thì không nhận lại
	if order.TransactionReference != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn này đã có mã giao dịch, đang chờ xác minh", nil)
	}

	reference := strings.TrimSpace(input.TransactionReference)
	now := time.Now()

	verifier := helper.NewVerifier()
	result := verifier.Score(reference, order.TotalAmount, 0, false)
	note := strings.Join(result.Reasons, "; ")

	if result.CanAutoVerify {
		if err := database.DB.Model(&order).Updates(map[string]interface{}{
			"transaction_reference":  reference,
			"reference_submitted_at": now,
			"status":                 constants.StatusConfirmed,
			"payment_verified":       true,
			"verification_method":    constants.VerificationAutoImmediate,
			"confidence_score":       result.Score,
			"verification_note":      note,
			"payment_verified_at":    now,
		}).Error; err != nil {
			// Verify không ghi được thì rơi về nhánh chờ thủ công bên dưới
			result.CanAutoVerify = false
		}
	}

	if result.CanAutoVerify {
		utils.SendCustomerVerifiedEmail(order.CustomerEmail, order.CustomerName, order.PublicCode, order.TotalAmount)
		utils.SendAdminAutoVerifiedEmail(order.PublicCode, order.TotalAmount, result.Score, result.Reasons)
		helper.PublishOrderEvent(order.PublicCode, constants.RailBankTransfer, "payment_verified", &result.Score)

		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"orderId":  order.PublicCode,
			"verified": true,
			"message":  constants.PAYMENT_VERIFIED_MESSAGE,
		})
	}

	if err := database.DB.Model(&order).Updates(map[string]interface{}{
		"transaction_reference":  reference,
		"reference_submitted_at": now,
		"status":                 constants.StatusPaymentSubmitted,
		"verification_method":    constants.VerificationPendingManual,
		"confidence_score":       result.Score,
		"verification_note":      note,
	}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể ghi nhận mã giao dịch", err)
	}

	helper.PublishOrderEvent(order.PublicCode, constants.RailBankTransfer, "payment_submitted", &result.Score)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderId":  order.PublicCode,
		"verified": false,
		"message":  constants.PAYMENT_PENDING_MESSAGE,
	})
}

// AdminVerifyPayment - admin duyệt tay một đơn chuyển khoản
func AdminVerifyPayment(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	var order model.BankTransferOrder
	if err := database.DB.Where("public_code = ?", orderCode).First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	if order.PaymentVerified {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn đã được xác minh rồi", nil)
	}
	if helper.IsFailedStatus(order.Status) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn đã ở trạng thái thất bại", nil)
	}

	claim := helper.GetInfoCustomerFromToken(c)
	now := time.Now()
	if err := database.DB.Model(&order).Updates(map[string]interface{}{
		"status":              constants.StatusConfirmed,
		"payment_verified":    true,
		"verification_method": constants.VerificationManualAdmin,
		"verification_note":   "Duyệt thủ công bởi " + claim.Username,
		"payment_verified_at": now,
	}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể cập nhật đơn", err)
	}

	utils.SendCustomerVerifiedEmail(order.CustomerEmail, order.CustomerName, order.PublicCode, order.TotalAmount)
	helper.PublishOrderEvent(order.PublicCode, constants.RailBankTransfer, "payment_verified", nil)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderId": order.PublicCode,
		"status":  constants.StatusConfirmed,
	})
}

// AdminRejectPayment - chỉ admin mới được từ chối, job đối soát không bao giờ reject.
// rejected là trạng thái hấp thụ: từ đây không đi đâu nữa.
func AdminRejectPayment(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")
	input, ok := c.Locals("input").(model.RejectPaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var order model.BankTransferOrder
	if err := database.DB.Where("public_code = ?", orderCode).First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	if order.Status != constants.StatusPaymentSubmitted {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Chỉ từ chối được đơn đang chờ xác minh", nil)
	}

	claim := helper.GetInfoCustomerFromToken(c)
	if err := database.DB.Model(&order).Updates(map[string]interface{}{
		"status":            constants.StatusRejected,
		"verification_note": "Từ chối bởi " + claim.Username + ": " + input.Reason,
	}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể cập nhật đơn", err)
	}

	helper.PublishOrderEvent(order.PublicCode, constants.RailBankTransfer, "payment_rejected", nil)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderId": order.PublicCode,
		"status":  constants.StatusRejected,
	})
}
