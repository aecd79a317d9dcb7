package handler

import (
	"encoding/base64"
	"errors"
	"log"
	"strings"

	"shop_manager/config"
	"shop_manager/constants"
	"shop_manager/database"
	"shop_manager/helper"
	"shop_manager/model"
	"shop_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

func newPublicCode() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// CreateOrder tạo đơn trên một trong hai rail theo paymentMethod.
// Totals luôn tính phía server, không tin số client gửi lên.
func CreateOrder(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	claim := helper.GetInfoCustomerFromToken(c)
	userID := input.UserID
	if claim.CustomerId != 0 {
		userID = utils.Ptr(claim.CustomerId)
	}

	items := make([]model.LineItem, 0, len(input.Items))
	for _, item := range input.Items {
		var lineItem model.LineItem
		copier.Copy(&lineItem, &item)
		items = append(items, lineItem)
	}

	cfg := helper.DefaultPricingConfig()
	totals := helper.ComputeTotals(items, nil, cfg)
	code := newPublicCode()

	if input.PaymentMethod == "BANK_TRANSFER" {
		order := model.BankTransferOrder{
			PublicCode:     code,
			UserID:         userID,
			CustomerName:   input.CustomerName,
			CustomerEmail:  input.CustomerEmail,
			CustomerPhone:  input.CustomerPhone,
			Status:         constants.StatusPendingPayment,
			Subtotal:       totals.Subtotal,
			ShippingCost:   totals.ShippingCost,
			Tax:            totals.Tax,
			TotalAmount:    totals.GrandTotal,
			IsFreeShipping: totals.IsFreeShipping,
			// Snapshot tài khoản nhận tiền tại thời điểm đặt
			BankName:          config.Config("STORE_BANK_NAME"),
			BankAccountNumber: config.Config("STORE_BANK_ACCOUNT"),
			BankAccountHolder: config.Config("STORE_BANK_HOLDER"),
			Items:             items,
		}
		if err := database.DB.Create(&order).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo đơn hàng", err)
		}

		helper.PublishOrderEvent(order.PublicCode, constants.RailBankTransfer, "order_placed", nil)
		return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
			"order":            helper.NormalizeBankOrder(order, cfg),
			"transferQr":       transferQRBase64(order),
			"bankInstructions": fiber.Map{
				"bankName":      order.BankName,
				"accountNumber": order.BankAccountNumber,
				"accountHolder": order.BankAccountHolder,
				"amount":        order.TotalAmount,
				"transferNote":  order.PublicCode,
			},
		})
	}

	order := model.Order{
		PublicCode:     code,
		UserID:         userID,
		CustomerName:   input.CustomerName,
		CustomerEmail:  input.CustomerEmail,
		CustomerPhone:  input.CustomerPhone,
		Status:         constants.StatusPending,
		PaymentMethod:  input.PaymentMethod,
		Subtotal:       totals.Subtotal,
		ShippingCost:   totals.ShippingCost,
		Tax:            totals.Tax,
		TotalAmount:    totals.GrandTotal,
		IsFreeShipping: totals.IsFreeShipping,
		Items:          items,
	}
	if err := database.DB.Create(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo đơn hàng", err)
	}

	helper.PublishOrderEvent(order.PublicCode, constants.RailInstantGateway, "order_placed", nil)
	return utils.SuccessResponse(c, fiber.StatusCreated, helper.NormalizeGatewayOrder(order, cfg))
}

// GetMyOrders trả toàn bộ đơn của khách, gộp từ cả hai partition, mới nhất trước
func GetMyOrders(c *fiber.Ctx) error {
	claim := helper.GetInfoCustomerFromToken(c)
	email := c.Query("email")
	if claim.Email != "" {
		email = claim.Email
	}

	var userID *uint
	if claim.CustomerId != 0 {
		userID = utils.Ptr(claim.CustomerId)
	}

	if userID == nil && email == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu định danh khách hàng", nil)
	}

	views := helper.FetchCustomerOrders(database.DB, userID, email, helper.DefaultPricingConfig())
	return utils.SuccessResponse(c, fiber.StatusOK, views)
}

// GetOrderDetail tra một đơn theo mã công khai, kèm timeline + QR nếu còn chờ chuyển khoản
func GetOrderDetail(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	view, bankOrder, found := helper.FetchOrderByCode(database.DB, orderCode, helper.DefaultPricingConfig())
	if !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
	}

	response := fiber.Map{"order": view}
	if bankOrder != nil && bankOrder.Status == constants.StatusPendingPayment {
		response["transferQr"] = transferQRBase64(*bankOrder)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetOrders - danh sách cho dashboard admin, gộp hai partition, có phân trang
func GetOrders(c *fiber.Ctx) error {
	var pagination model.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Tham số phân trang không hợp lệ", err)
	}

	cfg := helper.DefaultPricingConfig()

	var gateway []model.Order
	gatewayErr := utils.ApplyPagination(database.DB.Preload("Items").Order("created_at desc"), pagination.Limit, pagination.Page).
		Find(&gateway).Error

	var bank []model.BankTransferOrder
	bankErr := utils.ApplyPagination(database.DB.Preload("Items").Order("created_at desc"), pagination.Limit, pagination.Page).
		Find(&bank).Error

	views := helper.AggregateOrders(gateway, gatewayErr, bank, bankErr, cfg)

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       views,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: int64(len(views)),
	})
}

// UpdateOrderStatus nhận các status fulfillment từ hệ thống ngoài (plain write).
// Stage chỉ được tiến, không được lùi; trạng thái hấp thụ thì khoá hẳn.
func UpdateOrderStatus(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")
	input, ok := c.Locals("input").(model.UpdateOrderStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var order model.Order
	if err := database.DB.Where("public_code = ?", orderCode).First(&order).Error; err == nil {
		newStage := helper.StageFor(constants.RailInstantGateway, input.Status)
		if newStage < helper.StageFor(constants.RailInstantGateway, order.Status) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Trạng thái không được đi lùi", nil)
		}
		if err := database.DB.Model(&order).Update("status", input.Status).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể cập nhật trạng thái", err)
		}
		helper.PublishOrderEvent(order.PublicCode, constants.RailInstantGateway, input.Status, nil)
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"orderId": order.PublicCode, "status": input.Status})
	}

	var bankOrder model.BankTransferOrder
	if err := database.DB.Where("public_code = ?", orderCode).First(&bankOrder).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	if helper.IsFailedStatus(bankOrder.Status) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn đã ở trạng thái thất bại, không thể cập nhật", nil)
	}
	newStage := helper.StageFor(constants.RailBankTransfer, input.Status)
	if newStage < helper.StageFor(constants.RailBankTransfer, bankOrder.Status) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Trạng thái không được đi lùi", nil)
	}
	if !bankOrder.PaymentVerified {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn chưa xác minh thanh toán, không thể giao", nil)
	}

	if err := database.DB.Model(&bankOrder).Update("status", input.Status).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể cập nhật trạng thái", err)
	}
	helper.PublishOrderEvent(bankOrder.PublicCode, constants.RailBankTransfer, input.Status, nil)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"orderId": bankOrder.PublicCode, "status": input.Status})
}

func transferQRBase64(order model.BankTransferOrder) string {
	content := utils.BuildTransferQRContent(order.BankName, order.BankAccountNumber, order.BankAccountHolder, order.PublicCode, order.TotalAmount)
	qrBytes, err := utils.GenerateQRCode(content, 400)
	if err != nil {
		log.Printf("Lỗi tạo QR cho đơn %s: %v", order.PublicCode, err)
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
}
