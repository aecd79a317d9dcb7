package helper

import (
	"shop_manager/constants"
	"shop_manager/model"
)

// Bảng stage theo rail. Tiến một chiều, không bao giờ lùi.
var gatewayStages = map[string]int{
	constants.StatusPending:    0,
	constants.StatusConfirmed:  1,
	constants.StatusCompleted:  1,
	constants.StatusProcessing: 2,
	constants.StatusShipped:    3,
	constants.StatusDelivered:  4,
}

var bankStages = map[string]int{
	constants.StatusPendingPayment:   0,
	constants.StatusPaymentSubmitted: 1,
	constants.StatusPaymentVerified:  2,
	constants.StatusConfirmed:        2,
	constants.StatusProcessing:       3,
	constants.StatusShipped:          4,
	constants.StatusDelivered:        5,
}

var displayStatuses = map[string]string{
	constants.StatusPending:          "Chờ thanh toán",
	constants.StatusConfirmed:        "Đã xác nhận",
	constants.StatusCompleted:        "Đã xác nhận",
	constants.StatusProcessing:       "Đang chuẩn bị hàng",
	constants.StatusShipped:          "Đang giao",
	constants.StatusDelivered:        "Đã giao",
	constants.StatusPendingPayment:   "Chờ chuyển khoản",
	constants.StatusPaymentSubmitted: "Đang xác minh thanh toán",
	constants.StatusPaymentVerified:  "Đã xác nhận",
	constants.StatusRejected:         "Thanh toán bị từ chối",
	constants.StatusPaymentFailed:    "Thanh toán thất bại",
}

// IsFailedStatus - trạng thái hấp thụ, không có transition đi tiếp
func IsFailedStatus(status string) bool {
	return status == constants.StatusRejected || status == constants.StatusPaymentFailed
}

// StageFor map status thô + rail sang chỉ số stage cho thanh tiến trình.
// Status lạ: gateway mặc định stage 1 (coi như confirmed), bank mặc định stage 0.
// Hành vi mặc định này che một vấn đề chất lượng dữ liệu cũ - giữ nguyên vì
// email/trang cũ đã render theo nó, không "sửa ngầm".
func StageFor(rail, status string) int {
	if rail == constants.RailBankTransfer {
		if IsFailedStatus(status) {
			return 0
		}
		if stage, ok := bankStages[status]; ok {
			return stage
		}
		return 0
	}
	if stage, ok := gatewayStages[status]; ok {
		return stage
	}
	return 1
}

func DisplayStatus(rail, status string) string {
	if display, ok := displayStatuses[status]; ok {
		return display
	}
	if rail == constants.RailBankTransfer {
		return displayStatuses[constants.StatusPendingPayment]
	}
	return displayStatuses[constants.StatusConfirmed]
}

// BuildGatewayTimeline dựng dòng hoạt động cho đơn gateway, mới nhất đứng trước.
// Thuần projection từ bản ghi - không có state ẩn.
func BuildGatewayTimeline(order model.Order) []model.TimelineEntry {
	entries := []model.TimelineEntry{
		{Message: "Đặt hàng thành công", Date: order.CreatedAt, Type: "placed", Completed: true},
	}
	stage := StageFor(constants.RailInstantGateway, order.Status)

	if stage >= 1 {
		date := order.CreatedAt
		if order.PaidAt != nil {
			date = *order.PaidAt
		}
		entries = append(entries, model.TimelineEntry{
			Message: "Thanh toán thành công", Date: date, Type: "payment", Completed: true,
		})
	}
	if stage >= 2 {
		entries = append(entries, model.TimelineEntry{
			Message: "Đang chuẩn bị hàng", Date: order.UpdatedAt, Type: "fulfillment", Completed: stage > 2,
		})
	}
	if stage >= 3 {
		entries = append(entries, model.TimelineEntry{
			Message: "Đã bàn giao đơn vị vận chuyển", Date: order.UpdatedAt, Type: "fulfillment", Completed: stage > 3,
		})
	}
	if stage >= 4 {
		entries = append(entries, model.TimelineEntry{
			Message: "Giao hàng thành công", Date: order.UpdatedAt, Type: "fulfillment", Completed: true,
		})
	}

	reverse(entries)
	return entries
}

// BuildBankTimeline dựng dòng hoạt động cho đơn chuyển khoản, mới nhất đứng trước.
// Đơn pending_payment chưa gửi mã có đúng một entry "đặt hàng - chờ thanh toán".
func BuildBankTimeline(order model.BankTransferOrder) []model.TimelineEntry {
	if IsFailedStatus(order.Status) {
		entries := []model.TimelineEntry{
			{Message: "Đặt hàng thành công", Date: order.CreatedAt, Type: "placed", Completed: true},
			{Message: DisplayStatus(constants.RailBankTransfer, order.Status), Date: order.UpdatedAt, Type: "payment", Completed: false},
		}
		reverse(entries)
		return entries
	}

	stage := StageFor(constants.RailBankTransfer, order.Status)
	if stage == 0 && order.ReferenceSubmittedAt == nil {
		return []model.TimelineEntry{
			{Message: "Đặt hàng thành công - chờ chuyển khoản", Date: order.CreatedAt, Type: "placed", Completed: true},
		}
	}

	entries := []model.TimelineEntry{
		{Message: "Đặt hàng thành công", Date: order.CreatedAt, Type: "placed", Completed: true},
	}
	if order.ReferenceSubmittedAt != nil {
		entries = append(entries, model.TimelineEntry{
			Message: "Đã gửi mã giao dịch chuyển khoản", Date: *order.ReferenceSubmittedAt, Type: "payment", Completed: true,
		})
	}
	if stage >= 2 {
		date := order.UpdatedAt
		if order.PaymentVerifiedAt != nil {
			date = *order.PaymentVerifiedAt
		}
		entries = append(entries, model.TimelineEntry{
			Message: "Thanh toán đã được xác minh", Date: date, Type: "verification", Completed: true,
		})
	} else if order.ReferenceSubmittedAt != nil {
		entries = append(entries, model.TimelineEntry{
			Message: "Đang chờ xác minh thanh toán", Date: *order.ReferenceSubmittedAt, Type: "verification", Completed: false,
		})
	}
	if stage >= 3 {
		entries = append(entries, model.TimelineEntry{
			Message: "Đang chuẩn bị hàng", Date: order.UpdatedAt, Type: "fulfillment", Completed: stage > 3,
		})
	}
	if stage >= 4 {
		entries = append(entries, model.TimelineEntry{
			Message: "Đã bàn giao đơn vị vận chuyển", Date: order.UpdatedAt, Type: "fulfillment", Completed: stage > 4,
		})
	}
	if stage >= 5 {
		entries = append(entries, model.TimelineEntry{
			Message: "Giao hàng thành công", Date: order.UpdatedAt, Type: "fulfillment", Completed: true,
		})
	}

	reverse(entries)
	return entries
}

func reverse(entries []model.TimelineEntry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
