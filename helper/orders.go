package helper

import (
	"log"
	"sort"

	"shop_manager/constants"
	"shop_manager/model"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// NormalizeGatewayOrder đưa bản ghi partition gateway về hình dạng chung.
// Totals luôn tính lại từ subtotal đã lưu theo đúng luật làm tròn (đường back-compat).
func NormalizeGatewayOrder(order model.Order, cfg model.PricingConfig) model.OrderView {
	var view model.OrderView
	copier.Copy(&view, &order)

	view.OrderCode = order.PublicCode
	view.InternalID = order.ID
	view.Rail = constants.RailInstantGateway
	view.Stage = StageFor(constants.RailInstantGateway, order.Status)
	view.DisplayStatus = DisplayStatus(constants.RailInstantGateway, order.Status)
	view.IsFailed = false
	view.Totals = ComputeTotals(order.Items, &order.Subtotal, cfg)
	view.Timeline = BuildGatewayTimeline(order)
	view.CreatedAt = order.CreatedAt
	return view
}

func NormalizeBankOrder(order model.BankTransferOrder, cfg model.PricingConfig) model.OrderView {
	var view model.OrderView
	copier.Copy(&view, &order)

	view.OrderCode = order.PublicCode
	view.InternalID = order.ID
	view.Rail = constants.RailBankTransfer
	view.Stage = StageFor(constants.RailBankTransfer, order.Status)
	view.DisplayStatus = DisplayStatus(constants.RailBankTransfer, order.Status)
	view.IsFailed = IsFailedStatus(order.Status)
	view.Totals = ComputeTotals(order.Items, &order.Subtotal, cfg)
	view.Timeline = BuildBankTimeline(order)
	view.CreatedAt = order.CreatedAt
	return view
}

// AggregateOrders normalize hai partition rồi trộn, mới nhất đứng trước.
// Partition nào lỗi thì bỏ qua partition đó (log lại) chứ không fail cả lời gọi.
// Sort ổn định: cùng CreatedAt thì giữ thứ tự đầu vào.
func AggregateOrders(gateway []model.Order, gatewayErr error, bank []model.BankTransferOrder, bankErr error, cfg model.PricingConfig) []model.OrderView {
	if gatewayErr != nil {
		log.Printf("Lỗi truy vấn partition gateway, trả kết quả một phần: %v", gatewayErr)
		gateway = nil
	}
	if bankErr != nil {
		log.Printf("Lỗi truy vấn partition chuyển khoản, trả kết quả một phần: %v", bankErr)
		bank = nil
	}

	views := make([]model.OrderView, 0, len(gateway)+len(bank))
	for _, order := range gateway {
		views = append(views, NormalizeGatewayOrder(order, cfg))
	}
	for _, order := range bank {
		views = append(views, NormalizeBankOrder(order, cfg))
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views
}

// FetchCustomerOrders lấy toàn bộ đơn của một khách từ cả hai partition
func FetchCustomerOrders(db *gorm.DB, userID *uint, email string, cfg model.PricingConfig) []model.OrderView {
	var gateway []model.Order
	gatewayErr := customerScope(db.Preload("Items"), userID, email).
		Order("created_at desc").
		Find(&gateway).Error

	var bank []model.BankTransferOrder
	bankErr := customerScope(db.Preload("Items"), userID, email).
		Order("created_at desc").
		Find(&bank).Error

	return AggregateOrders(gateway, gatewayErr, bank, bankErr, cfg)
}

func customerScope(query *gorm.DB, userID *uint, email string) *gorm.DB {
	if userID != nil && email != "" {
		return query.Where("user_id = ? OR customer_email = ?", *userID, email)
	}
	if userID != nil {
		return query.Where("user_id = ?", *userID)
	}
	return query.Where("customer_email = ?", email)
}

// FetchOrderByCode tìm một đơn theo mã công khai: partition gateway trước,
// chuyển khoản sau, thấy ở đâu trả ở đó. Mã đơn vốn chỉ tồn tại ở một partition;
// nếu vì lý do nào đó có ở cả hai thì bản gateway thắng, không coi là lỗi.
func FetchOrderByCode(db *gorm.DB, code string, cfg model.PricingConfig) (*model.OrderView, *model.BankTransferOrder, bool) {
	var order model.Order
	if err := db.Preload("Items").Where("public_code = ?", code).First(&order).Error; err == nil {
		view := NormalizeGatewayOrder(order, cfg)
		return &view, nil, true
	}

	var bankOrder model.BankTransferOrder
	if err := db.Preload("Items").Where("public_code = ?", code).First(&bankOrder).Error; err == nil {
		view := NormalizeBankOrder(bankOrder, cfg)
		return &view, &bankOrder, true
	}

	return nil, nil, false
}
