package helper

import (
	"errors"
	"testing"
	"time"

	"shop_manager/constants"
	"shop_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayOrderAt(code string, createdAt time.Time) model.Order {
	order := model.Order{
		PublicCode:    code,
		CustomerName:  "Trần Thị B",
		CustomerEmail: "b@example.com",
		Status:        constants.StatusConfirmed,
		Subtotal:      200000,
	}
	order.ID = 1
	order.CreatedAt = createdAt
	return order
}

func bankOrderAt(code string, createdAt time.Time) model.BankTransferOrder {
	order := model.BankTransferOrder{
		PublicCode:    code,
		CustomerName:  "Trần Thị B",
		CustomerEmail: "b@example.com",
		Status:        constants.StatusPendingPayment,
		Subtotal:      300000,
	}
	order.ID = 2
	order.CreatedAt = createdAt
	return order
}

func TestNormalizeGatewayOrder(t *testing.T) {
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)
	order := gatewayOrderAt("ORD-AAA111", now)

	view := NormalizeGatewayOrder(order, testPricingConfig())

	assert.Equal(t, "ORD-AAA111", view.OrderCode)
	assert.Equal(t, constants.RailInstantGateway, view.Rail)
	assert.Equal(t, 1, view.Stage)
	assert.False(t, view.IsFailed)
	// Totals tính lại từ subtotal đã lưu theo luật làm tròn
	assert.Equal(t, float64(200000), view.Totals.Subtotal)
	assert.Equal(t, float64(15000), view.Totals.ShippingCost)
	assert.NotEmpty(t, view.Timeline)
}

func TestNormalizeBankOrder(t *testing.T) {
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)
	order := bankOrderAt("ORD-BBB222", now)

	view := NormalizeBankOrder(order, testPricingConfig())

	assert.Equal(t, constants.RailBankTransfer, view.Rail)
	assert.Equal(t, 0, view.Stage)
	assert.False(t, view.PaymentVerified)
	require.Len(t, view.Timeline, 1)
}

func TestAggregateOrders_MergesSortedByCreatedAtDesc(t *testing.T) {
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)
	gateway := []model.Order{
		gatewayOrderAt("ORD-G1", base),
		gatewayOrderAt("ORD-G2", base.Add(2*time.Hour)),
	}
	bank := []model.BankTransferOrder{
		bankOrderAt("ORD-B1", base.Add(time.Hour)),
		bankOrderAt("ORD-B2", base.Add(3*time.Hour)),
	}

	views := AggregateOrders(gateway, nil, bank, nil, testPricingConfig())

	require.Len(t, views, 4)
	codes := []string{views[0].OrderCode, views[1].OrderCode, views[2].OrderCode, views[3].OrderCode}
	assert.Equal(t, []string{"ORD-B2", "ORD-G2", "ORD-B1", "ORD-G1"}, codes)
}

func TestAggregateOrders_TieBrokenByInputOrder(t *testing.T) {
	// Cùng CreatedAt: sort ổn định giữ thứ tự đầu vào (gateway trước bank)
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)
	gateway := []model.Order{gatewayOrderAt("ORD-G1", base)}
	bank := []model.BankTransferOrder{bankOrderAt("ORD-B1", base)}

	views := AggregateOrders(gateway, nil, bank, nil, testPricingConfig())

	require.Len(t, views, 2)
	assert.Equal(t, "ORD-G1", views[0].OrderCode)
	assert.Equal(t, "ORD-B1", views[1].OrderCode)
}

func TestAggregateOrders_PartitionErrorDegradesToPartialResult(t *testing.T) {
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)
	gateway := []model.Order{gatewayOrderAt("ORD-G1", base)}

	// Partition chuyển khoản lỗi: vẫn trả kết quả partition còn lại, đã normalize và sort
	views := AggregateOrders(gateway, nil, nil, errors.New("connection refused"), testPricingConfig())

	require.Len(t, views, 1)
	assert.Equal(t, "ORD-G1", views[0].OrderCode)
	assert.Equal(t, constants.RailInstantGateway, views[0].Rail)
}

func TestAggregateOrders_BothPartitionsFailing(t *testing.T) {
	views := AggregateOrders(nil, errors.New("down"), nil, errors.New("down"), testPricingConfig())
	assert.Empty(t, views)
}

func TestAggregateOrders_StaleRowsIgnoredWhenErrored(t *testing.T) {
	// Query lỗi kèm rows rác: rows của partition lỗi phải bị bỏ
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)
	bank := []model.BankTransferOrder{bankOrderAt("ORD-B1", base)}

	views := AggregateOrders(nil, nil, bank, errors.New("timeout"), testPricingConfig())
	assert.Empty(t, views)
}
