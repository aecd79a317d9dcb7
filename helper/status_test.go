package helper

import (
	"testing"
	"time"

	"shop_manager/constants"
	"shop_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageFor_GatewayRail(t *testing.T) {
	tests := []struct {
		status string
		want   int
	}{
		{constants.StatusPending, 0},
		{constants.StatusConfirmed, 1},
		{constants.StatusCompleted, 1},
		{constants.StatusProcessing, 2},
		{constants.StatusShipped, 3},
		{constants.StatusDelivered, 4},
		{"mystery_status", 1}, // status lạ mặc định stage 1 - hành vi cũ, giữ nguyên
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StageFor(constants.RailInstantGateway, tt.status), "status %q", tt.status)
	}
}

func TestStageFor_BankRail(t *testing.T) {
	tests := []struct {
		status string
		want   int
	}{
		{constants.StatusPendingPayment, 0},
		{constants.StatusPaymentSubmitted, 1},
		{constants.StatusPaymentVerified, 2},
		{constants.StatusConfirmed, 2},
		{constants.StatusProcessing, 3},
		{constants.StatusShipped, 4},
		{constants.StatusDelivered, 5},
		{"mystery_status", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StageFor(constants.RailBankTransfer, tt.status), "status %q", tt.status)
	}
}

func TestStageFor_GatewayForwardOnly(t *testing.T) {
	// Đi theo đúng thứ tự status thô thì stage không bao giờ giảm
	progression := []string{
		constants.StatusPending,
		constants.StatusConfirmed,
		constants.StatusProcessing,
		constants.StatusShipped,
		constants.StatusDelivered,
	}
	prev := -1
	for _, status := range progression {
		stage := StageFor(constants.RailInstantGateway, status)
		assert.GreaterOrEqual(t, stage, prev, "status %q", status)
		prev = stage
	}
}

func TestIsFailedStatus(t *testing.T) {
	assert.True(t, IsFailedStatus(constants.StatusRejected))
	assert.True(t, IsFailedStatus(constants.StatusPaymentFailed))
	assert.False(t, IsFailedStatus(constants.StatusPendingPayment))
	assert.False(t, IsFailedStatus(constants.StatusDelivered))
}

func TestBuildBankTimeline_PendingPaymentHasSingleEntry(t *testing.T) {
	order := model.BankTransferOrder{
		Status: constants.StatusPendingPayment,
	}
	order.CreatedAt = time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local)

	timeline := BuildBankTimeline(order)

	require.Len(t, timeline, 1)
	assert.Equal(t, "placed", timeline[0].Type)
	assert.True(t, timeline[0].Completed)
	assert.Equal(t, order.CreatedAt, timeline[0].Date)
}

func TestBuildBankTimeline_MostRecentFirst(t *testing.T) {
	created := time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local)
	submitted := created.Add(2 * time.Hour)
	verified := created.Add(3 * time.Hour)

	order := model.BankTransferOrder{
		Status:               constants.StatusConfirmed,
		TransactionReference: ptr("FT240123456789"),
		ReferenceSubmittedAt: &submitted,
		PaymentVerified:      true,
		PaymentVerifiedAt:    &verified,
	}
	order.CreatedAt = created

	timeline := BuildBankTimeline(order)

	require.Len(t, timeline, 3)
	assert.Equal(t, "verification", timeline[0].Type)
	assert.Equal(t, "payment", timeline[1].Type)
	assert.Equal(t, "placed", timeline[2].Type)
	for i := 1; i < len(timeline); i++ {
		assert.False(t, timeline[i].Date.After(timeline[i-1].Date), "timeline phải giảm dần theo thời gian")
	}
}

func TestBuildBankTimeline_SubmittedButNotVerified(t *testing.T) {
	created := time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local)
	submitted := created.Add(time.Hour)

	order := model.BankTransferOrder{
		Status:               constants.StatusPaymentSubmitted,
		TransactionReference: ptr("XQ7Z9P2KQ1"),
		ReferenceSubmittedAt: &submitted,
	}
	order.CreatedAt = created

	timeline := BuildBankTimeline(order)

	require.Len(t, timeline, 3)
	// Entry xác minh chưa hoàn tất đứng đầu
	assert.Equal(t, "verification", timeline[0].Type)
	assert.False(t, timeline[0].Completed)
}

func TestBuildBankTimeline_RejectedIsAbsorbing(t *testing.T) {
	order := model.BankTransferOrder{Status: constants.StatusRejected}
	order.CreatedAt = time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local)
	order.UpdatedAt = order.CreatedAt.Add(time.Hour)

	assert.Equal(t, 0, StageFor(constants.RailBankTransfer, order.Status))

	timeline := BuildBankTimeline(order)
	require.Len(t, timeline, 2)
	assert.False(t, timeline[0].Completed)
}

func TestBuildGatewayTimeline_Delivered(t *testing.T) {
	paid := time.Date(2026, 1, 5, 10, 0, 0, 0, time.Local)
	order := model.Order{
		Status: constants.StatusDelivered,
		PaidAt: &paid,
	}
	order.CreatedAt = paid.Add(-time.Hour)
	order.UpdatedAt = paid.Add(48 * time.Hour)

	timeline := BuildGatewayTimeline(order)

	require.Len(t, timeline, 5)
	assert.Equal(t, "placed", timeline[len(timeline)-1].Type)
	for _, entry := range timeline {
		assert.True(t, entry.Completed)
	}
}

func ptr[T any](v T) *T { return &v }
