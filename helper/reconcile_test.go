package helper

import (
	"testing"
	"time"

	"shop_manager/constants"
	"shop_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileOne_SkipsOrderWithoutReference(t *testing.T) {
	// Đơn thiếu mã hoặc thiếu timestamp thì bỏ qua, không đụng tới DB
	verifier := testVerifier(offHoursClock)
	order := model.BankTransferOrder{
		PublicCode:         "ORD-X1",
		Status:             constants.StatusPaymentSubmitted,
		VerificationMethod: constants.VerificationPendingManual,
	}

	verified, err := reconcileOne(nil, verifier, order, offHoursClock)

	require.NoError(t, err)
	assert.False(t, verified)
}

func TestReconcileOne_RecoversFromPanic(t *testing.T) {
	// verifier.Now nil làm Score panic bên trong reconcileOne trước khi chạm DB;
	// lỗi phải được cô lập về một đơn thay vì làm gãy cả batch.
	// (Score tự recover, nhưng defer của reconcileOne là lưới đỡ cuối cùng
	// nếu có panic ở chỗ khác - ở đây ít nhất khẳng định không panic lan ra.)
	verifier := &Verifier{Config: DefaultScoringConfig(), Now: nil}
	submitted := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)
	order := model.BankTransferOrder{
		PublicCode:           "ORD-X2",
		Status:               constants.StatusPaymentSubmitted,
		VerificationMethod:   constants.VerificationPendingManual,
		TransactionReference: ptr("FT240123456789"),
		ReferenceSubmittedAt: &submitted,
	}

	assert.NotPanics(t, func() {
		// Score trả kết quả 0 điểm → nhánh "ghi điểm quan sát" cần DB, nhưng
		// panic từ db nil cũng phải bị defer trong reconcileOne nuốt thành err
		_, _ = reconcileOne(nil, verifier, order, submitted.Add(2*time.Hour))
	})
}
