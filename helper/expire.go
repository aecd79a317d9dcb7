package helper

import (
	"log"
	"time"

	"shop_manager/config"
	"shop_manager/constants"
	"shop_manager/database"
	"shop_manager/model"

	"github.com/robfig/cron/v3"
)

var expireScheduler *cron.Cron

// StartExpireScheduler quét định kỳ các đơn chuyển khoản bị bỏ quên
func StartExpireScheduler() {
	expireScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Mỗi 30 phút là đủ, không cần mỗi phút
	_, err := expireScheduler.AddFunc("*/30 * * * *", expireAbandonedOrders)
	if err != nil {
		log.Printf("Lỗi khởi tạo expire scheduler: %v", err)
		return
	}

	expireScheduler.Start()
	log.Println("Expire scheduler đã khởi động (mỗi 30 phút)")
}

func StopExpireScheduler() {
	if expireScheduler != nil {
		expireScheduler.Stop()
	}
}

// expireAbandonedOrders chuyển đơn pending_payment không gửi mã giao dịch quá
// hạn sang payment_failed (trạng thái hấp thụ của rail chuyển khoản).
func expireAbandonedOrders() {
	hours := config.ConfigInt("BANK_ORDER_EXPIRE_HOURS", 48)
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)

	result := database.DB.Model(&model.BankTransferOrder{}).
		Where("status = ? AND transaction_reference IS NULL AND created_at < ?",
			constants.StatusPendingPayment, cutoff).
		Update("status", constants.StatusPaymentFailed)

	if result.Error != nil {
		log.Printf("Lỗi cập nhật đơn quá hạn: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Đã chuyển %d đơn quá hạn sang 'payment_failed'", result.RowsAffected)
	}
}
