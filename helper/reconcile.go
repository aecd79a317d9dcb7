package helper

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"shop_manager/config"
	"shop_manager/constants"
	"shop_manager/database"
	"shop_manager/model"
	"shop_manager/utils"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

var reconcileScheduler gocron.Scheduler

const reconcileLockKey = "reconcile:lock"

type ReconcileStats struct {
	Processed int  `json:"processed"`
	Verified  int  `json:"verified"`
	Remaining int  `json:"remaining"`
	Failed    int  `json:"failed"`
	Skipped   bool `json:"skipped,omitempty"`
}

// RunReconciliation quét các đơn chuyển khoản còn treo ở pending_manual quá
// ngưỡng chờ, chấm lại điểm ở delayed pass và auto-verify đơn đủ điều kiện.
//
// Điều kiện lọc ngay trong query (pending_manual + chưa verified) là thứ làm
// cho job idempotent: chạy lại trên đơn đã verified là no-op nên gọi
// at-least-once vẫn an toàn. Lỗi từng đơn được cô lập, không làm gãy cả batch;
// tiến độ đã commit theo đơn không bao giờ rollback.
func RunReconciliation(db *gorm.DB, verifier *Verifier) (ReconcileStats, error) {
	stats := ReconcileStats{}

	// Khoá chống hai lần chạy chồng nhau (cron nội bộ đụng trigger HTTP).
	// Redis chết thì vẫn chạy - khoá chỉ là giảm nhiễu, không phải điều kiện đúng đắn.
	ctx := context.Background()
	if database.Redis != nil {
		ok, err := database.Redis.SetNX(ctx, reconcileLockKey, time.Now().Format(time.RFC3339), 10*time.Minute).Result()
		if err != nil {
			log.Printf("[CRON] Không đặt được khoá redis, chạy không khoá: %v", err)
		} else if !ok {
			log.Println("[CRON] Một lượt đối soát khác đang chạy, bỏ qua")
			stats.Skipped = true
			return stats, nil
		} else {
			defer database.Redis.Del(ctx, reconcileLockKey)
		}
	}

	delayMinutes := config.ConfigInt("RECONCILE_DELAY_MINUTES", 30)
	now := verifier.Now()
	cutoff := now.Add(-time.Duration(delayMinutes) * time.Minute)

	var orders []model.BankTransferOrder
	if err := db.
		Where("verification_method = ? AND payment_verified = ? AND status = ? AND reference_submitted_at <= ?",
			constants.VerificationPendingManual, false, constants.StatusPaymentSubmitted, cutoff).
		Find(&orders).Error; err != nil {
		log.Printf("[CRON] Lỗi truy vấn đơn chờ đối soát: %v", err)
		utils.SendAdminCronErrorEmail(err)
		return stats, err
	}

	for _, order := range orders {
		stats.Processed++
		verified, err := reconcileOne(db, verifier, order, now)
		if err != nil {
			stats.Failed++
			log.Printf("[CRON] Lỗi xử lý đơn %s, bỏ qua đơn này: %v", order.PublicCode, err)
			continue
		}
		if verified {
			stats.Verified++
		}
	}
	stats.Remaining = stats.Processed - stats.Verified

	log.Printf("[CRON] Đối soát xong: %d đơn, verify %d, còn lại %d", stats.Processed, stats.Verified, stats.Remaining)
	utils.SendAdminCronSummaryEmail(stats.Processed, stats.Verified, stats.Remaining)
	return stats, nil
}

func reconcileOne(db *gorm.DB, verifier *Verifier, order model.BankTransferOrder, now time.Time) (verified bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic khi đối soát: %v", r)
		}
	}()

	if order.TransactionReference == nil || order.ReferenceSubmittedAt == nil {
		return false, nil
	}

	waitMinutes := int(now.Sub(*order.ReferenceSubmittedAt).Minutes())
	result := verifier.Score(*order.TransactionReference, order.TotalAmount, waitMinutes, true)
	note := strings.Join(result.Reasons, "; ")

	if !result.CanAutoVerify {
		// Ghi lại điểm đã đánh giá để quan sát, trạng thái giữ nguyên
		return false, db.Model(&model.BankTransferOrder{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"confidence_score":  result.Score,
				"verification_note": note,
			}).Error
	}

	// WHERE có guard pending_manual + chưa verified: admin duyệt tay chen ngang
	// thì update này thành no-op 0 dòng thay vì đè lên quyết định của admin.
	update := db.Model(&model.BankTransferOrder{}).
		Where("id = ? AND payment_verified = ? AND verification_method = ?",
			order.ID, false, constants.VerificationPendingManual).
		Updates(map[string]interface{}{
			"status":              constants.StatusConfirmed,
			"payment_verified":    true,
			"verification_method": constants.VerificationAutoDelayed,
			"confidence_score":    result.Score,
			"verification_note":   note,
			"payment_verified_at": now,
		})
	if update.Error != nil {
		return false, update.Error
	}
	if update.RowsAffected == 0 {
		return false, nil
	}

	// Thông báo best-effort: không chờ, không rollback verify nếu gửi lỗi
	utils.SendCustomerVerifiedEmail(order.CustomerEmail, order.CustomerName, order.PublicCode, order.TotalAmount)
	utils.SendAdminAutoVerifiedEmail(order.PublicCode, order.TotalAmount, result.Score, result.Reasons)
	PublishOrderEvent(order.PublicCode, constants.RailBankTransfer, "payment_verified", &result.Score)

	return true, nil
}

// StartReconcileScheduler chạy đối soát định kỳ mỗi RECONCILE_INTERVAL_MINUTES phút
func StartReconcileScheduler(db *gorm.DB) {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	reconcileScheduler = s
	interval := config.ConfigInt("RECONCILE_INTERVAL_MINUTES", 15)

	_, err = s.NewJob(
		gocron.DurationJob(time.Duration(interval)*time.Minute),
		gocron.NewTask(func() {
			if _, err := RunReconciliation(db, NewVerifier()); err != nil {
				log.Printf("[CRON] Lượt đối soát thất bại: %v", err)
			}
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Printf("✅ Reconcile scheduler started (mỗi %d phút)", interval)
}

func StopReconcileScheduler() {
	if reconcileScheduler != nil {
		_ = reconcileScheduler.Shutdown()
	}
}
