package helper

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"shop_manager/config"
)

// ReferencePattern - một định dạng mã giao dịch ngân hàng đã biết.
// Danh sách có thứ tự, match đầu tiên thắng.
type ReferencePattern struct {
	Regex  *regexp.Regexp
	Weight int
	Label  string
}

// bonusTier - bậc thưởng cộng dồn, dùng chung cho wait-time và amount-risk
type bonusTier struct {
	Threshold float64
	Bonus     int
	Reason    string
}

// ScoringConfig gom mọi tham số chấm điểm. Immediate pass và delayed pass chỉ
// khác nhau ở bảng tham số, không nhân đôi logic.
type ScoringConfig struct {
	MinConfidence         int
	FallbackWeight        int
	PatienceMinWait       int     // phút
	PatienceAmountCeiling float64 // trần tiền cho ngoại lệ "khách đã chờ lâu"
	PatienceMinScore      int

	WaitTiers            []bonusTier // chỉ delayed pass
	ImmediateAmountTiers []bonusTier
	DelayedAmountTiers   []bonusTier
}

// referencePatterns - các định dạng mã giao dịch phổ biến của các ngân hàng trong nước.
// Trọng số 90-95, pattern càng đặc thù càng đứng trên.
var referencePatterns = []ReferencePattern{
	{regexp.MustCompile(`^FT\d{10,16}$`), 95, "mã FT chuyển khoản liên ngân hàng"},
	{regexp.MustCompile(`^TRF[A-Z0-9]{8,18}$`), 94, "mã TRF chuyển tiền"},
	{regexp.MustCompile(`^(VCB|TCB|BIDV|VTB|ACB)\d{8,14}$`), 93, "mã giao dịch ngân hàng nội địa"},
	{regexp.MustCompile(`^MB\d{10,14}$`), 92, "mã giao dịch MB"},
	{regexp.MustCompile(`^\d{12,16}$`), 90, "mã giao dịch thuần số"},
}

// fallbackPattern - lưới cuối cùng: chuỗi chữ-số 8-25 ký tự
var fallbackPattern = regexp.MustCompile(`^[A-Za-z0-9]{8,25}$`)

// knownBankPrefixes - tiền tố nhận diện được của mã giao dịch
var knownBankPrefixes = []string{"FT", "TRF", "VCB", "TCB", "BIDV", "VTB", "ACB", "MB"}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		MinConfidence:         config.ConfigInt("MIN_CONFIDENCE", 85),
		FallbackWeight:        75,
		PatienceMinWait:       360,
		PatienceAmountCeiling: config.ConfigFloat("PATIENCE_AMOUNT_CEILING", 200000),
		PatienceMinScore:      75,
		WaitTiers: []bonusTier{
			{240, 20, "đã chờ hơn 4 giờ"},
			{120, 15, "đã chờ hơn 2 giờ"},
			{60, 10, "đã chờ hơn 1 giờ"},
			{30, 8, "đã chờ hơn 30 phút"},
		},
		ImmediateAmountTiers: []bonusTier{
			{100000, 10, "số tiền nhỏ, rủi ro thấp"},
			{250000, 5, "số tiền vừa phải"},
		},
		DelayedAmountTiers: []bonusTier{
			{200000, 10, "số tiền nhỏ, rủi ro thấp"},
			{500000, 8, "số tiền vừa phải"},
			{1000000, 5, "số tiền trong ngưỡng chấp nhận"},
		},
	}
}

type ScoreResult struct {
	Score         int      `json:"score"`
	CanAutoVerify bool     `json:"canAutoVerify"`
	Reasons       []string `json:"reasons"`
}

// Verifier chấm điểm tin cậy cho mã giao dịch chuyển khoản.
// Không có state thay đổi - gọi song song từ nhiều handler đều an toàn.
type Verifier struct {
	Config ScoringConfig
	Now    func() time.Time
}

func NewVerifier() *Verifier {
	return &Verifier{
		Config: DefaultScoringConfig(),
		Now:    time.Now,
	}
}

// Score chấm điểm 0-100 cho một mã giao dịch.
//
// delayed=false là immediate pass (lúc khách vừa gửi mã, chặt), delayed=true là
// delayed pass (job đối soát chạy định kỳ, lỏng hơn). Hai pass chỉ khác bảng
// tham số và hai chỗ bất đối xứng có chủ đích:
//   - fallback pattern trượt: immediate loại thẳng, delayed vẫn chấm tiếp
//   - ngoại lệ "khách đã chờ lâu" chỉ xét ở delayed pass, và chỉ khi ngưỡng chung trượt
//
// Mọi lỗi bên trong đều trả về điểm 0 + không auto-verify, không bao giờ panic ra ngoài.
func (v *Verifier) Score(reference string, amount float64, waitMinutes int, delayed bool) (result ScoreResult) {
	defer func() {
		if r := recover(); r != nil {
			result = ScoreResult{
				Score:         0,
				CanAutoVerify: false,
				Reasons:       []string{"lỗi hệ thống khi xác minh, chuyển xác minh thủ công"},
			}
		}
	}()

	reference = strings.TrimSpace(reference)
	score := 0
	reasons := []string{}

	// 1. Khớp định dạng
	matched := false
	for _, p := range referencePatterns {
		if p.Regex.MatchString(reference) {
			score += p.Weight
			reasons = append(reasons, fmt.Sprintf("khớp %s (+%d)", p.Label, p.Weight))
			matched = true
			break
		}
	}
	if !matched {
		if fallbackPattern.MatchString(reference) {
			score += v.Config.FallbackWeight
			reasons = append(reasons, fmt.Sprintf("định dạng chưa nhận diện nhưng hợp lệ (+%d)", v.Config.FallbackWeight))
		} else if !delayed {
			// Immediate pass: định dạng không hợp lệ thì loại thẳng
			return ScoreResult{
				Score:         0,
				CanAutoVerify: false,
				Reasons:       []string{"mã giao dịch không đúng định dạng nào được chấp nhận"},
			}
		} else {
			// Delayed pass vẫn chấm tiếp các heuristic còn lại
			reasons = append(reasons, "định dạng không nhận diện được, chấm theo các tiêu chí còn lại")
		}
	}

	// 2. Thưởng thời gian chờ (chỉ delayed pass - immediate thì wait ~0)
	if delayed {
		for _, tier := range v.Config.WaitTiers {
			if float64(waitMinutes) >= tier.Threshold {
				score += tier.Bonus
				reasons = append(reasons, fmt.Sprintf("%s (+%d)", tier.Reason, tier.Bonus))
				break
			}
		}
	}

	// 3. Thưởng theo mức rủi ro số tiền
	amountTiers := v.Config.ImmediateAmountTiers
	if delayed {
		amountTiers = v.Config.DelayedAmountTiers
	}
	for _, tier := range amountTiers {
		if amount <= tier.Threshold {
			score += tier.Bonus
			reasons = append(reasons, fmt.Sprintf("%s (+%d)", tier.Reason, tier.Bonus))
			break
		}
	}

	// 4. Chất lượng chuỗi mã
	if bonus, reason := referenceQuality(reference); bonus > 0 {
		score += bonus
		reasons = append(reasons, fmt.Sprintf("%s (+%d)", reason, bonus))
	}

	// 5. Tiền tố ngân hàng nhận diện được
	upper := strings.ToUpper(reference)
	for _, prefix := range knownBankPrefixes {
		if strings.HasPrefix(upper, prefix) {
			score += 5
			reasons = append(reasons, fmt.Sprintf("tiền tố %s của ngân hàng (+5)", prefix))
			break
		}
	}

	// 6. Bối cảnh thời gian gửi
	now := v.Now()
	if isBusinessHours(now) {
		score += 8
		reasons = append(reasons, "gửi trong giờ hành chính (+8)")
	} else if delayed && waitMinutes >= 120 {
		score += 5
		reasons = append(reasons, "ngoài giờ nhưng đã chờ đủ lâu (+5)")
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	canAutoVerify := score >= v.Config.MinConfidence
	if !canAutoVerify {
		// Ngoại lệ hẹp, chỉ xét khi ngưỡng chung đã trượt: khách kiên nhẫn chờ
		// rất lâu với số tiền nhỏ thì chấp nhận điểm sát ngưỡng.
		if delayed &&
			waitMinutes >= v.Config.PatienceMinWait &&
			amount <= v.Config.PatienceAmountCeiling &&
			score >= v.Config.PatienceMinScore {
			score += 10
			if score > 100 {
				score = 100
			}
			canAutoVerify = true
			reasons = append(reasons, fmt.Sprintf("khách đã chờ %.1f giờ với số tiền nhỏ, chấp nhận điểm sát ngưỡng (+10)", float64(waitMinutes)/60))
		} else {
			reasons = append(reasons, fmt.Sprintf("điểm tin cậy %d dưới ngưỡng %d, cần xác minh thủ công", score, v.Config.MinConfidence))
		}
	}

	return ScoreResult{
		Score:         score,
		CanAutoVerify: canAutoVerify,
		Reasons:       reasons,
	}
}

// referenceQuality đánh giá độ "giống mã thật" của chuỗi: dài vừa phải, trộn chữ và số
func referenceQuality(reference string) (int, string) {
	length := len(reference)
	hasLetter := strings.ContainsFunc(reference, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
	hasDigit := strings.ContainsFunc(reference, func(r rune) bool {
		return r >= '0' && r <= '9'
	})

	switch {
	case length >= 12 && length <= 20 && hasLetter && hasDigit:
		return 12, "độ dài chuẩn, trộn chữ và số"
	case length >= 10 && length <= 25:
		return 8, "độ dài hợp lý"
	case length >= 8:
		return 5, "độ dài tối thiểu"
	}
	return 0, ""
}

// isBusinessHours: thứ 2 - thứ 6, 08:00-17:00 giờ địa phương
func isBusinessHours(t time.Time) bool {
	wd := t.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return t.Hour() >= 8 && t.Hour() < 17
}
