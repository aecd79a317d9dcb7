package constants

// Thông báo chung
const (
	ERROR_PARSE_DATA_TO_LOCALS = "Không thể đọc dữ liệu đã xác thực"
	ORDER_NOT_FOUND            = "Không tìm thấy đơn hàng"
	PAYMENT_PENDING_MESSAGE    = "Đã ghi nhận mã giao dịch, thanh toán đang chờ xác minh"
	PAYMENT_VERIFIED_MESSAGE   = "Thanh toán đã được xác minh"
)

// Rail — kênh thanh toán của đơn hàng, không đổi trong suốt vòng đời
const (
	RailInstantGateway = "instant_gateway"
	RailBankTransfer   = "bank_transfer"
)

// Trạng thái đơn hàng gateway
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCompleted  = "completed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
)

// Trạng thái riêng cho chuyển khoản ngân hàng
const (
	StatusPendingPayment   = "pending_payment"
	StatusPaymentSubmitted = "payment_submitted"
	StatusPaymentVerified  = "payment_verified"
	StatusRejected         = "rejected"
	StatusPaymentFailed    = "payment_failed"
)

// Cách đơn chuyển khoản được xác minh
const (
	VerificationManualAdmin   = "manual_admin"
	VerificationAutoImmediate = "auto_immediate"
	VerificationAutoDelayed   = "auto_delayed"
	VerificationPendingManual = "pending_manual"
)
