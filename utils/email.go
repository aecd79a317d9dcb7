package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
	"strconv"
	"strings"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// Template nhúng thẳng trong binary - không phụ thuộc đường dẫn file lúc chạy
const customerVerifiedTemplate = `
<h2>Thanh toán đã được xác minh</h2>
<p>Chào {{.CustomerName}},</p>
<p>Chuyển khoản cho đơn hàng <b>#{{.OrderCode}}</b> với số tiền <b>{{.Amount}}đ</b> đã được xác minh thành công.</p>
<p>Đơn hàng của bạn đang được chuẩn bị. Cảm ơn bạn đã mua sắm!</p>
`

type customerVerifiedData struct {
	CustomerName string
	OrderCode    string
	Amount       string
}

// SendCustomerVerifiedEmail gửi email xác nhận thanh toán cho khách (async).
// Thất bại chỉ log - verify đã commit rồi, không rollback vì email.
func SendCustomerVerifiedEmail(to, customerName, orderCode string, amount float64) {
	go func() {
		tmpl, err := template.New("customer_verified").Parse(customerVerifiedTemplate)
		if err != nil {
			log.Printf("Lỗi parse template email: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, customerVerifiedData{
			CustomerName: customerName,
			OrderCode:    orderCode,
			Amount:       fmt.Sprintf("%.0f", amount),
		}); err != nil {
			log.Printf("Lỗi render template email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Xác nhận thanh toán đơn hàng #"+orderCode)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email xác nhận cho %s: %v", to, err)
		}
	}()
}

// sendAdminPlainEmail - thư báo nội bộ dạng text cho admin (async, best-effort)
func sendAdminPlainEmail(subject, body string) {
	go func() {
		adminAddr := os.Getenv("ADMIN_EMAIL")
		if adminAddr == "" {
			log.Println("ADMIN_EMAIL chưa cấu hình, bỏ qua thư báo admin")
			return
		}

		host := os.Getenv("SMTP_HOST")
		port := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")

		e := email.NewEmail()
		e.From = os.Getenv("SMTP_FROM")
		e.To = []string{adminAddr}
		e.Subject = subject
		e.Text = []byte(body)

		if err := e.Send(host+":"+port, smtp.PlainAuth("", username, password, host)); err != nil {
			log.Printf("Lỗi gửi thư báo admin (%s): %v", subject, err)
		}
	}()
}

// SendAdminAutoVerifiedEmail báo admin một đơn vừa được auto-verify để hậu kiểm
func SendAdminAutoVerifiedEmail(orderCode string, amount float64, score int, reasons []string) {
	body := fmt.Sprintf(
		"Đơn %s (%.0fđ) vừa được tự động xác minh.\nĐiểm tin cậy: %d\nLý do:\n- %s",
		orderCode, amount, score, strings.Join(reasons, "\n- "),
	)
	sendAdminPlainEmail("[AUTO-VERIFY] Đơn "+orderCode, body)
}

// SendAdminCronSummaryEmail gửi tổng kết một lượt đối soát, batch rỗng vẫn gửi
func SendAdminCronSummaryEmail(processed, verified, remaining int) {
	body := fmt.Sprintf(
		"Lượt đối soát chuyển khoản vừa chạy xong.\nĐã xử lý: %d\nĐã verify: %d\nCòn chờ thủ công: %d",
		processed, verified, remaining,
	)
	sendAdminPlainEmail("[CRON] Tổng kết đối soát", body)
}

// SendAdminCronErrorEmail báo lỗi batch-level của job đối soát
func SendAdminCronErrorEmail(err error) {
	sendAdminPlainEmail("[CRON] Đối soát gặp lỗi", fmt.Sprintf("Job đối soát dừng vì lỗi: %v", err))
}
