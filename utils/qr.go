package utils

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// GenerateQRCode tạo QR code và trả về bytes PNG
func GenerateQRCode(content string, size int) ([]byte, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	// Tạo buffer
	buf := new(bytes.Buffer)
	err = png.Encode(buf, qr.Image(size))
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// BuildTransferQRContent gói thông tin chuyển khoản vào một chuỗi cho app ngân hàng quét
func BuildTransferQRContent(bankName, accountNumber, accountHolder, orderCode string, amount float64) string {
	return fmt.Sprintf("%s|%s|%s|%.0f|%s", bankName, accountNumber, accountHolder, amount, orderCode)
}
