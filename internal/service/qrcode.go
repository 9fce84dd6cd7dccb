package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(tableNo int) ([]byte, error)
}

// DefaultQRGenerator encodes the menu link printed on each table.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(tableNo int) ([]byte, error) {
	qrData := fmt.Sprintf("%s/menu.html?table_no=%d", g.BaseURL, tableNo)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
