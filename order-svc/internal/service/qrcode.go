package service

import (
	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

// DefaultQRGenerator encodes the order tracking link shown at pickup.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID string) ([]byte, error) {
	qrData := g.BaseURL + "/orders.html?order_id=" + orderID
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
