package utils

import (
	"bytes"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// TicketQR renders the reference number as a PNG QR code for the ticket
// email; the same code is scanned at check-in.
func TicketQR(referenceNumber string) ([]byte, error) {
	qr, err := qrcode.New(referenceNumber, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, qr.Image(256)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
