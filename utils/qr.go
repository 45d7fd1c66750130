package utils

import (
	"bytes"
	"errors"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// Check-in codes are printed on venue signage and badges, so they carry high
// error correction and a size that scans from a phone at arm's length.
const checkinQRSize = 256

// CheckinQR renders a check-in URL as PNG bytes.
func CheckinQR(url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("check-in url is empty")
	}
	qr, err := qrcode.New(url, qrcode.High)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, qr.Image(checkinQRSize)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
