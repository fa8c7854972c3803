package reports

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

// QRCode encodes url as a PNG. Sizes outside 64..1024 fall back to 256 pixels.
func QRCode(url string, size int) ([]byte, error) {
	if url == "" {
		return nil, errors.New("qr code target url is empty")
	}
	if size < 64 || size > 1024 {
		size = defaultQRSize
	}
	return qrcode.Encode(url, qrcode.Medium, size)
}
