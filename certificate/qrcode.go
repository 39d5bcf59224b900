package certificate

import (
	"github.com/skip2/go-qrcode"
)

// verificationQR encodes the verification URL as a PNG QR code for embedding
// in the top-right corner of the certificate.
func verificationQR(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, 300)
}
