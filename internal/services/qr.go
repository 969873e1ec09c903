package services

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRDataURL renders a PNG QR code for the given short URL and
// returns it as an embeddable data URL, the form the record metadata
// stores it in.
func GenerateQRDataURL(shortURL string) (string, error) {
	png, err := qrcode.Encode(shortURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
