package utils

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// GeneratePaymentQR encode le lien de paiement en QR (PNG base64), pour
// permettre de régler depuis un autre appareil que celui du checkout.
func GeneratePaymentQR(paymentURL string) (string, error) {
	png, err := qrcode.Encode(paymentURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
