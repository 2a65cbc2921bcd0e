package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"lumina_back_end/internal/models"
)

const vnpaySandboxURL = "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"

// Messages associés aux codes de réponse VNPAY (contrat passerelle, en anglais)
var vnpayResponseMessages = map[string]string{
	"00": "transaction successful",
	"07": "transaction suspected of fraud",
	"09": "card not registered for online banking",
	"10": "authentication failed more than 3 times",
	"11": "payment window expired",
	"12": "account is locked",
	"13": "wrong OTP",
	"24": "transaction cancelled by customer",
	"51": "insufficient funds",
	"65": "daily transaction limit exceeded",
	"75": "bank under maintenance",
	"79": "wrong payment password",
	"97": "invalid signature",
	"99": "unknown error",
}

// VNPay signe les URLs de paiement en HMAC-SHA512 et vérifie la signature
// du retour. vnp_TxnRef est l'identifiant de commande : des demandes répétées
// pour la même commande référencent la même transaction côté passerelle.
type VNPay struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

func NewVNPayFromEnv() *VNPay {
	payURL := os.Getenv("VNPAY_PAY_URL")
	if payURL == "" {
		payURL = vnpaySandboxURL
	}
	return &VNPay{
		TmnCode:    os.Getenv("VNPAY_TMN_CODE"),
		HashSecret: os.Getenv("VNPAY_HASH_SECRET"),
		PayURL:     payURL,
		ReturnURL:  os.Getenv("VNPAY_RETURN_URL"),
	}
}

// CreatePayment construit l'URL de redirection signée
func (g *VNPay) CreatePayment(_ context.Context, orderID string, amount float64, clientIP string) (string, error) {
	if g.TmnCode == "" || g.HashSecret == "" {
		return "", fmt.Errorf("passerelle VNPAY non configurée")
	}
	if orderID == "" || amount <= 0 {
		return "", fmt.Errorf("commande ou montant manquant")
	}

	now := time.Now()
	params := url.Values{}
	params.Set("vnp_Version", "2.1.0")
	params.Set("vnp_Command", "pay")
	params.Set("vnp_TmnCode", g.TmnCode)
	params.Set("vnp_Amount", fmt.Sprintf("%.0f", amount*100)) // VNPAY attend le montant ×100
	params.Set("vnp_CreateDate", now.Format("20060102150405"))
	params.Set("vnp_ExpireDate", now.Add(15*time.Minute).Format("20060102150405"))
	params.Set("vnp_CurrCode", "VND")
	params.Set("vnp_IpAddr", clientIP)
	params.Set("vnp_Locale", "vn")
	params.Set("vnp_OrderInfo", "Thanh toan don hang "+orderID)
	params.Set("vnp_OrderType", "other")
	params.Set("vnp_ReturnUrl", g.ReturnURL)
	params.Set("vnp_TxnRef", orderID)

	query := encodeSorted(params)
	signature := g.sign(query)

	return g.PayURL + "?" + query + "&vnp_SecureHash=" + signature, nil
}

// ParseReturn vérifie la signature puis traduit le code de réponse.
// Aucun paramètre = échec dur "missing payment information" (code 99).
func (g *VNPay) ParseReturn(_ context.Context, query url.Values) models.PaymentReturn {
	if len(query) == 0 {
		return MissingReturn()
	}

	received := query.Get("vnp_SecureHash")
	verifiable := url.Values{}
	for key, values := range query {
		if key == "vnp_SecureHash" || key == "vnp_SecureHashType" {
			continue
		}
		if strings.HasPrefix(key, "vnp_") && len(values) > 0 {
			verifiable.Set(key, values[0])
		}
	}

	orderID := query.Get("vnp_TxnRef")

	if received == "" || !hmac.Equal([]byte(received), []byte(g.sign(encodeSorted(verifiable)))) {
		return models.PaymentReturn{
			OrderID:         orderID,
			ResponseCode:    "97",
			Message:         vnpayResponseMessages["97"],
			ResponseMessage: vnpayResponseMessages["97"],
		}
	}

	code := query.Get("vnp_ResponseCode")
	message, known := vnpayResponseMessages[code]
	if !known {
		message = vnpayResponseMessages["99"]
	}

	return models.PaymentReturn{
		Success:         code == "00",
		OrderID:         orderID,
		ResponseCode:    code,
		Message:         message,
		ResponseMessage: message,
		TransactionID:   query.Get("vnp_TransactionNo"),
	}
}

// encodeSorted encode les paramètres triés par clé, format attendu par la
// signature VNPAY
func encodeSorted(params url.Values) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params.Get(key)))
	}
	return b.String()
}

func (g *VNPay) sign(data string) string {
	mac := hmac.New(sha512.New, []byte(g.HashSecret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
