package gateway

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVNPay() *VNPay {
	return &VNPay{
		TmnCode:    "LUMINA01",
		HashSecret: "secret-de-test",
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "https://shop.example.com/api/payment/payment-return",
	}
}

// signedReturn fabrique un retour passerelle correctement signé
func signedReturn(g *VNPay, params map[string]string) url.Values {
	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}
	query.Set("vnp_SecureHash", g.sign(encodeSorted(query)))
	return query
}

func TestCreatePayment_BuildsSignedURL(t *testing.T) {
	g := testVNPay()

	redirect, err := g.CreatePayment(context.Background(), "order-123", 930000, "203.0.113.7")
	require.NoError(t, err)

	parsed, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(redirect, g.PayURL+"?"))

	q := parsed.Query()
	assert.Equal(t, "order-123", q.Get("vnp_TxnRef"))
	assert.Equal(t, "93000000", q.Get("vnp_Amount")) // montant ×100
	assert.Equal(t, "VND", q.Get("vnp_CurrCode"))
	assert.Equal(t, "LUMINA01", q.Get("vnp_TmnCode"))
	assert.NotEmpty(t, q.Get("vnp_SecureHash"))

	// La signature couvre tous les paramètres vnp_ hors hash
	verifiable := url.Values{}
	for key := range q {
		if key != "vnp_SecureHash" {
			verifiable.Set(key, q.Get(key))
		}
	}
	assert.Equal(t, g.sign(encodeSorted(verifiable)), q.Get("vnp_SecureHash"))
}

func TestCreatePayment_MissingOrderOrAmount(t *testing.T) {
	g := testVNPay()

	_, err := g.CreatePayment(context.Background(), "", 930000, "203.0.113.7")
	assert.Error(t, err)

	_, err = g.CreatePayment(context.Background(), "order-123", 0, "203.0.113.7")
	assert.Error(t, err)
}

func TestCreatePayment_Unconfigured(t *testing.T) {
	g := &VNPay{}

	_, err := g.CreatePayment(context.Background(), "order-123", 930000, "203.0.113.7")

	assert.Error(t, err)
}

func TestCreatePayment_RepeatedCallsAreSafe(t *testing.T) {
	// Relancer le paiement d'une commande PENDING redemande simplement une
	// URL fraîche : chaque appel doit produire un lien utilisable.
	g := testVNPay()

	first, err := g.CreatePayment(context.Background(), "order-123", 930000, "203.0.113.7")
	require.NoError(t, err)
	second, err := g.CreatePayment(context.Background(), "order-123", 930000, "203.0.113.7")
	require.NoError(t, err)

	for _, redirect := range []string{first, second} {
		parsed, pErr := url.Parse(redirect)
		require.NoError(t, pErr)
		assert.Equal(t, "order-123", parsed.Query().Get("vnp_TxnRef"))
		assert.NotEmpty(t, parsed.Query().Get("vnp_SecureHash"))
	}
}

func TestParseReturn_ScenarioC_NoParameters(t *testing.T) {
	g := testVNPay()

	result := g.ParseReturn(context.Background(), url.Values{})

	assert.False(t, result.Success)
	assert.Empty(t, result.OrderID)
	assert.Equal(t, "99", result.ResponseCode)
	assert.Equal(t, "missing payment information", result.Message)
}

func TestParseReturn_Success(t *testing.T) {
	g := testVNPay()
	query := signedReturn(g, map[string]string{
		"vnp_TxnRef":        "order-123",
		"vnp_ResponseCode":  "00",
		"vnp_TransactionNo": "14226112",
		"vnp_Amount":        "93000000",
	})

	result := g.ParseReturn(context.Background(), query)

	assert.True(t, result.Success)
	assert.Equal(t, "order-123", result.OrderID)
	assert.Equal(t, "00", result.ResponseCode)
	assert.Equal(t, "14226112", result.TransactionID)
}

func TestParseReturn_CustomerCancelled(t *testing.T) {
	g := testVNPay()
	query := signedReturn(g, map[string]string{
		"vnp_TxnRef":       "order-123",
		"vnp_ResponseCode": "24",
	})

	result := g.ParseReturn(context.Background(), query)

	assert.False(t, result.Success)
	assert.Equal(t, "24", result.ResponseCode)
	assert.Equal(t, "transaction cancelled by customer", result.Message)
	assert.Equal(t, "order-123", result.OrderID)
}

func TestParseReturn_TamperedSignature(t *testing.T) {
	g := testVNPay()
	query := signedReturn(g, map[string]string{
		"vnp_TxnRef":       "order-123",
		"vnp_ResponseCode": "00",
	})
	query.Set("vnp_Amount", "1") // altéré après signature

	result := g.ParseReturn(context.Background(), query)

	assert.False(t, result.Success)
	assert.Equal(t, "97", result.ResponseCode)
}

func TestParseReturn_UnknownCodeFallsBack(t *testing.T) {
	g := testVNPay()
	query := signedReturn(g, map[string]string{
		"vnp_TxnRef":       "order-123",
		"vnp_ResponseCode": "42",
	})

	result := g.ParseReturn(context.Background(), query)

	assert.False(t, result.Success)
	assert.Equal(t, "42", result.ResponseCode)
	assert.Equal(t, "unknown error", result.Message)
}
