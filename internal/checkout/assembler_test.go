package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina_back_end/internal/cart"
	"lumina_back_end/internal/models"
)

func baseInput() Input {
	return Input{
		Items: []models.CartItem{
			{ID: "1", ProductID: "p1", VariantID: "v1", ProductName: "Clavier mécanique",
				SKU: "KB-01", AttributesName: "Noir / Switch rouge", Price: 1000000, Quantity: 1},
			{ID: "2", ProductID: "p2", VariantID: "v2", ProductName: "Souris sans fil",
				SKU: "MS-07", AttributesName: "Blanc", Price: 500000, Quantity: 2},
		},
		Selection:     cart.NewSelection("1"),
		AddressID:     "addr-1",
		PaymentMethod: models.PaymentMethodCOD,
		TermsAccepted: true,
	}
}

func TestAssemble_Preconditions(t *testing.T) {
	in := baseInput()
	in.AddressID = ""
	_, err := Assemble(in)
	assert.ErrorIs(t, err, ErrMissingAddress)

	in = baseInput()
	in.PaymentMethod = ""
	_, err = Assemble(in)
	assert.ErrorIs(t, err, ErrMissingPaymentMethod)

	in = baseInput()
	in.PaymentMethod = "CHEQUE"
	_, err = Assemble(in)
	assert.ErrorIs(t, err, ErrMissingPaymentMethod)

	in = baseInput()
	in.TermsAccepted = false
	_, err = Assemble(in)
	assert.ErrorIs(t, err, ErrTermsNotAccepted)

	in = baseInput()
	in.Selection = cart.NewSelection()
	_, err = Assemble(in)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestAssemble_TotalInvariant(t *testing.T) {
	// Scénario A : sous-total 1 000 000, réduction 100 000 →
	// total = 1 000 000 + 30 000 − 100 000 = 930 000
	in := baseInput()
	in.Voucher = &models.Voucher{Code: "PERCENT10"}
	in.Discount = 100000

	req, err := Assemble(in)
	require.NoError(t, err)

	assert.Equal(t, 1000000.0, req.Subtotal)
	assert.Equal(t, float64(ShippingFee), req.ShippingFee)
	assert.Equal(t, 100000.0, req.Discount)
	assert.Equal(t, 930000.0, req.Total)
	assert.Equal(t, req.Subtotal+req.ShippingFee-req.Discount, req.Total)
	assert.Equal(t, "PERCENT10", req.VoucherCode)
}

func TestAssemble_ItemsCarrySnapshotPrice(t *testing.T) {
	in := baseInput()
	in.Selection = cart.NewSelection("1", "2")

	req, err := Assemble(in)
	require.NoError(t, err)

	require.Len(t, req.Items, 2)
	assert.Equal(t, 2000000.0, req.Subtotal)
	for _, item := range req.Items {
		assert.NotEmpty(t, item.ProductID)
		assert.NotEmpty(t, item.VariantID)
		assert.NotEmpty(t, item.AttributesName)
		assert.Positive(t, item.Price)
	}
}

func TestAssemble_NegativeTotalRejected(t *testing.T) {
	in := baseInput()
	in.Discount = 2000000 // dépasse sous-total + port

	_, err := Assemble(in)

	assert.ErrorIs(t, err, ErrNegativeTotal)
}

func TestAssemble_ZeroTotalAccepted(t *testing.T) {
	in := baseInput()
	in.Discount = 1030000 // exactement sous-total + port

	req, err := Assemble(in)

	require.NoError(t, err)
	assert.Zero(t, req.Total)
}

func TestAssemble_NoVoucher(t *testing.T) {
	req, err := Assemble(baseInput())

	require.NoError(t, err)
	assert.Empty(t, req.VoucherCode)
	assert.Zero(t, req.Discount)
	assert.Equal(t, 1030000.0, req.Total)
}
