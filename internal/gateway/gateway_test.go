package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina_back_end/internal/models"
)

func TestForMethod_CODNeverResolvesGateway(t *testing.T) {
	// Une commande COD se termine localement : aucune passerelle ne doit
	// jamais être résolue pour elle, ni donc appelée.
	gw, err := ForMethod(models.PaymentMethodCOD)

	require.Error(t, err)
	assert.Nil(t, gw)
}

func TestForMethod_GatewayMethods(t *testing.T) {
	gw, err := ForMethod(models.PaymentMethodVNPay)
	require.NoError(t, err)
	assert.IsType(t, &VNPay{}, gw)

	gw, err = ForMethod(models.PaymentMethodStripe)
	require.NoError(t, err)
	assert.IsType(t, &StripeGateway{}, gw)
}

func TestForMethod_UnknownMethod(t *testing.T) {
	gw, err := ForMethod("CHEQUE")

	require.Error(t, err)
	assert.Nil(t, gw)
}
