package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lumina_back_end/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.OrderStatusPending, models.OrderStatusPaid, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusShipping, false},
		{models.OrderStatusPaid, models.OrderStatusShipping, true},
		{models.OrderStatusPaid, models.OrderStatusCancelled, true},
		{models.OrderStatusPaid, models.OrderStatusCompleted, false},
		{models.OrderStatusShipping, models.OrderStatusCompleted, true},
		{models.OrderStatusShipping, models.OrderStatusCancelled, false},
		{models.OrderStatusCompleted, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s → %s", tt.from, tt.to)
	}
}

func TestCanCancel_OnlyPendingOrPaid(t *testing.T) {
	assert.True(t, CanCancel(models.OrderStatusPending))
	assert.True(t, CanCancel(models.OrderStatusPaid))
	assert.False(t, CanCancel(models.OrderStatusShipping))
	assert.False(t, CanCancel(models.OrderStatusCompleted))
	assert.False(t, CanCancel(models.OrderStatusCancelled))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.OrderStatusCompleted))
	assert.True(t, IsTerminal(models.OrderStatusCancelled))
	assert.False(t, IsTerminal(models.OrderStatusPending))
	assert.False(t, IsTerminal(models.OrderStatusPaid))
	assert.False(t, IsTerminal(models.OrderStatusShipping))
}

func TestCanRetryPayment(t *testing.T) {
	assert.True(t, CanRetryPayment(models.OrderStatusPending, models.PaymentMethodVNPay))
	assert.True(t, CanRetryPayment(models.OrderStatusPending, models.PaymentMethodStripe))

	// COD n'a jamais de lien de paiement
	assert.False(t, CanRetryPayment(models.OrderStatusPending, models.PaymentMethodCOD))

	// Une commande déjà payée ou terminée ne se relance pas
	assert.False(t, CanRetryPayment(models.OrderStatusPaid, models.PaymentMethodVNPay))
	assert.False(t, CanRetryPayment(models.OrderStatusCancelled, models.PaymentMethodVNPay))
}
