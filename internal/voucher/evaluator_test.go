package voucher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina_back_end/internal/models"
)

func percentVoucher(value, maxValue, minOrder float64) models.Voucher {
	return models.Voucher{
		Code:             "PERCENT10",
		DiscountType:     models.DiscountTypePercent,
		DiscountValue:    value,
		DiscountMaxValue: &maxValue,
		MinOrderTotal:    minOrder,
		MinRank:          models.RankMember,
		StartsAt:         time.Now().Add(-time.Hour),
		EndsAt:           time.Now().Add(time.Hour),
		IsActive:         true,
	}
}

func amountVoucher(value, minOrder float64) models.Voucher {
	return models.Voucher{
		Code:          "AMOUNT200K",
		DiscountType:  models.DiscountTypeAmount,
		DiscountValue: value,
		MinOrderTotal: minOrder,
		MinRank:       models.RankMember,
		StartsAt:      time.Now().Add(-time.Hour),
		EndsAt:        time.Now().Add(time.Hour),
		IsActive:      true,
	}
}

func TestCalculateDiscount_BelowMinimumIsZero(t *testing.T) {
	v := amountVoucher(200000, 2000000)

	assert.Zero(t, CalculateDiscount(v, 1000000))
	assert.Zero(t, CalculateDiscount(v, 1999999))
}

func TestCalculateDiscount_MinimumBoundaryIsInclusive(t *testing.T) {
	v := amountVoucher(200000, 2000000)

	assert.Equal(t, 200000.0, CalculateDiscount(v, 2000000))
}

func TestCalculateDiscount_PercentCappedAtMaxValue(t *testing.T) {
	v := percentVoucher(10, 150000, 500000)

	// 10% de 5 000 000 = 500 000, plafonné à 150 000
	assert.Equal(t, 150000.0, CalculateDiscount(v, 5000000))
	// 10% de 1 000 000 = 100 000, sous le plafond
	assert.Equal(t, 100000.0, CalculateDiscount(v, 1000000))
}

func TestCalculateDiscount_PercentWithoutCap(t *testing.T) {
	v := percentVoucher(10, 0, 0)
	v.DiscountMaxValue = nil

	assert.Equal(t, 300000.0, CalculateDiscount(v, 3000000))
}

func TestCalculateDiscount_AmountIsNotClamped(t *testing.T) {
	// AMOUNT peut dépasser le sous-total : c'est l'assembleur qui rejette
	// un total négatif, pas l'évaluateur.
	v := amountVoucher(500000, 0)

	assert.Equal(t, 500000.0, CalculateDiscount(v, 100000))
}

func TestIsValid_WindowBoundsAreInclusive(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	v := models.Voucher{IsActive: true, StartsAt: start, EndsAt: end}

	assert.True(t, IsValid(v, start))
	assert.True(t, IsValid(v, end))
	assert.False(t, IsValid(v, start.Add(-time.Second)))
	assert.False(t, IsValid(v, end.Add(time.Second)))
}

func TestIsValid_InactiveVoucher(t *testing.T) {
	v := percentVoucher(10, 150000, 0)
	v.IsActive = false

	assert.False(t, IsValid(v, time.Now()))
}

func TestCanUse_RankOrdering(t *testing.T) {
	assert.True(t, CanUse(models.RankGold, models.RankSilver))
	assert.True(t, CanUse(models.RankSilver, models.RankSilver))
	assert.False(t, CanUse(models.RankMember, models.RankGold))
	assert.True(t, CanUse(models.RankDiamond, models.RankMember))

	// Rang inconnu = rang le plus bas
	assert.False(t, CanUse("", models.RankSilver))
	assert.True(t, CanUse("", models.RankMember))
}

func TestEvaluate_ScenarioA(t *testing.T) {
	// Panier {1: 1 000 000 ×1}, sélection {1} → sous-total 1 000 000.
	// PERCENT 10%, plafond 150 000, minimum 500 000 → réduction 100 000.
	v := percentVoucher(10, 150000, 500000)

	result := Evaluate(v, 1000000, models.RankMember, time.Now())

	require.True(t, result.IsValid)
	assert.Equal(t, 100000.0, result.Discount)
}

func TestEvaluate_ScenarioB_BelowMinimum(t *testing.T) {
	// AMOUNT 200 000, minimum 2 000 000, sous-total 1 000 000 → rejeté
	v := amountVoucher(200000, 2000000)

	result := Evaluate(v, 1000000, models.RankMember, time.Now())

	require.False(t, result.IsValid)
	assert.Equal(t, models.VoucherReasonBelowMinimum, result.Reason)
	assert.Zero(t, result.Discount)
	assert.NotEmpty(t, result.ErrorMessage)
}

func TestEvaluate_RankInsufficient(t *testing.T) {
	v := percentVoucher(10, 150000, 0)
	v.MinRank = models.RankGold

	result := Evaluate(v, 1000000, models.RankSilver, time.Now())

	require.False(t, result.IsValid)
	assert.Equal(t, models.VoucherReasonRankInsufficient, result.Reason)
}

func TestEvaluate_Expired(t *testing.T) {
	v := percentVoucher(10, 150000, 0)
	v.EndsAt = time.Now().Add(-time.Minute)

	result := Evaluate(v, 1000000, models.RankMember, time.Now())

	require.False(t, result.IsValid)
	assert.Equal(t, models.VoucherReasonExpired, result.Reason)
}

func TestEvaluate_NeverPanicsAlwaysReason(t *testing.T) {
	v := models.Voucher{} // voucher zéro : inactif

	result := Evaluate(v, 0, "", time.Now())

	assert.False(t, result.IsValid)
	assert.Equal(t, models.VoucherReasonInactive, result.Reason)
}

func TestNotFoundIsDistinctFromZeroDiscount(t *testing.T) {
	result := NotFound("NOPE")

	assert.False(t, result.IsValid)
	assert.Equal(t, models.VoucherReasonNotFound, result.Reason)
	assert.Equal(t, "NOPE", result.Code)
}
