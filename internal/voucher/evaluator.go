// Package voucher évalue l'éligibilité d'un voucher et calcule la réduction.
// L'évaluation ne retourne jamais d'erreur : une inéligibilité est exprimée
// par Discount = 0 et une raison lisible par le client.
package voucher

import (
	"fmt"
	"time"

	"lumina_back_end/internal/models"
)

// rangs ordonnés du plus bas au plus haut
var rankOrder = map[string]int{
	models.RankMember:  0,
	models.RankSilver:  1,
	models.RankGold:    2,
	models.RankDiamond: 3,
}

// IsValid vérifie que le voucher est actif et que now tombe dans la fenêtre
// de validité, bornes incluses : un voucher à l'instant exact de ends_at est
// encore valide.
func IsValid(v models.Voucher, now time.Time) bool {
	if !v.IsActive {
		return false
	}
	return !now.Before(v.StartsAt) && !now.After(v.EndsAt)
}

// CanUse vérifie que le rang de l'utilisateur atteint le rang minimum requis.
// Un rang inconnu est traité comme le rang le plus bas.
func CanUse(userRank, minRank string) bool {
	return rankOrder[userRank] >= rankOrder[minRank]
}

// CalculateDiscount calcule le montant de la réduction pour un sous-total.
// Retourne 0 sous le minimum de commande. Pour AMOUNT la valeur est retournée
// telle quelle : elle peut dépasser le sous-total, et c'est à l'appelant de
// rejeter un total négatif. Pour PERCENT, la réduction est plafonnée à
// discount_max_value quand il est défini.
func CalculateDiscount(v models.Voucher, subtotal float64) float64 {
	if subtotal < v.MinOrderTotal {
		return 0
	}

	switch v.DiscountType {
	case models.DiscountTypeAmount:
		return v.DiscountValue
	case models.DiscountTypePercent:
		discount := subtotal * v.DiscountValue / 100
		if v.DiscountMaxValue != nil && discount > *v.DiscountMaxValue {
			discount = *v.DiscountMaxValue
		}
		return discount
	}
	return 0
}

// Evaluate combine les trois vérifications et produit le résultat complet.
// L'ordre des raisons est stable : inactif, pas commencé, expiré, rang, minimum.
func Evaluate(v models.Voucher, subtotal float64, userRank string, now time.Time) models.VoucherValidation {
	if !v.IsActive {
		return models.VoucherValidation{
			Reason:       models.VoucherReasonInactive,
			ErrorMessage: "Ce voucher n'est plus actif",
		}
	}

	if now.Before(v.StartsAt) {
		return models.VoucherValidation{
			Reason:       models.VoucherReasonNotStarted,
			ErrorMessage: "Ce voucher n'est pas encore valide",
		}
	}

	if now.After(v.EndsAt) {
		return models.VoucherValidation{
			Reason:       models.VoucherReasonExpired,
			ErrorMessage: "Ce voucher a expiré",
		}
	}

	if !CanUse(userRank, v.MinRank) {
		return models.VoucherValidation{
			Reason:       models.VoucherReasonRankInsufficient,
			ErrorMessage: fmt.Sprintf("Rang %s requis pour ce voucher", v.MinRank),
		}
	}

	if subtotal < v.MinOrderTotal {
		return models.VoucherValidation{
			Reason:       models.VoucherReasonBelowMinimum,
			ErrorMessage: fmt.Sprintf("Montant minimum de commande requis: %.0f₫", v.MinOrderTotal),
		}
	}

	return models.VoucherValidation{
		IsValid:  true,
		Discount: CalculateDiscount(v, subtotal),
		Code:     v.Code,
	}
}

// NotFound est le résultat distinct d'un code saisi qui ne correspond à
// aucune entrée du portefeuille — jamais silencieusement zéro.
func NotFound(code string) models.VoucherValidation {
	return models.VoucherValidation{
		Reason:       models.VoucherReasonNotFound,
		ErrorMessage: "Code voucher introuvable",
		Code:         code,
	}
}

// AlreadyUsed est le résultat d'une entrée de portefeuille déjà consommée
func AlreadyUsed(code string) models.VoucherValidation {
	return models.VoucherValidation{
		Reason:       models.VoucherReasonAlreadyUsed,
		ErrorMessage: "Ce voucher a déjà été utilisé",
		Code:         code,
	}
}
