package voucher

import (
	"time"

	"lumina_back_end/internal/models"
)

// EvaluateForUser évalue un code saisi contre le portefeuille de
// l'utilisateur. Code inconnu et entrée déjà consommée sont des résultats
// distincts du simple "réduction nulle". Retourne aussi le voucher résolu
// pour que l'appelant puisse le marquer consommé après la commande.
func EvaluateForUser(userID, userRank, code string, subtotal float64, now time.Time) (models.VoucherValidation, *models.Voucher) {
	v, err := GetByCode(code)
	if err != nil {
		return NotFound(code), nil
	}

	entry, err := WalletEntry(userID, v.ID)
	if err != nil {
		// Jamais réclamé : distinct de "sous le minimum"
		return NotFound(code), nil
	}
	if entry.IsUsed {
		return AlreadyUsed(code), nil
	}

	return Evaluate(v, subtotal, userRank, now), &v
}
