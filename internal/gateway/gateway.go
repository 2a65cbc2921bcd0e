// Package gateway est le pont vers les passerelles de paiement externes :
// demande d'URL de redirection pour une commande, puis interprétation des
// paramètres bruts du retour navigateur. Les paramètres de la passerelle
// restent opaques et sont transmis tels quels.
package gateway

import (
	"context"
	"fmt"
	"net/url"

	"lumina_back_end/internal/models"
)

type Gateway interface {
	// CreatePayment demande une URL de redirection pour une commande et un
	// montant. Pas d'URL utilisable = échec dur, aucune mutation de commande.
	CreatePayment(ctx context.Context, orderID string, amount float64, clientIP string) (string, error)

	// ParseReturn interprète les paramètres du retour passerelle.
	// N'échoue jamais : tout problème devient un PaymentReturn en échec.
	ParseReturn(ctx context.Context, query url.Values) models.PaymentReturn
}

// ForMethod retourne la passerelle associée à une méthode de paiement
func ForMethod(method string) (Gateway, error) {
	switch method {
	case models.PaymentMethodVNPay:
		return NewVNPayFromEnv(), nil
	case models.PaymentMethodStripe:
		return NewStripeGatewayFromEnv(), nil
	}
	return nil, fmt.Errorf("méthode de paiement sans passerelle: %s", method)
}

// MissingReturn est le résultat d'un retour passerelle sans aucun paramètre :
// échec dur explicite, jamais un succès ou un échec supposé en silence.
func MissingReturn() models.PaymentReturn {
	return models.PaymentReturn{
		Success:         false,
		ResponseCode:    "99",
		Message:         "missing payment information",
		ResponseMessage: "missing payment information",
	}
}
