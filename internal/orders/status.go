// Package orders porte la machine à états du statut de commande.
// Le serveur reste la seule autorité : après toute mutation réussie, la
// commande est relue plutôt que mise à jour de façon optimiste.
package orders

import "lumina_back_end/internal/models"

// Transitions autorisées. COMPLETED et CANCELLED sont terminaux.
var allowedTransitions = map[string]map[string]bool{
	models.OrderStatusPending: {
		models.OrderStatusPaid:      true,
		models.OrderStatusCancelled: true,
	},
	models.OrderStatusPaid: {
		models.OrderStatusShipping:  true,
		models.OrderStatusCancelled: true,
	},
	models.OrderStatusShipping: {
		models.OrderStatusCompleted: true,
	},
}

// CanTransition indique si le passage from → to est autorisé
func CanTransition(from, to string) bool {
	return allowedTransitions[from][to]
}

// IsTerminal indique si un statut est terminal
func IsTerminal(status string) bool {
	return status == models.OrderStatusCompleted || status == models.OrderStatusCancelled
}

// CanCancel : l'annulation côté client n'est permise que depuis PENDING ou
// PAID, et doit être refusée avant tout appel serveur dans les autres cas.
func CanCancel(status string) bool {
	return status == models.OrderStatusPending || status == models.OrderStatusPaid
}

// CanRetryPayment : relancer un paiement n'a de sens que pour une commande
// encore PENDING réglée par une méthode passerelle.
func CanRetryPayment(status, paymentMethod string) bool {
	return status == models.OrderStatusPending && models.IsGatewayMethod(paymentMethod)
}
