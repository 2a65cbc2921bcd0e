// Package cart porte la sélection des lignes du panier pour le checkout.
// La sélection est toujours un sous-ensemble des lignes présentes dans le
// panier : toute lecture du panier doit passer par Prune.
package cart

import "lumina_back_end/internal/models"

// SelectionSet est l'ensemble des identifiants de lignes choisies pour la
// tentative de checkout en cours. État de session uniquement, jamais persisté
// côté commande.
type SelectionSet map[string]bool

func NewSelection(ids ...string) SelectionSet {
	s := make(SelectionSet, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// Toggle inverse l'appartenance d'une ligne à la sélection
func (s SelectionSet) Toggle(itemID string) {
	if s[itemID] {
		delete(s, itemID)
	} else {
		s[itemID] = true
	}
}

// SelectAll remplace la sélection par toutes les lignes du panier
func (s SelectionSet) SelectAll(items []models.CartItem) {
	for id := range s {
		delete(s, id)
	}
	for _, item := range items {
		s[item.ID] = true
	}
}

// Clear vide la sélection
func (s SelectionSet) Clear() {
	for id := range s {
		delete(s, id)
	}
}

// Contains indique si une ligne est sélectionnée
func (s SelectionSet) Contains(itemID string) bool {
	return s[itemID]
}

// IDs retourne les identifiants sélectionnés
func (s SelectionSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

// Prune supprime silencieusement les identifiants qui ne référencent plus
// aucune ligne du panier (lignes supprimées ou panier vidé entre-temps).
// Retourne true si la sélection a changé.
func (s SelectionSet) Prune(items []models.CartItem) bool {
	current := make(map[string]bool, len(items))
	for _, item := range items {
		current[item.ID] = true
	}

	changed := false
	for id := range s {
		if !current[id] {
			delete(s, id)
			changed = true
		}
	}
	return changed
}

// SelectedSubtotal somme prix snapshot × quantité sur les lignes sélectionnées
func SelectedSubtotal(items []models.CartItem, s SelectionSet) float64 {
	var subtotal float64
	for _, item := range items {
		if s[item.ID] {
			subtotal += item.Price * float64(item.Quantity)
		}
	}
	return subtotal
}

// SelectedItems retourne les lignes du panier retenues par la sélection
func SelectedItems(items []models.CartItem, s SelectionSet) []models.CartItem {
	selected := make([]models.CartItem, 0, len(s))
	for _, item := range items {
		if s[item.ID] {
			selected = append(selected, item)
		}
	}
	return selected
}
