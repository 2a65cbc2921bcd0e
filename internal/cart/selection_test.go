package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lumina_back_end/internal/models"
)

func sampleCart() []models.CartItem {
	return []models.CartItem{
		{ID: "1", ProductName: "Clavier mécanique", Price: 1000000, Quantity: 1},
		{ID: "2", ProductName: "Souris sans fil", Price: 500000, Quantity: 2},
	}
}

func TestToggle(t *testing.T) {
	s := NewSelection()

	s.Toggle("1")
	assert.True(t, s.Contains("1"))

	s.Toggle("1")
	assert.False(t, s.Contains("1"))
}

func TestSelectAllAndClear(t *testing.T) {
	items := sampleCart()
	s := NewSelection("stale")

	s.SelectAll(items)
	assert.ElementsMatch(t, []string{"1", "2"}, s.IDs())

	s.Clear()
	assert.Empty(t, s.IDs())
}

func TestSelectedSubtotal(t *testing.T) {
	items := sampleCart()

	// Scénario A : sélection {1} → 1 000 000
	s := NewSelection("1")
	assert.Equal(t, 1000000.0, SelectedSubtotal(items, s))

	// Les deux lignes : 1 000 000 + 500 000×2
	s.Toggle("2")
	assert.Equal(t, 2000000.0, SelectedSubtotal(items, s))

	assert.Zero(t, SelectedSubtotal(items, NewSelection()))
}

func TestPrune_DropsStaleIDs(t *testing.T) {
	items := sampleCart()
	s := NewSelection("1", "2")

	// La ligne 2 est supprimée du panier : son id doit disparaître de la
	// sélection au rafraîchissement.
	items = items[:1]
	changed := s.Prune(items)

	assert.True(t, changed)
	assert.True(t, s.Contains("1"))
	assert.False(t, s.Contains("2"))
}

func TestPrune_NoChangeWhenSubset(t *testing.T) {
	s := NewSelection("1")

	assert.False(t, s.Prune(sampleCart()))
	assert.True(t, s.Contains("1"))
}

func TestPrune_EmptyCartEmptiesSelection(t *testing.T) {
	s := NewSelection("1", "2")

	s.Prune(nil)

	assert.Empty(t, s.IDs())
}

func TestSelectedItems(t *testing.T) {
	items := sampleCart()
	s := NewSelection("2")

	selected := SelectedItems(items, s)

	assert.Len(t, selected, 1)
	assert.Equal(t, "2", selected[0].ID)
}
