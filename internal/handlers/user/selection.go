package user

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/cart"
	"lumina_back_end/internal/database"
	"lumina_back_end/internal/session"
)

//
// 🔁 POST /api/cart/selection/toggle
//
func ToggleSelection(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ItemID string `json:"itemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de ligne requis"})
		return
	}

	ctx := context.Background()
	items, sel, err := session.LoadPrunedSelection(ctx, database.Redis, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	// Impossible de sélectionner une ligne qui n'existe pas
	exists := false
	for _, item := range items {
		if item.ID == input.ItemID {
			exists = true
			break
		}
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ligne de panier introuvable"})
		return
	}

	sel.Toggle(input.ItemID)
	if err := session.SaveSelection(ctx, database.Redis, userID, sel); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde sélection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selection":         sel.IDs(),
		"selected_subtotal": cart.SelectedSubtotal(items, sel),
	})
}

//
// ✅ POST /api/cart/selection/all
//
func SelectAllItems(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	ctx := context.Background()
	items, sel, err := session.LoadPrunedSelection(ctx, database.Redis, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	sel.SelectAll(items)
	if err := session.SaveSelection(ctx, database.Redis, userID, sel); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde sélection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selection":         sel.IDs(),
		"selected_subtotal": cart.SelectedSubtotal(items, sel),
	})
}

//
// 🧹 DELETE /api/cart/selection
//
func ClearSelection(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if err := session.ClearSelection(context.Background(), database.Redis, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde sélection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"selection": []string{}, "selected_subtotal": 0})
}
