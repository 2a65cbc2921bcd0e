package pa

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lumina_back_end/internal/database"
	"lumina_back_end/internal/models"
	"lumina_back_end/internal/orders"
)

// UpdateOrderStatus permet à un admin de faire avancer une commande.
// Seules les transitions du cycle de vie sont acceptées : pas de retour en
// arrière, pas de sortie d'un état terminal.
func UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := orders.GetByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if !orders.CanTransition(order.Status, req.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error":       "Transition de statut non autorisée",
			"from":        order.Status,
			"to":          req.Status,
			"is_terminal": orders.IsTerminal(order.Status),
		})
		return
	}

	paymentStatus := order.PaymentStatus
	if req.Status == models.OrderStatusPaid {
		// Un passage manuel en PAID (paiement COD encaissé, virement vérifié)
		// aligne aussi le statut de paiement
		paymentStatus = models.PaymentStatusPaid
	}

	if err := orders.UpdateStatus(order, req.Status, paymentStatus, order.TransactionID); err != nil {
		log.Printf("❌ Erreur mise à jour statut %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		return
	}

	updated := mustRefetch(order)
	orders.PublishStatusChange(context.Background(), database.Redis, updated, updated.Status, updated.PaymentStatus)
	log.Printf("✅ Commande %s: %s → %s", orderID, order.Status, updated.Status)

	c.JSON(http.StatusOK, gin.H{
		"message": "Statut mis à jour",
		"order":   updated,
	})
}
