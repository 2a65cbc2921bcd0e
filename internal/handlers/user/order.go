package user

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lumina_back_end/internal/database"
	"lumina_back_end/internal/models"
	"lumina_back_end/internal/orders"
)

//
// 📦 GET /api/orders?status=&page=&limit=
//
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	status := c.Query("status")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}

	summaries, total, err := orders.ListByUser(userID, status, page, limit)
	if err != nil {
		log.Printf("❌ Erreur récupération commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": summaries,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

//
// 📦 GET /api/orders/:id
//
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := orders.GetByID(orderID)
	if err != nil || order.UserID != userID {
		// On vérifie que la commande appartient bien à l'utilisateur
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, order)
}

//
// ❌ DELETE /api/orders/:id — annulation client
//
// Permise uniquement depuis PENDING ou PAID, et refusée ici avant toute
// écriture. Après l'annulation la commande est relue : l'état retourné est
// celui du serveur, jamais un CANCELLED optimiste.
func CancelOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := orders.GetByID(orderID)
	if err != nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if !orders.CanCancel(order.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Cette commande ne peut plus être annulée",
			"status": order.Status,
		})
		return
	}

	if err := orders.UpdateStatus(order, models.OrderStatusCancelled, order.PaymentStatus, order.TransactionID); err != nil {
		log.Printf("❌ Erreur annulation commande %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'annulation"})
		return
	}

	// Relecture : le serveur fait foi
	updated, err := orders.GetByID(orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur relecture commande"})
		return
	}

	orders.PublishStatusChange(context.Background(), database.Redis, updated, updated.Status, updated.PaymentStatus)
	log.Printf("❌ Commande %s annulée par %s", orderID, userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Commande annulée",
		"order":   updated,
	})
}
