package user

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lumina_back_end/internal/voucher"
)

//
// 🎟️ GET /api/vouchers — vouchers actifs (fenêtre de validité couvrante)
//
func GetActiveVouchers(c *gin.Context) {
	vouchers, err := voucher.ListActive(time.Now())
	if err != nil {
		log.Printf("❌ Erreur récupération vouchers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vouchers": vouchers,
		"total":    len(vouchers),
	})
}

//
// 🎟️ GET /api/vouchers/:id
//
func GetVoucherByID(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID voucher invalide"})
		return
	}

	v, err := voucher.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Voucher introuvable"})
		return
	}

	c.JSON(http.StatusOK, v)
}

//
// 🎟️ POST /api/vouchers/claim — réclamer un voucher dans le portefeuille
//
func ClaimVoucher(c *gin.Context) {
	userID := c.GetString("user_id")
	userRank := c.GetString("rank")

	var req struct {
		VoucherID string `json:"voucherId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	id, err := gocql.ParseUUID(req.VoucherID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID voucher invalide"})
		return
	}

	v, err := voucher.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Voucher introuvable"})
		return
	}

	if !voucher.IsValid(v, time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ce voucher n'est pas ou plus valide"})
		return
	}

	if !voucher.CanUse(userRank, v.MinRank) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Rang insuffisant pour réclamer ce voucher"})
		return
	}

	// Déjà réclamé = conflit explicite, pas un doublon silencieux
	if _, err := voucher.WalletEntry(userID, v.ID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Voucher déjà réclamé"})
		return
	} else if !errors.Is(err, gocql.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	entry, err := voucher.Claim(userID, v.ID)
	if err != nil {
		log.Printf("❌ Erreur réclamation voucher: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la réclamation"})
		return
	}

	log.Printf("🎟️ Voucher %s réclamé par %s", v.Code, userID)
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Voucher ajouté au portefeuille",
		"user_voucher": entry,
	})
}

//
// 🎟️ GET /api/vouchers/wallet — portefeuille de l'utilisateur
//
func GetWallet(c *gin.Context) {
	userID := c.GetString("user_id")

	wallet, err := voucher.ListWallet(userID)
	if err != nil {
		log.Printf("❌ Erreur récupération portefeuille: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wallet": wallet,
		"total":  len(wallet),
	})
}

//
// 🎟️ GET /api/vouchers/validate?code=...&subtotal=...
//
// Évalue un code pour le sous-total sélectionné courant. L'inéligibilité est
// une réponse 200 avec raison, pas une erreur : l'UI l'affiche inline.
func ValidateVoucher(c *gin.Context) {
	userID := c.GetString("user_id")
	userRank := c.GetString("rank")

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code voucher requis"})
		return
	}

	subtotal, err := strconv.ParseFloat(c.Query("subtotal"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sous-total invalide"})
		return
	}

	validation, _ := voucher.EvaluateForUser(userID, userRank, code, subtotal, time.Now())
	c.JSON(http.StatusOK, validation)
}
