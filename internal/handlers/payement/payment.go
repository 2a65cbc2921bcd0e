package pa

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lumina_back_end/internal/database"
	"lumina_back_end/internal/gateway"
	"lumina_back_end/internal/models"
	"lumina_back_end/internal/orders"
	"lumina_back_end/internal/utils"
)

// buildPaymentSession demande l'URL de redirection à la passerelle de la
// commande et y joint le QR code. Aucune mutation de commande : pas d'URL,
// pas de session.
func buildPaymentSession(ctx context.Context, order models.Order, clientIP string) (models.PaymentSession, error) {
	gw, err := gateway.ForMethod(order.PaymentMethod)
	if err != nil {
		return models.PaymentSession{}, err
	}

	paymentURL, err := gw.CreatePayment(ctx, order.ID.String(), order.Total, clientIP)
	if err != nil {
		return models.PaymentSession{}, err
	}

	qr, err := utils.GeneratePaymentQR(paymentURL)
	if err != nil {
		// Le QR est un confort, pas une condition
		log.Printf("⚠️ QR code non généré pour %s: %v", order.ID, err)
		qr = ""
	}

	return models.PaymentSession{
		OrderID:    order.ID.String(),
		Amount:     order.Total,
		PaymentURL: paymentURL,
		QRCode:     qr,
	}, nil
}

// CreatePayment (re)demande un lien de paiement pour une commande PENDING.
// Le montant envoyé par le client doit coïncider avec le total stocké : le
// serveur ne fait jamais confiance au montant du front.
func CreatePayment(c *gin.Context) {
	var req struct {
		OrderID string  `json:"order_id" binding:"required"`
		Amount  float64 `json:"amount" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orderID, err := gocql.ParseUUID(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := orders.GetByID(orderID)
	if err != nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if order.Status != models.OrderStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Cette commande n'attend plus de paiement", "status": order.Status})
		return
	}
	if !models.IsGatewayMethod(order.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cette commande ne passe pas par une passerelle de paiement"})
		return
	}
	if req.Amount != order.Total {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le montant ne correspond pas au total de la commande"})
		return
	}

	ctx := context.Background()
	ps, err := buildPaymentSession(ctx, order, c.ClientIP())
	if err != nil {
		log.Printf("❌ Erreur création paiement pour %s: %v", order.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur création du lien de paiement"})
		return
	}

	// Compteur d'essais, purement indicatif
	attempts, _ := database.Redis.Incr(ctx, "payattempts:"+order.ID.String()).Result()
	log.Printf("💳 Lien de paiement %s créé pour %s (essai %d)", order.PaymentMethod, order.ID, attempts)

	c.JSON(http.StatusOK, ps)
}

// PaymentReturn traite le retour navigateur depuis la passerelle.
//
// La signature et le code réponse font foi, jamais la seule présence d'un
// paramètre de succès. La réponse renvoyée au front reflète l'état relu en
// base après application, pas un état optimiste.
func PaymentReturn(c *gin.Context) {
	query := c.Request.URL.Query()

	if len(query) == 0 {
		// Retour sans aucun paramètre : échec dur explicite
		c.JSON(http.StatusBadRequest, gateway.MissingReturn())
		return
	}

	result := returnGateway(query).ParseReturn(context.Background(), query)

	if result.OrderID == "" {
		c.JSON(http.StatusBadRequest, result)
		return
	}

	orderID, err := gocql.ParseUUID(result.OrderID)
	if err != nil {
		result.Success = false
		result.Message = "Référence de commande invalide"
		c.JSON(http.StatusBadRequest, result)
		return
	}

	order, err := orders.GetByID(orderID)
	if err != nil {
		result.Success = false
		result.Message = "Commande introuvable"
		c.JSON(http.StatusNotFound, result)
		return
	}

	if result.Success {
		applyPaymentSuccess(c, order, result)
		return
	}

	// Échec passerelle : la commande reste PENDING, seul le statut de
	// paiement passe en FAILED pour tracer l'essai
	if order.Status == models.OrderStatusPending && order.PaymentStatus != models.PaymentStatusPaid {
		if err := orders.UpdateStatus(order, order.Status, models.PaymentStatusFailed, order.TransactionID); err != nil {
			log.Printf("⚠️ Statut paiement FAILED non enregistré pour %s: %v", order.ID, err)
		}
	}
	log.Printf("💳 Paiement refusé pour %s: [%s] %s", order.ID, result.ResponseCode, result.ResponseMessage)

	c.JSON(http.StatusOK, gin.H{
		"payment": result,
		"order":   mustRefetch(order),
	})
}

// applyPaymentSuccess fait passer la commande PENDING → PAID puis relit la
// ligne : c'est l'état serveur qui est renvoyé. Un retour rejoué sur une
// commande déjà PAID est accepté sans réécriture.
func applyPaymentSuccess(c *gin.Context, order models.Order, result models.PaymentReturn) {
	if order.Status == models.OrderStatusPending {
		if err := orders.UpdateStatus(order, models.OrderStatusPaid, models.PaymentStatusPaid, result.TransactionID); err != nil {
			log.Printf("❌ Erreur passage PAID pour %s: %v", order.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement du paiement"})
			return
		}
		updated := mustRefetch(order)
		orders.PublishStatusChange(context.Background(), database.Redis, updated, updated.Status, updated.PaymentStatus)
		log.Printf("✅ Commande %s payée (%s)", order.ID, result.TransactionID)

		c.JSON(http.StatusOK, gin.H{"payment": result, "order": updated})
		return
	}

	if order.Status == models.OrderStatusPaid {
		// Retour rejoué : idempotent
		c.JSON(http.StatusOK, gin.H{"payment": result, "order": order})
		return
	}

	// Paiement confirmé sur une commande déjà sortie de PENDING autrement
	// (annulée entre temps) : on ne réécrit pas, on signale
	log.Printf("⚠️ Paiement confirmé pour %s mais statut %s", order.ID, order.Status)
	c.JSON(http.StatusConflict, gin.H{"payment": result, "order": order,
		"error": "La commande n'attendait plus ce paiement"})
}

// RetryPayment re-génère un lien de paiement pour une commande encore
// payable : PENDING et méthode passerelle uniquement.
func RetryPayment(c *gin.Context) {
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

	if !orders.CanRetryPayment(order.Status, order.PaymentMethod) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Cette commande ne peut plus être payée",
			"status": order.Status,
		})
		return
	}

	ctx := context.Background()
	ps, err := buildPaymentSession(ctx, order, c.ClientIP())
	if err != nil {
		log.Printf("❌ Erreur nouvelle tentative de paiement pour %s: %v", order.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur création du lien de paiement"})
		return
	}

	attempts, _ := database.Redis.Incr(ctx, "payattempts:"+order.ID.String()).Result()
	log.Printf("🔁 Nouvelle tentative de paiement pour %s (essai %d)", order.ID, attempts)

	c.JSON(http.StatusOK, ps)
}

// returnGateway identifie la passerelle d'un retour : paramètre explicite
// d'abord, préfixe vnp_ sinon, Stripe par défaut.
func returnGateway(query url.Values) gateway.Gateway {
	switch strings.ToUpper(query.Get("gateway")) {
	case models.PaymentMethodVNPay:
		return gateway.NewVNPayFromEnv()
	case models.PaymentMethodStripe:
		return gateway.NewStripeGatewayFromEnv()
	}
	for key := range query {
		if strings.HasPrefix(key, "vnp_") {
			return gateway.NewVNPayFromEnv()
		}
	}
	return gateway.NewStripeGatewayFromEnv()
}

// mustRefetch relit la commande après écriture ; en cas d'échec de lecture
// la version en mémoire sert de repli.
func mustRefetch(order models.Order) models.Order {
	updated, err := orders.GetByID(order.ID)
	if err != nil {
		return order
	}
	return updated
}
