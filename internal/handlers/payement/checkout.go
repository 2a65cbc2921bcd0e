package pa

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lumina_back_end/internal/cart"
	"lumina_back_end/internal/checkout"
	"lumina_back_end/internal/database"
	"lumina_back_end/internal/models"
	"lumina_back_end/internal/orders"
	"lumina_back_end/internal/session"
	"lumina_back_end/internal/utils"
	"lumina_back_end/internal/voucher"
)

// PlaceOrder transforme la sélection courante du panier en commande.
// Les préconditions sont vérifiées avant tout accès base : un champ manquant
// ne coûte aucune requête.
func PlaceOrder(c *gin.Context) {
	var req struct {
		AddressID     string `json:"address_id"`
		PaymentMethod string `json:"payment_method"`
		VoucherCode   string `json:"voucher_code"` // Optionnel
		Note          string `json:"note"`
		TermsAccepted bool   `json:"terms_accepted"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	email := c.GetString("email")
	rank := c.GetString("rank")

	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	// Préconditions, chacune avec son message propre
	if req.AddressID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Veuillez sélectionner une adresse de livraison"})
		return
	}
	if req.PaymentMethod == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Veuillez sélectionner une méthode de paiement"})
		return
	}
	if req.PaymentMethod != models.PaymentMethodCOD && !models.IsGatewayMethod(req.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Méthode de paiement inconnue"})
		return
	}
	if !req.TermsAccepted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Veuillez accepter les conditions générales"})
		return
	}

	// L'adresse doit exister et appartenir à l'utilisateur
	address, err := loadAddress(userID, req.AddressID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Adresse introuvable ou non autorisée"})
		return
	}

	ctx := context.Background()

	// La sélection est relue et purgée au moment du checkout, jamais figée avant
	items, sel, err := session.LoadPrunedSelection(ctx, database.Redis, userID)
	if err != nil {
		log.Printf("❌ Erreur lecture panier pour %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if len(sel) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun article sélectionné"})
		return
	}

	subtotal := cart.SelectedSubtotal(items, sel)

	// Voucher : un code invalide est détaché, la commande continue sans lui
	var applied *models.Voucher
	var discount float64
	var voucherWarning string
	if req.VoucherCode != "" {
		validation, v := voucher.EvaluateForUser(userID, rank, req.VoucherCode, subtotal, time.Now())
		if validation.IsValid && validation.Discount > 0 {
			applied = v
			discount = validation.Discount
		} else {
			voucherWarning = validation.ErrorMessage
			log.Printf("⚠️ Voucher %s détaché au checkout pour %s: %s", req.VoucherCode, userID, validation.Reason)
		}
	}

	creation, err := checkout.Assemble(checkout.Input{
		Items:         items,
		Selection:     sel,
		AddressID:     req.AddressID,
		PaymentMethod: req.PaymentMethod,
		Voucher:       applied,
		Discount:      discount,
		Note:          req.Note,
		TermsAccepted: req.TermsAccepted,
	})
	if err != nil {
		// Toutes les erreurs d'assemblage sont des fautes client, y compris
		// la réduction qui dépasserait le total
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := models.Order{
		ID:            gocql.TimeUUID(),
		UserID:        userID,
		AddressID:     creation.AddressID,
		PaymentMethod: creation.PaymentMethod,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		Items:         orderItems(creation.Items),
		Subtotal:      creation.Subtotal,
		ShippingFee:   creation.ShippingFee,
		Discount:      creation.Discount,
		Total:         creation.Total,
		VoucherCode:   creation.VoucherCode,
		Note:          creation.Note,
		CreatedAt:     time.Now(),
	}

	if err := orders.Insert(order); err != nil {
		log.Printf("❌ Erreur création commande pour %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	// Le voucher est consommé une fois la commande écrite
	if applied != nil {
		if err := voucher.MarkUsed(userID, applied.ID); err != nil {
			log.Printf("⚠️ Voucher %s non marqué utilisé pour %s: %v", applied.Code, userID, err)
		}
	}

	// Nettoyage du panier détaché : seules les lignes commandées partent,
	// le reste du panier survit. Un échec ici n'annule jamais la commande.
	checkout.NewCleanupQueue(database.Redis).Enqueue(ctx, userID, sel.IDs())
	session.ClearSelection(ctx, database.Redis, userID)

	// Email de confirmation en arrière-plan
	if email != "" {
		go func(to string, o models.Order, addr models.Address) {
			if err := utils.SendOrderConfirmationEmail(to, o, addr); err != nil {
				log.Printf("⚠️ Email confirmation non envoyé pour %s: %v", o.ID, err)
			}
		}(email, order, address)
	}

	log.Printf("✅ Commande %s créée pour %s (%.0f VND, %s)", order.ID, userID, order.Total, order.PaymentMethod)

	resp := gin.H{
		"message": "Commande créée",
		"order":   order,
	}
	if voucherWarning != "" {
		resp["voucher_warning"] = voucherWarning
	}

	// COD se termine ici ; les méthodes passerelle reçoivent en plus leur
	// session de paiement éphémère
	if models.IsGatewayMethod(order.PaymentMethod) {
		ps, err := buildPaymentSession(ctx, order, c.ClientIP())
		if err != nil {
			// La commande existe et reste PENDING : le paiement pourra être retenté
			log.Printf("❌ Erreur création paiement pour %s: %v", order.ID, err)
			resp["payment_error"] = "Erreur création du lien de paiement, veuillez réessayer"
			c.JSON(http.StatusCreated, resp)
			return
		}
		resp["payment"] = ps
	}

	c.JSON(http.StatusCreated, resp)
}

// loadAddress vérifie l'existence et la propriété de l'adresse de livraison
func loadAddress(userID, addressID string) (models.Address, error) {
	var addr models.Address

	addressUUID, err := gocql.ParseUUID(addressID)
	if err != nil {
		return addr, err
	}

	usersSession, err := database.GetUsersSession()
	if err != nil {
		return addr, err
	}

	if err := usersSession.Query(
		`SELECT address_id, user_id, recipient, phone, line, ward, district, city, is_default
		FROM addresses WHERE address_id = ?`, addressUUID,
	).Scan(&addr.ID, &addr.UserID, &addr.Recipient, &addr.Phone, &addr.Line,
		&addr.Ward, &addr.District, &addr.City, &addr.IsDefault); err != nil {
		return addr, err
	}

	if addr.UserID != userID {
		return models.Address{}, gocql.ErrNotFound
	}
	return addr, nil
}

func orderItems(items []checkout.OrderRequestItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.OrderItem{
			ProductID:      it.ProductID,
			VariantID:      it.VariantID,
			ProductName:    it.ProductName,
			SKU:            it.SKU,
			AttributesName: it.AttributesName,
			Quantity:       it.Quantity,
			Price:          it.Price,
		})
	}
	return out
}
