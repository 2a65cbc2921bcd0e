package gateway

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"

	"lumina_back_end/internal/models"
)

// StripeGateway s'appuie sur Stripe Checkout : la session fournit l'URL de
// redirection, et le retour est vérifié en relisant la session côté Stripe
// plutôt qu'en faisant confiance aux paramètres du navigateur.
type StripeGateway struct {
	ReturnURL string
}

func NewStripeGatewayFromEnv() *StripeGateway {
	return &StripeGateway{ReturnURL: os.Getenv("STRIPE_RETURN_URL")}
}

// CreatePayment crée une Checkout Session et retourne son URL
func (g *StripeGateway) CreatePayment(_ context.Context, orderID string, amount float64, _ string) (string, error) {
	if orderID == "" || amount <= 0 {
		return "", fmt.Errorf("commande ou montant manquant")
	}

	returnBase := g.ReturnURL + "?gateway=STRIPE&orderId=" + url.QueryEscape(orderID)

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("vnd"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Commande Lumina " + orderID),
					},
					// VND est une devise sans décimales chez Stripe : montant tel quel
					UnitAmount: stripe.Int64(int64(amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(orderID),
		SuccessURL:        stripe.String(returnBase + "&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(returnBase + "&cancelled=1"),
	}

	s, err := session.New(params)
	if err != nil {
		log.Printf("❌ Erreur Stripe: %v", err)
		return "", err
	}
	if s.URL == "" {
		return "", fmt.Errorf("aucune URL de redirection retournée par Stripe")
	}

	log.Printf("💳 Checkout Session créée: %s (%.0f₫) pour la commande %s", s.ID, amount, orderID)
	return s.URL, nil
}

// ParseReturn relit la session Stripe et se fie à son payment_status
func (g *StripeGateway) ParseReturn(_ context.Context, query url.Values) models.PaymentReturn {
	if len(query) == 0 {
		return MissingReturn()
	}

	orderID := query.Get("orderId")

	if query.Get("cancelled") == "1" {
		return models.PaymentReturn{
			OrderID:         orderID,
			ResponseCode:    "24",
			Message:         "transaction cancelled by customer",
			ResponseMessage: "transaction cancelled by customer",
		}
	}

	sessionID := query.Get("session_id")
	if sessionID == "" {
		return MissingReturn()
	}

	s, err := session.Get(sessionID, nil)
	if err != nil {
		log.Printf("❌ Relecture Checkout Session %s échouée: %v", sessionID, err)
		return models.PaymentReturn{
			OrderID:         orderID,
			ResponseCode:    "99",
			Message:         "unable to verify payment session",
			ResponseMessage: "unable to verify payment session",
		}
	}

	if orderID == "" {
		orderID = s.ClientReferenceID
	}

	if s.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return models.PaymentReturn{
			OrderID:         orderID,
			ResponseCode:    "01",
			Message:         "payment not completed",
			ResponseMessage: "payment not completed",
		}
	}

	result := models.PaymentReturn{
		Success:         true,
		OrderID:         orderID,
		ResponseCode:    "00",
		Message:         "transaction successful",
		ResponseMessage: "transaction successful",
	}
	if s.PaymentIntent != nil {
		result.TransactionID = s.PaymentIntent.ID
	}
	return result
}
