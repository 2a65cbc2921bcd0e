// Package checkout assemble une sélection de panier en requête de création
// de commande et porte la file de nettoyage différé du panier.
package checkout

import (
	"errors"

	"lumina_back_end/internal/cart"
	"lumina_back_end/internal/models"
)

// ShippingFee est un forfait uniforme, jamais calculé depuis l'adresse
const ShippingFee = 30000 // VND

// Préconditions violées : chaque erreur bloque l'assemblage avant tout appel
// réseau, avec un message propre au champ manquant.
var (
	ErrMissingAddress       = errors.New("aucune adresse sélectionnée")
	ErrMissingPaymentMethod = errors.New("aucune méthode de paiement sélectionnée")
	ErrTermsNotAccepted     = errors.New("conditions générales non acceptées")
	ErrEmptySelection       = errors.New("aucun article sélectionné")
	ErrNegativeTotal        = errors.New("la réduction dépasse le montant de la commande")
)

// OrderRequestItem reprend le prix snapshot du panier, jamais un re-pricing
// live, plus le libellé d'attributs dénormalisé pour l'affichage.
type OrderRequestItem struct {
	ProductID      string  `json:"productId"`
	VariantID      string  `json:"variantId"`
	ProductName    string  `json:"productName"`
	SKU            string  `json:"sku"`
	AttributesName string  `json:"attributesName"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
}

type OrderCreationRequest struct {
	AddressID     string             `json:"addressId"`
	PaymentMethod string             `json:"paymentMethod"`
	Note          string             `json:"note"`
	VoucherCode   string             `json:"voucherCode,omitempty"`
	Items         []OrderRequestItem `json:"items"`
	Subtotal      float64            `json:"subtotal"`
	ShippingFee   float64            `json:"shippingFee"`
	Discount      float64            `json:"discount"`
	Total         float64            `json:"total"`
}

// Input regroupe les choix en mémoire lus au moment où l'utilisateur valide.
// Il n'y a pas de snapshot préalable : l'assemblage lit l'état courant.
type Input struct {
	Items         []models.CartItem
	Selection     cart.SelectionSet
	AddressID     string
	PaymentMethod string
	Voucher       *models.Voucher
	Discount      float64
	Note          string
	TermsAccepted bool
}

func validPaymentMethod(method string) bool {
	return method == models.PaymentMethodCOD || models.IsGatewayMethod(method)
}

// Assemble vérifie les préconditions puis construit la requête de création.
// total = sous-total + frais de port − réduction ; un total négatif est
// rejeté, un total nul est accepté.
func Assemble(in Input) (*OrderCreationRequest, error) {
	if in.AddressID == "" {
		return nil, ErrMissingAddress
	}
	if !validPaymentMethod(in.PaymentMethod) {
		return nil, ErrMissingPaymentMethod
	}
	if !in.TermsAccepted {
		return nil, ErrTermsNotAccepted
	}

	selected := cart.SelectedItems(in.Items, in.Selection)
	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}

	var subtotal float64
	items := make([]OrderRequestItem, 0, len(selected))
	for _, item := range selected {
		subtotal += item.Price * float64(item.Quantity)
		items = append(items, OrderRequestItem{
			ProductID:      item.ProductID,
			VariantID:      item.VariantID,
			ProductName:    item.ProductName,
			SKU:            item.SKU,
			AttributesName: item.AttributesName,
			Quantity:       item.Quantity,
			Price:          item.Price,
		})
	}

	total := subtotal + ShippingFee - in.Discount
	if total < 0 {
		return nil, ErrNegativeTotal
	}

	req := &OrderCreationRequest{
		AddressID:     in.AddressID,
		PaymentMethod: in.PaymentMethod,
		Note:          in.Note,
		Items:         items,
		Subtotal:      subtotal,
		ShippingFee:   ShippingFee,
		Discount:      in.Discount,
		Total:         total,
	}
	if in.Voucher != nil {
		req.VoucherCode = in.Voucher.Code
	}
	return req, nil
}
