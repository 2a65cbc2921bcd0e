package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts de commande
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusShipping  = "SHIPPING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// Statuts de paiement
const (
	PaymentStatusUnpaid = "UNPAID"
	PaymentStatusPaid   = "PAID"
	PaymentStatusFailed = "FAILED"
)

// Méthodes de paiement. COD est encaissé à la livraison, les autres passent
// par une passerelle externe avec redirection.
const (
	PaymentMethodCOD    = "COD"
	PaymentMethodVNPay  = "VNPAY"
	PaymentMethodStripe = "STRIPE"
)

// OrderItem fige produit, variante et prix au moment de la création de la
// commande, indépendamment du panier et du catalogue.
type OrderItem struct {
	ProductID      string  `json:"productId"`
	VariantID      string  `json:"variantId"`
	ProductName    string  `json:"productName"`
	SKU            string  `json:"sku"`
	AttributesName string  `json:"attributesName"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
}

type Order struct {
	ID            gocql.UUID  `json:"id"`
	UserID        string      `json:"userId"`
	AddressID     string      `json:"addressId"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	ShippingFee   float64     `json:"shippingFee"`
	Discount      float64     `json:"discount"`
	Total         float64     `json:"total"`
	VoucherCode   string      `json:"voucherCode,omitempty"`
	Note          string      `json:"note"`
	TransactionID string      `json:"transactionId,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// OrderSummary est la ligne dénormalisée de orders_by_user pour les listes
type OrderSummary struct {
	OrderID       gocql.UUID `json:"id"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod"`
	Total         float64    `json:"total"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// IsGatewayMethod indique si la méthode nécessite une redirection passerelle
func IsGatewayMethod(method string) bool {
	return method == PaymentMethodVNPay || method == PaymentMethodStripe
}
