package models

import "github.com/gocql/gocql"

// Le catalogue est un collaborateur externe : seules les colonnes nécessaires
// au snapshot panier sont lues ici.
type ProductVariant struct {
	VariantID      gocql.UUID `json:"variantId"`
	ProductID      gocql.UUID `json:"productId"`
	SKU            string     `json:"sku"`
	AttributesName string     `json:"attributesName"`
	Price          float64    `json:"price"`
	Stock          int        `json:"stock"`
}

type Product struct {
	ID       gocql.UUID `json:"id"`
	Name     string     `json:"name"`
	ImageURL string     `json:"imageUrl"`
}
