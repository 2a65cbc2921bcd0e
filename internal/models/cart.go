package models

// CartItem est une ligne du panier. Le prix est figé au moment de l'ajout
// (snapshot) et fait foi pour tous les calculs de totaux.
type CartItem struct {
	ID             string  `json:"id"` // identifiant stable de la ligne, utilisé par la sélection
	ProductID      string  `json:"productId"`
	VariantID      string  `json:"variantId"`
	ProductName    string  `json:"productName"`
	SKU            string  `json:"sku"`
	AttributesName string  `json:"attributesName"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	ImageURL       string  `json:"imageUrl"`
}
