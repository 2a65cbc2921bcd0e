package user

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"lumina_back_end/internal/cart"
	"lumina_back_end/internal/database"
	"lumina_back_end/internal/models"
	"lumina_back_end/internal/session"
)

//
// 🟢 GET /api/cart
//
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	// Chargement élagué : la sélection reste un sous-ensemble du panier
	items, sel, err := session.LoadPrunedSelection(context.Background(), database.Redis, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":             items,
		"selection":         sel.IDs(),
		"selected_subtotal": cart.SelectedSubtotal(items, sel),
	})
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		VariantID string `json:"variantId"`
		Quantity  int    `json:"quantity"`
		BuyNow    bool   `json:"buyNow"` // "acheter maintenant" : sélectionne exactement cette ligne
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	// 🧩 Snapshot prix/attributs depuis le catalogue au moment de l'ajout
	item, err := snapshotVariant(input.ProductID, input.VariantID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit ou variante introuvable"})
		return
	}
	item.Quantity = input.Quantity

	ctx := context.Background()
	items, err := session.LoadCart(ctx, database.Redis, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	// 🔁 Même produit + même variante : on cumule la quantité
	lineID := ""
	for i := range items {
		if items[i].ProductID == item.ProductID && items[i].VariantID == item.VariantID {
			items[i].Quantity += input.Quantity
			lineID = items[i].ID
			break
		}
	}
	if lineID == "" {
		item.ID = uuid.NewString()
		lineID = item.ID
		items = append(items, item)
	}

	if err := session.SaveCart(ctx, database.Redis, userID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	// "Acheter maintenant" passe par le même contrat de sélection que le
	// multi-sélection manuel : pas d'état parallèle.
	if input.BuyNow {
		sel := cart.NewSelection(lineID)
		if err := session.SaveSelection(ctx, database.Redis, userID, sel); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde sélection"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   items,
		"item_id": lineID,
	})
}

//
// 🔁 PUT /api/cart/:itemId
//
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	itemID := c.Param("itemId")
	ctx := context.Background()

	items, err := session.LoadCart(ctx, database.Redis, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	found := false
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = input.Quantity
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ligne de panier introuvable"})
		return
	}

	if err := session.SaveCart(ctx, database.Redis, userID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quantité mise à jour", "items": items})
}

//
// ❌ DELETE /api/cart/:itemId
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	itemID := c.Param("itemId")
	ctx := context.Background()

	items, err := session.LoadCart(ctx, database.Redis, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	newItems := items[:0]
	for _, item := range items {
		if item.ID != itemID {
			newItems = append(newItems, item)
		}
	}

	if err := session.SaveCart(ctx, database.Redis, userID, newItems); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	// L'id supprimé disparaît de la sélection au prochain chargement élagué,
	// mais on élague tout de suite pour que la réponse soit cohérente.
	items, sel, err := session.LoadPrunedSelection(ctx, database.Redis, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Produit supprimé du panier",
		"items":     items,
		"selection": sel.IDs(),
	})
}

//
// 🧹 DELETE /api/cart
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if err := session.ClearCart(context.Background(), database.Redis, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}

// snapshotVariant lit le catalogue et fige nom, SKU, attributs et prix.
// Le prix snapshot fait foi ensuite, jamais un re-pricing live.
func snapshotVariant(productID, variantID string) (item models.CartItem, err error) {
	catalogSession, err := database.GetCatalogSession()
	if err != nil {
		return item, err
	}

	productUUID, err := uuid.Parse(productID)
	if err != nil {
		return item, err
	}
	variantUUID, err := uuid.Parse(variantID)
	if err != nil {
		return item, err
	}

	var variant models.ProductVariant
	if err := catalogSession.Query(
		`SELECT variant_id, product_id, sku, attributes_name, price, stock
		FROM product_variants WHERE product_id = ? AND variant_id = ?`,
		gocql.UUID(productUUID), gocql.UUID(variantUUID),
	).Scan(&variant.VariantID, &variant.ProductID, &variant.SKU,
		&variant.AttributesName, &variant.Price, &variant.Stock); err != nil {
		return item, err
	}

	var product models.Product
	var imageURLs []string
	if err := catalogSession.Query(
		`SELECT product_id, name, image_urls FROM products WHERE product_id = ?`, gocql.UUID(productUUID),
	).Scan(&product.ID, &product.Name, &imageURLs); err != nil {
		return item, err
	}

	// 🖼️ Première image pour l'aperçu panier
	if len(imageURLs) > 0 {
		product.ImageURL = imageURLs[0]
	}

	item.ProductID = productID
	item.VariantID = variantID
	item.ProductName = product.Name
	item.SKU = variant.SKU
	item.AttributesName = variant.AttributesName
	item.Price = variant.Price
	item.ImageURL = product.ImageURL
	return item, nil
}
