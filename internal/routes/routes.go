package routes

import (
	"lumina_back_end/internal/handlers/payement"
	"lumina_back_end/internal/handlers/user"
	"lumina_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// Vouchers publics
	api.GET("/vouchers", user.GetActiveVouchers)
	api.GET("/vouchers/:id", user.GetVoucherByID)

	// Retour passerelle : appelé par le navigateur au retour de la banque,
	// sans JWT (la passerelle ne connaît pas nos tokens)
	api.GET("/payment/payment-return", pa.PaymentReturn)

	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		// Panier
		auth.GET("/cart", user.GetCart)
		auth.POST("/cart/add", middleware.CartRateLimit(), user.AddToCart)
		auth.PUT("/cart/:itemId", user.UpdateCartItem)
		auth.DELETE("/cart/:itemId", user.RemoveFromCart)
		auth.DELETE("/cart", user.ClearCart)

		// Sélection pour le checkout
		auth.POST("/cart/selection/toggle", user.ToggleSelection)
		auth.POST("/cart/selection/all", user.SelectAllItems)
		auth.DELETE("/cart/selection", user.ClearSelection)

		// Portefeuille de vouchers
		auth.POST("/vouchers/claim", user.ClaimVoucher)
		auth.GET("/vouchers/wallet", user.GetWallet)
		auth.GET("/vouchers/validate", user.ValidateVoucher)

		// Checkout & paiement
		auth.POST("/checkout", middleware.CheckoutRateLimit(), pa.PlaceOrder)
		auth.POST("/payment/create-payment", middleware.PaymentRateLimit(), pa.CreatePayment)
		auth.POST("/payment/retry/:id", middleware.PaymentRateLimit(), pa.RetryPayment)

		// Commandes
		auth.GET("/orders", user.GetMyOrders)
		auth.GET("/orders/:id", user.GetOrderByID)
		auth.DELETE("/orders/:id", user.CancelOrder)
		auth.GET("/orders/ws", user.OrderStatusWebSocket)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.PUT("/orders/:id/status", pa.UpdateOrderStatus)
	}
}
