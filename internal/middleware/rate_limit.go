package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/database"
)

const (
	// Limites par endpoint
	CheckoutMaxAttempts = 10 // par utilisateur et par minute
	PaymentMaxAttempts  = 15
	CartAddMaxRequests  = 20

	limitWindow = 1 * time.Minute
)

// CheckoutRateLimit limite les placements de commande (anti double-clic)
func CheckoutRateLimit() gin.HandlerFunc {
	return userRateLimit("checkout_attempts:", CheckoutMaxAttempts,
		"Trop de tentatives de commande. Réessayez dans 1 minute")
}

// PaymentRateLimit limite les demandes de lien de paiement
func PaymentRateLimit() gin.HandlerFunc {
	return userRateLimit("payment_attempts:", PaymentMaxAttempts,
		"Trop de demandes de paiement. Réessayez dans 1 minute")
}

// CartRateLimit limite les ajouts au panier (anti-spam)
func CartRateLimit() gin.HandlerFunc {
	return userRateLimit("cart_add:", CartAddMaxRequests,
		"Trop d'ajouts au panier. Ralentissez un peu")
}

func userRateLimit(prefix string, limit int, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := prefix + userID

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= limit {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       message,
				"retry_after": int(limitWindow.Seconds()),
			})
			c.Abort()
			return
		}

		// Incrémenter le compteur
		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, limitWindow)
		pipe.Exec(ctx)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", limit-requests-1))

		c.Next()
	}
}
