package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina_back_end/internal/models"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func runAuth(token string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if token != "" {
		c.Request.Header.Set("Authorization", "Bearer "+token)
	}
	AuthRequired()(c)
	return c, w
}

func TestAuthRequired_SecretReadAtConstruction(t *testing.T) {
	// Le secret posé via l'environnement après l'initialisation du paquet
	// (le cas d'un .env chargé au démarrage) doit être pris en compte.
	t.Setenv("JWT_SECRET", "secret-runtime")

	token := signToken(t, "secret-runtime", jwt.MapClaims{
		"user_id": "user-1",
		"email":   "client@lumina.vn",
		"role":    "customer",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	c, _ := runAuth(token)

	assert.False(t, c.IsAborted())
	assert.Equal(t, "user-1", c.GetString("user_id"))
	// Pas de claim rank : rang le plus bas par défaut
	assert.Equal(t, models.RankMember, c.GetString("rank"))
}

func TestAuthRequired_RankClaimPropagated(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-runtime")

	token := signToken(t, "secret-runtime", jwt.MapClaims{
		"user_id": "user-1",
		"rank":    models.RankGold,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	c, _ := runAuth(token)

	assert.False(t, c.IsAborted())
	assert.Equal(t, models.RankGold, c.GetString("rank"))
}

func TestAuthRequired_MissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-runtime")

	c, w := runAuth("")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-runtime")

	token := signToken(t, "autre-secret", jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	c, w := runAuth(token)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-runtime")

	token := signToken(t, "secret-runtime", jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	c, w := runAuth(token)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
