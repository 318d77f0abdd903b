package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf-backend/src/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func testClaims(userId int, role models.Role, expiresIn time.Duration) Claims {
	now := time.Now()
	return Claims{
		Email: "test@openshelf.local",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userId),
			Issuer:    "openshelf",
			Audience:  jwt.ClaimStrings{"openshelf-clients"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}
}

func newAuthRouter() (*gin.Engine, *int) {
	router := gin.New()
	var seenUserId int
	router.GET("/protected", AuthMiddleware(), func(ctx *gin.Context) {
		seenUserId = ctx.GetInt("userId")
		ctx.Status(http.StatusOK)
	})
	router.GET("/admin", AuthMiddleware(), RequireRole(models.RoleAdmin), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})
	return router, &seenUserId
}

func get(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	Configure("test-secret", "openshelf", "openshelf-clients")
	router, _ := newAuthRouter()

	rec := get(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(router, "/protected", "NotBearer token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsBadSignature(t *testing.T) {
	Configure("test-secret", "openshelf", "openshelf-clients")
	router, _ := newAuthRouter()

	token := signToken(t, "some-other-secret", testClaims(7, models.RoleUser, time.Hour))
	rec := get(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	Configure("test-secret", "openshelf", "openshelf-clients")
	router, _ := newAuthRouter()

	token := signToken(t, "test-secret", testClaims(7, models.RoleUser, -time.Minute))
	rec := get(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsWrongIssuer(t *testing.T) {
	Configure("test-secret", "openshelf", "openshelf-clients")
	router, _ := newAuthRouter()

	claims := testClaims(7, models.RoleUser, time.Hour)
	claims.Issuer = "someone-else"
	token := signToken(t, "test-secret", claims)

	rec := get(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	Configure("test-secret", "openshelf", "openshelf-clients")
	router, seenUserId := newAuthRouter()

	token := signToken(t, "test-secret", testClaims(42, models.RoleUser, time.Hour))
	rec := get(router, "/protected", "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42, *seenUserId)
}

func TestRequireRole(t *testing.T) {
	Configure("test-secret", "openshelf", "openshelf-clients")
	router, _ := newAuthRouter()

	userToken := signToken(t, "test-secret", testClaims(7, models.RoleUser, time.Hour))
	rec := get(router, "/admin", "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := signToken(t, "test-secret", testClaims(1, models.RoleAdmin, time.Hour))
	rec = get(router, "/admin", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}
