package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/openshelf/openshelf-backend/src/models"
)

var (
	secretKey string
	issuer    string
	audience  string
)

// Configure sets the signing secret and the issuer/audience every token
// must carry. Call once at startup before any route is served.
func Configure(secret, iss, aud string) {
	secretKey = secret
	issuer = iss
	audience = aud
}

func GetSecretKey() string {
	return secretKey
}

func GetIssuer() string {
	return issuer
}

func GetAudience() string {
	return audience
}

// Claims is the payload of every bearer token: subject carries the user id.
type Claims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken validates signature, expiry, issuer and audience and returns
// the typed claims.
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		// Gets the authorization header
		authHeader := strings.TrimSpace(ctx.GetHeader("Authorization"))
		if authHeader == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			ctx.Abort()
			return
		}

		// Divides the header into Bearer and Token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			ctx.Abort()
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			ctx.Abort()
			return
		}

		userId, err := strconv.Atoi(claims.Subject)
		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
			ctx.Abort()
			return
		}

		// Sets the token claims in the context
		ctx.Set("userId", userId)
		ctx.Set("role", claims.Role)
		ctx.Next()
	}
}

// RequireRole rejects callers whose token does not carry the given role.
// Must run after AuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		val, exists := ctx.Get("role")
		if !exists {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			ctx.Abort()
			return
		}

		got, ok := val.(models.Role)
		if !ok || !got.Valid() {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid auth context"})
			ctx.Abort()
			return
		}

		if got != role {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
