package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/apperrors"
	"github.com/apexsim/storefront-backend/models"
	"github.com/apexsim/storefront-backend/repository"
)

// PrincipalContextKey is where the resolved principal lives in gin context.
const PrincipalContextKey = "principal"

// Auth resolves the authenticated principal once per request: the JWT is
// verified, then the stored profile is read from the users collection and
// a typed Principal is placed in context for downstream handlers.
type Auth struct {
	users  repository.UserRepository
	secret []byte
	log    *zap.Logger
}

func NewAuth(users repository.UserRepository, secret string, log *zap.Logger) *Auth {
	return &Auth{users: users, secret: []byte(secret), log: log}
}

// Required rejects requests without a valid token.
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := a.resolve(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// Optional resolves a principal when a token is present but lets anonymous
// requests through; checkout accepts guests.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		principal, err := a.resolve(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// AdminOnly gates admin operations. It runs after Required, so the typed
// principal is already in context; the check happens before any handler
// query executes.
func (a *Auth) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if !principal.Admin() {
			err := apperrors.Authorization("Admin access required")
			c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
			return
		}
		c.Next()
	}
}

func (a *Auth) resolve(c *gin.Context) (*models.Principal, error) {
	header := c.GetHeader("Authorization")
	tokenStr := strings.TrimPrefix(header, "Bearer ")
	if tokenStr == "" || tokenStr == header {
		return nil, fmt.Errorf("missing bearer token")
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return nil, fmt.Errorf("token missing subject")
	}

	principal, err := a.users.FindPrincipal(c.Request.Context(), userID)
	if err != nil {
		a.log.Warn("Principal lookup failed", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("unknown principal")
	}
	return principal, nil
}

// GetPrincipal returns the resolved principal, or nil for anonymous
// requests.
func GetPrincipal(c *gin.Context) *models.Principal {
	if val, ok := c.Get(PrincipalContextKey); ok {
		if principal, ok := val.(*models.Principal); ok {
			return principal
		}
	}
	return nil
}
