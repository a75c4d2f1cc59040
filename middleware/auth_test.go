package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/models"
)

const testSecret = "test-secret"

type fakeUserRepo struct {
	principals map[string]*models.Principal
	lookups    int
}

func (f *fakeUserRepo) FindPrincipal(_ context.Context, userID string) (*models.Principal, error) {
	f.lookups++
	if p, ok := f.principals[userID]; ok {
		return p, nil
	}
	return nil, errors.New("not found")
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func adminRouter(users *fakeUserRepo, handlerHit *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := NewAuth(users, testSecret, zap.NewNop())

	r := gin.New()
	r.GET("/admin/orders", auth.Required(), auth.AdminOnly(), func(c *gin.Context) {
		*handlerHit = true
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAdminGate_NonAdminForbiddenBeforeHandler(t *testing.T) {
	users := &fakeUserRepo{principals: map[string]*models.Principal{
		"u1": {ID: "u1", Email: "u1@b.com", Role: "customer", IsAdmin: false},
	}}
	handlerHit := false
	r := adminRouter(users, &handlerHit)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, handlerHit, "handler must not run for non-admins")
}

func TestAdminGate_FlagWithoutRoleIsRejected(t *testing.T) {
	users := &fakeUserRepo{principals: map[string]*models.Principal{
		"u2": {ID: "u2", Role: "support", IsAdmin: true},
	}}
	handlerHit := false
	r := adminRouter(users, &handlerHit)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u2"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, handlerHit)
}

func TestAdminGate_AdminPasses(t *testing.T) {
	users := &fakeUserRepo{principals: map[string]*models.Principal{
		"admin1": {ID: "admin1", Role: "admin", IsAdmin: true},
	}}
	handlerHit := false
	r := adminRouter(users, &handlerHit)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handlerHit)
	// One profile read per request, performed by the middleware.
	assert.Equal(t, 1, users.lookups)
}

func TestRequired_MissingOrBadToken(t *testing.T) {
	users := &fakeUserRepo{}
	handlerHit := false
	r := adminRouter(users, &handlerHit)

	// No token at all.
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	req = httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.False(t, handlerHit)
	// The users collection is never consulted for unverifiable tokens.
	assert.Equal(t, 0, users.lookups)
}

func TestOptional_AllowsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := NewAuth(&fakeUserRepo{}, testSecret, zap.NewNop())

	r := gin.New()
	r.POST("/checkout", auth.Optional(), func(c *gin.Context) {
		assert.Nil(t, GetPrincipal(c))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
