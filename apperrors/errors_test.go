package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respondWith(t *testing.T, err error, env string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, err, env)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespond_MasksDetailInProduction(t *testing.T) {
	err := Storage("Failed to save order", errors.New("connection reset by peer"))

	w, body := respondWith(t, err, "production")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to save order", body["error"])
	assert.NotContains(t, body, "detail")

	_, body = respondWith(t, err, "development")
	assert.Equal(t, "connection reset by peer", body["detail"])
}

func TestRespond_UnknownErrorsBecomeInternal(t *testing.T) {
	w, body := respondWith(t, errors.New("boom"), "production")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestKinds(t *testing.T) {
	assert.True(t, IsKind(Gateway("declined", nil), KindGateway))
	assert.True(t, IsKind(Authorization("nope"), KindAuthorization))
	assert.True(t, IsKind(MalformedRecord("entry has no data payload"), KindMalformedRecord))
	assert.False(t, IsKind(errors.New("plain"), KindStorage))

	gw := Gateway("declined", errors.New("2001"))
	assert.Equal(t, http.StatusPaymentRequired, gw.Code)
	assert.Equal(t, "declined: 2001", gw.Error())
	assert.Equal(t, "2001", gw.Unwrap().Error())
}
