package logger

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWithRequestIDAppendsCorrelationField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(RequestIDKey, "req-42")

	fields := WithRequestID(c, zap.String("event_id", "evt_1"))

	assert.Len(t, fields, 2)
	assert.Equal(t, zap.String("request_id", "req-42"), fields[1])
}

func TestWithRequestIDPassesThroughPlainContext(t *testing.T) {
	fields := WithRequestID(context.Background(), zap.String("event_id", "evt_1"))
	assert.Len(t, fields, 1)
}

func TestWithRequestIDPassesThroughUnsetGinContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	fields := WithRequestID(c)
	assert.Empty(t, fields)
}
