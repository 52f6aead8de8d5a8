package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/ticket-order-api/internal/api/middleware"
	"github.com/vietanh2810/ticket-order-api/internal/pkg/jwthelper"
)

const testSigningKey = "handler-test-key"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	router := gin.New()
	router.Use(middleware.NewAuthenticator(testSigningKey).ParseJWT())
	return router
}

func bearer(t *testing.T, userID uint) string {
	t.Helper()

	token, err := jwthelper.GenerateToken([]byte(testSigningKey), userID, time.Hour)
	require.NoError(t, err)

	return "Bearer " + token
}

func do(router http.Handler, method, target, auth string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}
