package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sadriving/sadriving-backend/internal/model"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, handler gin.HandlerFunc, reqID string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRequestIDMiddleware_ReusesClientID(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) { Success(c, http.StatusOK, "ok") }, "req-123")

	require.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	require.Equal(t, "req-123", body.Metadata.RequestID)
}

func TestRequestIDMiddleware_ReplacesOversizedID(t *testing.T) {
	w, _ := serve(t, func(c *gin.Context) { Success(c, http.StatusOK, "ok") }, strings.Repeat("x", 200))

	require.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestFailWithNotification(t *testing.T) {
	n := model.Notification{Title: "Error", Description: "Please enter address", Severity: model.SeverityDestructive}
	w, body := serve(t, func(c *gin.Context) {
		FailWithNotification(c, http.StatusUnprocessableEntity, ErrRegistrationInvalid, gin.H{"form": "kept"}, n)
	}, "")

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, ErrRegistrationInvalid, body.Error.Code)
	require.Equal(t, "Please enter address", body.Error.Message)
	require.Equal(t, n, *body.Notification)
	require.NotEmpty(t, body.Metadata.Timestamp)
}

func TestFail_UsesCodeMessage(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) { Fail(c, http.StatusNotFound, ErrSessionNotFound) }, "")

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, GetMessage(ErrSessionNotFound), body.Error.Message)
	require.Nil(t, body.Notification)
}
