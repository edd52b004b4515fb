package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status   int
		message  string
		expected ErrorResponse
	}{
		{http.StatusConflict, "User with this email already exists", ErrorResponse{409, "User with this email already exists", "Conflict"}},
		{http.StatusTooManyRequests, MsgTooManyRequests, ErrorResponse{429, "Too many requests", "Too Many Requests"}},
		{http.StatusUnauthorized, MsgInvalidCredentials, ErrorResponse{401, "Invalid credentials", "Unauthorized"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NewError(tt.status, tt.message))
	}
}

func TestAbort_StopsChain(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reached := false
	r := gin.New()
	r.GET("/", func(c *gin.Context) { Abort(c, http.StatusNotFound, "User not found") }, func(c *gin.Context) { reached = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, reached)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, NewError(http.StatusNotFound, "User not found"), body)
}
