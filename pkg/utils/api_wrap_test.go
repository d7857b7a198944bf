package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantName    string
		wantMessage string
	}{
		{"validation", Validation("email is required"), http.StatusBadRequest, "ValidationError", "email is required"},
		{"unauthorized", fmt.Errorf("login: %w", Unauthorized(MsgInvalidCredentials)), http.StatusUnauthorized, "UnauthorizedError", MsgInvalidCredentials},
		{"invalid token", InvalidToken(errors.New("signature is invalid")), http.StatusUnauthorized, "InvalidTokenError", "Invalid or expired token"},
		{"not found", NotFound("User not found"), http.StatusNotFound, "NotFoundError", "User not found"},
		{"persistence", Persistence(errors.New("pq: deadlock detected")), http.StatusInternalServerError, "PersistenceError", "Internal server error"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "InternalServerError", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set("trace_id", "trace-1")

			HandleServiceError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted())

			var body APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Equal(t, tt.wantName, body.Name)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, "trace-1", body.TraceID)
		})
	}
}

func TestRespondSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondSuccess(c, map[string]string{"hello": "world"}, "ok")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","code":200,"message":"ok","data":{"hello":"world"}}`, w.Body.String())
}
