package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/aerowis/internal/app/models/dto"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
	"github.com/yigit/aerowis/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool             `json:"success"`
	Error   *dto.ErrorDetail `json:"error"`
}

func serveError(t *testing.T, err error) (int, envelope) {
	t.Helper()
	r := gin.New()
	r.GET("/", func(c *gin.Context) { HandleAPIError(c, err) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"validation", apperrors.NewValidationError("cutoff_score", "cutoff_score must be between 0 and max_score"), 400, dto.ErrorCodeValidationFailed},
		{"not found", apperrors.ErrExamNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"wrapped not found", fmt.Errorf("loading: %w", apperrors.ErrStudentNotFound), 404, dto.ErrorCodeResourceNotFound},
		{"constraint", apperrors.ErrBatchHasStudents, 409, dto.ErrorCodeConflict},
		{"sequencing", apperrors.NewSequencingError("malformed receipt id"), 500, dto.ErrorCodeLedgerSequencing},
		{"credentials", apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials},
		{"unknown", errors.New("pq: connection refused"), 500, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serveError(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleAPIError_CarriesFieldAndMessage(t *testing.T) {
	_, body := serveError(t, apperrors.NewValidationError("address", "student has no address on file"))
	assert.Equal(t, "address", body.Error.Field)
	assert.Equal(t, "student has no address on file", body.Error.Message)

	_, body = serveError(t, apperrors.ErrBatchHasStudents)
	assert.Equal(t, "batch has students assigned and cannot be deleted", body.Error.Message)

	_, body = serveError(t, errors.New("duplicate key value violates unique constraint"))
	assert.Equal(t, "Internal server error", body.Error.Message)
}

func TestJWTAuth(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour, TokenIssuer: "aerowis"})
	r := gin.New()
	r.GET("/private", NewAuthMiddleware(jwtService).JWTAuth(), func(c *gin.Context) {
		id, ok := OperatorID(c)
		require.True(t, ok)
		c.String(http.StatusOK, "%d", id)
	})

	token, _, err := jwtService.GenerateAccessToken(4, "admin")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "4", w.Body.String())
			}
		})
	}
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
