package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"civic-forum-api/internal/response"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedCode    string
		expectedDetails string
		expectedLogs    int
	}{
		{"NOT_FOUND", response.NewNotFoundError("Post not found", ""), http.StatusNotFound, response.ErrCodeNotFound, "", 0},
		{"VALIDATION_ERROR 상세 전달", response.NewValidationError("bad", "votableType"), http.StatusBadRequest, response.ErrCodeValidation, "votableType", 0},
		{"UNAUTHORIZED", response.NewUnauthorizedError("no user", ""), http.StatusUnauthorized, response.ErrCodeUnauthorized, "", 0},
		{"FORBIDDEN", response.NewForbiddenError("not yours", ""), http.StatusForbidden, response.ErrCodeForbidden, "", 0},
		{"CONFLICT", response.NewConflictError("retry", ""), http.StatusConflict, response.ErrCodeConflict, "", 0},
		{"감싼 AppError", fmt.Errorf("wrapped: %w", response.NewNotFoundError("x", "")), http.StatusNotFound, response.ErrCodeNotFound, "", 0},
		{"gorm 레코드 없음", gorm.ErrRecordNotFound, http.StatusNotFound, response.ErrCodeNotFound, "", 0},
		{"INTERNAL 상세 숨김", response.NewAppError(response.ErrCodeInternal, "Failed", "dial tcp: refused"), http.StatusInternalServerError, response.ErrCodeInternal, "", 1},
		{"알 수 없는 에러", errors.New("boom"), http.StatusInternalServerError, response.ErrCodeInternal, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			core, logs := observer.New(zapcore.ErrorLevel)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			handleServiceError(c, zap.New(core), tt.err)

			require.Equal(t, tt.expectedStatus, w.Code)
			errBody := decodeError(t, w)
			assert.Equal(t, tt.expectedCode, errBody.Code)
			assert.Equal(t, tt.expectedDetails, errBody.Details)
			assert.Equal(t, tt.expectedLogs, logs.Len())
		})
	}
}
