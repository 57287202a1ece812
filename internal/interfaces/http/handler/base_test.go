package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/chronotes/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setAuthContext simulates an authenticated request without a real token
func setAuthContext(c *gin.Context, userID uuid.UUID) {
	c.Set(middleware.JWTUserIDKey, userID.String())
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name: "from context string",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-request-id")
			},
			expectedID: "ctx-request-id",
		},
		{
			name: "from header when context empty",
			setup: func(c *gin.Context) {
				c.Request.Header.Set(RequestIDKey, "header-request-id")
			},
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-id")
				c.Request.Header.Set(RequestIDKey, "header-id")
			},
			expectedID: "ctx-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			tt.setup(c)

			id := getRequestID(c)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestGetUserID(t *testing.T) {
	t.Run("returns the authenticated user id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		want := uuid.New()
		setAuthContext(c, want)

		got, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("errors when not authenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)

		_, err := getUserID(c)
		assert.Error(t, err)
	})

	t.Run("errors on malformed id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Set(middleware.JWTUserIDKey, "not-a-uuid")

		_, err := getUserID(c)
		assert.Error(t, err)
	})
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	h.Success(c, gin.H{"name": "Work"})

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Work", data["name"])
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	h.SuccessWithMeta(c, []string{"a", "b"}, 25, 2, 10)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(25), meta["total"])
	assert.Equal(t, float64(2), meta["page"])
	assert.Equal(t, float64(10), meta["page_size"])
	assert.Equal(t, float64(3), meta["total_pages"])
}

func TestBaseHandlerErrorHelpers(t *testing.T) {
	tests := []struct {
		name           string
		call           func(h *BaseHandler, c *gin.Context)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "bad request",
			call:           func(h *BaseHandler, c *gin.Context) { h.BadRequest(c, "bad") },
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "ERR_BAD_REQUEST",
		},
		{
			name:           "not found",
			call:           func(h *BaseHandler, c *gin.Context) { h.NotFound(c, "missing") },
			expectedStatus: http.StatusNotFound,
			expectedCode:   "ERR_NOT_FOUND",
		},
		{
			name:           "unauthorized",
			call:           func(h *BaseHandler, c *gin.Context) { h.Unauthorized(c, "who") },
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "ERR_UNAUTHORIZED",
		},
		{
			name:           "forbidden",
			call:           func(h *BaseHandler, c *gin.Context) { h.Forbidden(c, "no") },
			expectedStatus: http.StatusForbidden,
			expectedCode:   "ERR_FORBIDDEN",
		},
		{
			name:           "conflict",
			call:           func(h *BaseHandler, c *gin.Context) { h.Conflict(c, "dup") },
			expectedStatus: http.StatusConflict,
			expectedCode:   "ERR_CONFLICT",
		},
		{
			name:           "internal",
			call:           func(h *BaseHandler, c *gin.Context) { h.InternalError(c, "boom") },
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "ERR_INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			tt.call(h, c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			errInfo, ok := body["error"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.expectedCode, errInfo["code"])
		})
	}
}

func TestHandleDomainError(t *testing.T) {
	t.Run("maps domain codes to status and wire code", func(t *testing.T) {
		h := &BaseHandler{}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Set(RequestIDKey, "req-123")

		h.HandleDomainError(c, shared.NewDomainError("TIME_OVERLAP", "Entry overlaps an existing one"))

		assert.Equal(t, http.StatusConflict, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "ERR_TIME_OVERLAP", errInfo["code"])
		assert.Equal(t, "req-123", errInfo["request_id"])
	})

	t.Run("unknown errors become 500", func(t *testing.T) {
		h := &BaseHandler{}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)

		h.HandleDomainError(c, assert.AnError)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandleErrorNil(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	h.HandleError(c, nil)

	// Nothing written
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.Bytes())
}
