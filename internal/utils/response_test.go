package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/sustainchain-backend/internal/i18n"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorResponsesUseDefaultMessages(t *testing.T) {
	require.NoError(t, i18n.Initialize())
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	NotFoundResponse(c, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "Resource not found", resp.Error.Message)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	InternalErrorResponse(c, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An internal error occurred", decode(t, w).Error.Message)
}

func TestPaginatedResponseSetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	PaginatedResponse(c, CreatePaginationResult([]string{"a"}, 1, PaginationParams{Page: 1, Limit: 50}))

	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
}

func TestContextAccessors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserIDFromContext(c)
	assert.False(t, ok)
	assert.Equal(t, "en", GetLangFromContext(c))

	id := uuid.New()
	c.Set("user_id", id.String())
	c.Set("role", "admin")
	c.Set("lang", "zh_TW")

	got, ok := GetUserIDFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)
	role, _ := GetRoleFromContext(c)
	assert.Equal(t, "admin", role)
	assert.Equal(t, "zh_TW", GetLangFromContext(c))
}
