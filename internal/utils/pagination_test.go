package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/suppliers?"+query, nil)
	return c
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	p := GetPaginationParams(contextWithQuery(""))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageLimit, p.Limit)
	assert.Equal(t, "created_at", p.Sort)
	assert.Equal(t, "desc", p.Order)
	assert.Equal(t, 0, p.Offset())
}

func TestGetPaginationParamsClamps(t *testing.T) {
	p := GetPaginationParams(contextWithQuery("page=-3&limit=5000&order=sideways"))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageLimit, p.Limit)
	assert.Equal(t, "desc", p.Order)

	p = GetPaginationParams(contextWithQuery("page=3&limit=10&order=asc&search=timber"))
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, "asc", p.Order)
	assert.Equal(t, "timber", p.Search)
}

func TestCreatePaginationResult(t *testing.T) {
	r := CreatePaginationResult([]int{1, 2}, 101, PaginationParams{Page: 2, Limit: 50})
	assert.Equal(t, 3, r.TotalPages)
	assert.Equal(t, int64(101), r.Total)

	r = CreatePaginationResult([]int{}, 0, PaginationParams{Page: 1, Limit: 50})
	assert.Equal(t, 0, r.TotalPages)
}
