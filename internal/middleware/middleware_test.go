package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/database"
	"github.com/javajoker/sustainchain-backend/internal/i18n"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("middleware-test-secret")
	i18n.Initialize()
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "middleware.db"))
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Username: name, Email: name + "@sustainchain.example", Role: role, IsActive: true}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := utils.GenerateJWT(user.ID, user.Username, string(user.Role), 1)
	require.NoError(t, err)
	return token
}

func okHandler(c *gin.Context) { c.Status(http.StatusOK) }

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := gin.New()
	r.GET("/api/private", AuthRequired(), func(c *gin.Context) {
		role, _ := utils.GetRoleFromContext(c)
		c.String(http.StatusOK, role)
	})

	user := &models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Username: "analyst", Role: models.RoleAnalyst}
	token := tokenFor(t, user)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token provided!")

	req := httptest.NewRequest(http.MethodGet, "/api/private", nil)
	req.Header.Set(TokenHeader, "garbage")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/private", nil)
	req.Header.Set(TokenHeader, token)
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "analyst", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestRoleGates(t *testing.T) {
	db := openTestDB(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	analyst := createUser(t, db, "analyst", models.RoleAnalyst)
	partner := createUser(t, db, "partner", models.RolePartner)
	supplier := createUser(t, db, "supplier", models.RoleSupplier)

	r := gin.New()
	r.GET("/admin", AuthRequired(), AdminRequired(db), okHandler)
	r.GET("/analyst", AuthRequired(), AnalystRequired(db), okHandler)
	r.GET("/supplier", AuthRequired(), SupplierRequired(db), okHandler)

	cases := []struct {
		path string
		user *models.User
		want int
	}{
		{"/admin", admin, http.StatusOK},
		{"/admin", analyst, http.StatusForbidden},
		{"/analyst", analyst, http.StatusOK},
		{"/analyst", admin, http.StatusOK},
		{"/analyst", partner, http.StatusForbidden},
		{"/supplier", analyst, http.StatusForbidden},
		{"/supplier", admin, http.StatusForbidden},
		{"/supplier", supplier, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.Header.Set(TokenHeader, tokenFor(t, tc.user))
		assert.Equal(t, tc.want, serve(r, req).Code, "%s as %s", tc.path, tc.user.Role)
	}
}

func TestRoleGateUsesCurrentRole(t *testing.T) {
	db := openTestDB(t)
	analyst := createUser(t, db, "demoted", models.RoleAnalyst)
	token := tokenFor(t, analyst)

	r := gin.New()
	r.GET("/analyst", AuthRequired(), AnalystRequired(db), okHandler)

	require.NoError(t, db.Model(analyst).Update("role", models.RolePartner).Error)

	req := httptest.NewRequest(http.MethodGet, "/analyst", nil)
	req.Header.Set(TokenHeader, token)
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)

	require.NoError(t, db.Delete(analyst).Error)
	req = httptest.NewRequest(http.MethodGet, "/analyst", nil)
	req.Header.Set(TokenHeader, token)
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, "en", parseLanguage("", "en"))
	assert.Equal(t, "zh_TW", parseLanguage("zh-TW,zh;q=0.9,en;q=0.8", "en"))
	assert.Equal(t, "en", parseLanguage("en-GB;q=0.9", "zh_TW"))
	assert.Equal(t, "zh_TW", parseLanguage("fr-FR", "zh_TW"))
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", okHandler)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)

	rl.evictIdle(-time.Second)
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestMetricsRecordsRoutes(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/suppliers/:id", okHandler)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	serve(r, httptest.NewRequest(http.MethodGet, "/api/suppliers/"+uuid.NewString(), nil))
	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `sustainchain_http_requests_total{method="GET",route="/api/suppliers/:id",status="200"} 1`)
}

func TestAuditLogMiddleware(t *testing.T) {
	db := openTestDB(t)
	r := gin.New()
	r.Use(AuditLogMiddleware(db))
	r.POST("/api/auth/signup", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/api/users", okHandler)

	serve(r, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"username":"newbie","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	serve(r, req)

	var logs []models.AuditLog
	require.Eventually(t, func() bool {
		logs = nil
		return db.Find(&logs).Error == nil && len(logs) == 1
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, "auth", logs[0].ResourceType)
	assert.Equal(t, http.StatusCreated, logs[0].StatusCode)
	assert.Equal(t, "POST /api/auth/signup", logs[0].Action)
	assert.Equal(t, "[REDACTED]", logs[0].NewValues["password"])
	assert.Equal(t, "newbie", logs[0].NewValues["username"])
}

func TestExtractResource(t *testing.T) {
	id := uuid.NewString()
	assert.Equal(t, "suppliers", extractResourceType("/api/suppliers/"+id+"/calculate-risk"))
	assert.Equal(t, "health", extractResourceType("/health"))
	assert.Equal(t, id, extractResourceID("/api/suppliers/"+id))
	assert.Empty(t, extractResourceID("/api/suppliers"))
}
