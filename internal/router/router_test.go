package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/config"
	"github.com/javajoker/sustainchain-backend/internal/database"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *utils.APIError `json:"error"`
	Meta    struct {
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	} `json:"meta"`
}

type RouterTestSuite struct {
	suite.Suite
	db     *gorm.DB
	cfg    *config.Config
	router *gin.Engine
}

func (s *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *RouterTestSuite) SetupTest() {
	db, err := database.OpenSQLite(filepath.Join(s.T().TempDir(), "router.db"))
	s.Require().NoError(err)
	s.Require().NoError(database.RunMigrations(db))
	s.db = db

	s.cfg = &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "router-test-secret", AccessTokenTTL: 1},
		AWS:         config.AWSConfig{UploadDir: s.T().TempDir(), PublicBaseURL: "http://localhost:8080"},
		RateLimit:   config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000, AuthPerMinute: 1000},
		Metrics:     config.MetricsConfig{Enabled: true},
		Seed:        config.SeedConfig{EndpointsEnabled: true},
		I18n:        config.I18nConfig{DefaultLocale: "en"},
	}

	s.router, err = Initialize(db, s.cfg)
	s.Require().NoError(err)
}

func (s *RouterTestSuite) TearDownTest() {
	database.Close(s.db)
}

func (s *RouterTestSuite) request(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-access-token", token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp envelope
	if w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

// tokenFor stores a user with the given role and returns an access token for it.
func (s *RouterTestSuite) tokenFor(username string, role models.Role) string {
	user := &models.User{Username: username, Email: username + "@example.com", Role: role, IsActive: true}
	s.Require().NoError(user.SetPassword("password123"))
	s.Require().NoError(s.db.Create(user).Error)

	token, _, err := utils.GenerateJWT(user.ID, user.Username, string(user.Role), 1)
	s.Require().NoError(err)
	return token
}

func (s *RouterTestSuite) TestHealthAndWelcome() {
	w, _ := s.request(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.request(http.MethodGet, "/", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "SustainChain")

	w, _ = s.request(http.MethodGet, "/unknown", "", nil)
	s.Equal(http.StatusNotFound, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "sustainchain_http_requests_total")
}

func (s *RouterTestSuite) TestSignUpAndSignIn() {
	signup := map[string]interface{}{
		"username": "maria",
		"email":    "maria@example.com",
		"password": "password123",
	}
	w, resp := s.request(http.MethodPost, "/api/auth/signup", "", signup)
	s.Equal(http.StatusCreated, w.Code)
	s.True(resp.Success)
	s.NotContains(w.Body.String(), "password123")

	w, _ = s.request(http.MethodPost, "/api/auth/signup", "", signup)
	s.Equal(http.StatusConflict, w.Code)

	w, _ = s.request(http.MethodPost, "/api/auth/signup", "", map[string]interface{}{
		"username": "boss", "email": "boss@example.com", "password": "password123", "role": "admin",
	})
	s.Equal(http.StatusForbidden, w.Code)

	w, resp = s.request(http.MethodPost, "/api/auth/signin", "", map[string]string{"username": "maria", "password": "password123"})
	s.Require().Equal(http.StatusOK, w.Code)
	var signin struct {
		Role        string `json:"role"`
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.Unmarshal(resp.Data, &signin))
	s.Equal("analyst", signin.Role)
	s.NotEmpty(signin.AccessToken)

	w, _ = s.request(http.MethodGet, "/api/suppliers", signin.AccessToken, nil)
	s.Equal(http.StatusOK, w.Code)

	w, resp = s.request(http.MethodPost, "/api/auth/signin", "", map[string]string{"username": "maria", "password": "wrong-password"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.False(resp.Success)

	w, _ = s.request(http.MethodPost, "/api/auth/signin", "", map[string]string{"username": "nobody", "password": "password123"})
	s.Equal(http.StatusNotFound, w.Code)

	w, resp = s.request(http.MethodPost, "/api/auth/signup", "", map[string]string{"username": "x"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", resp.Error.Code)
}

func (s *RouterTestSuite) TestTokenRequired() {
	w, resp := s.request(http.MethodGet, "/api/suppliers", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("UNAUTHORIZED", resp.Error.Code)

	w, _ = s.request(http.MethodGet, "/api/suppliers", "not-a-token", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterTestSuite) TestWriteErrors() {
	analyst := s.tokenFor("analyst1", models.RoleAnalyst)
	admin := s.tokenFor("admin1", models.RoleAdmin)

	w, resp := s.request(http.MethodPost, "/api/suppliers", analyst, map[string]interface{}{
		"name": "Orphan", "type": "producer", "country": "Brazil", "organization_id": uuid.NewString(),
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(resp.Error.Message, "organization")

	missing := "/api/suppliers/" + uuid.NewString()
	w, _ = s.request(http.MethodPut, missing, analyst, map[string]interface{}{"name": "Ghost"})
	s.Equal(http.StatusNotFound, w.Code)
	w, _ = s.request(http.MethodDelete, missing, admin, nil)
	s.Equal(http.StatusNotFound, w.Code)
	w, _ = s.request(http.MethodGet, missing, analyst, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w, _ = s.request(http.MethodGet, "/api/suppliers/not-a-uuid", analyst, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.request(http.MethodPost, "/api/satellite/generate-mock", analyst, map[string]interface{}{"count": 101})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestRoleGates() {
	partner := s.tokenFor("partner1", models.RolePartner)
	analyst := s.tokenFor("analyst1", models.RoleAnalyst)

	w, _ := s.request(http.MethodPost, "/api/organizations", analyst, map[string]interface{}{"name": "Acme", "type": "brand"})
	s.Equal(http.StatusForbidden, w.Code)

	w, _ = s.request(http.MethodPost, "/api/suppliers", partner, map[string]interface{}{})
	s.Equal(http.StatusForbidden, w.Code)

	w, _ = s.request(http.MethodGet, "/api/admin/dashboard", analyst, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w, _ = s.request(http.MethodDelete, "/api/suppliers/"+uuid.NewString(), analyst, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w, _ = s.request(http.MethodGet, "/api/users", analyst, nil)
	s.Equal(http.StatusForbidden, w.Code)

	alert := map[string]interface{}{
		"alert_date":  "2026-10-01T00:00:00Z",
		"coordinates": map[string]interface{}{"type": "Point", "coordinates": []float64{-60.05, -3.1}},
		"region":      "amazon",
		"type":        "fire",
		"severity":    "critical",
	}
	w, _ = s.request(http.MethodPost, "/api/satellite", partner, alert)
	s.Equal(http.StatusForbidden, w.Code)
	var alerts int64
	s.Require().NoError(s.db.Model(&models.SatelliteAlert{}).Count(&alerts).Error)
	s.Zero(alerts)

	w, _ = s.request(http.MethodPost, "/api/satellite", analyst, alert)
	s.Equal(http.StatusCreated, w.Code)

	// Uploads are for suppliers only, analysts included.
	w, _ = s.request(http.MethodPost, "/api/surveys/uploads", analyst, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouterTestSuite) TestSeedAndQuery() {
	w, _ := s.request(http.MethodPost, "/api/seed/seed", "", nil)
	s.Require().Equal(http.StatusCreated, w.Code)

	w, _ = s.request(http.MethodPost, "/api/seed/seed", "", nil)
	s.Equal(http.StatusConflict, w.Code)

	w, resp := s.request(http.MethodPost, "/api/auth/signin", "", map[string]string{"username": "admin", "password": "password123"})
	s.Require().Equal(http.StatusOK, w.Code)
	var signin struct {
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.Unmarshal(resp.Data, &signin))
	token := signin.AccessToken

	w, resp = s.request(http.MethodGet, "/api/organizations", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(int64(3), resp.Meta.Pagination.Total)
	s.Equal("3", w.Header().Get("X-Total-Count"))

	var orgs []models.Organization
	s.Require().NoError(json.Unmarshal(resp.Data, &orgs))
	s.Require().NotEmpty(orgs)

	for _, kind := range []string{"dcf", "grievance-resolution", "supplier-sustainability"} {
		w, resp = s.request(http.MethodGet, "/api/kpis/calculate/"+kind+"/"+orgs[0].ID.String(), token, nil)
		s.Require().Equal(http.StatusOK, w.Code, kind)
		var kpi struct {
			Value  float64 `json:"value"`
			Unit   string  `json:"unit"`
			Status string  `json:"status"`
		}
		s.Require().NoError(json.Unmarshal(resp.Data, &kpi))
		s.GreaterOrEqual(kpi.Value, 0.0)
		s.LessOrEqual(kpi.Value, 100.0)
		s.Equal("%", kpi.Unit)
		s.Contains([]string{"on_track", "at_risk", "off_track"}, kpi.Status)
	}

	w, _ = s.request(http.MethodGet, "/api/kpis/calculate/dcf/"+uuid.NewString(), token, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w, resp = s.request(http.MethodGet, "/api/grievances/heatmap/data", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var points []map[string]interface{}
	s.Require().NoError(json.Unmarshal(resp.Data, &points))
	s.NotEmpty(points)

	w, _ = s.request(http.MethodGet, "/api/supply-chain/map", token, nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.request(http.MethodGet, "/api/admin/dashboard", token, nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.request(http.MethodPost, "/api/seed/reset", "", nil)
	s.Equal(http.StatusOK, w.Code)
	w, _ = s.request(http.MethodPost, "/api/seed/seed", "", nil)
	s.Equal(http.StatusCreated, w.Code)
}

func (s *RouterTestSuite) TestSeedRoutesDisabled() {
	s.cfg.Seed.EndpointsEnabled = false
	router, err := Initialize(s.db, s.cfg)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/api/seed/seed", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	s.Equal(http.StatusNotFound, w.Code)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
