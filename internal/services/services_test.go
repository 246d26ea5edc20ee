package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/config"
	"github.com/javajoker/sustainchain-backend/internal/database"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

var ctx = context.Background()

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
		AWS: config.AWSConfig{
			Region:        "us-east-1",
			S3Bucket:      "test-bucket",
			UploadDir:     t.TempDir(),
			PublicBaseURL: "http://localhost:8080",
		},
		Integrations: config.IntegrationsConfig{
			SalesforceAPI: "https://sf.test",
			SAPAPI:        "https://sap.test",
			CarbonAPI:     "https://carbon.test",
		},
	}
}

// fixture holds one organization with one supplier and one product.
type fixture struct {
	db       *gorm.DB
	org      *models.Organization
	supplier *models.Supplier
	product  *models.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)
	f := &fixture{db: db}
	f.org = f.addOrg(t, "EcoForest")
	f.supplier = f.addSupplier(t, f.org, "Amazon Timber", "Brazil", true)
	f.product = f.addProduct(t, f.supplier, "Flooring", false, false)
	return f
}

func (f *fixture) addOrg(t *testing.T, name string) *models.Organization {
	t.Helper()
	org := &models.Organization{Name: name, Type: models.OrganizationTypeBrand, IsActive: true}
	require.NoError(t, f.db.Create(org).Error)
	return org
}

func (f *fixture) addSupplier(t *testing.T, org *models.Organization, name, country string, plan bool) *models.Supplier {
	t.Helper()
	s := &models.Supplier{
		Name:                  name,
		Type:                  models.SupplierTypeProducer,
		Country:               country,
		HasSustainabilityPlan: plan,
		IsActive:              true,
		OrganizationID:        org.ID,
	}
	require.NoError(t, f.db.Create(s).Error)
	return s
}

func (f *fixture) addProduct(t *testing.T, supplier *models.Supplier, name string, verified, dcf bool) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:                name,
		Category:            "Wood",
		IsVerified:          verified,
		IsDeforestationFree: dcf,
		IsActive:            true,
		SupplierID:          supplier.ID,
	}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) addGrievance(t *testing.T, supplier *models.Supplier, severity models.Severity, status models.GrievanceStatus, at *models.GeoPoint) *models.Grievance {
	t.Helper()
	g := &models.Grievance{
		Title:       "Report",
		Date:        time.Now(),
		Source:      "Community",
		Type:        models.GrievanceTypeDeforestation,
		Coordinates: at,
		Status:      status,
		Severity:    severity,
		SupplierID:  supplier.ID,
	}
	require.NoError(t, f.db.Create(g).Error)
	return g
}

func (f *fixture) addUser(t *testing.T, username string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Role: role, IsActive: true}
	require.NoError(t, u.SetPassword("password123"))
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func ptr[T any](v T) *T { return &v }

func count[T any](t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(new(T)).Count(&n).Error)
	return n
}

func defaultParams() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: utils.DefaultPageLimit, Order: "desc"}
}
