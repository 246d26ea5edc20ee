package seed

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/database"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/services"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func TestEmbeddedDatasetShape(t *testing.T) {
	ds, err := LoadDataset()
	require.NoError(t, err)

	assert.Len(t, ds.Organizations, 3)
	assert.Len(t, ds.Users, 4)
	assert.Len(t, ds.Suppliers, 5)
	assert.Len(t, ds.Products, 5)
	assert.Len(t, ds.Nodes, 7)
	assert.Len(t, ds.Connections, 6)
	assert.Len(t, ds.Grievances, 5)
	assert.Len(t, ds.Alerts, 5)
	assert.Len(t, ds.KPIs, 5)
	assert.Len(t, ds.Surveys, 3)
	assert.Equal(t, 10, ds.QuestionCount())
	assert.Len(t, ds.Responses, 7)
	assert.Equal(t, "password123", ds.Password)
}

func TestEmbeddedQuestionsKeepPunctuation(t *testing.T) {
	ds, err := LoadDataset()
	require.NoError(t, err)

	first := ds.Surveys[0].Questions[0]
	assert.Equal(t, "Does your organization have a formal sustainability policy?", first.Text)
	assert.Equal(t, "boolean", first.Type)

	risk := ds.Surveys[1].Questions
	assert.Equal(t, "What methods do you use to verify that your products are deforestation-free?", risk[1].Text)
	assert.Equal(t, "Format: latitude, longitude for each area, separated by semicolons", risk[2].HelpText)

	for i, s := range ds.Surveys {
		for j, q := range s.Questions {
			assert.NotEmpty(t, q.Text, "survey %d question %d", i, j)
			assert.NotEmpty(t, q.Type, "survey %d question %d", i, j)
		}
	}
}

func TestParseDatasetRejectsDanglingIndex(t *testing.T) {
	_, err := ParseDataset([]byte(`
password: x
organizations:
  - {name: Only, type: brand}
suppliers:
  - {name: Lost, type: producer, country: Brazil, organization: 3}
`))
	assert.ErrorContains(t, err, "supplier 0")
}

func TestRunSeedsEveryTable(t *testing.T) {
	db := openTestDB(t)
	seeder, err := NewSeeder(db)
	require.NoError(t, err)

	summary, err := seeder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Summary{
		Organizations: 3, Users: 4, Suppliers: 5, Products: 5, Nodes: 7, Connections: 6,
		Grievances: 5, Alerts: 5, KPIs: 5, Surveys: 3, Questions: 10, Responses: 7,
	}, summary)

	counts := map[interface{}]int64{
		&models.Organization{}:   3,
		&models.User{}:           4,
		&models.Connection{}:     6,
		&models.Question{}:       10,
		&models.SurveyResponse{}: 7,
	}
	for model, want := range counts {
		var got int64
		require.NoError(t, db.Model(model).Count(&got).Error)
		assert.Equal(t, want, got, "%T", model)
	}

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, admin.CheckPassword("password123"))

	var resolved models.Grievance
	require.NoError(t, db.Where("status = ?", models.GrievanceStatusResolved).First(&resolved).Error)
	require.NotNil(t, resolved.ResolutionDate)
	assert.True(t, resolved.ResolutionDate.After(resolved.Date))
}

func TestRunTwiceConflicts(t *testing.T) {
	db := openTestDB(t)
	seeder, err := NewSeeder(db)
	require.NoError(t, err)

	_, err = seeder.Run(context.Background())
	require.NoError(t, err)

	_, err = seeder.Run(context.Background())
	assert.True(t, errors.Is(err, services.ErrConflict))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(4), users)
}

func TestResetAllowsReseeding(t *testing.T) {
	db := openTestDB(t)
	seeder, err := NewSeeder(db)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = seeder.Run(ctx)
	require.NoError(t, err)
	require.NoError(t, seeder.Reset(ctx))

	var orgs int64
	require.NoError(t, db.Model(&models.Organization{}).Count(&orgs).Error)
	assert.Zero(t, orgs)

	_, err = seeder.Run(ctx)
	assert.NoError(t, err)
}
