package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/sustainchain-backend/internal/models"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 66.7, Percentage(2, 3))
	assert.Equal(t, 100.0, Percentage(5, 5))
	assert.Equal(t, 33.3, Percentage(1, 3))
}

func TestKPIStatusFor(t *testing.T) {
	tests := []struct {
		value, target float64
		want          models.KPIStatus
	}{
		{100, 100, models.KPIStatusOnTrack},
		{92, 90, models.KPIStatusOnTrack},
		{75, 100, models.KPIStatusAtRisk},
		{74.9, 100, models.KPIStatusOffTrack},
		{0, 80, models.KPIStatusOffTrack},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KPIStatusFor(tt.value, tt.target), "value %v target %v", tt.value, tt.target)
	}
}

func TestTrendFor(t *testing.T) {
	assert.Equal(t, models.TrendIncreasing, TrendFor(65, 75))
	assert.Equal(t, models.TrendDecreasing, TrendFor(75, 65))
	assert.Equal(t, models.TrendStable, TrendFor(75, 75.4))
}

// kpiFixture: 2 of 3 products verified DCF, 3 of 4 grievances resolved,
// 1 of 2 suppliers with a plan.
func kpiFixture(t *testing.T) *fixture {
	f := newFixture(t)
	noPlan := f.addSupplier(t, f.org, "Palm Grower", "Indonesia", false)
	f.addProduct(t, f.supplier, "Decking", true, true)
	f.addProduct(t, noPlan, "Palm Oil", true, true)

	f.addGrievance(t, f.supplier, models.SeverityLow, models.GrievanceStatusResolved, nil)
	f.addGrievance(t, f.supplier, models.SeverityLow, models.GrievanceStatusResolved, nil)
	f.addGrievance(t, noPlan, models.SeverityLow, models.GrievanceStatusResolved, nil)
	f.addGrievance(t, noPlan, models.SeverityHigh, models.GrievanceStatusReported, nil)
	return f
}

func TestDCFPercentage(t *testing.T) {
	f := kpiFixture(t)
	svc := NewKPIService(f.db)

	res, err := svc.DCFPercentage(ctx, f.org.ID)
	require.NoError(t, err)
	assert.Equal(t, KPINameDCF, res.KPIName)
	assert.Equal(t, 66.7, res.Value)
	assert.Equal(t, 100.0, res.Target)
	assert.Equal(t, "%", res.Unit)
	assert.Equal(t, models.KPIStatusOffTrack, res.Status)
	assert.Equal(t, models.TrendStable, res.Trend)
}

func TestGrievanceResolutionRateTrend(t *testing.T) {
	f := kpiFixture(t)
	svc := NewKPIService(f.db)

	_, err := svc.Create(ctx, &CreateKPIRequest{
		Name:           KPINameGrievanceResolution,
		Category:       models.KPICategorySocial,
		Value:          ptr(65.0),
		Target:         ptr(90.0),
		Date:           ptr(time.Now().AddDate(0, -1, 0)),
		OrganizationID: f.org.ID,
	})
	require.NoError(t, err)

	res, err := svc.GrievanceResolutionRate(ctx, f.org.ID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, res.Value)
	assert.Equal(t, models.KPIStatusAtRisk, res.Status)
	assert.Equal(t, models.TrendIncreasing, res.Trend)
}

func TestSupplierSustainabilityRate(t *testing.T) {
	f := kpiFixture(t)
	svc := NewKPIService(f.db)

	res, err := svc.SupplierSustainabilityRate(ctx, f.org.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, res.Value)
	assert.Equal(t, 80.0, res.Target)
	assert.Equal(t, models.KPIStatusOffTrack, res.Status)
}

func TestKPICalculationsEdgeCases(t *testing.T) {
	f := newFixture(t)
	svc := NewKPIService(f.db)
	empty := f.addOrg(t, "Empty Co")

	res, err := svc.DCFPercentage(ctx, empty.ID)
	require.NoError(t, err)
	assert.Zero(t, res.Value)

	res, err = svc.GrievanceResolutionRate(ctx, empty.ID)
	require.NoError(t, err)
	assert.Zero(t, res.Value)

	_, err = svc.SupplierSustainabilityRate(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateKPIDerivesStatus(t *testing.T) {
	f := newFixture(t)
	svc := NewKPIService(f.db)

	kpi, err := svc.Create(ctx, &CreateKPIRequest{
		Name:           "Carbon Intensity",
		Category:       models.KPICategoryEnvironmental,
		Value:          ptr(80.0),
		Target:         ptr(100.0),
		OrganizationID: f.org.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.KPIStatusAtRisk, kpi.Status)
	assert.Equal(t, models.KPIPeriodMonthly, kpi.Period)

	_, _, err = svc.ByCategory(ctx, "weather", nil, defaultParams())
	assert.ErrorIs(t, err, ErrInvalidInput)

	items, total, err := svc.ByCategory(ctx, models.KPICategoryEnvironmental, &f.org.ID, defaultParams())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, kpi.ID, items[0].ID)
}
